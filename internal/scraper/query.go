package scraper

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"hifisearch/helpers"
)

var quotedPhrase = regexp.MustCompile(`"([^"]*)"`)

// Query is a parsed search query. Double-quoted spans match as exact
// phrases, remaining words match individually in any order.
type Query struct {
	Raw     string
	Tokens  []string
	Phrases []string
}

// NewQuery parses a raw query string.
func NewQuery(raw string) Query {
	q := Query{Raw: raw}

	rest := quotedPhrase.ReplaceAllStringFunc(raw, func(m string) string {
		phrase := helpers.CollapseWhitespace(strings.Trim(m, `"`))
		if phrase != "" {
			q.Phrases = append(q.Phrases, strings.ToLower(phrase))
		}
		return " "
	})

	for _, word := range strings.Fields(rest) {
		q.Tokens = append(q.Tokens, strings.ToLower(word))
	}
	return q
}

// IsEmpty reports whether the query has no tokens and no phrases.
func (q Query) IsEmpty() bool {
	return len(q.Tokens) == 0 && len(q.Phrases) == 0
}

// Matches reports whether every token and phrase occurs as a whole word in
// the combined haystack texts. An empty query matches everything.
func (q Query) Matches(haystacks ...string) bool {
	if q.IsEmpty() {
		return true
	}

	hay := strings.ToLower(strings.Join(haystacks, " "))
	for _, token := range q.Tokens {
		if !containsWord(hay, token) {
			return false
		}
	}
	if len(q.Phrases) > 0 {
		collapsed := helpers.CollapseWhitespace(hay)
		for _, phrase := range q.Phrases {
			if !containsWord(collapsed, phrase) {
				return false
			}
		}
	}
	return true
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// containsWord reports whether needle occurs in hay bounded by non-word
// characters or the string edges on both sides.
func containsWord(hay, needle string) bool {
	if needle == "" {
		return true
	}
	for start := 0; ; {
		i := strings.Index(hay[start:], needle)
		if i < 0 {
			return false
		}
		i += start

		before := true
		if i > 0 {
			r, _ := utf8.DecodeLastRuneInString(hay[:i])
			before = !isWordChar(r)
		}
		after := true
		if end := i + len(needle); end < len(hay) {
			r, _ := utf8.DecodeRuneInString(hay[end:])
			after = !isWordChar(r)
		}
		if before && after {
			return true
		}
		start = i + 1
	}
}
