package scraper

import "strings"

// synonyms maps a search word to equivalent terms worth searching as well.
// Swedish shops list the same gear under Swedish and English names.
var synonyms = map[string][]string{
	"amp":          {"amplifier", "förstärkare"},
	"amplifier":    {"amp", "förstärkare"},
	"förstärkare":  {"amp", "amplifier"},
	"turntable":    {"record player", "skivspelare"},
	"skivspelare":  {"turntable", "record player"},
	"speaker":      {"speakers", "högtalare"},
	"speakers":     {"speaker", "högtalare"},
	"högtalare":    {"speaker", "speakers"},
	"cd":           {"cd-spelare", "cd player"},
	"dac":          {"d/a-omvandlare"},
	"preamp":       {"preamplifier", "försteg"},
	"preamplifier": {"preamp", "försteg"},
	"försteg":      {"preamp", "preamplifier"},
}

// ExpandSearchTerm returns the query plus variants where single words are
// replaced by their synonyms. The original query always comes first and the
// list holds no duplicates.
func ExpandSearchTerm(query string) []string {
	expanded := []string{query}
	seen := map[string]struct{}{strings.ToLower(query): {}}

	words := strings.Fields(query)
	for i, word := range words {
		for _, alt := range synonyms[strings.ToLower(word)] {
			variant := make([]string, len(words))
			copy(variant, words)
			variant[i] = alt
			candidate := strings.Join(variant, " ")
			if _, ok := seen[strings.ToLower(candidate)]; ok {
				continue
			}
			seen[strings.ToLower(candidate)] = struct{}{}
			expanded = append(expanded, candidate)
		}
	}
	return expanded
}
