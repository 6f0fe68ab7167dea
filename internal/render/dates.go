package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthNames maps Swedish and English month names and abbreviations to
// month numbers. Listing dates on the covered sites appear in both
// languages.
var monthNames = map[string]time.Month{
	"jan": 1, "januari": 1, "january": 1,
	"feb": 2, "februari": 2, "february": 2,
	"mar": 3, "mars": 3, "march": 3,
	"apr": 4, "april": 4,
	"maj": 5, "may": 5,
	"jun": 6, "juni": 6, "june": 6,
	"jul": 7, "juli": 7, "july": 7,
	"aug": 8, "augusti": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"okt": 10, "oktober": 10, "oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var (
	daysAgoPattern    = regexp.MustCompile(`(\d+)\s+days?\s+ago`)
	hoursAgoPattern   = regexp.MustCompile(`(\d+)\s+hours?\s+ago`)
	weeksAgoPattern   = regexp.MustCompile(`(\d+)\s+weeks?\s+ago`)
	timeOnlyPattern   = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	// Trailing \D instead of \b so timestamps like 2025-12-01T10:00:00Z match
	isoPattern        = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})(?:\D|$)`)
	slashPattern      = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	monthFirstPattern = regexp.MustCompile(`(?i)\b([a-zåä]{3,9})\.?\s+(\d{1,2})\b(?:,?\s*(\d{2,4})\b)?`)
	dayFirstPattern   = regexp.MustCompile(`(?i)\b(\d{1,2})\s+([a-zåä]{3,9})\.?(?:\s*(\d{2,4})\b)?`)
)

func monthByName(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if m, ok := monthNames[name]; ok {
		return m, true
	}
	if len(name) > 3 {
		if m, ok := monthNames[name[:3]]; ok {
			return m, true
		}
	}
	return 0, false
}

// ParseDate interprets a free-form listing date relative to now. It handles
// relative phrases in Swedish and English, time-of-day only, ISO dates,
// slash dates, and both month-first and day-first written dates. A written
// date without a year that lands in the future belongs to the previous
// year.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return time.Time{}, false
	}

	s = strings.ReplaceAll(s, "idag", "today")
	s = strings.ReplaceAll(s, "igår", "yesterday")
	s = strings.ReplaceAll(s, "just nu", "just now")

	switch {
	case strings.Contains(s, "just now"), strings.Contains(s, "today"):
		return now, true
	case strings.Contains(s, "yesterday"):
		return now.AddDate(0, 0, -1), true
	}

	if m := daysAgoPattern.FindStringSubmatch(s); m != nil {
		days, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -days), true
	}
	if m := hoursAgoPattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		return now.Add(-time.Duration(hours) * time.Hour), true
	}
	if m := weeksAgoPattern.FindStringSubmatch(s); m != nil {
		weeks, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -7*weeks), true
	}

	if timeOnlyPattern.MatchString(s) {
		return now, true
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return dateOf(year, time.Month(month), day)
	}

	if m := slashPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		return dateOf(year, time.Month(month), day)
	}

	if m := monthFirstPattern.FindStringSubmatch(s); m != nil {
		if month, ok := monthByName(m[1]); ok {
			day, _ := strconv.Atoi(m[2])
			return writtenDate(month, day, m[3], now)
		}
	}

	if m := dayFirstPattern.FindStringSubmatch(s); m != nil {
		if month, ok := monthByName(m[2]); ok {
			day, _ := strconv.Atoi(m[1])
			return writtenDate(month, day, m[3], now)
		}
	}

	return time.Time{}, false
}

func writtenDate(month time.Month, day int, yearText string, now time.Time) (time.Time, bool) {
	year := now.Year()
	if yearText != "" {
		year, _ = strconv.Atoi(yearText)
		if year < 100 {
			year += 2000
		}
	}
	t, ok := dateOf(year, month, day)
	if !ok {
		return time.Time{}, false
	}
	if yearText == "" && t.After(now) {
		t = t.AddDate(-1, 0, 0)
	}
	return t, true
}

func dateOf(year int, month time.Month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject overflowed dates like 31 feb
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeDate converts a free-form listing date to YYYY-MM-DD, or returns
// the empty string when the text holds no recognizable date.
func NormalizeDate(text string, now time.Time) string {
	t, ok := ParseDate(text, now)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}
