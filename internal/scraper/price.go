package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var nonPriceChars = regexp.MustCompile(`[^\d,.]`)

// ParsePrice extracts a numeric amount from free-form price text such as
// "12 500 kr", "1.299,50 SEK" or "3,999.00". It returns false when the text
// holds no parseable amount.
//
// Both comma and dot appear as thousands and decimal separators in the
// wild. When both occur, the one appearing later is the decimal separator.
// A lone comma is a decimal separator only when exactly two digits follow
// it, otherwise it groups thousands.
func ParsePrice(text string) (float64, bool) {
	cleaned := nonPriceChars.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0, false
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// 1.299,50 style
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// 1,299.50 style
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) == 2 {
			cleaned = parts[0] + "." + parts[1]
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value < 0 {
		return 0, false
	}
	return value, true
}
