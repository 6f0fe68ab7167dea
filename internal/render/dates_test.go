package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

func TestNormalizeDateRelative(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"idag", "2026-08-29"},
		{"Idag 14:22", "2026-08-29"},
		{"igår", "2026-08-28"},
		{"Igår 20:56", "2026-08-28"},
		{"just nu", "2026-08-29"},
		{"today", "2026-08-29"},
		{"yesterday", "2026-08-28"},
		{"3 days ago", "2026-08-26"},
		{"5 hours ago", "2026-08-29"},
		{"2 weeks ago", "2026-08-15"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDate(tt.text, testNow), "input %q", tt.text)
	}
}

func TestNormalizeDateTimeOnly(t *testing.T) {
	assert.Equal(t, "2026-08-29", NormalizeDate("20:56", testNow))
	assert.Equal(t, "2026-08-29", NormalizeDate("9:05", testNow))
}

func TestNormalizeDateAbsolute(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"2026-08-15", "2026-08-15"},
		{"published 2025-12-01T10:00:00Z", "2025-12-01"},
		{"12/10/2025", "2025-10-12"},
		{"12/10/25", "2025-10-12"},
		{"Oct 26, 2025", "2025-10-26"},
		{"26 okt 2025", "2025-10-26"},
		{"26 oktober 2025", "2025-10-26"},
		{"3 maj 2026", "2026-05-03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDate(tt.text, testNow), "input %q", tt.text)
	}
}

func TestNormalizeDateYearlessFuture(t *testing.T) {
	// A written date after now without a year belongs to last year
	assert.Equal(t, "2025-10-26", NormalizeDate("26 okt", testNow))
	assert.Equal(t, "2025-12-24", NormalizeDate("Dec 24", testNow))
	// A past date without a year stays in the current year
	assert.Equal(t, "2026-05-03", NormalizeDate("3 maj", testNow))
}

func TestNormalizeDateUnparseable(t *testing.T) {
	for _, text := range []string{"", "   ", "slutar snart", "ingen tid", "31 feb 2026"} {
		assert.Empty(t, NormalizeDate(text, testNow), "input %q", text)
	}
}

func TestParseDateReportsFailure(t *testing.T) {
	_, ok := ParseDate("no date here", testNow)
	assert.False(t, ok)

	got, ok := ParseDate("2026-01-02", testNow)
	assert.True(t, ok)
	assert.Equal(t, 2026, got.Year())
}
