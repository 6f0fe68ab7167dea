package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plain integer", "4500", 4500},
		{"swedish currency", "12 500 kr", 12500},
		{"currency code", "3999 SEK", 3999},
		{"comma decimal", "1299,50", 1299.5},
		{"dot thousands comma decimal", "1.299,50 SEK", 1299.5},
		{"comma thousands dot decimal", "3,999.00", 3999},
		{"comma thousands only", "12,500", 12500},
		{"multiple comma groups", "1,234,567", 1234567},
		{"dot decimal", "499.95", 499.95},
		{"surrounding text", "Pris: 7 900 kr inkl frakt", 7900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePrice(tt.text)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestParsePriceComma(t *testing.T) {
	// A lone comma is decimal only with exactly two trailing digits
	got, ok := ParsePrice("1299,50")
	require.True(t, ok)
	assert.InDelta(t, 1299.5, got, 0.001)

	got, ok = ParsePrice("12,500")
	require.True(t, ok)
	assert.InDelta(t, 12500.0, got, 0.001)

	got, ok = ParsePrice("12,5")
	require.True(t, ok)
	assert.InDelta(t, 125.0, got, 0.001)
}

func TestParsePriceInvalid(t *testing.T) {
	for _, text := range []string{"", "Pris på förfrågan", "kr", "...", ",,"} {
		_, ok := ParsePrice(text)
		assert.False(t, ok, "expected no price from %q", text)
	}
}
