package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"hifisearch/internal/scraper"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SortMode selects the result ordering.
type SortMode string

const (
	// SortByDate orders newest first, undated listings last
	SortByDate SortMode = "date"
	// SortBySite orders alphabetically by site name
	SortBySite SortMode = "site"
	// SortByPrice orders cheapest first, unpriced listings last
	SortByPrice SortMode = "price"
)

// ParseSortMode validates a sort flag value.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(s)) {
	case SortByDate:
		return SortByDate, nil
	case SortBySite:
		return SortBySite, nil
	case SortByPrice:
		return SortByPrice, nil
	}
	return "", fmt.Errorf("unknown sort mode %q, want date, site or price", s)
}

// Flatten merges per-site results into one slice.
func Flatten(results map[string][]scraper.ListingResult) []scraper.ListingResult {
	sites := make([]string, 0, len(results))
	for site := range results {
		sites = append(sites, site)
	}
	sort.Strings(sites)

	var all []scraper.ListingResult
	for _, site := range sites {
		all = append(all, results[site]...)
	}
	return all
}

// Sort orders listings in place according to mode, relative to now for date
// parsing.
func Sort(listings []scraper.ListingResult, mode SortMode, now time.Time) {
	switch mode {
	case SortBySite:
		sort.SliceStable(listings, func(i, j int) bool {
			return strings.ToLower(listings[i].Source) < strings.ToLower(listings[j].Source)
		})
	case SortByPrice:
		sort.SliceStable(listings, func(i, j int) bool {
			pi, pj := listings[i].Price, listings[j].Price
			if pi == nil {
				return false
			}
			if pj == nil {
				return true
			}
			return *pi < *pj
		})
	default:
		sort.SliceStable(listings, func(i, j int) bool {
			di, oki := ParseDate(listings[i].PostedDate, now)
			dj, okj := ParseDate(listings[j].PostedDate, now)
			if !oki {
				return false
			}
			if !okj {
				return true
			}
			return di.After(dj)
		})
	}
}

// FilterByDays keeps listings posted within the last days. Listings whose
// date is absent or unparseable are kept, only a parsed date older than the
// cutoff excludes one.
func FilterByDays(listings []scraper.ListingResult, days int, now time.Time) []scraper.ListingResult {
	if days <= 0 {
		return listings
	}
	cutoff := now.AddDate(0, 0, -days)

	var kept []scraper.ListingResult
	for _, listing := range listings {
		if t, ok := ParseDate(listing.PostedDate, now); ok && t.Before(cutoff) {
			continue
		}
		kept = append(kept, listing)
	}
	return kept
}

// FormatPrice renders a price for display.
func FormatPrice(price *float64) string {
	if price == nil {
		return "-"
	}
	if *price == float64(int64(*price)) {
		return fmt.Sprintf("%d kr", int64(*price))
	}
	return fmt.Sprintf("%.2f kr", *price)
}

// Hyperlink wraps label in an OSC 8 terminal hyperlink pointing at url.
func Hyperlink(url, label string) string {
	if url == "" {
		return label
	}
	return "\x1b]8;;" + url + "\x1b\\" + label + "\x1b]8;;\x1b\\"
}

// Table writes the listings as a table. When links is true titles become
// clickable terminal hyperlinks.
func Table(w io.Writer, listings []scraper.ListingResult, now time.Time, links bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Title", "Date", "Price", "Location", "Site"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 60},
		{Number: 3, Align: text.AlignRight},
	})

	for _, listing := range listings {
		title := listing.Title
		if links {
			title = Hyperlink(listing.URL, title)
		}
		date := NormalizeDate(listing.PostedDate, now)
		if date == "" {
			date = "-"
		}
		location := listing.Location
		if location == "" {
			location = "-"
		}
		t.AppendRow(table.Row{title, date, FormatPrice(listing.Price), location, listing.Source})
	}

	t.AppendFooter(table.Row{fmt.Sprintf("%d listings", len(listings)), "", "", "", ""})
	t.Render()
}
