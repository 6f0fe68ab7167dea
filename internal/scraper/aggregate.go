package scraper

import (
	"strings"
)

// ResultAggregator turns raw listings into normalized results: it enforces
// required fields, resolves URLs, matches the query against title and
// description, parses prices best-effort and applies the price range.
type ResultAggregator struct {
	site     string
	baseURL  string
	query    Query
	minPrice *float64
	maxPrice *float64
}

// NewResultAggregator creates an aggregator for one scrape session. Nil
// price bounds leave that side of the range open.
func NewResultAggregator(site, baseURL string, query Query, minPrice, maxPrice *float64) *ResultAggregator {
	return &ResultAggregator{
		site:     site,
		baseURL:  baseURL,
		query:    query,
		minPrice: minPrice,
		maxPrice: maxPrice,
	}
}

// Normalize converts raw listings to results, preserving discovery order.
// Listings without both a title and a URL are dropped. A listing whose
// price could not be parsed passes the price filter, only a parsed price
// outside the range excludes it.
func (a *ResultAggregator) Normalize(listings []RawListing) []ListingResult {
	var results []ListingResult
	for _, listing := range listings {
		title := strings.TrimSpace(listing.Title)
		rawURL := strings.TrimSpace(listing.URL)
		if title == "" || rawURL == "" {
			continue
		}

		if !a.query.Matches(listing.Title, listing.Description) {
			continue
		}

		var price *float64
		if listing.PriceText != "" {
			if v, ok := ParsePrice(listing.PriceText); ok {
				price = &v
			}
		}
		if price != nil && !a.inRange(*price) {
			continue
		}

		results = append(results, ListingResult{
			Title:       title,
			Description: strings.TrimSpace(listing.Description),
			Price:       price,
			URL:         ResolveURL(a.baseURL, rawURL),
			ImageURL:    resolveOptional(a.baseURL, listing.ImageURL),
			PostedDate:  strings.TrimSpace(listing.PostedAt),
			Location:    strings.TrimSpace(listing.Location),
			Source:      a.site,
			RawData:     listing.PriceText,
		})
	}
	return results
}

func (a *ResultAggregator) inRange(price float64) bool {
	if a.minPrice != nil && price < *a.minPrice {
		return false
	}
	if a.maxPrice != nil && price > *a.maxPrice {
		return false
	}
	return true
}

func resolveOptional(base, href string) string {
	if strings.TrimSpace(href) == "" {
		return ""
	}
	return ResolveURL(base, href)
}
