package scraper

// Deduplicator tracks listing URLs seen within one scrape session so the
// same listing appearing on several pages is counted once.
type Deduplicator struct {
	baseURL string
	seen    map[string]struct{}
}

// NewDeduplicator creates a deduplicator resolving listing URLs against
// baseURL before comparing them.
func NewDeduplicator(baseURL string) *Deduplicator {
	return &Deduplicator{
		baseURL: baseURL,
		seen:    make(map[string]struct{}),
	}
}

// Add returns the listings not seen before, in their original order, and
// records them. Listings without a URL are dropped since they cannot be
// keyed.
func (d *Deduplicator) Add(listings []RawListing) []RawListing {
	var fresh []RawListing
	for _, listing := range listings {
		if listing.URL == "" {
			continue
		}
		key := ResolveURL(d.baseURL, listing.URL)
		if _, ok := d.seen[key]; ok {
			continue
		}
		d.seen[key] = struct{}{}
		fresh = append(fresh, listing)
	}
	return fresh
}

// Size returns how many distinct listings have been recorded.
func (d *Deduplicator) Size() int {
	return len(d.seen)
}
