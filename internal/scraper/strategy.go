package scraper

import (
	"context"

	"hifisearch/internal/browser"
)

// ExtractionStrategy pulls raw listings out of a loaded page. A strategy
// returning zero listings without error means the page simply held none.
type ExtractionStrategy interface {
	Extract(ctx context.Context, page browser.Page) ([]RawListing, error)
}
