package scraper

import (
	"context"

	"hifisearch/logger"
)

// FetchPageFunc retrieves and extracts one page of results. The page number
// starts at the site's first page and increments by one.
type FetchPageFunc func(ctx context.Context, page int) ([]RawListing, error)

// PaginationController walks result pages until one of the termination
// conditions is met: an empty page, a window of consecutive pages yielding
// nothing new, the page cap, a fetch failure, or context cancellation.
// Listings collected before a failure are kept.
type PaginationController struct {
	limiter *RateLimiter
	dedup   *Deduplicator
	session SessionConfig
	start   int
	log     *logger.Logger
}

// NewPaginationController creates a controller for one scrape session.
func NewPaginationController(limiter *RateLimiter, dedup *Deduplicator, session SessionConfig, startPage int, log *logger.Logger) *PaginationController {
	if startPage < 1 {
		startPage = 1
	}
	return &PaginationController{
		limiter: limiter,
		dedup:   dedup,
		session: session,
		start:   startPage,
		log:     log,
	}
}

// Run fetches pages until termination and returns the deduplicated listings
// in discovery order.
func (c *PaginationController) Run(ctx context.Context, fetch FetchPageFunc) []RawListing {
	var collected []RawListing
	stale := 0

	for i := 0; i < c.session.MaxPages; i++ {
		page := c.start + i

		if err := c.limiter.Wait(ctx); err != nil {
			c.log.Debug().Err(err).Msg("Session cancelled while rate limiting")
			break
		}

		pageCtx, cancel := context.WithTimeout(ctx, c.session.NavTimeout)
		listings, err := fetch(pageCtx, page)
		cancel()
		if err != nil {
			c.log.Warn().Err(err).Int("page", page).Msg("Page fetch failed, keeping partial results")
			break
		}

		if len(listings) == 0 {
			c.log.Debug().Int("page", page).Msg("Empty page, stopping")
			break
		}

		fresh := c.dedup.Add(listings)
		collected = append(collected, fresh...)

		if len(fresh) == 0 {
			stale++
			if stale >= c.session.StableWindow {
				c.log.Debug().Int("page", page).Msg("No new listings within stable window, stopping")
				break
			}
			continue
		}
		stale = 0
	}

	return collected
}
