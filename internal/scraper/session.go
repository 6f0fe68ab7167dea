package scraper

import (
	"context"

	"hifisearch/internal/browser"
	"hifisearch/logger"
)

// SiteScraper runs search sessions against one configured site. Extraction
// tries the DOM selectors first and falls back to the structured payload
// when the selectors yield nothing.
type SiteScraper struct {
	site    SiteConfig
	session SessionConfig
	nav     browser.Navigator
	log     *logger.Logger
}

// NewSiteScraper binds a site configuration to a navigator. Per-site limits
// in the configuration override the session defaults.
func NewSiteScraper(site SiteConfig, session SessionConfig, nav browser.Navigator) *SiteScraper {
	if site.MaxPages > 0 {
		session.MaxPages = site.MaxPages
	}
	if site.MinInterval > 0 {
		session.MinInterval = site.MinInterval
	}
	return &SiteScraper{
		site:    site,
		session: session,
		nav:     nav,
		log:     logger.ForScraper(site.Name),
	}
}

// Name returns the configured site name.
func (s *SiteScraper) Name() string {
	return s.site.Name
}

// Search runs one scrape session for the query and returns normalized
// results. Page failures end the session early with the results collected
// so far; Search itself only fails on context cancellation before any page
// was loaded.
func (s *SiteScraper) Search(ctx context.Context, rawQuery string, minPrice, maxPrice *float64) ([]ListingResult, error) {
	query := NewQuery(rawQuery)
	limiter := NewRateLimiter(s.session.MinInterval)
	dedup := NewDeduplicator(s.site.BaseURL)
	controller := NewPaginationController(limiter, dedup, s.session, s.site.StartPage, s.log)

	var current browser.Page
	defer func() {
		if current != nil {
			current.Close()
		}
	}()

	fetch := func(ctx context.Context, page int) ([]RawListing, error) {
		if s.site.Mode == PageModeScroll && current != nil {
			if err := current.ScrollToBottom(ctx); err != nil {
				return nil, err
			}
			return s.extract(ctx, current)
		}

		url := s.site.SearchPageURL(rawQuery, page)
		loaded, err := s.nav.Load(ctx, url)
		if err != nil {
			return nil, err
		}
		if current != nil {
			current.Close()
		}
		current = loaded
		return s.extract(ctx, current)
	}

	raw := controller.Run(ctx, fetch)

	agg := NewResultAggregator(s.site.Name, s.site.BaseURL, query, minPrice, maxPrice)
	results := agg.Normalize(raw)
	s.log.Info().Int("extracted", len(raw)).Int("matched", len(results)).Msg("Search session finished")
	return results, nil
}

// extract runs the DOM strategy and falls back to the payload strategy.
func (s *SiteScraper) extract(ctx context.Context, page browser.Page) ([]RawListing, error) {
	var listings []RawListing

	if s.site.Selectors.Listing != "" {
		dom := NewDOMStrategy(s.site.Name, s.site.Selectors)
		extracted, err := dom.Extract(ctx, page)
		if err != nil {
			s.log.Warn().Err(err).Msg("Selector extraction failed")
		} else {
			listings = extracted
		}
	}

	if len(listings) == 0 && s.site.Payload != nil {
		payload := NewPayloadStrategy(s.site.Name, *s.site.Payload)
		extracted, err := payload.Extract(ctx, page)
		if err != nil {
			s.log.Warn().Err(err).Msg("Payload extraction failed")
			return listings, nil
		}
		listings = extracted
	}

	return listings, nil
}
