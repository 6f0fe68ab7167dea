package scraper

import (
	"context"
	"strings"
	"sync"
	"time"

	"hifisearch/logger"
)

// Scraper is one searchable site.
type Scraper interface {
	Name() string
	Search(ctx context.Context, query string, minPrice, maxPrice *float64) ([]ListingResult, error)
}

// Engine fans a search out over all configured sites concurrently and
// collects per-site results. One failing site never affects the others.
type Engine struct {
	scrapers []Scraper
	timeout  time.Duration
	log      *logger.Logger
}

// NewEngine creates an engine. timeout bounds each site's session; zero
// means no per-site bound beyond the caller's context.
func NewEngine(scrapers []Scraper, timeout time.Duration) *Engine {
	return &Engine{
		scrapers: scrapers,
		timeout:  timeout,
		log:      logger.ForComponent("engine"),
	}
}

// Sites returns the names of all configured sites.
func (e *Engine) Sites() []string {
	names := make([]string, 0, len(e.scrapers))
	for _, s := range e.scrapers {
		names = append(names, s.Name())
	}
	return names
}

// SearchAll searches every selected site and returns results keyed by site
// name. include and exclude filter sites by name; include wins when both
// name a site. A blank query returns no results.
func (e *Engine) SearchAll(ctx context.Context, query string, minPrice, maxPrice *float64, include, exclude []string) map[string][]ListingResult {
	results := make(map[string][]ListingResult)
	if strings.TrimSpace(query) == "" {
		e.log.Warn().Msg("Blank query, nothing to search")
		return results
	}

	selected := e.selectScrapers(include, exclude)
	if len(selected) == 0 {
		e.log.Warn().Msg("No sites selected")
		return results
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, s := range selected {
		wg.Add(1)
		go func(s Scraper) {
			defer wg.Done()

			siteCtx := ctx
			if e.timeout > 0 {
				var cancel context.CancelFunc
				siteCtx, cancel = context.WithTimeout(ctx, e.timeout)
				defer cancel()
			}

			siteResults, err := s.Search(siteCtx, query, minPrice, maxPrice)
			if err != nil {
				logger.LogError("engine", err, "Search failed for %s", s.Name())
				return
			}

			mu.Lock()
			results[s.Name()] = siteResults
			mu.Unlock()
		}(s)
	}
	wg.Wait()

	return results
}

// selectScrapers applies include and exclude site-name filters.
func (e *Engine) selectScrapers(include, exclude []string) []Scraper {
	var selected []Scraper
	for _, s := range e.scrapers {
		if len(include) > 0 && !anySiteMatch(include, s.Name()) {
			continue
		}
		if len(include) == 0 && anySiteMatch(exclude, s.Name()) {
			continue
		}
		selected = append(selected, s)
	}
	return selected
}

func anySiteMatch(inputs []string, name string) bool {
	for _, input := range inputs {
		if matchSiteName(input, name) {
			return true
		}
	}
	return false
}

// matchSiteName reports whether input names the site, either as the full
// name or as one of its words. "audio" selects "Reference Audio" but
// "ref" does not.
func matchSiteName(input, name string) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return false
	}
	lower := strings.ToLower(name)
	if input == lower {
		return true
	}
	for _, word := range strings.Fields(lower) {
		if input == word {
			return true
		}
	}
	return false
}
