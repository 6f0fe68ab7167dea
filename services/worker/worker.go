package worker

import (
	"context"
	"encoding/json"
	"strings"

	"hifisearch/internal/scraper"
	"hifisearch/logger"
	"hifisearch/services/publisher"
)

// Options control one search run.
type Options struct {
	MinPrice *float64
	MaxPrice *float64
	Include  []string
	Exclude  []string
	// Expand also searches synonym variants of the query and merges the
	// results
	Expand bool
	// Publish pushes each site's results to the configured streams
	Publish bool
}

// Worker runs search requests through the engine and optionally publishes
// the results.
type Worker struct {
	engine *scraper.Engine
	pub    publisher.Publisher
	log    *logger.Logger
}

// NewWorker creates a worker. pub may be nil when publishing is disabled.
func NewWorker(engine *scraper.Engine, pub publisher.Publisher) *Worker {
	return &Worker{
		engine: engine,
		pub:    pub,
		log:    logger.ForWorker(),
	}
}

// Run executes a search and returns results per site.
func (w *Worker) Run(ctx context.Context, query string, opts Options) map[string][]scraper.ListingResult {
	queries := []string{query}
	if opts.Expand {
		queries = scraper.ExpandSearchTerm(query)
		if len(queries) > 1 {
			w.log.Info().Strs("queries", queries).Msg("Expanded search term")
		}
	}

	merged := make(map[string][]scraper.ListingResult)
	seen := make(map[string]struct{})
	for _, q := range queries {
		results := w.engine.SearchAll(ctx, q, opts.MinPrice, opts.MaxPrice, opts.Include, opts.Exclude)
		for site, listings := range results {
			for _, listing := range listings {
				if _, ok := seen[listing.URL]; ok {
					continue
				}
				seen[listing.URL] = struct{}{}
				merged[site] = append(merged[site], listing)
			}
		}
	}

	if opts.Publish && w.pub != nil {
		w.publish(merged)
	}

	return merged
}

// publish pushes each site's results as one JSON message and trims the
// streams afterwards.
func (w *Worker) publish(results map[string][]scraper.ListingResult) {
	for site, listings := range results {
		if len(listings) == 0 {
			continue
		}
		message, err := json.Marshal(listings)
		if err != nil {
			logger.LogError("worker", err, "Failed to encode results for %s", site)
			continue
		}
		key := "b64_" + strings.ToLower(strings.ReplaceAll(site, " ", "_"))
		if err := w.pub.Publish(key, message); err != nil {
			logger.LogError("worker", err, "Failed to publish results for %s", site)
		}
	}

	if err := w.pub.TrimStreams(); err != nil {
		logger.LogError("worker", err, "Failed to trim streams")
	}
}
