package browser

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"time"

	"hifisearch/helpers"
	"hifisearch/logger"
	"hifisearch/pkg/errors"
	"hifisearch/services/cache"
)

// cooldownTTL is how long a host is skipped after it rate-limits us.
const cooldownTTL = 10 * time.Minute

// HTTPNavigator loads pages with a plain HTTP client. Fetched bodies are
// cached so repeated searches within the TTL reuse them, and hosts that
// answered with a rate-limit status are put on a cooldown.
type HTTPNavigator struct {
	cache    cache.CacheService
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewHTTPNavigator creates an HTTP navigator. cacheService may be nil, in
// which case every Load fetches fresh.
func NewHTTPNavigator(cacheService cache.CacheService, cacheTTL time.Duration) *HTTPNavigator {
	return &HTTPNavigator{
		cache:    cacheService,
		cacheTTL: cacheTTL,
		log:      logger.ForComponent("http"),
	}
}

func pageKey(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return "page:" + hex.EncodeToString(sum[:])
}

func cooldownKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "cooldown:" + rawURL
	}
	return "cooldown:" + u.Host
}

// Load fetches url and returns a static page over its body.
func (n *HTTPNavigator) Load(ctx context.Context, rawURL string) (Page, error) {
	if n.cache != nil {
		if _, err := n.cache.Get(cooldownKey(rawURL)); err == nil {
			return nil, errors.NewRateLimit(rawURL, "host is cooling down")
		}
		if body, err := n.cache.Get(pageKey(rawURL)); err == nil {
			n.log.Debug().Str("url", rawURL).Msg("Page cache hit")
			return &staticPage{url: rawURL, contentType: "text/html", body: body}, nil
		}
	}

	body, contentType, err := helpers.FetchPage(ctx, rawURL)
	if err != nil {
		if errors.IsRateLimit(err) && n.cache != nil {
			if cacheErr := n.cache.Set(cooldownKey(rawURL), []byte("1"), cooldownTTL); cacheErr != nil {
				n.log.Warn().Err(cacheErr).Msg("Failed to record cooldown")
			}
		}
		return nil, err
	}

	if n.cache != nil {
		if cacheErr := n.cache.Set(pageKey(rawURL), body, n.cacheTTL); cacheErr != nil {
			n.log.Warn().Err(cacheErr).Msg("Failed to cache page")
		}
	}

	return &staticPage{url: rawURL, contentType: contentType, body: body}, nil
}

// staticPage is a fetched document body. JSON endpoints are served through
// Response so payload extraction works the same as with a live browser.
type staticPage struct {
	url         string
	contentType string
	body        []byte
}

func (p *staticPage) HTML(ctx context.Context) (string, error) {
	return string(p.body), nil
}

func (p *staticPage) ScrollToBottom(ctx context.Context) error {
	return nil
}

func (p *staticPage) Response(ctx context.Context, match ResponsePredicate) (*CapturedResponse, bool) {
	if match(p.url, p.contentType) {
		return &CapturedResponse{URL: p.url, ContentType: p.contentType, Body: p.body}, true
	}
	return nil, false
}

func (p *staticPage) Close() {}
