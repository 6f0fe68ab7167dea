package browser

import (
	"context"
	"strings"
)

// CapturedResponse is a network response observed while a page was loading.
type CapturedResponse struct {
	URL         string
	ContentType string
	Body        []byte
}

// ResponsePredicate selects captured responses by URL and content type.
type ResponsePredicate func(url, contentType string) bool

// MatchResponse returns a predicate matching responses whose URL contains
// urlPattern and whose Content-Type contains contentType. Empty arguments
// match everything.
func MatchResponse(urlPattern, contentType string) ResponsePredicate {
	return func(url, ct string) bool {
		if urlPattern != "" && !strings.Contains(url, urlPattern) {
			return false
		}
		if contentType != "" && !strings.Contains(ct, contentType) {
			return false
		}
		return true
	}
}

// Page is a loaded document that listing fields can be extracted from.
type Page interface {
	// HTML returns the current serialized document.
	HTML(ctx context.Context) (string, error)
	// ScrollToBottom scrolls the page to trigger lazy loading of further
	// items. Implementations without a live viewport treat it as a no-op.
	ScrollToBottom(ctx context.Context) error
	// Response returns the first captured network response matching the
	// predicate, or false if none matched.
	Response(ctx context.Context, match ResponsePredicate) (*CapturedResponse, bool)
	// Close releases resources held by the page.
	Close()
}

// Navigator loads pages. Implementations back it with a headless browser or
// a plain HTTP client.
type Navigator interface {
	Load(ctx context.Context, url string) (Page, error)
}
