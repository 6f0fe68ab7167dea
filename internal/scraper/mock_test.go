package scraper

import (
	"context"
	"fmt"

	"hifisearch/internal/browser"
)

// stubPage serves fixed HTML and optional captured responses.
type stubPage struct {
	html      string
	htmlErr   error
	responses []*browser.CapturedResponse
	scrolls   int
	closed    bool
}

func (p *stubPage) HTML(ctx context.Context) (string, error) {
	return p.html, p.htmlErr
}

func (p *stubPage) ScrollToBottom(ctx context.Context) error {
	p.scrolls++
	return nil
}

func (p *stubPage) Response(ctx context.Context, match browser.ResponsePredicate) (*browser.CapturedResponse, bool) {
	for _, resp := range p.responses {
		if match(resp.URL, resp.ContentType) {
			return resp, true
		}
	}
	return nil, false
}

func (p *stubPage) Close() {
	p.closed = true
}

// stubNavigator serves stub pages keyed by URL.
type stubNavigator struct {
	pages  map[string]*stubPage
	errs   map[string]error
	loaded []string
}

func newStubNavigator() *stubNavigator {
	return &stubNavigator{
		pages: make(map[string]*stubPage),
		errs:  make(map[string]error),
	}
}

func (n *stubNavigator) Load(ctx context.Context, url string) (browser.Page, error) {
	n.loaded = append(n.loaded, url)
	if err, ok := n.errs[url]; ok {
		return nil, err
	}
	page, ok := n.pages[url]
	if !ok {
		return nil, fmt.Errorf("no stub page for %s", url)
	}
	return page, nil
}

// listingHTML renders a minimal search result page for DOM tests.
func listingHTML(items ...string) string {
	body := ""
	for _, item := range items {
		body += item
	}
	return "<html><body><div class=\"results\">" + body + "</div></body></html>"
}

func listingItem(title, href, price string) string {
	return fmt.Sprintf(
		`<article class="item"><a class="item-link" href=%q><h2 class="item-title">%s</h2></a><span class="item-price">%s</span></article>`,
		href, title, price,
	)
}

var testSelectors = Selectors{
	Listing: "article.item",
	Title:   ".item-title",
	Link:    "a.item-link",
	Price:   ".item-price",
}
