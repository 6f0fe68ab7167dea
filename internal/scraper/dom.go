package scraper

import (
	"context"
	"strings"

	"hifisearch/helpers"
	"hifisearch/internal/browser"
	"hifisearch/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// defaultImageAttrs are the attributes tried for lazy-loaded images.
var defaultImageAttrs = []string{"data-src", "src"}

// DOMStrategy extracts listings from rendered HTML using CSS selectors.
type DOMStrategy struct {
	site      string
	selectors Selectors
}

// NewDOMStrategy creates a selector-driven extraction strategy.
func NewDOMStrategy(site string, selectors Selectors) *DOMStrategy {
	return &DOMStrategy{site: site, selectors: selectors}
}

// Extract parses the page HTML and collects one RawListing per container
// element. A selector that matches nothing yields an empty field, never an
// error. Containers with neither title nor URL are discarded.
func (s *DOMStrategy) Extract(ctx context.Context, page browser.Page) ([]RawListing, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.NewParsing(s.site, "failed to parse document", err)
	}

	var listings []RawListing
	doc.Find(s.selectors.Listing).Each(func(_ int, sel *goquery.Selection) {
		if s.selectors.ClassFilter != "" && sel.HasClass(s.selectors.ClassFilter) {
			return
		}
		listing := s.extractOne(sel)
		if listing.Title == "" && listing.URL == "" {
			return
		}
		listings = append(listings, listing)
	})
	return listings, nil
}

func (s *DOMStrategy) extractOne(sel *goquery.Selection) RawListing {
	listing := RawListing{
		Title:       s.title(sel),
		URL:         s.link(sel),
		PriceText:   s.text(sel, s.selectors.Price),
		Description: s.text(sel, s.selectors.Description),
		ImageURL:    s.image(sel),
		Location:    s.text(sel, s.selectors.Location),
		PostedAt:    s.text(sel, s.selectors.PostedAt),
	}
	return listing
}

func (s *DOMStrategy) title(sel *goquery.Selection) string {
	if s.selectors.Title == "" {
		return ""
	}
	node := sel.Find(s.selectors.Title).First()
	if s.selectors.TitleAttr != "" {
		if v, ok := node.Attr(s.selectors.TitleAttr); ok {
			return helpers.CollapseWhitespace(v)
		}
	}
	return helpers.CollapseWhitespace(node.Text())
}

func (s *DOMStrategy) link(sel *goquery.Selection) string {
	if s.selectors.Link == "" {
		return ""
	}
	node := sel.Find(s.selectors.Link).First()
	if href, ok := node.Attr("href"); ok {
		return strings.TrimSpace(href)
	}
	// The container itself may be the anchor
	if sel.Is(s.selectors.Link) {
		if href, ok := sel.Attr("href"); ok {
			return strings.TrimSpace(href)
		}
	}
	return ""
}

func (s *DOMStrategy) image(sel *goquery.Selection) string {
	if s.selectors.Image == "" {
		return ""
	}
	node := sel.Find(s.selectors.Image).First()
	attrs := s.selectors.ImageAttrs
	if len(attrs) == 0 {
		attrs = defaultImageAttrs
	}
	for _, attr := range attrs {
		if v, ok := node.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (s *DOMStrategy) text(sel *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return helpers.CollapseWhitespace(sel.Find(selector).First().Text())
}
