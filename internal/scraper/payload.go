package scraper

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"hifisearch/internal/browser"
	"hifisearch/pkg/errors"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PayloadStrategy extracts listings from structured JSON that a shop either
// embeds in an element attribute or serves through a search API endpoint
// observed during page load.
type PayloadStrategy struct {
	site   string
	source PayloadSource
}

// NewPayloadStrategy creates a payload-driven extraction strategy.
func NewPayloadStrategy(site string, source PayloadSource) *PayloadStrategy {
	return &PayloadStrategy{site: site, source: source}
}

// Extract locates the payload, decodes it and maps its items to listings.
func (s *PayloadStrategy) Extract(ctx context.Context, page browser.Page) ([]RawListing, error) {
	raw, err := s.payload(ctx, page)
	if err != nil {
		return nil, err
	}

	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, errors.NewPayload(s.site, "failed to decode payload", err)
	}

	items, ok := s.items(root)
	if !ok {
		return nil, errors.NewPayload(s.site, "payload holds no item array", nil)
	}

	mapping := s.source.Mapping
	var listings []RawListing
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		listing := RawListing{
			Title:       firstString(obj, mapping.Title),
			URL:         firstString(obj, mapping.URL),
			PriceText:   s.priceText(obj),
			Description: firstString(obj, mapping.Description),
			ImageURL:    firstString(obj, mapping.Image),
			Location:    firstString(obj, mapping.Location),
			PostedAt:    firstString(obj, mapping.PostedAt),
		}
		if listing.URL != "" && mapping.URLPrefix != "" {
			listing.URL = mapping.URLPrefix + listing.URL
		}
		if listing.Title == "" && listing.URL == "" {
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// payload returns the raw JSON bytes from the configured source.
func (s *PayloadStrategy) payload(ctx context.Context, page browser.Page) ([]byte, error) {
	if s.source.EmbeddedAttr != "" {
		htmlText, err := page.HTML(ctx)
		if err != nil {
			return nil, err
		}
		value, ok := findAttr(htmlText, s.source.EmbeddedAttr)
		if !ok {
			return nil, errors.NewPayload(s.site, "embedded payload attribute not found", nil)
		}
		return []byte(html.UnescapeString(value)), nil
	}

	resp, ok := page.Response(ctx, browser.MatchResponse(s.source.URLPattern, s.source.ContentType))
	if !ok {
		return nil, errors.NewPayload(s.site, "no matching network response captured", nil)
	}
	return resp.Body, nil
}

func (s *PayloadStrategy) items(root any) ([]any, bool) {
	node := root
	if s.source.Mapping.Items != "" {
		var ok bool
		node, ok = lookupPath(root, s.source.Mapping.Items)
		if !ok {
			return nil, false
		}
	}
	arr, ok := node.([]any)
	return arr, ok
}

func (s *PayloadStrategy) priceText(obj map[string]any) string {
	text := firstString(obj, s.source.Mapping.PriceText)
	scale := s.source.Mapping.PriceScale
	if text == "" || scale == 0 || scale == 1 {
		return text
	}
	value, ok := ParsePrice(text)
	if !ok {
		return text
	}
	return strconv.FormatFloat(value/scale, 'f', -1, 64)
}

// findAttr scans the document for the first element carrying the named
// attribute and returns its value. Attribute names containing characters
// like ':' cannot be expressed as CSS selectors, so nodes are walked
// directly.
func findAttr(htmlText, name string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return "", false
	}

	var value string
	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == name {
					value = attr.Val
					found = true
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return value, found
}

// lookupPath follows a dot-separated path through decoded JSON. Numeric
// segments index into arrays.
func lookupPath(root any, path string) (any, bool) {
	node := root
	for _, seg := range strings.Split(path, ".") {
		switch v := node.(type) {
		case map[string]any:
			child, ok := v[seg]
			if !ok {
				return nil, false
			}
			node = child
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			node = v[idx]
		default:
			return nil, false
		}
	}
	return node, true
}

// firstString tries candidate paths in order and returns the first non-empty
// string or numeric value.
func firstString(obj map[string]any, paths []string) string {
	for _, path := range paths {
		node, ok := lookupPath(obj, path)
		if !ok {
			continue
		}
		switch v := node.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}
