package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"hifisearch/internal/browser"
	"hifisearch/internal/render"
	"hifisearch/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPage serves one fixed document.
type fixedPage struct {
	html      string
	responses []*browser.CapturedResponse
}

func (p *fixedPage) HTML(ctx context.Context) (string, error) { return p.html, nil }
func (p *fixedPage) ScrollToBottom(ctx context.Context) error { return nil }
func (p *fixedPage) Response(ctx context.Context, match browser.ResponsePredicate) (*browser.CapturedResponse, bool) {
	for _, resp := range p.responses {
		if match(resp.URL, resp.ContentType) {
			return resp, true
		}
	}
	return nil, false
}
func (p *fixedPage) Close() {}

// fixedNavigator maps URLs to pages.
type fixedNavigator struct {
	pages map[string]*fixedPage
	errs  map[string]error
}

func (n *fixedNavigator) Load(ctx context.Context, url string) (browser.Page, error) {
	if err, ok := n.errs[url]; ok {
		return nil, err
	}
	if page, ok := n.pages[url]; ok {
		return page, nil
	}
	return &fixedPage{html: "<html><body></body></html>"}, nil
}

func resultPage(items string) *fixedPage {
	return &fixedPage{html: "<html><body><ul>" + items + "</ul></body></html>"}
}

func item(title, href, price string) string {
	return fmt.Sprintf(
		`<li class="result"><a class="result-link" href=%q>%s</a><span class="result-price">%s</span></li>`,
		href, title, price,
	)
}

var integrationSelectors = scraper.Selectors{
	Listing: "li.result",
	Title:   "a.result-link",
	Link:    "a.result-link",
	Price:   ".result-price",
}

func integrationSession() scraper.SessionConfig {
	return scraper.SessionConfig{
		MaxPages:     3,
		NavTimeout:   5 * time.Second,
		StableWindow: 2,
	}
}

func domSite(name, host string) scraper.SiteConfig {
	return scraper.SiteConfig{
		Name:      name,
		BaseURL:   "https://" + host,
		SearchURL: "https://" + host + "/search?q={query}&page={page}",
		StartPage: 1,
		Selectors: integrationSelectors,
	}
}

func TestSearchAcrossSites(t *testing.T) {
	nav := &fixedNavigator{pages: map[string]*fixedPage{
		"https://a.se/search?q=marantz&page=1": resultPage(
			item("Marantz PM8006", "/annons/1", "7 900 kr") +
				item("Marantz CD6007", "/annons/2", "4 500 kr"),
		),
		"https://b.se/search?q=marantz&page=1": resultPage(
			item("Marantz Model 30", "/item/9", "24 000 kr") +
				item("NAD C316", "/item/10", "2 500 kr"),
		),
	}}

	engine := scraper.NewEngine([]scraper.Scraper{
		scraper.NewSiteScraper(domSite("SiteA", "a.se"), integrationSession(), nav),
		scraper.NewSiteScraper(domSite("SiteB", "b.se"), integrationSession(), nav),
	}, time.Minute)

	results := engine.SearchAll(context.Background(), "marantz", nil, nil, nil, nil)
	require.Len(t, results, 2)
	assert.Len(t, results["SiteA"], 2)
	// NAD listing does not match the query
	require.Len(t, results["SiteB"], 1)
	assert.Equal(t, "Marantz Model 30", results["SiteB"][0].Title)
	assert.Equal(t, "https://b.se/item/9", results["SiteB"][0].URL)
}

func TestPaginationAndDeduplication(t *testing.T) {
	nav := &fixedNavigator{pages: map[string]*fixedPage{
		"https://a.se/search?q=amp&page=1": resultPage(
			item("Amp one", "/1", "1 000 kr") + item("Amp two", "/2", "2 000 kr"),
		),
		// Page 2 repeats one listing and adds one
		"https://a.se/search?q=amp&page=2": resultPage(
			item("Amp two", "/2", "2 000 kr") + item("Amp three", "/3", "3 000 kr"),
		),
		// Page 3 repeats everything
		"https://a.se/search?q=amp&page=3": resultPage(
			item("Amp three", "/3", "3 000 kr"),
		),
	}}

	s := scraper.NewSiteScraper(domSite("SiteA", "a.se"), integrationSession(), nav)
	results, err := s.Search(context.Background(), "amp", nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Amp one", results[0].Title)
	assert.Equal(t, "Amp three", results[2].Title)
}

func TestFailingSiteLeavesOthers(t *testing.T) {
	nav := &fixedNavigator{
		pages: map[string]*fixedPage{
			"https://a.se/search?q=amp&page=1": resultPage(item("Amp one", "/1", "1 000 kr")),
		},
		errs: map[string]error{
			"https://b.se/search?q=amp&page=1": fmt.Errorf("dial tcp: connection refused"),
		},
	}

	engine := scraper.NewEngine([]scraper.Scraper{
		scraper.NewSiteScraper(domSite("SiteA", "a.se"), integrationSession(), nav),
		scraper.NewSiteScraper(domSite("SiteB", "b.se"), integrationSession(), nav),
	}, time.Minute)

	results := engine.SearchAll(context.Background(), "amp", nil, nil, nil, nil)
	assert.Len(t, results["SiteA"], 1)
	assert.Empty(t, results["SiteB"])
}

func TestPayloadSiteEndToEnd(t *testing.T) {
	site := scraper.SiteConfig{
		Name:      "Shop",
		BaseURL:   "https://shop.se",
		SearchURL: "https://shop.se/collections/used/products.json?page={page}",
		StartPage: 1,
		Payload: &scraper.PayloadSource{
			URLPattern:  "products.json",
			ContentType: "json",
			Mapping: scraper.FieldMapping{
				Items:     "products",
				Title:     []string{"title"},
				URL:       []string{"handle"},
				URLPrefix: "/products/",
				PriceText: []string{"variants.0.price"},
			},
		},
	}

	payload := &fixedPage{
		html: "{}",
		responses: []*browser.CapturedResponse{{
			URL:         "https://shop.se/collections/used/products.json?page=1",
			ContentType: "application/json",
			Body:        []byte(`{"products":[{"title":"Marantz PM6007","handle":"marantz-pm6007","variants":[{"price":"5995.00"}]}]}`),
		}},
	}
	nav := &fixedNavigator{pages: map[string]*fixedPage{
		"https://shop.se/collections/used/products.json?page=1": payload,
	}}

	s := scraper.NewSiteScraper(site, integrationSession(), nav)
	results, err := s.Search(context.Background(), "marantz", nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://shop.se/products/marantz-pm6007", results[0].URL)
	require.NotNil(t, results[0].Price)
	assert.InDelta(t, 5995.0, *results[0].Price, 0.001)
}

func TestRenderPipeline(t *testing.T) {
	nav := &fixedNavigator{pages: map[string]*fixedPage{
		"https://a.se/search?q=amp&page=1": resultPage(
			item("Cheap amp", "/1", "900 kr") + item("Pricey amp", "/2", "19 000 kr"),
		),
	}}

	engine := scraper.NewEngine([]scraper.Scraper{
		scraper.NewSiteScraper(domSite("SiteA", "a.se"), integrationSession(), nav),
	}, time.Minute)

	min, max := 500.0, 20000.0
	results := engine.SearchAll(context.Background(), "amp", &min, &max, nil, nil)

	now := time.Now()
	listings := render.Flatten(results)
	render.Sort(listings, render.SortByPrice, now)
	require.Len(t, listings, 2)
	assert.Equal(t, "Cheap amp", listings[0].Title)

	var buf bytes.Buffer
	render.Table(&buf, listings, now, false)
	assert.Contains(t, buf.String(), "Pricey amp")
	assert.Contains(t, buf.String(), "19000 kr")
	assert.Contains(t, buf.String(), "2 listings")
}
