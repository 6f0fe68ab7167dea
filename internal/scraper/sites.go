package scraper

import (
	"hifisearch/internal/browser"
)

// ashopPayload builds the payload source shared by Ashop storefronts. These
// shops embed their product catalog as HTML-escaped JSON in a :product-data
// attribute on the category page.
func ashopPayload() *PayloadSource {
	return &PayloadSource{
		EmbeddedAttr: ":product-data",
		Mapping: FieldMapping{
			Items:       "products",
			Title:       []string{"product_name", "product_title"},
			URL:         []string{"product_url", "product_link"},
			PriceText:   []string{"product_display_price", "product_price"},
			Description: []string{"product_info_puff", "product_status_name"},
			Image:       []string{"product_puff_image"},
		},
	}
}

// starwebSelectors are shared by shops on the Starweb platform.
var starwebSelectors = Selectors{
	Listing:     "ul.products li.gallery-item",
	Title:       ".description h3",
	Link:        "a.gallery-info-link",
	Price:       ".product-price .amount",
	Description: ".stock-status",
	Image:       "img",
	ImageAttrs:  []string{"data-src", "src"},
}

// SiteConfigs returns all supported marketplaces and shops.
func SiteConfigs() []SiteConfig {
	return []SiteConfig{
		{
			Name:      "Blocket",
			BaseURL:   "https://www.blocket.se",
			SearchURL: "https://www.blocket.se/annonser/hela_sverige?q={query}",
			StartPage: 1,
			Mode:      PageModeScroll,
			Browser:   true,
			Selectors: Selectors{
				Listing:  "article",
				Title:    "a[href*=\"/annonser/\"] span",
				Link:     "a[href*=\"/annonser/\"]",
				Price:    "div[class*=\"Price\"]",
				Location: "div[class*=\"Location\"]",
				PostedAt: "time",
				Image:    "img",
			},
		},
		{
			Name:      "Tradera",
			BaseURL:   "https://www.tradera.com",
			SearchURL: "https://www.tradera.com/search?q={query}&paging={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Browser:   true,
			Selectors: Selectors{
				Listing:  "div[class*=\"item-card\"]",
				Title:    "a[href*=\"/auktion/\"]",
				Link:     "a[href*=\"/auktion/\"]",
				Price:    "span[class*=\"price\"]",
				PostedAt: "span[class*=\"time-left\"]",
				Image:    "img",
			},
		},
		{
			Name:      "HifiTorget",
			BaseURL:   "https://www.hifitorget.se",
			SearchURL: "https://www.hifitorget.se/?q={query}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Browser:   true,
			MaxPages:  1,
			Selectors: Selectors{
				Listing:  "div.listing-item",
				Title:    ".listing-title",
				Link:     "a[href*=\"/annons\"]",
				Price:    ".listing-price",
				Location: ".listing-location",
				PostedAt: ".listing-date",
				Image:    "img",
			},
		},
		{
			Name:      "HiFiShark",
			BaseURL:   "https://www.hifishark.com",
			SearchURL: "https://www.hifishark.com/search?q={query}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Browser:   true,
			MaxPages:  1,
			Payload: &PayloadSource{
				URLPattern:  "/search",
				ContentType: "json",
				Mapping: FieldMapping{
					Items:       "hits",
					Title:       []string{"title", "description"},
					URL:         []string{"url"},
					PriceText:   []string{"display_price", "price.amount"},
					Description: []string{"description"},
					Image:       []string{"image_url"},
					Location:    []string{"location.country"},
					PostedAt:    []string{"display_date_str", "display_date"},
				},
			},
		},
		{
			Name:      "Reference Audio",
			BaseURL:   "https://www.referenceaudio.se",
			SearchURL: "https://www.referenceaudio.se/kategori/935/begagnat?page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Payload:   ashopPayload(),
		},
		{
			Name:      "Ljudmakarn",
			BaseURL:   "https://www.ljudmakarn.se",
			SearchURL: "https://www.ljudmakarn.se/kategori/107/fyndhornan?page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Payload:   ashopPayload(),
		},
		{
			Name:      "HiFi-Punkten",
			BaseURL:   "https://www.hifi-punkten.se",
			SearchURL: "https://www.hifi-punkten.se/kategori/1/produkter?page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Payload:   ashopPayload(),
		},
		{
			Name:      "Rehifi",
			BaseURL:   "https://www.rehifi.se",
			SearchURL: "https://www.rehifi.se/search?q={query}&page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Selectors: starwebSelectors,
		},
		{
			Name:      "AudioPerformance",
			BaseURL:   "https://www.audioperformance.se",
			SearchURL: "https://www.audioperformance.se/search?q={query}&page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Selectors: starwebSelectors,
		},
		{
			Name:      "Lasses HiFi",
			BaseURL:   "https://lasseshifi.se",
			SearchURL: "https://lasseshifi.se/collections/erbjudande/products.json?page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Payload: &PayloadSource{
				URLPattern:  "products.json",
				ContentType: "json",
				Mapping: FieldMapping{
					Items:     "products",
					Title:     []string{"title"},
					URL:       []string{"handle"},
					URLPrefix: "/products/",
					PriceText: []string{"variants.0.price"},
					Image:     []string{"image.src"},
					PostedAt:  []string{"published_at"},
				},
			},
		},
		{
			Name:      "HiFi Experience",
			BaseURL:   "https://www.hifiexperience.se",
			SearchURL: "https://www.hifiexperience.se/wp-json/wc/store/products?search={query}&page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Payload: &PayloadSource{
				URLPattern:  "/wp-json/wc/store/products",
				ContentType: "json",
				Mapping: FieldMapping{
					Title:       []string{"name"},
					URL:         []string{"permalink"},
					PriceText:   []string{"prices.price"},
					PriceScale:  100,
					Description: []string{"short_description"},
					Image:       []string{"images.0.src"},
				},
			},
		},
		{
			Name:      "Akkelis Audio",
			BaseURL:   "https://www.akkelisaudio.com",
			SearchURL: "https://www.akkelisaudio.com/fyndhornan/?page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			MaxPages:  1,
			Selectors: Selectors{
				Listing:     ".tws-list--grid-item",
				Title:       ".tws-util-heading--heading a",
				Link:        ".tws-util-heading--heading a",
				Price:       ".tws-api--price-current",
				Description: ".tws-article-labels--label-text",
				Image:       ".tws-img",
				ImageAttrs:  []string{"source", "data-src", "src"},
			},
		},
		{
			Name:      "HiFi Puls",
			BaseURL:   "https://www.hifipuls.se",
			SearchURL: "https://www.hifipuls.se/search?controller=search&s={query}&page={page}",
			StartPage: 1,
			Mode:      PageModeQuery,
			Selectors: Selectors{
				Listing:     "ul.product_list li.ajax_block_product",
				Title:       ".product-name",
				Link:        ".product-name",
				Price:       ".product-price",
				Description: ".product-desc",
				Image:       ".product-image-container img",
				ImageAttrs:  []string{"data-original", "src"},
			},
		},
	}
}

// CreateScrapers builds a SiteScraper per configured site, picking the
// browser navigator for sites that need a rendered page.
func CreateScrapers(session SessionConfig, httpNav, browserNav browser.Navigator) []Scraper {
	var scrapers []Scraper
	for _, site := range SiteConfigs() {
		nav := httpNav
		if site.Browser {
			if browserNav == nil {
				continue
			}
			nav = browserNav
		}
		scrapers = append(scrapers, NewSiteScraper(site, session, nav))
	}
	return scrapers
}
