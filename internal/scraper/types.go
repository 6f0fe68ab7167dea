package scraper

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RawListing is one listing as extracted from a page, before normalization.
// All fields are optional except that a listing with neither title nor URL
// is discarded by the extraction strategies.
type RawListing struct {
	Title       string
	URL         string
	PriceText   string
	Description string
	ImageURL    string
	Location    string
	PostedAt    string
	Meta        map[string]string
}

// ListingResult is a normalized listing produced by a search session.
type ListingResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"image_url,omitempty"`
	PostedDate  string   `json:"posted_date,omitempty"`
	Location    string   `json:"location,omitempty"`
	Source      string   `json:"source"`
	RawData     string   `json:"-"`
}

// Selectors defines how listing fields are located in a document.
type Selectors struct {
	// Listing matches one listing container element
	Listing string
	// Title matches the title element inside a listing
	Title string
	// TitleAttr, when set, reads the title from this attribute instead of
	// the element text
	TitleAttr string
	// Link matches the anchor carrying the listing URL
	Link string
	// Price matches the price element
	Price string
	// Description matches the description element
	Description string
	// Image matches the image element
	Image string
	// ImageAttrs are attribute names tried in order for the image URL
	ImageAttrs []string
	// Location matches the seller location element
	Location string
	// PostedAt matches the posted-date element
	PostedAt string
	// ClassFilter skips listing containers carrying this class
	ClassFilter string
}

// FieldMapping maps structured payload fields to listing fields. Each entry
// is a list of dot-separated candidate paths tried in order; numeric path
// segments index into arrays.
type FieldMapping struct {
	// Items is the path to the array of listing objects. Empty means the
	// payload root itself is the array.
	Items       string
	Title       []string
	URL         []string
	PriceText   []string
	Description []string
	Image       []string
	Location    []string
	PostedAt    []string

	// URLPrefix is prepended to the extracted URL value. Shops that expose
	// only a product handle need this to form a full path.
	URLPrefix string
	// PriceScale divides the parsed price. APIs reporting minor currency
	// units set this to 100.
	PriceScale float64
}

// PayloadSource describes where a structured listing payload comes from.
type PayloadSource struct {
	// EmbeddedAttr is an element attribute holding HTML-escaped JSON
	EmbeddedAttr string
	// URLPattern selects a captured network response by URL substring
	URLPattern string
	// ContentType selects a captured network response by content type
	ContentType string
	// Mapping maps payload fields to listing fields
	Mapping FieldMapping
}

// PageMode selects how further results are requested.
type PageMode int

const (
	// PageModeQuery requests numbered pages through the search URL
	PageModeQuery PageMode = iota
	// PageModeScroll scrolls one page to load further results
	PageModeScroll
)

// SiteConfig describes one marketplace or shop.
type SiteConfig struct {
	// Name identifies the site in results and logs
	Name string
	// BaseURL resolves relative listing URLs
	BaseURL string
	// SearchURL is the search page URL template. {query} is replaced with
	// the escaped query and {page} with the page number.
	SearchURL string
	// StartPage is the first page number, usually 1
	StartPage int
	// Mode selects pagination by page number or by scrolling
	Mode PageMode
	// Browser requires a real browser session instead of plain HTTP
	Browser bool
	// Selectors drive DOM extraction
	Selectors Selectors
	// Payload, when set, enables structured payload extraction
	Payload *PayloadSource
	// MaxPages overrides the session page cap for this site
	MaxPages int
	// MinInterval overrides the session request interval for this site
	MinInterval time.Duration
}

// SearchPageURL builds the search URL for a query and page number.
func (c SiteConfig) SearchPageURL(query string, page int) string {
	u := strings.ReplaceAll(c.SearchURL, "{query}", url.QueryEscape(query))
	return strings.ReplaceAll(u, "{page}", strconv.Itoa(page))
}

// SessionConfig carries the session-wide scrape limits.
type SessionConfig struct {
	// MinInterval is the minimum delay between page requests
	MinInterval time.Duration
	// MaxPages caps how many pages one session fetches
	MaxPages int
	// NavTimeout bounds a single page load
	NavTimeout time.Duration
	// StableWindow is how many consecutive pages with no new listings end
	// the session
	StableWindow int
}
