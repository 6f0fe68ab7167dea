package scraper

import (
	"net/url"
	"strings"
)

// ResolveURL turns href into an absolute URL under base. Absolute hrefs are
// returned unchanged, root-relative hrefs join the base origin, and other
// relative hrefs append to the base path.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}

	if strings.HasPrefix(href, "/") {
		if b, err := url.Parse(base); err == nil && b.Scheme != "" && b.Host != "" {
			return b.Scheme + "://" + b.Host + href
		}
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(href, "/")
}
