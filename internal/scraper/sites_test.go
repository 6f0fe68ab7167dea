package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteConfigsComplete(t *testing.T) {
	configs := SiteConfigs()
	require.NotEmpty(t, configs)

	names := map[string]bool{}
	for _, site := range configs {
		assert.NotEmpty(t, site.Name)
		assert.False(t, names[site.Name], "duplicate site name %s", site.Name)
		names[site.Name] = true

		assert.True(t, strings.HasPrefix(site.BaseURL, "https://"), "%s base URL", site.Name)
		assert.NotEmpty(t, site.SearchURL, "%s search URL", site.Name)
		assert.GreaterOrEqual(t, site.StartPage, 1, "%s start page", site.Name)

		// Every site extracts through selectors, a payload, or both
		assert.True(t, site.Selectors.Listing != "" || site.Payload != nil,
			"%s has no extraction source", site.Name)
	}

	for _, expected := range []string{
		"Blocket", "Tradera", "HifiTorget", "HiFiShark", "Reference Audio",
		"Ljudmakarn", "HiFi-Punkten", "Rehifi", "AudioPerformance",
		"Lasses HiFi", "HiFi Experience", "Akkelis Audio", "HiFi Puls",
	} {
		assert.True(t, names[expected], "missing site %s", expected)
	}
}

func TestSearchPageURL(t *testing.T) {
	site := SiteConfig{SearchURL: "https://x.se/search?q={query}&page={page}"}
	assert.Equal(t, "https://x.se/search?q=marantz+amp&page=2", site.SearchPageURL("marantz amp", 2))
}

func TestCreateScrapers(t *testing.T) {
	httpNav := newStubNavigator()
	browserNav := newStubNavigator()

	scrapers := CreateScrapers(testSession(), httpNav, browserNav)
	assert.Len(t, scrapers, len(SiteConfigs()))

	// Without a browser navigator, browser-only sites are left out
	scrapers = CreateScrapers(testSession(), httpNav, nil)
	var browserSites int
	for _, site := range SiteConfigs() {
		if site.Browser {
			browserSites++
		}
	}
	assert.Len(t, scrapers, len(SiteConfigs())-browserSites)
}
