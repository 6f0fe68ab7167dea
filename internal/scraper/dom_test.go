package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOMStrategyExtract(t *testing.T) {
	page := &stubPage{html: listingHTML(
		listingItem("Marantz PM8006", "/annons/1", "7 900 kr"),
		listingItem("NAD C316", "/annons/2", "2 500 kr"),
	)}

	s := NewDOMStrategy("testsite", testSelectors)
	listings, err := s.Extract(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "Marantz PM8006", listings[0].Title)
	assert.Equal(t, "/annons/1", listings[0].URL)
	assert.Equal(t, "7 900 kr", listings[0].PriceText)
	assert.Equal(t, "NAD C316", listings[1].Title)
}

func TestDOMStrategyMissingFields(t *testing.T) {
	// Price selector matches nothing, listing is still kept
	page := &stubPage{html: listingHTML(
		`<article class="item"><a class="item-link" href="/annons/1"><h2 class="item-title">Rotel RA-1572</h2></a></article>`,
	)}

	s := NewDOMStrategy("testsite", testSelectors)
	listings, err := s.Extract(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Rotel RA-1572", listings[0].Title)
	assert.Empty(t, listings[0].PriceText)
}

func TestDOMStrategyDiscardsEmptyContainers(t *testing.T) {
	page := &stubPage{html: listingHTML(
		`<article class="item"><span class="item-price">199 kr</span></article>`,
		listingItem("Yamaha A-S501", "/annons/3", "3 200 kr"),
	)}

	s := NewDOMStrategy("testsite", testSelectors)
	listings, err := s.Extract(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Yamaha A-S501", listings[0].Title)
}

func TestDOMStrategyClassFilter(t *testing.T) {
	page := &stubPage{html: listingHTML(
		`<article class="item sponsored"><a class="item-link" href="/ad"><h2 class="item-title">Annons</h2></a></article>`,
		listingItem("Cambridge CXA61", "/annons/4", "5 000 kr"),
	)}

	selectors := testSelectors
	selectors.ClassFilter = "sponsored"
	s := NewDOMStrategy("testsite", selectors)
	listings, err := s.Extract(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Cambridge CXA61", listings[0].Title)
}

func TestDOMStrategyTitleAttr(t *testing.T) {
	page := &stubPage{html: listingHTML(
		`<article class="item"><a class="item-link" href="/annons/5" title="Linn Majik DSM"><h2 class="item-title"></h2></a></article>`,
	)}

	selectors := testSelectors
	selectors.Title = "a.item-link"
	selectors.TitleAttr = "title"
	s := NewDOMStrategy("testsite", selectors)
	listings, err := s.Extract(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Linn Majik DSM", listings[0].Title)
}

func TestDOMStrategyImageAttrs(t *testing.T) {
	page := &stubPage{html: listingHTML(
		`<article class="item"><a class="item-link" href="/annons/6"><h2 class="item-title">Dali Oberon 5</h2></a><img class="item-img" data-src="/img/lazy.jpg" src="/img/placeholder.gif"></article>`,
	)}

	selectors := testSelectors
	selectors.Image = "img.item-img"
	s := NewDOMStrategy("testsite", selectors)
	listings, err := s.Extract(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	// data-src wins over the placeholder src
	assert.Equal(t, "/img/lazy.jpg", listings[0].ImageURL)
}

func TestDOMStrategyCollapsesWhitespace(t *testing.T) {
	page := &stubPage{html: listingHTML(
		`<article class="item"><a class="item-link" href="/annons/7"><h2 class="item-title">  Rega
			Planar 3  </h2></a><span class="item-price"> 6 500
			kr </span></article>`,
	)}

	s := NewDOMStrategy("testsite", testSelectors)
	listings, err := s.Extract(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Rega Planar 3", listings[0].Title)
	assert.Equal(t, "6 500 kr", listings[0].PriceText)
}
