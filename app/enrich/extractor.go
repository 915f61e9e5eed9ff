package enrich

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/reuters-comb/app/feed"
)

// Detail is the per-URL extraction result memoized in the article cache.
// Zero-valued fields mean the strategy found nothing better than what the
// listing already provided.
type Detail struct {
	Title       string
	PublishedAt time.Time
	Authors     []string
	Categories  []string
	Description string
}

// Extractor is one detail-page layout strategy. Strategies are tried in
// strict priority order; the first one whose CanHandle matches runs.
// Selection is by page shape, never by content negotiation.
type Extractor interface {
	CanHandle(pageURL string, doc *goquery.Document, raw string) bool
	Extract(pageURL string, doc *goquery.Document, raw string) (*Detail, error)
}

// apply overwrites the item's summary fields with the richer extracted
// values, keeping the original where the page had nothing.
func apply(item *feed.Item, d *Detail) {
	if d.Title != "" {
		item.Title = d.Title
	}
	if !d.PublishedAt.IsZero() {
		item.PublishedAt = d.PublishedAt
	}
	if len(d.Authors) > 0 {
		item.Authors = d.Authors
	}
	if len(d.Categories) > 0 {
		item.Categories = d.Categories
	}
	if d.Description != "" {
		item.Description = d.Description
	}
}
