package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/reuters-comb/app/cache"
	"github.com/lysyi3m/reuters-comb/app/feed"
)

// Fetcher fetches one detail page and returns the raw HTML body.
type Fetcher interface {
	GetHTML(ctx context.Context, pageURL string) (string, error)
}

// Enricher replaces item summaries with content extracted from their
// detail pages. Extraction results are cached by URL so the same article
// is fetched and parsed once across concurrent requests.
type Enricher struct {
	fetcher    Fetcher
	cache      *cache.Cache[*Detail]
	extractors []Extractor
	workers    int
}

func New(fetcher Fetcher, c *cache.Cache[*Detail], workers int) *Enricher {
	if workers <= 0 {
		workers = 1
	}
	return &Enricher{
		fetcher: fetcher,
		cache:   c,
		extractors: []Extractor{
			NewInvestigatesExtractor(),
			NewFusionExtractor(NewRenderer()),
			NewGenericExtractor(),
		},
		workers: workers,
	}
}

// Run enriches every item concurrently, bounded by the worker count. An
// item whose enrichment fails is dropped; the rest come back in the
// original listing order regardless of completion order.
func (e *Enricher) Run(ctx context.Context, items []feed.Item) []feed.Item {
	type result struct {
		item feed.Item
		ok   bool
	}

	results := make([]result, len(items))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)

	for i, item := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, item feed.Item) {
			defer wg.Done()
			defer func() { <-sem }()

			detail, err := e.cache.GetOrCompute(item.Link, func() (*Detail, error) {
				return e.extract(ctx, item.Link)
			})
			if err != nil {
				slog.Debug("Enrichment failed, dropping item",
					"url", item.Link, "error", err)
				return
			}

			apply(&item, detail)
			results[idx] = result{item: item, ok: true}
		}(i, item)
	}
	wg.Wait()

	out := make([]feed.Item, 0, len(items))
	for _, r := range results {
		if r.ok {
			out = append(out, r.item)
		}
	}
	return out
}

func (e *Enricher) extract(ctx context.Context, pageURL string) (*Detail, error) {
	raw, err := e.fetcher.GetHTML(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch detail page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail page: %w", err)
	}

	for _, extractor := range e.extractors {
		if !extractor.CanHandle(pageURL, doc, raw) {
			continue
		}
		return extractor.Extract(pageURL, doc, raw)
	}

	// unreachable while the generic extractor handles everything
	return nil, fmt.Errorf("no extraction strategy matched %s", pageURL)
}
