package reuters

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lysyi3m/reuters-comb/app/feed"
)

const (
	// PublisherImageURL is the fixed channel image for every feed this
	// adapter produces.
	PublisherImageURL = "https://www.reuters.com/pf/resources/images/reuters/logo-vertical-default.svg"

	DefaultLimit = 20
)

// ErrNoFeed means both the primary listing and the wire fallback failed to
// produce any usable items. Callers serve it as an absent feed, not a 500.
var ErrNoFeed = errors.New("no feed produced")

// Request is one immutable listing invocation.
type Request struct {
	Category string
	Topic    string
	Limit    int
	Fulltext bool // enrich items from their detail pages
	Sophi    bool // request Sophi-ranked ordering where allowed
}

// Enricher replaces item summaries with detail-page content. Items whose
// enrichment fails are dropped from the returned slice; the rest keep
// their original relative order.
type Enricher interface {
	Run(ctx context.Context, items []feed.Item) []feed.Item
}

// Adapter is the Reuters content-source adapter: primary listing fetch,
// blanket fallback to the wire API, dedup and optional enrichment.
type Adapter struct {
	listing  *ListingFetcher
	wire     *WireFetcher
	enricher Enricher
}

func NewAdapter(client *Client, enricher Enricher) *Adapter {
	return &Adapter{
		listing:  NewListingFetcher(client),
		wire:     NewWireFetcher(client),
		enricher: enricher,
	}
}

// Fetch produces the feed for one request. Any failure of the primary
// path switches to the wire fallback exactly once; if that also fails or
// yields nothing usable, ErrNoFeed is returned.
func (a *Adapter) Fetch(ctx context.Context, req Request) (*feed.Metadata, []feed.Item, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}

	meta, items, err := a.fetchPrimary(ctx, req)
	if err == nil {
		return meta, items, nil
	}

	// Blanket fallback: any primary-path error, including a local decode
	// defect, lands here. Logged so a masked bug stays visible.
	slog.Warn("Primary listing failed, trying wire fallback",
		"category", req.Category, "topic", req.Topic, "error", err)

	meta, items, err = a.wire.Fetch(ctx, req)
	if err != nil {
		slog.Error("Wire fallback failed",
			"category", req.Category, "topic", req.Topic, "error", err)
		return nil, nil, ErrNoFeed
	}
	if len(items) == 0 {
		return nil, nil, ErrNoFeed
	}

	return meta, items, nil
}

func (a *Adapter) fetchPrimary(ctx context.Context, req Request) (*feed.Metadata, []feed.Item, error) {
	lst, err := a.listing.Fetch(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	items := make([]feed.Item, 0, len(lst.Articles))
	for _, article := range lst.Articles {
		items = append(items, normalizeArticle(article, lst.RootURL))
	}
	items = dedupeItems(items)

	if req.Fulltext && a.enricher != nil {
		items = a.enricher.Run(ctx, items)
	}

	meta := &feed.Metadata{
		Title:       lst.Title,
		Description: lst.Description,
		Link:        lst.Link,
		ImageURL:    PublisherImageURL,
	}

	return meta, items, nil
}
