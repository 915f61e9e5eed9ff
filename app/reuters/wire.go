package reuters

import (
	"cmp"
	"context"
	"fmt"
	"net/url"

	"github.com/lysyi3m/reuters-comb/app/feed"
)

const (
	wireSectionPath = "/arc/outboundfeeds/v4/mobile/section"

	// Only this template carries article content; wire items without it
	// are navigation or ad slots and are dropped.
	storyTemplate = "story_with_image"
)

// WireFetcher is the fallback path: the structurally different mobile
// "wire" API, consulted only when the primary listing call fails
// end-to-end. Its items are normalized inline since the shape exists
// nowhere else.
type WireFetcher struct {
	client *Client
}

func NewWireFetcher(client *Client) *WireFetcher {
	return &WireFetcher{client: client}
}

func (f *WireFetcher) Fetch(ctx context.Context, req Request) (*feed.Metadata, []feed.Item, error) {
	path := wireSectionPath + SectionPath(req.Category, req.Topic)

	var resp wireResponse
	query := url.Values{"outputType": {"json"}}
	if err := f.client.GetJSON(ctx, path, query, &resp); err != nil {
		return nil, nil, fmt.Errorf("wire listing %s: %w", path, err)
	}

	// Channel tags apply listing-wide; the wire API carries no
	// per-article categories
	var categories []string
	for _, channel := range []string{resp.Analytics.TopicChannel, resp.Analytics.TopicSubChannel} {
		if channel != "" {
			categories = append(categories, channel)
		}
	}

	items := make([]feed.Item, 0, len(resp.WireItems))
	for _, wi := range resp.WireItems {
		for _, tpl := range wi.Templates {
			if tpl.Template != storyTemplate {
				continue
			}

			updated, _ := feed.ParseTime(tpl.Story.UpdatedAt)

			authors := make([]string, 0, len(tpl.Story.Authors))
			for _, a := range tpl.Story.Authors {
				if a.Name != "" {
					authors = append(authors, a.Name)
				}
			}

			items = append(items, feed.Item{
				ID:          tpl.Story.USN,
				Title:       tpl.Story.Hed,
				Link:        tpl.TemplateAction.URL,
				Description: tpl.Story.Lede,
				PublishedAt: updated,
				UpdatedAt:   updated,
				Authors:     authors,
				Categories:  categories,
			})
		}
	}

	if len(items) > req.Limit {
		items = items[:req.Limit]
	}

	meta := &feed.Metadata{
		Title:       cmp.Or(resp.Analytics.Title, resp.Analytics.ContentTitle, resp.WireName),
		Description: resp.Analytics.ContentTitle,
		Link:        cmp.Or(resp.CanonicalAction.URL, f.client.BaseURL()+SectionPath(req.Category, req.Topic)),
		ImageURL:    PublisherImageURL,
	}

	return meta, items, nil
}
