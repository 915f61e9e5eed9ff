package reuters

import (
	"net/url"

	"github.com/lysyi3m/reuters-comb/app/feed"
)

// normalizeArticle maps a topic/section-API article record into the
// canonical item shape. No network I/O happens here; missing optional
// fields (authors, kicker, timestamps) degrade to empty values.
func normalizeArticle(a articleJSON, rootURL string) feed.Item {
	published, _ := feed.ParseTime(a.PublishedTime)
	updated, _ := feed.ParseTime(a.UpdatedTime)

	authors := make([]string, 0, len(a.Authors))
	for _, author := range a.Authors {
		if author.Name != "" {
			authors = append(authors, author.Name)
		}
	}

	return feed.Item{
		ID:          a.ID,
		Title:       a.Title,
		Link:        resolveLink(rootURL, a.CanonicalURL),
		Description: a.Description,
		PublishedAt: published,
		UpdatedAt:   updated,
		Authors:     authors,
		Categories:  a.Kicker.Names,
	}
}

// resolveLink makes ref absolute against root. A ref that fails to parse
// is returned as-is rather than dropped.
func resolveLink(root, ref string) string {
	base, err := url.Parse(root)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// dedupeItems keeps the first occurrence of each distinct ID, preserving
// the original relative order.
func dedupeItems(items []feed.Item) []feed.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]feed.Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}
