package enrich

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/lysyi3m/reuters-comb/app/feed"
)

// Compiled once; both patterns sniff structured data out of the raw page
// text when no cleaner source is available.
var (
	datePublishedRe = regexp.MustCompile(`"datePublished"\s*:\s*"([^"]+)"`)
	personRe        = regexp.MustCompile(`\{"@type"\s*:\s*"Person"\s*,\s*"name"\s*:\s*"([^"]+)"\}`)
)

// GenericExtractor is the last-resort layout strategy. It always applies,
// so an unrecognized page shape folds into this extractor either
// succeeding or failing per item.
type GenericExtractor struct{}

func NewGenericExtractor() *GenericExtractor {
	return &GenericExtractor{}
}

func (x *GenericExtractor) CanHandle(_ string, _ *goquery.Document, _ string) bool {
	return true
}

func (x *GenericExtractor) Extract(pageURL string, doc *goquery.Document, raw string) (*Detail, error) {
	// drop the in-page title and byline so they don't repeat inside the
	// description body
	doc.Find("h1").Remove()
	doc.Find(".article-metadata").Remove()

	detail := &Detail{}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		detail.Title = title
	}

	if match := datePublishedRe.FindStringSubmatch(raw); match != nil {
		if published, err := feed.ParseTime(match[1]); err == nil {
			detail.PublishedAt = published
		}
	}

	seen := make(map[string]struct{})
	for _, match := range personRe.FindAllStringSubmatch(raw, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		detail.Authors = append(detail.Authors, name)
	}

	article := doc.Find("article").First()
	if article.Length() > 0 {
		body, err := article.Html()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize article element: %w", err)
		}
		detail.Description = strings.TrimSpace(body)
	} else {
		// no recognizable article element at all: let readability take a
		// shot at the full page
		parsedURL, _ := url.Parse(pageURL)
		extracted, err := readability.FromReader(strings.NewReader(raw), parsedURL)
		if err != nil {
			return nil, fmt.Errorf("failed to extract content: %w", err)
		}
		detail.Description = extracted.Content
	}

	if detail.Description == "" {
		return nil, fmt.Errorf("no content extracted from %s", pageURL)
	}

	return detail, nil
}
