package enrich

import (
	"encoding/json"
	"fmt"
	"html/template"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/reuters-comb/app/feed"
)

// Regular article pages inline their full content state as a script
// assignment. The payload between the braces is plain JSON.
var fusionContentRe = regexp.MustCompile(`(?s)Fusion\.globalContent\s*=\s*(\{.*?\});`)

type fusionElement struct {
	Type    string `json:"type"` // "paragraph", "image", "header"
	Content string `json:"content"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// ContentHTML exposes paragraph markup unescaped; the upstream payload is
// already HTML.
func (e fusionElement) ContentHTML() template.HTML {
	return template.HTML(e.Content)
}

type fusionContent struct {
	Result struct {
		Title         string `json:"title"`
		PublishedTime any    `json:"published_time"`
		Authors       []struct {
			Name string `json:"name"`
		} `json:"authors"`
		Kicker struct {
			Names []string `json:"names"`
		} `json:"kicker"`
		ContentElements []fusionElement `json:"content_elements"`
	} `json:"result"`
}

// FusionExtractor handles the embedded-metadata-blob layout: it parses
// the Fusion payload and renders the description through the article
// template instead of passing page HTML through.
type FusionExtractor struct {
	renderer *Renderer
}

func NewFusionExtractor(renderer *Renderer) *FusionExtractor {
	return &FusionExtractor{renderer: renderer}
}

func (x *FusionExtractor) CanHandle(_ string, _ *goquery.Document, raw string) bool {
	return fusionContentRe.MatchString(raw)
}

func (x *FusionExtractor) Extract(pageURL string, _ *goquery.Document, raw string) (*Detail, error) {
	match := fusionContentRe.FindStringSubmatch(raw)
	if match == nil {
		return nil, fmt.Errorf("no Fusion.globalContent payload in %s", pageURL)
	}

	var content fusionContent
	if err := json.Unmarshal([]byte(match[1]), &content); err != nil {
		return nil, fmt.Errorf("failed to decode Fusion payload: %w", err)
	}

	detail := &Detail{
		// an absent title keeps the listing's one
		Title:      content.Result.Title,
		Categories: content.Result.Kicker.Names,
	}

	if content.Result.PublishedTime != nil {
		if published, err := feed.ParseTime(content.Result.PublishedTime); err == nil {
			detail.PublishedAt = published
		}
	}

	for _, a := range content.Result.Authors {
		if a.Name != "" {
			detail.Authors = append(detail.Authors, a.Name)
		}
	}

	description, err := x.renderer.Render("article", content)
	if err != nil {
		return nil, fmt.Errorf("failed to render article body: %w", err)
	}
	detail.Description = description

	return detail, nil
}
