package enrich

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/reuters-comb/app/feed"
)

// investigatesPrefix marks the special-report layout; these pages embed
// their article metadata as JSON-LD instead of a Fusion payload.
const investigatesPrefix = "/investigates/"

// Containers stripped from the report body before serialization.
var investigatesBoilerplate = []string{
	"nav",
	".special-report-nav",
	".share-in-article-container",
	".inline-share",
	".end-of-article",
	"script",
	"style",
}

// ldPersons accepts JSON-LD's two author encodings: a single Person
// object or a list of them.
type ldPersons []struct {
	Name string `json:"name"`
}

func (p *ldPersons) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		type plain ldPersons
		return json.Unmarshal(data, (*plain)(p))
	}
	var one struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*p = ldPersons{one}
	return nil
}

// ldStrings accepts a single string or a list of strings.
type ldStrings []string

func (s *ldStrings) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		type plain ldStrings
		return json.Unmarshal(data, (*plain)(s))
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*s = ldStrings{one}
	return nil
}

type ldArticle struct {
	Headline       string    `json:"headline"`
	DatePublished  string    `json:"datePublished"`
	Author         ldPersons `json:"author"`
	ArticleSection ldStrings `json:"articleSection"`
}

// InvestigatesExtractor handles the investigative-report layout, detected
// purely by the URL path prefix.
type InvestigatesExtractor struct{}

func NewInvestigatesExtractor() *InvestigatesExtractor {
	return &InvestigatesExtractor{}
}

func (x *InvestigatesExtractor) CanHandle(pageURL string, _ *goquery.Document, _ string) bool {
	u, err := url.Parse(pageURL)
	return err == nil && strings.HasPrefix(u.Path, investigatesPrefix)
}

func (x *InvestigatesExtractor) Extract(pageURL string, doc *goquery.Document, _ string) (*Detail, error) {
	block := doc.Find(`script[type="application/ld+json"]`).First()
	if block.Length() == 0 {
		return nil, fmt.Errorf("no JSON-LD metadata block in %s", pageURL)
	}

	var meta ldArticle
	if err := json.Unmarshal([]byte(block.Text()), &meta); err != nil {
		return nil, fmt.Errorf("failed to decode JSON-LD metadata: %w", err)
	}

	detail := &Detail{
		Title:      meta.Headline,
		Categories: meta.ArticleSection,
	}

	if meta.DatePublished != "" {
		published, err := feed.ParseTime(meta.DatePublished)
		if err != nil {
			return nil, fmt.Errorf("bad datePublished in JSON-LD: %w", err)
		}
		detail.PublishedAt = published
	}

	for _, person := range meta.Author {
		if person.Name != "" {
			detail.Authors = append(detail.Authors, person.Name)
		}
	}

	container := doc.Find(".article-container").First()
	if container.Length() == 0 {
		container = doc.Find("article").First()
	}
	if container.Length() == 0 {
		return nil, fmt.Errorf("no article container in %s", pageURL)
	}

	for _, selector := range investigatesBoilerplate {
		container.Find(selector).Remove()
	}

	body, err := container.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report body: %w", err)
	}
	detail.Description = strings.TrimSpace(body)

	return detail, nil
}
