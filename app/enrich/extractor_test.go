package enrich

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, raw string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

const investigatesPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">{"@type":"NewsArticle","headline":"Report Headline","datePublished":"2023-06-01T08:00:00Z","author":[{"@type":"Person","name":"Jane Doe"},{"@type":"Person","name":"John Roe"}],"articleSection":"Investigations"}</script>
</head>
<body>
<div class="article-container">
  <nav>site navigation</nav>
  <div class="special-report-nav">report navigation</div>
  <p>First report paragraph.</p>
  <div class="inline-share">share buttons</div>
  <p>Second report paragraph.</p>
  <div class="end-of-article">end marker</div>
</div>
</body></html>`

func TestInvestigatesExtractor_CanHandle(t *testing.T) {
	x := NewInvestigatesExtractor()
	doc := parseDoc(t, investigatesPage)

	if !x.CanHandle("https://www.reuters.com/investigates/special-report/x/", doc, investigatesPage) {
		t.Error("Expected investigates URL to match")
	}
	if x.CanHandle("https://www.reuters.com/world/us/x/", doc, investigatesPage) {
		t.Error("Regular article URLs must not match")
	}
}

func TestInvestigatesExtractor_Extract(t *testing.T) {
	x := NewInvestigatesExtractor()
	doc := parseDoc(t, investigatesPage)

	detail, err := x.Extract("https://www.reuters.com/investigates/special-report/x/", doc, investigatesPage)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if detail.Title != "Report Headline" {
		t.Errorf("Expected JSON-LD headline, got %q", detail.Title)
	}

	expectedTime := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	if !detail.PublishedAt.Equal(expectedTime) {
		t.Errorf("Expected JSON-LD date, got %v", detail.PublishedAt)
	}

	if len(detail.Authors) != 2 || detail.Authors[0] != "Jane Doe" || detail.Authors[1] != "John Roe" {
		t.Errorf("Expected JSON-LD authors, got %v", detail.Authors)
	}

	// articleSection is a bare string in this payload
	if len(detail.Categories) != 1 || detail.Categories[0] != "Investigations" {
		t.Errorf("Expected JSON-LD section, got %v", detail.Categories)
	}

	for _, boilerplate := range []string{"site navigation", "report navigation", "share buttons", "end marker"} {
		if strings.Contains(detail.Description, boilerplate) {
			t.Errorf("Boilerplate %q should be removed from the description", boilerplate)
		}
	}
	for _, content := range []string{"First report paragraph.", "Second report paragraph."} {
		if !strings.Contains(detail.Description, content) {
			t.Errorf("Expected report content %q in description", content)
		}
	}
}

func TestInvestigatesExtractor_SingleAuthorObject(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{"headline":"H","author":{"@type":"Person","name":"Solo Author"}}</script>
</head><body><article><p>body</p></article></body></html>`

	x := NewInvestigatesExtractor()
	detail, err := x.Extract("https://www.reuters.com/investigates/x/", parseDoc(t, page), page)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(detail.Authors) != 1 || detail.Authors[0] != "Solo Author" {
		t.Errorf("Expected single author object to decode, got %v", detail.Authors)
	}
}

func TestInvestigatesExtractor_MissingMetadata(t *testing.T) {
	page := `<html><body><p>no metadata here</p></body></html>`

	x := NewInvestigatesExtractor()
	if _, err := x.Extract("https://www.reuters.com/investigates/x/", parseDoc(t, page), page); err == nil {
		t.Error("Expected error when the JSON-LD block is missing")
	}
}

const genericPage = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Generic Title"/>
<script>{"props":{"datePublished":"2023-05-10T12:00:00Z","authors":[{"@type":"Person","name":"Jane Doe"},{"@type":"Person","name":"Jane Doe"},{"@type":"Person","name":"John Roe"}]}}</script>
</head>
<body>
<h1>In-page title</h1>
<div class="article-metadata">byline and date</div>
<article><h1>Repeated title</h1><p>Generic article body.</p></article>
</body></html>`

func TestGenericExtractor_Extract(t *testing.T) {
	x := NewGenericExtractor()
	doc := parseDoc(t, genericPage)

	if !x.CanHandle("https://www.reuters.com/world/x/", doc, genericPage) {
		t.Fatal("Generic extractor must handle everything")
	}

	detail, err := x.Extract("https://www.reuters.com/world/x/", doc, genericPage)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if detail.Title != "Generic Title" {
		t.Errorf("Expected og:title, got %q", detail.Title)
	}

	expectedTime := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	if !detail.PublishedAt.Equal(expectedTime) {
		t.Errorf("Expected regex-sniffed date, got %v", detail.PublishedAt)
	}

	// duplicate Person objects collapse, order kept
	if len(detail.Authors) != 2 || detail.Authors[0] != "Jane Doe" || detail.Authors[1] != "John Roe" {
		t.Errorf("Expected deduplicated authors, got %v", detail.Authors)
	}

	if !strings.Contains(detail.Description, "Generic article body.") {
		t.Errorf("Expected article body in description, got %q", detail.Description)
	}
	if strings.Contains(detail.Description, "Repeated title") {
		t.Error("Title elements should be stripped from the description")
	}
}

func TestGenericExtractor_MissingOptionalFields(t *testing.T) {
	page := `<html><body><article><p>just a body</p></article></body></html>`

	x := NewGenericExtractor()
	detail, err := x.Extract("https://www.reuters.com/world/x/", parseDoc(t, page), page)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if detail.Title != "" {
		t.Errorf("Expected empty title when og:title is absent, got %q", detail.Title)
	}
	if !detail.PublishedAt.IsZero() {
		t.Error("Expected zero time when datePublished is absent")
	}
	if len(detail.Authors) != 0 {
		t.Errorf("Expected no authors, got %v", detail.Authors)
	}
	if !strings.Contains(detail.Description, "just a body") {
		t.Errorf("Expected body content, got %q", detail.Description)
	}
}

func TestFusionExtractor_CanHandle(t *testing.T) {
	x := NewFusionExtractor(NewRenderer())
	doc := parseDoc(t, fusionPage)

	if !x.CanHandle("https://www.reuters.com/world/a/", doc, fusionPage) {
		t.Error("Expected Fusion payload to match")
	}
	if x.CanHandle("https://www.reuters.com/world/a/", doc, genericPage) {
		t.Error("Pages without the payload must not match")
	}
}

func TestFusionExtractor_TitleFallback(t *testing.T) {
	page := `<html><body><script>Fusion.globalContent={"result":{"content_elements":[{"type":"paragraph","content":"p1"}]}};</script></body></html>`

	x := NewFusionExtractor(NewRenderer())
	detail, err := x.Extract("https://www.reuters.com/world/a/", parseDoc(t, page), page)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// an empty extracted title keeps the listing title on apply
	if detail.Title != "" {
		t.Errorf("Expected empty title, got %q", detail.Title)
	}
}

func TestRenderer_ImageElement(t *testing.T) {
	renderer := NewRenderer()

	data := fusionContent{}
	data.Result.ContentElements = []fusionElement{
		{Type: "image", URL: "https://www.reuters.com/img/1.jpg", Caption: "A caption"},
	}

	out, err := renderer.Render("article", data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(out, `src="https://www.reuters.com/img/1.jpg"`) {
		t.Errorf("Expected image source, got %q", out)
	}
	if !strings.Contains(out, "<figcaption>A caption</figcaption>") {
		t.Errorf("Expected caption, got %q", out)
	}
}
