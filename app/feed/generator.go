package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/reuters-comb/app/cfg"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Run(meta Metadata, items []Item, selfPath string) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", meta.Title, 4)
	g.writeElement(&buf, "link", meta.Link, 4)
	description := meta.Description
	if description == "" {
		description = fmt.Sprintf("Reuters feed for %s", meta.Link)
	}
	g.writeElement(&buf, "description", description, 4)

	var selfLink string
	if cfg.Get().BaseUrl != "" {
		selfLink = fmt.Sprintf("%s%s", cfg.Get().BaseUrl, selfPath)
	} else {
		selfLink = fmt.Sprintf("http://localhost:%s%s", cfg.Get().Port, selfPath)
	}
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	lastBuildDate := time.Now().UTC()
	if len(items) > 0 {
		lastBuildDate = cmp.Or(items[0].PublishedAt, lastBuildDate)
	}

	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Reuters-Comb/%s", cfg.Get().Version), 4)

	if meta.ImageURL != "" {
		buf.WriteString("    <image>\n")
		g.writeElement(&buf, "url", meta.ImageURL, 6)
		g.writeElement(&buf, "title", meta.Title, 6)
		g.writeElement(&buf, "link", meta.Link, 6)
		buf.WriteString("    </image>\n")
	}

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, item Item) {
	buf.WriteString("    <item>\n")

	if item.ID != "" {
		buf.WriteString(`      <guid isPermaLink="false">`)
		xml.EscapeText(buf, []byte(item.ID))
		buf.WriteString("</guid>\n")
	}

	if item.Title != "" {
		g.writeElement(buf, "title", item.Title, 6)
	}

	if item.Link != "" {
		g.writeElement(buf, "link", item.Link, 6)
	}

	// Descriptions may carry extracted article HTML, so ship them as CDATA
	// rather than escaped text. A literal "]]>" inside the content would
	// terminate the section early, so split it across two sections.
	description := cmp.Or(item.Description, "No description available")
	buf.WriteString("      <description><![CDATA[")
	buf.WriteString(strings.ReplaceAll(description, "]]>", "]]]]><![CDATA[>"))
	buf.WriteString("]]></description>\n")

	if !item.PublishedAt.IsZero() {
		g.writeElement(buf, "pubDate", item.PublishedAt.Format(time.RFC1123Z), 6)
	}

	if author := item.Author(); author != "" {
		g.writeElement(buf, "author", author, 6)
	}

	for _, category := range item.Categories {
		if category != "" {
			g.writeElement(buf, "category", category, 6)
		}
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
