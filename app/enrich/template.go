package enrich

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed article.tmpl
var articleTmpl string

// Renderer turns a parsed article payload into an HTML description
// fragment.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("enrich").Parse(articleTmpl)),
	}
}

func (r *Renderer) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
