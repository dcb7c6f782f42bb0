package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLRenderer renders the web screen.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &HTMLRenderer{tmpl: tmpl}, nil
}

// RenderPage writes the whole document.
func (r *HTMLRenderer) RenderPage(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, "page", page)
}

// RenderArticles returns the status line and the card list, the part of
// the page that changes when the store does.
func (r *HTMLRenderer) RenderArticles(page Page) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "articles", page); err != nil {
		return "", err
	}
	return buf.String(), nil
}
