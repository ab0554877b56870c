package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer executes the embedded page and section templates. Output is auto-escaped, so
// values from the API are shown as text.
type Renderer struct {
	tmpl  *template.Template
	times *TimeFormatter
}

// NewRenderer parses the embedded templates.
func NewRenderer(times *TimeFormatter) (*Renderer, error) {
	tmpl, err := template.New("portal").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, times: times}, nil
}

// Page renders the full page name ("login", "signup" or "dashboard").
func (r *Renderer) Page(w io.Writer, name string, data interface{}) error {
	return r.execute(w, "page-"+name, data)
}

// Section renders one dashboard section fragment.
func (r *Renderer) Section(w io.Writer, name string, data interface{}) error {
	return r.execute(w, "section-"+name, data)
}

// Times exposes the formatter used for complaint dates.
func (r *Renderer) Times() *TimeFormatter {
	return r.times
}

func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	if r.tmpl.Lookup(name) == nil {
		return fmt.Errorf("template %q not found", name)
	}
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Static returns the embedded stylesheet and scripts rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
