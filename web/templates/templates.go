// Package templates renders the storefront's server-side HTML views. Pages
// compose with base.html; fragments are standalone snippets returned to
// HTMX requests.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed base.html pages/*.html fragments/*.html
var files embed.FS

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
}

// Renderer holds the parsed template sets, one per page plus the fragments.
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

var pageNames = []string{
	"events", "event", "checkout", "payment", "account", "login", "register",
}

// New parses the embedded templates. Errors here are programmer errors and
// surface at startup, not per request.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, name := range pageNames {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(
			files, "base.html", "pages/"+name+".html", "fragments/*.html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	fragments, err := template.New("fragments").Funcs(funcs).ParseFS(files, "fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse fragments: %w", err)
	}
	r.fragments = fragments

	return r, nil
}

// Page renders a full page into w.
func (r *Renderer) Page(w io.Writer, name string, data interface{}) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// Fragment renders a named fragment into w.
func (r *Renderer) Fragment(w io.Writer, name string, data interface{}) error {
	return r.fragments.ExecuteTemplate(w, name, data)
}
