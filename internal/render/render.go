// Package render draws the restaurant page and its htmx fragments from
// embedded html/template files.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Lixing-Zhang/aami-bangali/internal/format"
	"github.com/Lixing-Zhang/aami-bangali/internal/icons"
	"github.com/Lixing-Zhang/aami-bangali/internal/models"
	"github.com/Lixing-Zhang/aami-bangali/internal/storefront"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// FragmentApp is the htmx swap target, renderable on its own.
const FragmentApp = "app"

// PageData is everything the page templates read. Templates never mutate it.
type PageData struct {
	Restaurant models.Restaurant
	View       storefront.View
	Notice     *Notice
	Year       int
}

// Notice is a one-off message shown above the menu, e.g. after checkout.
type Notice struct {
	Tone string // "success" or "error"
	Text string
}

// Renderer executes the parsed templates.
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

// New parses the embedded templates.
func New(prices *format.Prices) (*Renderer, error) {
	funcs := template.FuncMap{
		"price": prices.Format,
		"icon":  icons.SVG,
		"dietaryIcon": func(d models.Dietary) template.HTML {
			if d == models.Veg {
				return icons.SVG("leaf")
			}
			return icons.SVG("triangle")
		},
		// tel: is not in html/template's safe scheme list
		"telURL": func(r models.Restaurant) template.URL {
			return template.URL(r.TelURL())
		},
	}

	tmpl, err := template.New("_root").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl, now: time.Now}, nil
}

// Page renders the full HTML document.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.execute(w, "page", data)
}

// Fragment renders one named fragment, for htmx swaps.
func (r *Renderer) Fragment(w io.Writer, name string, data PageData) error {
	return r.execute(w, name, data)
}

func (r *Renderer) execute(w io.Writer, name string, data PageData) error {
	if data.Year == 0 {
		data.Year = r.now().Year()
	}
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	return nil
}
