// Package handler contains the HTTP request handlers.
//
// Handlers are the glue between HTTP and the rest of the app: they parse
// form input, call the service layer, and render templates or redirects.
// Business rules live in internal/service; nothing in this package touches
// the database directly.
package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/sakif/member-portal/internal/model"
	"github.com/sakif/member-portal/internal/session"
)

// Page is the data handed to every template. html/template escapes all
// interpolated strings by default, so usernames like
// "<script>alert('XSS')</script>" render as text, never as markup.
type Page struct {
	Title   string
	User    *session.Session // nil when anonymous
	Flashes []string         // one-shot notices popped from the flash cookie
	Errors  []string         // validation messages re-rendered with a form
	Form    url.Values       // sticky form values after a failed submit
	Users   []model.User     // the members listing
}

// Renderer holds the parsed template sets, one per page, each composed
// with base.html. Parsing happens once at startup, so a bad template fails
// the boot, not a request.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// pageNames are the content templates under the template dir. Each one
// defines a "content" block that base.html pulls in.
var pageNames = []string{"home", "register", "login", "users"}

// NewRenderer parses base.html together with each page template.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		tmpl, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render executes a page template with the given data.
//
// The status code is written before the body, which is why it's a
// parameter: failed form submits re-render their page with 200 while
// still carrying error messages.
func (rn *Renderer) Render(w http.ResponseWriter, status int, name string, data Page) {
	tmpl, ok := rn.pages[name]
	if !ok {
		rn.logger.Error("unknown template", slog.String("name", name))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		// Headers are already sent; all we can do is log.
		rn.logger.Error("rendering template",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
}

// renderFailure writes the generic 500 page for store-level failures.
// The real error has been logged by the service layer; the user only ever
// sees a generic message.
func renderFailure(w http.ResponseWriter) {
	http.Error(w, "The service is temporarily unavailable. Please try again.", http.StatusInternalServerError)
}
