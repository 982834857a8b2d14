package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songshelf/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

// pages lists the views rendered by the song handler. Each is parsed together
// with the base layout so they share navigation and styling.
var pages = []string{
	"index.html",
	"detail.html",
	"create.html",
	"edit.html",
	"delete.html",
	"error.html",
}

// Renderer executes embedded HTML templates against the base layout.
type Renderer struct {
	templates map[string]*template.Template
	logger    *log.Logger
}

// NewRenderer parses every page template against the shared layout.
// Parsing happens once at startup so a broken template fails fast.
func NewRenderer(logger *log.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))

	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFiles, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}

		templates[page] = tmpl
	}

	return &Renderer{templates: templates, logger: logger}, nil
}

// Render writes the named page with the given status code. The template is
// executed into a buffer first so a rendering failure produces a clean 500
// instead of a half-written page.
func (rnd *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := rnd.templates[page]
	if !ok {
		rnd.logger.Error("unknown template", "page", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		rnd.logger.Error("template execution failed", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// indexData backs the song listing view.
type indexData struct {
	Songs   []*models.Song
	Sort    models.SortKey
	Toggles models.SortToggles
}

// songData backs the detail and delete confirmation views.
type songData struct {
	Song *models.Song
	CSRF template.HTML
}

// formData backs the create and edit forms. Values holds the submitted input
// so a failed submission re-renders with the user's text intact.
type formData struct {
	Song   *models.Song
	Values map[string]string
	Errors []string
	CSRF   template.HTML
}

// errorData backs the error page shown when a lookup or write fails.
type errorData struct {
	Title   string
	Message string
}
