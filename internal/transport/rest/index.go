package rest

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/shoplite/catalog/internal/catalog"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// indexData carries the dynamic parts of the admin page.
type indexData struct {
	Categories []catalog.Category
}

// Index renders the catalog administration page. The element IDs follow the
// <field>-input / <field>-dropdown / <field>-btn convention expected by the
// browser automation harness.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexData{Categories: catalog.Categories()}); err != nil {
		mLogger.ErrorContext(r.Context(), "Error rendering index page", "error", err)
	}
}
