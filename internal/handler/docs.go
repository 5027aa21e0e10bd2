package handler

import (
	"net/http"

	"github.com/pictor/pictor/docs"
)

// DocsHandler serves API documentation.
type DocsHandler struct {
	baseURL string
}

// NewDocsHandler creates a DocsHandler. baseURL, when non-empty, points
// at an externally hosted documentation site.
func NewDocsHandler(baseURL string) *DocsHandler {
	return &DocsHandler{baseURL: baseURL}
}

// Docs handles GET /api/docs.
// Redirects to the hosted documentation when configured, otherwise
// points the caller at the embedded spec.
func (h *DocsHandler) Docs(w http.ResponseWriter, r *http.Request) {
	if h.baseURL != "" {
		http.Redirect(w, r, h.baseURL, http.StatusFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"openapi": "/api/docs/openapi.yaml",
	})
}

// Spec handles GET /api/docs/openapi.yaml, serving the embedded document.
func (h *DocsHandler) Spec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(docs.OpenAPISpec)
}
