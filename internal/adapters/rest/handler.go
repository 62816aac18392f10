package rest

import (
	"net/http"

	"github.com/ewhitmore/trackbox/internal/core/domain"
)

// LibraryReader is the read-only view the presentation layer consumes.
type LibraryReader interface {
	Library() domain.Library
	Loading() bool
	Stale() bool
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	reader LibraryReader
	router *http.ServeMux // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(reader LibraryReader) *Handler {
	h := &Handler{
		reader: reader,
		router: http.NewServeMux(),
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It acts as a proxy, passing the request to our internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Read-only library exposure
	h.router.HandleFunc("GET /library", h.GetLibrary)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
