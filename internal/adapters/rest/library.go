package rest

import (
	"net/http"

	"github.com/ewhitmore/trackbox/internal/core/domain"
)

type libraryResponse struct {
	Loading bool           `json:"loading"`
	Stale   bool           `json:"stale"`
	Tracks  []domain.Track `json:"tracks"`
}

// GetLibrary handles GET /library. It exposes the current enriched library
// plus the loading and staleness flags; there is no mutation surface.
func (h *Handler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	lib := h.reader.Library()

	tracks := lib.Tracks
	if tracks == nil {
		tracks = []domain.Track{}
	}

	writeJSON(w, http.StatusOK, libraryResponse{
		Loading: h.reader.Loading(),
		Stale:   h.reader.Stale(),
		Tracks:  tracks,
	})
}
