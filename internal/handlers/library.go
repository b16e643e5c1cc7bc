package handlers

import (
	"net/http"

	"github.com/cesargomez89/icho/internal/catalog"
)

// ListTracks walks the library directory and returns every audio track.
func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Scanner.Scan(r.Context(), h.LibraryDir)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tracks": tracks,
		"total":  len(tracks),
	})
}

// ListAlbums groups the scanned library by album tag.
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Scanner.Scan(r.Context(), h.LibraryDir)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"albums": catalog.GroupByAlbum(tracks),
	})
}
