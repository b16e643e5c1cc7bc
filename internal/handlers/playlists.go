package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/icho/internal/playlist"
)

func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	names, err := h.Playlists.List()
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"playlists": names})
}

// GetPlaylist loads a playlist and records the open in the registry so it
// shows up under recents.
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := h.Playlists.Load(name)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	if err := h.DB.TouchPlaylist(h.Playlists.PathFor(name)); err != nil {
		h.Logger.Warn("recording playlist open", "playlist", name, "error", err)
	}
	h.respondJSON(w, http.StatusOK, doc)
}

func (h *Handler) SavePlaylist(w http.ResponseWriter, r *http.Request) {
	var doc playlist.Document
	if !h.decode(w, r, &doc) {
		return
	}
	doc.Name = chi.URLParam(r, "name")
	if err := h.Playlists.Save(&doc); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, doc)
}

func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := h.Playlists.Delete(chi.URLParam(r, "name")); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) PinPlaylist(w http.ResponseWriter, r *http.Request) {
	path := h.Playlists.PathFor(chi.URLParam(r, "name"))
	if err := h.DB.PinPlaylist(path); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) UnpinPlaylist(w http.ResponseWriter, r *http.Request) {
	path := h.Playlists.PathFor(chi.URLParam(r, "name"))
	if err := h.DB.UnpinPlaylist(path); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) RecentPlaylists(w http.ResponseWriter, r *http.Request) {
	entries, err := h.DB.RecentPlaylists()
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"recent": entries})
}

func (h *Handler) PinnedPlaylists(w http.ResponseWriter, r *http.Request) {
	entries, err := h.DB.PinnedPlaylists()
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"pinned": entries})
}
