package handlers

import (
	"net/http"

	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/queue"
)

type scopeRequest struct {
	Origin string         `json:"origin"`
	Tracks []domain.Track `json:"tracks"`
}

func (h *Handler) SetScope(w http.ResponseWriter, r *http.Request) {
	var req scopeRequest
	if !h.decode(w, r, &req) {
		return
	}
	origin := queue.OriginPlaylist
	if req.Origin == string(queue.OriginAlbum) {
		origin = queue.OriginAlbum
	}
	h.Session.SetScope(req.Tracks, origin)
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) QueueState(w http.ResponseWriter, r *http.Request) {
	shuffle, repeat, autoplay := h.Session.Flags()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"state":    h.Session.State(),
		"current":  h.Session.Current(),
		"shuffle":  shuffle,
		"repeat":   repeat,
		"autoplay": autoplay,
		"history":  h.Session.History(),
	})
}

func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"upcoming": h.Session.PeekUpcoming(),
	})
}

type playNextRequest struct {
	Tracks []domain.Track `json:"tracks"`
}

func (h *Handler) PlayNext(w http.ResponseWriter, r *http.Request) {
	var req playNextRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Tracks) == 0 {
		h.respondError(w, http.StatusBadRequest, "no tracks given")
		return
	}
	h.Session.InsertPlayNext(req.Tracks...)
	h.respondJSON(w, http.StatusNoContent, nil)
}

// RemoveUpcoming drops one upcoming occurrence of the path given in the
// "path" query parameter.
func (h *Handler) RemoveUpcoming(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		h.respondError(w, http.StatusBadRequest, "missing path parameter")
		return
	}
	if !h.Session.RemoveUpcoming(path) {
		h.respondError(w, http.StatusNotFound, "track not in upcoming queue")
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ClearUpcoming(w http.ResponseWriter, r *http.Request) {
	h.Session.ClearUpcoming()
	h.respondJSON(w, http.StatusNoContent, nil)
}

type flagRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) SetShuffle(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.Session.SetShuffle(req.Enabled)
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) SetRepeat(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.Session.SetRepeat(req.Enabled)
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) SetAutoplay(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.Session.SetAutoplay(req.Enabled)
	h.respondJSON(w, http.StatusNoContent, nil)
}
