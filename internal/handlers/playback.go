package handlers

import (
	"net/http"
	"time"

	"github.com/cesargomez89/icho/internal/domain"
)

func (h *Handler) PlaybackStatus(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"state":   h.Session.State(),
		"current": h.Session.Current(),
		"volume":  h.Coordinator.Volume(),
	})
}

func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	if err := h.Coordinator.Play(); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"current": h.Session.Current()})
}

type playTrackRequest struct {
	Track domain.Track `json:"track"`
}

func (h *Handler) PlayTrack(w http.ResponseWriter, r *http.Request) {
	var req playTrackRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Track.Path == "" {
		h.respondError(w, http.StatusBadRequest, "missing track path")
		return
	}
	if err := h.Coordinator.PlayTrack(req.Track); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"current": h.Session.Current()})
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.Coordinator.Pause(); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	if err := h.Coordinator.Stop(); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	if err := h.Coordinator.Next(); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"current": h.Session.Current()})
}

func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	if err := h.Coordinator.Previous(); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"current": h.Session.Current()})
}

type seekRequest struct {
	PositionMS int64 `json:"position_ms"`
}

func (h *Handler) Seek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.PositionMS < 0 {
		h.respondError(w, http.StatusBadRequest, "position must not be negative")
		return
	}
	if err := h.Coordinator.Seek(time.Duration(req.PositionMS) * time.Millisecond); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

type volumeRequest struct {
	Percent int `json:"percent"`
}

func (h *Handler) SetVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.Coordinator.SetVolume(req.Percent); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int{"volume": h.Coordinator.Volume()})
}
