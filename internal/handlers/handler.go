// Package handlers exposes the player over a local JSON API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cesargomez89/icho/internal/catalog"
	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
	"github.com/cesargomez89/icho/internal/playback"
	"github.com/cesargomez89/icho/internal/playlist"
	"github.com/cesargomez89/icho/internal/queue"
	"github.com/cesargomez89/icho/internal/store"
	"github.com/cesargomez89/icho/internal/tagging"
)

type Handler struct {
	Scanner     *catalog.Scanner
	LibraryDir  string
	Playlists   *playlist.Manager
	DB          *store.DB
	Session     *queue.Session
	Coordinator *playback.Coordinator
	Pipeline    *tagging.Pipeline
	Writer      *tagging.Writer
	Logger      *logger.Logger
}

func NewHandler(
	scanner *catalog.Scanner,
	libraryDir string,
	playlists *playlist.Manager,
	db *store.DB,
	session *queue.Session,
	coordinator *playback.Coordinator,
	pipeline *tagging.Pipeline,
	writer *tagging.Writer,
	log *logger.Logger,
) *Handler {
	return &Handler{
		Scanner:     scanner,
		LibraryDir:  libraryDir,
		Playlists:   playlists,
		DB:          db,
		Session:     session,
		Coordinator: coordinator,
		Pipeline:    pipeline,
		Writer:      writer,
		Logger:      log.WithComponent("http"),
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("encoding response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}

// respondDomainError maps sentinel errors onto HTTP statuses.
func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnsupported):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrQueueExhausted):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrRemoteUnavailable):
		h.respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, store.ErrPinnedLimit):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
