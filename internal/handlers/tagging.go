package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/store"
)

type startBatchRequest struct {
	Paths []string `json:"paths"`
	Force bool     `json:"force"`
}

func (h *Handler) StartBatch(w http.ResponseWriter, r *http.Request) {
	var req startBatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Paths) == 0 {
		h.respondError(w, http.StatusBadRequest, "no paths given")
		return
	}
	// The batch outlives the request, so it must not inherit its context.
	batchID, err := h.Pipeline.Start(context.Background(), req.Paths, req.Force)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, map[string]string{"batch_id": batchID})
}

func (h *Handler) BatchStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Pipeline.Summary(chi.URLParam(r, "id"))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) BatchJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Pipeline.Jobs(chi.URLParam(r, "id"))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

func (h *Handler) CancelBatch(w http.ResponseWriter, r *http.Request) {
	if err := h.Pipeline.Cancel(chi.URLParam(r, "id")); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) RecentJobs(w http.ResponseWriter, r *http.Request) {
	limit := constants.MaxJobHistoryItems
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		if n < limit {
			limit = n
		}
	}
	jobs, err := h.DB.ListRecentTagJobs(limit)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

type editMetadataRequest struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Date   string `json:"date"`
}

// EditMetadata writes user-supplied tags straight to the file and marks the
// track as manually edited, which shields it from later automatic runs.
func (h *Handler) EditMetadata(w http.ResponseWriter, r *http.Request) {
	var req editMetadataRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Path == "" {
		h.respondError(w, http.StatusBadRequest, "missing track path")
		return
	}

	if !h.Pipeline.AcquirePath(req.Path) {
		h.respondError(w, http.StatusConflict, "file is being tagged, try again")
		return
	}
	defer h.Pipeline.ReleasePath(req.Path)

	meta := &domain.ResolvedMetadata{
		Title:  req.Title,
		Artist: req.Artist,
		Album:  req.Album,
		Date:   req.Date,
	}
	if err := h.Writer.Write(req.Path, meta); err != nil {
		h.respondDomainError(w, err)
		return
	}
	err := h.DB.UpsertTrackMeta(&store.TrackMeta{
		Path:      req.Path,
		Title:     req.Title,
		Artist:    req.Artist,
		Album:     req.Album,
		TagSource: domain.TagSourceManual,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.Logger.Info("manual metadata edit", "track_path", req.Path)
	h.respondJSON(w, http.StatusOK, map[string]string{
		"path":       req.Path,
		"tag_source": string(domain.TagSourceManual),
	})
}
