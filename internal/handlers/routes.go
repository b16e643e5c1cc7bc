package handlers

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/library", func(r chi.Router) {
			r.Get("/tracks", h.ListTracks)
			r.Get("/albums", h.ListAlbums)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", h.ListPlaylists)
			r.Get("/recent", h.RecentPlaylists)
			r.Get("/pinned", h.PinnedPlaylists)
			r.Get("/{name}", h.GetPlaylist)
			r.Put("/{name}", h.SavePlaylist)
			r.Delete("/{name}", h.DeletePlaylist)
			r.Post("/{name}/pin", h.PinPlaylist)
			r.Delete("/{name}/pin", h.UnpinPlaylist)
		})

		r.Route("/queue", func(r chi.Router) {
			r.Get("/", h.QueueState)
			r.Post("/scope", h.SetScope)
			r.Get("/upcoming", h.Upcoming)
			r.Post("/play-next", h.PlayNext)
			r.Delete("/upcoming", h.RemoveUpcoming)
			r.Post("/clear", h.ClearUpcoming)
			r.Post("/shuffle", h.SetShuffle)
			r.Post("/repeat", h.SetRepeat)
			r.Post("/autoplay", h.SetAutoplay)
		})

		r.Route("/playback", func(r chi.Router) {
			r.Get("/", h.PlaybackStatus)
			r.Post("/play", h.Play)
			r.Post("/play-track", h.PlayTrack)
			r.Post("/pause", h.Pause)
			r.Post("/stop", h.Stop)
			r.Post("/next", h.Next)
			r.Post("/previous", h.Previous)
			r.Post("/seek", h.Seek)
			r.Post("/volume", h.SetVolume)
		})

		r.Route("/tagging", func(r chi.Router) {
			r.Post("/batches", h.StartBatch)
			r.Get("/batches/{id}", h.BatchStatus)
			r.Get("/batches/{id}/jobs", h.BatchJobs)
			r.Delete("/batches/{id}", h.CancelBatch)
			r.Get("/jobs/recent", h.RecentJobs)
		})

		r.Put("/tracks/metadata", h.EditMetadata)
	})
}
