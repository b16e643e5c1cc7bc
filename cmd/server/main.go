package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cesargomez89/icho/internal/catalog"
	"github.com/cesargomez89/icho/internal/config"
	"github.com/cesargomez89/icho/internal/handlers"
	"github.com/cesargomez89/icho/internal/logger"
	"github.com/cesargomez89/icho/internal/musicbrainz"
	"github.com/cesargomez89/icho/internal/playback"
	"github.com/cesargomez89/icho/internal/playlist"
	"github.com/cesargomez89/icho/internal/queue"
	"github.com/cesargomez89/icho/internal/storage"
	"github.com/cesargomez89/icho/internal/store"
	"github.com/cesargomez89/icho/internal/tagging"
)

func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if err := storage.EnsureDir(cfg.PlaylistsDir); err != nil {
		appLogger.Error("Failed to create playlists dir", "error", err)
		os.Exit(1)
	}

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Jobs left running by a previous crash go back to the queue.
	if err := db.ResetStuckTagJobs(); err != nil {
		appLogger.Warn("Failed to reset stuck tag jobs", "error", err)
	}

	scanner := catalog.NewScanner(appLogger)
	playlists := playlist.NewManager(cfg.PlaylistsDir, appLogger)

	mb := musicbrainz.NewClient(cfg.MusicBrainzURL)
	covers := musicbrainz.NewCoverArtClient(cfg.CoverArtURL)
	resolver := tagging.NewResolver(mb, covers, cfg.ScrapingEnabled, appLogger)
	writer := tagging.NewWriter(appLogger)
	pipeline := tagging.NewPipeline(resolver, writer, db, cfg.TagWorkers, appLogger)

	session := queue.NewSession(appLogger)
	backend := playback.NewNullBackend(appLogger)
	coordinator := playback.NewCoordinator(session, backend, appLogger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := handlers.NewHandler(scanner, cfg.LibraryDir, playlists, db, session, coordinator, pipeline, writer, appLogger)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
