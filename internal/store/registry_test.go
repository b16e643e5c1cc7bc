package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
)

func TestTouchPlaylistRotation(t *testing.T) {
	db := newTestDB(t)

	// One more than the recent limit, spaced out so MRU order is stable
	for i := 0; i <= constants.MaxRecentPlaylists; i++ {
		path := fmt.Sprintf("/playlists/p%d.json", i)
		if err := db.TouchPlaylist(path); err != nil {
			t.Fatalf("TouchPlaylist() error = %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	recent, err := db.RecentPlaylists()
	if err != nil {
		t.Fatalf("RecentPlaylists() error = %v", err)
	}
	if len(recent) != constants.MaxRecentPlaylists {
		t.Fatalf("Expected %d recent playlists, got %d", constants.MaxRecentPlaylists, len(recent))
	}

	// Oldest entry rotated out, newest is first
	if recent[0].Path != fmt.Sprintf("/playlists/p%d.json", constants.MaxRecentPlaylists) {
		t.Errorf("Expected newest playlist first, got %s", recent[0].Path)
	}
	for _, e := range recent {
		if e.Path == "/playlists/p0.json" {
			t.Error("Expected oldest playlist to be evicted")
		}
	}
}

func TestTouchPlaylistMovesToFront(t *testing.T) {
	db := newTestDB(t)

	if err := db.TouchPlaylist("/playlists/a.json"); err != nil {
		t.Fatalf("TouchPlaylist() error = %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if err := db.TouchPlaylist("/playlists/b.json"); err != nil {
		t.Fatalf("TouchPlaylist() error = %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if err := db.TouchPlaylist("/playlists/a.json"); err != nil {
		t.Fatalf("TouchPlaylist() error = %v", err)
	}

	recent, err := db.RecentPlaylists()
	if err != nil {
		t.Fatalf("RecentPlaylists() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 recent playlists, got %d", len(recent))
	}
	if recent[0].Path != "/playlists/a.json" {
		t.Errorf("Expected re-opened playlist first, got %s", recent[0].Path)
	}
}

func TestPinPlaylistSurvivesRotation(t *testing.T) {
	db := newTestDB(t)

	if err := db.PinPlaylist("/playlists/keep.json"); err != nil {
		t.Fatalf("PinPlaylist() error = %v", err)
	}

	for i := 0; i < constants.MaxRecentPlaylists+3; i++ {
		if err := db.TouchPlaylist(fmt.Sprintf("/playlists/p%d.json", i)); err != nil {
			t.Fatalf("TouchPlaylist() error = %v", err)
		}
	}

	pinned, err := db.PinnedPlaylists()
	if err != nil {
		t.Fatalf("PinnedPlaylists() error = %v", err)
	}
	if len(pinned) != 1 || pinned[0].Path != "/playlists/keep.json" {
		t.Errorf("Expected pinned playlist to survive, got %v", pinned)
	}
}

func TestPinPlaylistLimit(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < constants.MaxPinnedPlaylists; i++ {
		if err := db.PinPlaylist(fmt.Sprintf("/playlists/p%d.json", i)); err != nil {
			t.Fatalf("PinPlaylist() error = %v", err)
		}
	}

	err := db.PinPlaylist("/playlists/one-too-many.json")
	if !errors.Is(err, ErrPinnedLimit) {
		t.Errorf("Expected ErrPinnedLimit, got %v", err)
	}

	// Re-pinning an already pinned playlist never counts against the limit
	if err := db.PinPlaylist("/playlists/p0.json"); err != nil {
		t.Errorf("Expected re-pin to succeed, got %v", err)
	}
}

func TestUnpinPlaylist(t *testing.T) {
	db := newTestDB(t)

	if err := db.PinPlaylist("/playlists/a.json"); err != nil {
		t.Fatalf("PinPlaylist() error = %v", err)
	}
	if err := db.UnpinPlaylist("/playlists/a.json"); err != nil {
		t.Fatalf("UnpinPlaylist() error = %v", err)
	}

	pinned, _ := db.PinnedPlaylists()
	if len(pinned) != 0 {
		t.Errorf("Expected no pinned playlists, got %d", len(pinned))
	}

	if err := db.UnpinPlaylist("/playlists/missing.json"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
