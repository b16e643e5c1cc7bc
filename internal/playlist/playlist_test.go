package playlist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	return NewManager(filepath.Join(dir, "playlists"), logger.Default()), dir
}

func writeTrack(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestSaveAndLoad(t *testing.T) {
	m, dir := newTestManager(t)

	a := writeTrack(t, dir, "a.flac")
	b := writeTrack(t, dir, "b.flac")

	doc := &Document{Name: "favorites", Tracks: []string{a, b}, CurrentIndex: 1}
	if err := m.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := m.Load("favorites")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(got.Tracks))
	}
	if got.CurrentIndex != 1 {
		t.Errorf("Expected current index 1, got %d", got.CurrentIndex)
	}
}

func TestLoadNotFound(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Load("missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadSkipsMissingTracks(t *testing.T) {
	m, dir := newTestManager(t)

	a := writeTrack(t, dir, "a.flac")
	gone := filepath.Join(dir, "deleted.flac")
	b := writeTrack(t, dir, "b.flac")

	doc := &Document{Name: "mix", Tracks: []string{a, gone, b}, CurrentIndex: 2}
	if err := m.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := m.Load("mix")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("Expected 2 surviving tracks, got %d", len(got.Tracks))
	}
	// Position shifted down past the dropped entry, still pointing at b
	if got.CurrentIndex != 1 {
		t.Errorf("Expected current index 1, got %d", got.CurrentIndex)
	}
	if got.Tracks[got.CurrentIndex] != b {
		t.Errorf("Expected position to track the same file, got %s", got.Tracks[got.CurrentIndex])
	}
}

func TestLoadDropsDuplicates(t *testing.T) {
	m, dir := newTestManager(t)

	a := writeTrack(t, dir, "a.mp3")
	b := writeTrack(t, dir, "b.mp3")

	doc := &Document{Name: "dupes", Tracks: []string{a, b, a}}
	if err := m.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := m.Load("dupes")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("Expected 2 tracks after dedup, got %d", len(got.Tracks))
	}
	if got.Tracks[0] != a || got.Tracks[1] != b {
		t.Errorf("Expected first occurrence order preserved, got %v", got.Tracks)
	}
}

func TestLoadClampsOutOfRangeIndex(t *testing.T) {
	m, dir := newTestManager(t)

	a := writeTrack(t, dir, "a.flac")
	doc := &Document{Name: "short", Tracks: []string{a}, CurrentIndex: 9}
	if err := m.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := m.Load("short")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.CurrentIndex != 0 {
		t.Errorf("Expected clamped index 0, got %d", got.CurrentIndex)
	}
}

func TestSaveSanitizesName(t *testing.T) {
	m, _ := newTestManager(t)

	doc := &Document{Name: "road/trip?"}
	if err := m.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path := m.PathFor("road/trip?")
	if filepath.Base(path) != "roadtrip.json" {
		t.Errorf("Expected sanitized file name, got %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected playlist file to exist: %v", err)
	}
}

func TestSaveEmptyName(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.Save(&Document{}); err == nil {
		t.Error("Expected error for empty playlist name")
	}
}

func TestList(t *testing.T) {
	m, _ := newTestManager(t)

	names, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Expected no playlists, got %v", names)
	}

	for _, name := range []string{"alpha", "beta"} {
		if err := m.Save(&Document{Name: name}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	names, err = m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("Expected 2 playlists, got %v", names)
	}
}

func TestDelete(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.Save(&Document{Name: "gone"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Delete("gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := m.Delete("gone"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveDropsDuplicates(t *testing.T) {
	m, dir := newTestManager(t)

	a := writeTrack(t, dir, "a.flac")
	b := writeTrack(t, dir, "b.flac")

	doc := &Document{Name: "dupes", Tracks: []string{a, b, a}, CurrentIndex: 2}
	if err := m.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// The stored document itself holds the deduped order.
	data, err := os.ReadFile(m.PathFor("dupes"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var stored Document
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(stored.Tracks) != 2 || stored.Tracks[0] != a || stored.Tracks[1] != b {
		t.Errorf("stored tracks = %v, want [%s %s]", stored.Tracks, a, b)
	}
	if stored.CurrentIndex != 1 {
		t.Errorf("stored current_index = %d, want 1", stored.CurrentIndex)
	}
	if len(doc.Tracks) != 2 {
		t.Errorf("caller document tracks = %v, want deduped", doc.Tracks)
	}
}

func TestLoadCorruptFileReturnsEmptyPlaylist(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.Save(&Document{Name: "broken"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := os.WriteFile(m.PathFor("broken"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := m.Load("broken")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Name != "broken" || len(got.Tracks) != 0 {
		t.Errorf("Load() = %+v, want empty playlist named broken", got)
	}
}
