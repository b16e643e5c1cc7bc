package tagging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"

	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
	"github.com/cesargomez89/icho/internal/storage"
)

func TestWriteUnsupportedFormat(t *testing.T) {
	w := NewWriter(logger.Default())

	err := w.Write("/m/track.ogg", &domain.ResolvedMetadata{Title: "X"})
	if !errors.Is(err, domain.ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}
}

func TestWriteMissingFile(t *testing.T) {
	w := NewWriter(logger.Default())

	err := w.Write(filepath.Join(t.TempDir(), "missing.mp3"), &domain.ResolvedMetadata{Title: "X"})
	if !errors.Is(err, domain.ErrWriteFailed) {
		t.Errorf("Expected ErrWriteFailed, got %v", err)
	}
}

func TestWriteMP3(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(path, []byte("fake mpeg data"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w := NewWriter(logger.Default())
	meta := &domain.ResolvedMetadata{
		Title:  "Karma Police",
		Artist: "Radiohead",
		Album:  "OK Computer",
		Source: domain.SourceRemote,
	}
	if err := w.Write(path, meta); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// No temp file left behind
	if _, err := os.Stat(storage.TempSibling(path)); !os.IsNotExist(err) {
		t.Error("Expected temp file to be cleaned up")
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open() error = %v", err)
	}
	defer tag.Close()

	if tag.Title() != "Karma Police" {
		t.Errorf("Expected title Karma Police, got %q", tag.Title())
	}
	if tag.Artist() != "Radiohead" {
		t.Errorf("Expected artist Radiohead, got %q", tag.Artist())
	}
	if tag.Album() != "OK Computer" {
		t.Errorf("Expected album OK Computer, got %q", tag.Album())
	}
}

func TestWriteFailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.flac")
	original := []byte("not a real flac stream")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w := NewWriter(logger.Default())
	err := w.Write(path, &domain.ResolvedMetadata{Title: "X"})
	if !errors.Is(err, domain.ErrWriteFailed) {
		t.Fatalf("Expected ErrWriteFailed, got %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != string(original) {
		t.Error("Expected original file to be untouched after a failed write")
	}
	if _, err := os.Stat(storage.TempSibling(path)); !os.IsNotExist(err) {
		t.Error("Expected temp file to be cleaned up")
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/m/a.flac", true},
		{"/m/a.MP3", true},
		{"/m/a.m4a", true},
		{"/m/a.mp4", true},
		{"/m/a.ogg", false},
		{"/m/a.wav", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
