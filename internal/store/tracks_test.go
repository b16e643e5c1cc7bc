package store

import (
	"errors"
	"testing"

	"github.com/cesargomez89/icho/internal/domain"
)

func TestUpsertAndGetTrackMeta(t *testing.T) {
	db := newTestDB(t)

	meta := &TrackMeta{
		Path:      "/music/a.flac",
		Title:     "Airbag",
		Artist:    "Radiohead",
		Album:     "OK Computer",
		TagSource: domain.TagSourceRemote,
	}
	if err := db.UpsertTrackMeta(meta); err != nil {
		t.Fatalf("UpsertTrackMeta() error = %v", err)
	}

	got, err := db.GetTrackMeta("/music/a.flac")
	if err != nil {
		t.Fatalf("GetTrackMeta() error = %v", err)
	}
	if got.Title != "Airbag" || got.TagSource != domain.TagSourceRemote {
		t.Errorf("Unexpected meta: %+v", got)
	}

	// Upsert replaces
	meta.Title = "Airbag (Edit)"
	meta.TagSource = domain.TagSourceManual
	if err := db.UpsertTrackMeta(meta); err != nil {
		t.Fatalf("UpsertTrackMeta() error = %v", err)
	}
	got, _ = db.GetTrackMeta("/music/a.flac")
	if got.Title != "Airbag (Edit)" || got.TagSource != domain.TagSourceManual {
		t.Errorf("Expected updated meta, got %+v", got)
	}
}

func TestGetTrackMetaNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetTrackMeta("/missing.mp3")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestTagSourceOf(t *testing.T) {
	db := newTestDB(t)

	source, err := db.TagSourceOf("/never/seen.mp3")
	if err != nil {
		t.Fatalf("TagSourceOf() error = %v", err)
	}
	if source != domain.TagSourceUntagged {
		t.Errorf("Expected untagged for unknown path, got %s", source)
	}

	if err := db.UpsertTrackMeta(&TrackMeta{Path: "/music/b.mp3", TagSource: domain.TagSourceManual}); err != nil {
		t.Fatalf("UpsertTrackMeta() error = %v", err)
	}
	source, err = db.TagSourceOf("/music/b.mp3")
	if err != nil {
		t.Fatalf("TagSourceOf() error = %v", err)
	}
	if source != domain.TagSourceManual {
		t.Errorf("Expected manual, got %s", source)
	}
}
