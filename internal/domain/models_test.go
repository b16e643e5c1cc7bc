package domain

import (
	"testing"
)

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  string
	}{
		{
			name:  "uses title tag when present",
			track: Track{Path: "/music/01 - song.flac", Title: "Song"},
			want:  "Song",
		},
		{
			name:  "falls back to file stem",
			track: Track{Path: "/music/Artist - Song.mp3"},
			want:  "Artist - Song",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.DisplayTitle(); got != tt.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJobStatusTerminal(t *testing.T) {
	terminal := []JobStatus{JobStatusSucceeded, JobStatusFailed, JobStatusSkipped, JobStatusCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("Expected %s to be terminal", s)
		}
	}

	for _, s := range []JobStatus{JobStatusQueued, JobStatusRunning} {
		if s.Terminal() {
			t.Errorf("Expected %s to not be terminal", s)
		}
	}
}

func TestStemOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/music/Artist - Title.flac", "Artist - Title"},
		{"song.mp3", "song"},
		{"/music/no-extension", "no-extension"},
		{"/music/dotted.name.m4a", "dotted.name"},
	}

	for _, tt := range tests {
		if got := StemOf(tt.path); got != tt.want {
			t.Errorf("StemOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExtOf(t *testing.T) {
	if got := ExtOf("/music/Song.FLAC"); got != ".flac" {
		t.Errorf("ExtOf() = %q, want .flac", got)
	}
	if got := ExtOf("/music/noext"); got != "" {
		t.Errorf("ExtOf() = %q, want empty", got)
	}
}

func TestBatchSummaryDone(t *testing.T) {
	b := BatchSummary{Total: 3, Succeeded: 2, Failed: 1}
	if !b.Done() {
		t.Error("Expected Done() to be true with no pending jobs")
	}

	b.Pending = 1
	if b.Done() {
		t.Error("Expected Done() to be false with pending jobs")
	}
}

func TestHasCoverArt(t *testing.T) {
	m := ResolvedMetadata{}
	if m.HasCoverArt() {
		t.Error("Expected no cover art")
	}

	m.CoverArt = []byte{0xFF, 0xD8}
	if !m.HasCoverArt() {
		t.Error("Expected cover art")
	}
}
