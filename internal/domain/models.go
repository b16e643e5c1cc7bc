// Package domain holds the core types shared across the application.
package domain

import (
	"time"
)

// Track represents a single audio file in the library.
type Track struct {
	Path     string        `json:"path" db:"path"`
	Title    string        `json:"title" db:"title"`
	Artist   string        `json:"artist" db:"artist"`
	Album    string        `json:"album" db:"album"`
	Genre    string        `json:"genre,omitempty" db:"genre"`
	Year     int           `json:"year,omitempty" db:"year"`
	Duration time.Duration `json:"duration,omitempty" db:"duration"`
	HasArt   bool          `json:"has_art" db:"has_art"`
}

// DisplayTitle returns the title, falling back to the file name stem
// when the title tag is empty.
func (t *Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return StemOf(t.Path)
}

// MetadataSource identifies where a resolved field came from.
type MetadataSource string

const (
	SourceExisting MetadataSource = "existing"
	SourceFilename MetadataSource = "filename"
	SourceRemote   MetadataSource = "remote"
)

// TagSource records how a track's metadata was last set. Manual edits are
// protected from being overwritten by automatic tagging.
type TagSource string

const (
	TagSourceUntagged TagSource = "untagged"
	TagSourceFilename TagSource = "filename"
	TagSourceRemote   TagSource = "remote"
	TagSourceManual   TagSource = "manual"
)

// TagSource maps a resolution source to the provenance it leaves behind.
func (s MetadataSource) TagSource() TagSource {
	switch s {
	case SourceFilename:
		return TagSourceFilename
	case SourceRemote:
		return TagSourceRemote
	}
	return TagSourceUntagged
}

// ResolvedMetadata is the outcome of resolving a track's tags from its
// current tags, its filename and the online lookup.
type ResolvedMetadata struct {
	Title       string         `json:"title"`
	Artist      string         `json:"artist"`
	Album       string         `json:"album,omitempty"`
	Date        string         `json:"date,omitempty"`
	RecordingID string         `json:"recording_id,omitempty"`
	ReleaseID   string         `json:"release_id,omitempty"`
	CoverArt    []byte         `json:"-"`
	CoverMIME   string         `json:"cover_mime,omitempty"`
	Source      MetadataSource `json:"source"`
}

// HasCoverArt reports whether the resolution produced embeddable artwork.
func (m *ResolvedMetadata) HasCoverArt() bool {
	return len(m.CoverArt) > 0
}

// JobStatus represents the lifecycle state of a tag job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusSkipped   JobStatus = "skipped"
	JobStatusCancelled JobStatus = "cancelled"
)

// Terminal reports whether the status is a final one.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusSucceeded, JobStatusFailed, JobStatusSkipped, JobStatusCancelled:
		return true
	}
	return false
}

// TagJob tracks one file through the tagging pipeline.
type TagJob struct {
	ID         string     `json:"id" db:"id"`
	BatchID    string     `json:"batch_id" db:"batch_id"`
	Path       string     `json:"path" db:"path"`
	Status     JobStatus  `json:"status" db:"status"`
	Source     string     `json:"source,omitempty" db:"source"`
	Error      *string    `json:"error,omitempty" db:"error"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" db:"finished_at"`
}

// BatchSummary aggregates the outcomes of one tagging batch.
type BatchSummary struct {
	BatchID   string `json:"batch_id"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
	Cancelled int    `json:"cancelled"`
	Pending   int    `json:"pending"`
}

// Done reports whether every job in the batch reached a terminal state.
func (b *BatchSummary) Done() bool {
	return b.Pending == 0
}
