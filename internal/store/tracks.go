package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/cesargomez89/icho/internal/domain"
)

// TrackMeta is the persisted metadata and provenance for one file.
type TrackMeta struct {
	Path      string           `json:"path" db:"path"`
	Title     string           `json:"title" db:"title"`
	Artist    string           `json:"artist" db:"artist"`
	Album     string           `json:"album" db:"album"`
	TagSource domain.TagSource `json:"tag_source" db:"tag_source"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

func (db *DB) UpsertTrackMeta(meta *TrackMeta) error {
	query := `INSERT INTO tracks (path, title, artist, album, tag_source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			tag_source = excluded.tag_source,
			updated_at = excluded.updated_at`

	_, err := db.Exec(query, meta.Path, meta.Title, meta.Artist, meta.Album, meta.TagSource, time.Now())
	return err
}

func (db *DB) GetTrackMeta(path string) (*TrackMeta, error) {
	query := `SELECT path, title, artist, album, tag_source, updated_at FROM tracks WHERE path = ?`

	meta := &TrackMeta{}
	err := db.Get(meta, query, path)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// TagSourceOf returns a track's recorded provenance. Unknown paths are
// simply untagged.
func (db *DB) TagSourceOf(path string) (domain.TagSource, error) {
	meta, err := db.GetTrackMeta(path)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.TagSourceUntagged, nil
	}
	if err != nil {
		return "", err
	}
	return meta.TagSource, nil
}
