package store

import (
	"errors"
	"time"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
)

// ErrPinnedLimit is returned when pinning would exceed the pinned playlist cap.
var ErrPinnedLimit = errors.New("pinned playlist limit reached")

// RegistryEntry is one playlist known to the registry.
type RegistryEntry struct {
	Path         string    `json:"path" db:"path"`
	Pinned       bool      `json:"pinned" db:"pinned"`
	LastOpenedAt time.Time `json:"last_opened_at" db:"last_opened_at"`
}

// TouchPlaylist records that a playlist was opened, moving it to the front
// of the recent list. Unpinned entries beyond the recent limit are evicted.
func (db *DB) TouchPlaylist(path string) error {
	now := time.Now()
	_, err := db.Exec(`INSERT INTO playlist_registry (path, pinned, last_opened_at) VALUES (?, 0, ?)
		ON CONFLICT(path) DO UPDATE SET last_opened_at = excluded.last_opened_at`, path, now)
	if err != nil {
		return err
	}

	_, err = db.Exec(`DELETE FROM playlist_registry WHERE pinned = 0 AND path NOT IN (
		SELECT path FROM playlist_registry WHERE pinned = 0 ORDER BY last_opened_at DESC LIMIT ?
	)`, constants.MaxRecentPlaylists)
	return err
}

// PinPlaylist marks a playlist pinned so it never rotates out of the
// registry. Fails once the pinned limit is reached.
func (db *DB) PinPlaylist(path string) error {
	var pinned int
	if err := db.Get(&pinned, `SELECT COUNT(*) FROM playlist_registry WHERE pinned = 1 AND path != ?`, path); err != nil {
		return err
	}
	if pinned >= constants.MaxPinnedPlaylists {
		return ErrPinnedLimit
	}

	_, err := db.Exec(`INSERT INTO playlist_registry (path, pinned, last_opened_at) VALUES (?, 1, ?)
		ON CONFLICT(path) DO UPDATE SET pinned = 1`, path, time.Now())
	return err
}

func (db *DB) UnpinPlaylist(path string) error {
	res, err := db.Exec(`UPDATE playlist_registry SET pinned = 0 WHERE path = ?`, path)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecentPlaylists returns unpinned playlists in most recently opened order.
func (db *DB) RecentPlaylists() ([]RegistryEntry, error) {
	var entries []RegistryEntry
	err := db.Select(&entries, `SELECT path, pinned, last_opened_at FROM playlist_registry
		WHERE pinned = 0 ORDER BY last_opened_at DESC LIMIT ?`, constants.MaxRecentPlaylists)
	return entries, err
}

func (db *DB) PinnedPlaylists() ([]RegistryEntry, error) {
	var entries []RegistryEntry
	err := db.Select(&entries, `SELECT path, pinned, last_opened_at FROM playlist_registry
		WHERE pinned = 1 ORDER BY path ASC`)
	return entries, err
}
