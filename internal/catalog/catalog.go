// Package catalog scans the music library directory and reads the tags of
// each audio file it finds.
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
)

// Scanner walks a library directory and builds track listings.
type Scanner struct {
	log *logger.Logger
}

// NewScanner creates a library scanner.
func NewScanner(log *logger.Logger) *Scanner {
	return &Scanner{
		log: log.WithComponent("catalog"),
	}
}

// Scan walks dir recursively and returns a track per audio file, sorted by
// path. Files whose tags cannot be read are still included, with metadata
// guessed from the file name.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]domain.Track, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat library dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library path %s is not a directory", dir)
	}

	var tracks []domain.Track
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Hidden directories hold caches, not music.
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !constants.AudioExtensions[domain.ExtOf(path)] {
			return nil
		}

		track := s.readTrack(path)
		tracks = append(tracks, track)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("library scan failed: %w", err)
	}

	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].Path < tracks[j].Path
	})

	s.log.Info("library scan complete", "dir", dir, "tracks", len(tracks))
	return tracks, nil
}

// readTrack opens one file and reads its embedded tags. Unreadable tags are
// not an error at scan time.
func (s *Scanner) readTrack(path string) domain.Track {
	track := domain.Track{Path: path}

	f, err := os.Open(path)
	if err != nil {
		s.log.Warn("failed to open track", "path", path, "error", err)
		return track
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		s.log.Debug("no readable tags", "path", path, "error", err)
		return track
	}

	track.Title = meta.Title()
	track.Artist = meta.Artist()
	track.Album = meta.Album()
	track.Genre = meta.Genre()
	track.Year = meta.Year()
	track.HasArt = meta.Picture() != nil
	return track
}

// AlbumGroup is one album's tracks as grouped by GroupByAlbum.
type AlbumGroup struct {
	Album  string         `json:"album"`
	Artist string         `json:"artist"`
	Tracks []domain.Track `json:"tracks"`
}

// GroupByAlbum buckets tracks by their album tag. Untagged tracks land in
// a shared unknown bucket.
func GroupByAlbum(tracks []domain.Track) []AlbumGroup {
	byAlbum := make(map[string]*AlbumGroup)
	var order []string

	for _, t := range tracks {
		album := t.Album
		if album == "" {
			album = constants.UnknownAlbum
		}
		g, ok := byAlbum[album]
		if !ok {
			g = &AlbumGroup{Album: album, Artist: t.Artist}
			byAlbum[album] = g
			order = append(order, album)
		}
		if g.Artist != t.Artist {
			g.Artist = ""
		}
		g.Tracks = append(g.Tracks, t)
	}

	sort.Strings(order)
	groups := make([]AlbumGroup, 0, len(order))
	for _, album := range order {
		groups = append(groups, *byAlbum[album])
	}
	return groups
}
