// Package tagging resolves metadata for audio files and writes it back into
// their containers.
package tagging

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/dhowden/tag"

	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
	"github.com/cesargomez89/icho/internal/musicbrainz"
)

// RecordingSearcher looks up the best recording match for an artist/title pair.
type RecordingSearcher interface {
	SearchRecording(ctx context.Context, artist, title string) (*musicbrainz.RecordingMatch, error)
}

// CoverFetcher fetches front cover artwork for a release.
type CoverFetcher interface {
	FrontCover(ctx context.Context, releaseID string) ([]byte, string, error)
}

// Resolver combines a file's existing tags, its filename and the online
// lookup into one metadata candidate.
type Resolver struct {
	mb       RecordingSearcher
	covers   CoverFetcher
	scraping bool
	log      *logger.Logger
}

func NewResolver(mb RecordingSearcher, covers CoverFetcher, scraping bool, log *logger.Logger) *Resolver {
	return &Resolver{
		mb:       mb,
		covers:   covers,
		scraping: scraping,
		log:      log.WithComponent("resolver"),
	}
}

// Resolve produces the metadata to write for one file. A file that is
// already fully tagged comes back with SourceExisting so the caller can skip
// it. Zero online matches fall back to the filename guess; a lookup that
// fails outright is an error.
func (r *Resolver) Resolve(ctx context.Context, path string) (*domain.ResolvedMetadata, error) {
	existing := readExistingTags(path)

	if existing.Title != "" && existing.Artist != "" && existing.Album != "" && existing.HasArt {
		return &domain.ResolvedMetadata{
			Title:  existing.Title,
			Artist: existing.Artist,
			Album:  existing.Album,
			Source: domain.SourceExisting,
		}, nil
	}

	artist, title := GuessFromFilename(path)
	if existing.Artist != "" {
		artist = existing.Artist
	}
	if existing.Title != "" {
		title = existing.Title
	}

	guess := &domain.ResolvedMetadata{
		Title:  title,
		Artist: artist,
		Album:  existing.Album,
		Source: domain.SourceFilename,
	}

	if !r.scraping {
		return guess, nil
	}

	match, err := r.mb.SearchRecording(ctx, artist, title)
	if err != nil {
		return nil, err
	}
	if match == nil {
		r.log.Debug("no online match, keeping filename guess", "path", path)
		return guess, nil
	}

	resolved := &domain.ResolvedMetadata{
		Title:       match.Title,
		Artist:      match.Artist,
		Album:       match.Album,
		Date:        match.Date,
		RecordingID: match.RecordingID,
		ReleaseID:   match.ReleaseID,
		Source:      domain.SourceRemote,
	}
	if resolved.Title == "" {
		resolved.Title = guess.Title
	}
	if resolved.Artist == "" {
		resolved.Artist = guess.Artist
	}
	if resolved.Album == "" {
		resolved.Album = guess.Album
	}

	if match.ReleaseID != "" {
		art, mime, err := r.covers.FrontCover(ctx, match.ReleaseID)
		if err != nil {
			// Missing or unreachable artwork never fails the resolution.
			r.log.Warn("cover art fetch failed", "path", path, "release_id", match.ReleaseID, "error", err)
		} else if len(art) > 0 {
			resolved.CoverArt = art
			resolved.CoverMIME = mime
		}
	}

	return resolved, nil
}

// readExistingTags reads whatever tags the file already carries. A file with
// no readable tags is simply untagged.
func readExistingTags(path string) domain.Track {
	track := domain.Track{Path: path}

	f, err := os.Open(path)
	if err != nil {
		return track
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return track
	}

	track.Title = meta.Title()
	track.Artist = meta.Artist()
	track.Album = meta.Album()
	track.HasArt = meta.Picture() != nil
	return track
}

var (
	// Parenthesised or bracketed upload noise like "(Official Video)".
	noisePattern = regexp.MustCompile(`(?i)\s*[(\[][^)\]]*(official|video|audio|lyric|lyrics|visuali[sz]er|remaster(ed)?|hd|hq|mv)[^)\]]*[)\]]`)

	// Leading track numbers like "01 - " or "3. ".
	trackNumPattern = regexp.MustCompile(`^\s*\d{1,3}\s*[-._]\s+`)

	// Artist/title separator: hyphen, en dash or em dash with spacing.
	separatorPattern = regexp.MustCompile(`\s+[-\x{2013}\x{2014}]\s+`)
)

// GuessFromFilename derives an artist and title from a file name of the
// form "Artist - Title" (hyphen, en dash or em dash), after stripping
// upload noise. Names without a separator yield only a title.
func GuessFromFilename(path string) (artist, title string) {
	stem := domain.StemOf(path)
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = noisePattern.ReplaceAllString(stem, "")
	stem = trackNumPattern.ReplaceAllString(stem, "")
	stem = strings.Join(strings.Fields(stem), " ")

	if parts := separatorPattern.Split(stem, 2); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", stem
}
