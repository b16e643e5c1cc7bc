package tagging

import (
	"fmt"
	"strconv"

	mp4tag "github.com/Sorrow446/go-mp4tag"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
)

// writeMP4 writes iTunes-style atoms to an M4A/MP4 file.
func writeMP4(path string, meta *domain.ResolvedMetadata) error {
	f, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open MP4 file: %w", err)
	}
	defer f.Close()

	tags := &mp4tag.MP4Tags{
		Title:  meta.Title,
		Artist: meta.Artist,
		Album:  meta.Album,
	}

	if len(meta.Date) >= 4 {
		if year, err := strconv.Atoi(meta.Date[:4]); err == nil {
			tags.Year = int32(year)
		}
	}

	if meta.HasCoverArt() {
		format := mp4tag.ImageTypeAuto
		switch meta.CoverMIME {
		case constants.MimeTypeJPEG:
			format = mp4tag.ImageTypeJPEG
		case constants.MimeTypePNG:
			format = mp4tag.ImageTypePNG
		}
		tags.Pictures = []*mp4tag.MP4Picture{
			{Format: format, Data: meta.CoverArt},
		}
	}

	if err := f.Write(tags, nil); err != nil {
		return fmt.Errorf("failed to write MP4 tags: %w", err)
	}
	return nil
}
