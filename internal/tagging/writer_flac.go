package tagging

import (
	"fmt"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/cesargomez89/icho/internal/domain"
)

// writeFLAC replaces the Vorbis comment and picture blocks of a FLAC file.
// All other metadata blocks are kept as parsed.
func writeFLAC(path string, meta *domain.ResolvedMetadata) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	var kept []*flac.MetaDataBlock
	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment && block.Type != flac.Picture {
			kept = append(kept, block)
		}
	}
	f.Meta = kept

	comment := flacvorbis.New()
	addVorbisField(comment, flacvorbis.FIELD_TITLE, meta.Title)
	addVorbisField(comment, flacvorbis.FIELD_ARTIST, meta.Artist)
	addVorbisField(comment, flacvorbis.FIELD_ALBUM, meta.Album)
	addVorbisField(comment, flacvorbis.FIELD_DATE, meta.Date)
	addVorbisField(comment, "MUSICBRAINZ_TRACKID", meta.RecordingID)
	addVorbisField(comment, "MUSICBRAINZ_ALBUMID", meta.ReleaseID)

	commentBlock := comment.Marshal()
	f.Meta = append(f.Meta, &commentBlock)

	if meta.HasCoverArt() {
		picture, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			meta.CoverArt,
			meta.CoverMIME,
		)
		if err != nil {
			return fmt.Errorf("failed to build picture block: %w", err)
		}
		pictureBlock := picture.Marshal()
		f.Meta = append(f.Meta, &pictureBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}

func addVorbisField(comment *flacvorbis.MetaDataBlockVorbisComment, field, value string) {
	if value != "" {
		comment.Add(field, value)
	}
}
