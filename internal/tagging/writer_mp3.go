package tagging

import (
	"fmt"

	"github.com/bogem/id3v2/v2"

	"github.com/cesargomez89/icho/internal/domain"
)

// writeMP3 writes ID3v2.4 tags to an MP3 file.
func writeMP3(path string, meta *domain.ResolvedMetadata) error {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer t.Close()

	t.SetVersion(4)

	if meta.Title != "" {
		t.SetTitle(meta.Title)
	}
	if meta.Artist != "" {
		t.SetArtist(meta.Artist)
	}
	if meta.Album != "" {
		t.SetAlbum(meta.Album)
	}
	if meta.Date != "" {
		t.AddTextFrame(t.CommonID("Recording time"), t.DefaultEncoding(), meta.Date)
	}
	if meta.RecordingID != "" {
		t.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: "MUSICBRAINZ_TRACKID",
			Value:       meta.RecordingID,
		})
	}
	if meta.ReleaseID != "" {
		t.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: "MUSICBRAINZ_ALBUMID",
			Value:       meta.ReleaseID,
		})
	}

	if meta.HasCoverArt() {
		t.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    meta.CoverMIME,
			PictureType: id3v2.PTFrontCover,
			Description: "Front Cover",
			Picture:     meta.CoverArt,
		})
	}

	return t.Save()
}
