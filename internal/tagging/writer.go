package tagging

import (
	"fmt"
	"os"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
	"github.com/cesargomez89/icho/internal/storage"
)

// Writer persists resolved metadata into audio files. Every write goes
// through a temp copy in the same directory followed by a rename, so a
// failure at any point leaves the original untouched.
type Writer struct {
	log *logger.Logger
}

func NewWriter(log *logger.Logger) *Writer {
	return &Writer{
		log: log.WithComponent("writer"),
	}
}

// Write embeds meta into the file at path.
func (w *Writer) Write(path string, meta *domain.ResolvedMetadata) error {
	var tagFn func(string, *domain.ResolvedMetadata) error

	switch domain.ExtOf(path) {
	case constants.ExtFLAC:
		tagFn = writeFLAC
	case constants.ExtMP3:
		tagFn = writeMP3
	case constants.ExtM4A, constants.ExtMP4:
		tagFn = writeMP4
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupported, domain.ExtOf(path))
	}

	tmp := storage.TempSibling(path)
	if err := storage.CopyFile(path, tmp); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}

	if err := tagFn(tmp, meta); err != nil {
		storage.RemoveFile(tmp)
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		storage.RemoveFile(tmp)
		return fmt.Errorf("%w: failed to replace original: %w", domain.ErrWriteFailed, err)
	}

	w.log.Debug("tags written", "path", path, "source", meta.Source)
	return nil
}

// Supported reports whether the file's container has a tag writer.
func Supported(path string) bool {
	switch domain.ExtOf(path) {
	case constants.ExtFLAC, constants.ExtMP3, constants.ExtM4A, constants.ExtMP4:
		return true
	}
	return false
}
