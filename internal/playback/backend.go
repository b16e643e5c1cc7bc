package playback

import (
	"time"

	"github.com/cesargomez89/icho/internal/logger"
)

// NullBackend is an audio sink that accepts every command and produces no
// sound. It stands in when no output device is wired up, keeping the queue
// and coordinator logic fully drivable.
type NullBackend struct {
	log *logger.Logger
}

func NewNullBackend(log *logger.Logger) *NullBackend {
	return &NullBackend{log: log.WithComponent("backend")}
}

func (b *NullBackend) Load(path string) error {
	b.log.Debug("load", "track_path", path)
	return nil
}

func (b *NullBackend) Play() error {
	b.log.Debug("play")
	return nil
}

func (b *NullBackend) Pause() error {
	b.log.Debug("pause")
	return nil
}

func (b *NullBackend) Stop() error {
	b.log.Debug("stop")
	return nil
}

func (b *NullBackend) Seek(pos time.Duration) error {
	b.log.Debug("seek", "position", pos)
	return nil
}

func (b *NullBackend) SetVolume(percent int) error {
	b.log.Debug("set volume", "percent", percent)
	return nil
}
