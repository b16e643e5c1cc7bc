// Package playback coordinates the audio backend with the queue session:
// it owns transport state, volume, and the reaction to end-of-track and
// backend failure signals.
package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
	"github.com/cesargomez89/icho/internal/queue"
)

// Backend is the audio output the coordinator drives. Implementations are
// expected to call Coordinator.TrackEnded and Coordinator.BackendError from
// their own goroutines.
type Backend interface {
	Load(path string) error
	Play() error
	Pause() error
	Stop() error
	Seek(pos time.Duration) error
	SetVolume(percent int) error
}

// EventType classifies coordinator events.
type EventType string

const (
	EventTrackChanged  EventType = "track_changed"
	EventQueueEnded    EventType = "queue_ended"
	EventPlaybackError EventType = "playback_error"
)

// Event is a playback notification. Track is set for track_changed, Reason
// for playback_error.
type Event struct {
	Type   EventType     `json:"type"`
	Track  *domain.Track `json:"track,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// Coordinator mediates between the queue and the backend.
type Coordinator struct {
	mu sync.Mutex

	session *queue.Session
	backend Backend
	events  chan Event
	volume  int
	log     *logger.Logger
}

func NewCoordinator(session *queue.Session, backend Backend, log *logger.Logger) *Coordinator {
	return &Coordinator{
		session: session,
		backend: backend,
		events:  make(chan Event, constants.EventBufferSize),
		volume:  constants.MaxVolume,
		log:     log.WithComponent("playback"),
	}
}

// Events returns the notification channel. Events are dropped rather than
// blocking playback when no consumer keeps up.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// Play starts or resumes playback. With no current track it advances the
// queue first; ErrQueueExhausted propagates to the caller.
func (c *Coordinator) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Current() == nil {
		if err := c.advance(); err != nil {
			return err
		}
		return nil
	}

	switch c.session.State() {
	case queue.StatePaused:
		if err := c.backend.Play(); err != nil {
			return fmt.Errorf("resuming playback: %w", err)
		}
	case queue.StatePlaying:
		return nil
	default:
		if err := c.startCurrent(); err != nil {
			return err
		}
	}
	c.session.SetState(queue.StatePlaying)
	return nil
}

// PlayTrack jumps straight to a track and starts it.
func (c *Coordinator) PlayTrack(track domain.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.PlayNow(track)
	if err := c.startCurrent(); err != nil {
		return err
	}
	c.session.SetState(queue.StatePlaying)
	c.emit(Event{Type: EventTrackChanged, Track: c.session.Current()})
	return nil
}

func (c *Coordinator) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.State() != queue.StatePlaying {
		return nil
	}
	if err := c.backend.Pause(); err != nil {
		return fmt.Errorf("pausing playback: %w", err)
	}
	c.session.SetState(queue.StatePaused)
	return nil
}

func (c *Coordinator) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.backend.Stop(); err != nil {
		return fmt.Errorf("stopping playback: %w", err)
	}
	c.session.SetState(queue.StateIdle)
	return nil
}

// Next skips forward. On an exhausted queue the current track keeps
// playing and the caller gets ErrQueueExhausted.
func (c *Coordinator) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advance()
}

// Previous steps back through history. With no history it is a no-op.
func (c *Coordinator) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, ok := c.session.Previous()
	if !ok {
		return nil
	}
	if err := c.loadAndPlay(track.Path); err != nil {
		return err
	}
	c.session.SetState(queue.StatePlaying)
	c.emit(Event{Type: EventTrackChanged, Track: track})
	return nil
}

func (c *Coordinator) Seek(pos time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.backend.Seek(pos); err != nil {
		return fmt.Errorf("seeking: %w", err)
	}
	return nil
}

// SetVolume clamps to the valid range before handing off to the backend.
func (c *Coordinator) SetVolume(percent int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if percent < constants.MinVolume {
		percent = constants.MinVolume
	}
	if percent > constants.MaxVolume {
		percent = constants.MaxVolume
	}
	if err := c.backend.SetVolume(percent); err != nil {
		return fmt.Errorf("setting volume: %w", err)
	}
	c.volume = percent
	return nil
}

func (c *Coordinator) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// TrackEnded is the backend's end-of-track signal. With autoplay on the
// queue advances; an exhausted queue stops the backend and emits a single
// queue_ended event.
func (c *Coordinator) TrackEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.State() == queue.StateEnded {
		return
	}

	_, _, autoplay := c.session.Flags()
	if !autoplay {
		c.session.SetState(queue.StateIdle)
		return
	}

	c.autoAdvance()
}

// BackendError is the backend's failure signal for the current track. The
// error is surfaced as an event and the track is treated as ended.
func (c *Coordinator) BackendError(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Error("backend playback failure", "reason", reason)
	c.emit(Event{Type: EventPlaybackError, Track: c.session.Current(), Reason: reason})

	if c.session.State() == queue.StateEnded {
		return
	}
	_, _, autoplay := c.session.Flags()
	if !autoplay {
		c.session.SetState(queue.StateIdle)
		return
	}
	c.autoAdvance()
}

// autoAdvance keeps the queue moving after an end-of-track signal. A track
// that fails to load or start is reported and skipped rather than ending
// the session; only true exhaustion finishes it. Callers hold the mutex.
func (c *Coordinator) autoAdvance() {
	for {
		track, err := c.session.Next()
		if err != nil {
			c.finish()
			return
		}
		if err := c.loadAndPlay(track.Path); err != nil {
			c.log.Error("skipping unplayable track", "track_path", track.Path, "error", err)
			c.emit(Event{Type: EventPlaybackError, Track: track, Reason: err.Error()})
			continue
		}
		c.session.SetState(queue.StatePlaying)
		c.emit(Event{Type: EventTrackChanged, Track: track})
		return
	}
}

// advance moves the queue forward and starts the new track. Callers hold
// the mutex.
func (c *Coordinator) advance() error {
	track, err := c.session.Next()
	if err != nil {
		return err
	}
	if err := c.loadAndPlay(track.Path); err != nil {
		return err
	}
	c.session.SetState(queue.StatePlaying)
	c.emit(Event{Type: EventTrackChanged, Track: track})
	return nil
}

func (c *Coordinator) startCurrent() error {
	cur := c.session.Current()
	if cur == nil {
		return domain.ErrQueueExhausted
	}
	return c.loadAndPlay(cur.Path)
}

func (c *Coordinator) loadAndPlay(path string) error {
	if err := c.backend.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	if err := c.backend.Play(); err != nil {
		return fmt.Errorf("starting %s: %w", path, err)
	}
	return nil
}

// finish transitions to the ended state exactly once.
func (c *Coordinator) finish() {
	if c.session.State() == queue.StateEnded {
		return
	}
	if err := c.backend.Stop(); err != nil {
		c.log.Warn("stopping backend at end of queue", "error", err)
	}
	c.session.SetState(queue.StateEnded)
	c.emit(Event{Type: EventQueueEnded})
	c.log.Info("queue ended")
}

// emit delivers without blocking; a full buffer drops the event.
func (c *Coordinator) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.log.Warn("event buffer full, dropping event", "type", ev.Type)
	}
}
