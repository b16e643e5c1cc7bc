// Package queue decides what plays next. A Session owns the playback scope,
// the shuffle order, the play-next override buffer and the history stack,
// and serializes every mutation behind one mutex.
package queue

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
)

// State is the playback lifecycle of a session, orthogonal to ordering.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateEnded   State = "ended"
)

// ScopeOrigin records what kind of collection the scope came from.
type ScopeOrigin string

const (
	OriginPlaylist ScopeOrigin = "playlist"
	OriginAlbum    ScopeOrigin = "album"
)

// Session is one playback session. All methods are safe for concurrent use;
// mutations are strictly serialized.
type Session struct {
	mu sync.Mutex

	scope  []domain.Track
	origin ScopeOrigin

	shuffle  bool
	repeat   bool
	autoplay bool

	history   []domain.Track
	overrides []domain.Track

	// order holds the unconsumed remainder of the shuffle permutation as
	// indices into scope. It is regenerated lazily.
	order          []int
	orderGenerated bool

	cursor    *domain.Track
	cursorIdx int

	state State
	rng   *rand.Rand
	log   *logger.Logger
}

func NewSession(log *logger.Logger) *Session {
	return &Session{
		cursorIdx: -1,
		autoplay:  true,
		state:     StateIdle,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       log.WithComponent("queue"),
	}
}

// SetScope replaces the base track order. Overrides and history survive, so
// switching to an album view mid-session composes with pending play-next
// entries. The shuffle order is regenerated lazily on the next advance.
func (s *Session) SetScope(tracks []domain.Track, origin ScopeOrigin) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scope = make([]domain.Track, len(tracks))
	copy(s.scope, tracks)
	s.origin = origin
	s.order = nil
	s.orderGenerated = false
	s.cursorIdx = s.indexOf(s.cursor)
	s.log.Debug("scope set", "origin", origin, "tracks", len(tracks))
}

// Scope returns a copy of the current base order.
func (s *Session) Scope() []domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Track, len(s.scope))
	copy(out, s.scope)
	return out
}

// Current returns the currently playing track, if any.
func (s *Session) Current() *domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == nil {
		return nil
	}
	t := *s.cursor
	return &t
}

// SetShuffle toggles shuffle mode. Enabling discards any previous
// permutation; disabling resumes in-order traversal from the cursor's
// position in scope.
func (s *Session) SetShuffle(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shuffle == on {
		return
	}
	s.shuffle = on
	s.order = nil
	s.orderGenerated = false
}

func (s *Session) SetRepeat(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = on
}

func (s *Session) SetAutoplay(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoplay = on
}

// Flags returns the current mode flags.
func (s *Session) Flags() (shuffle, repeat, autoplay bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuffle, s.repeat, s.autoplay
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) SetState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// PlayNow jumps directly to a track, pushing the previous current track onto
// history. The track does not have to be part of the scope.
func (s *Session) PlayNow(track domain.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pushHistory()
	s.setCursor(track)

	// Under shuffle, a directly played in-scope track should not come up
	// again in the current pass.
	if s.shuffle && s.cursorIdx >= 0 {
		for i, idx := range s.order {
			if idx == s.cursorIdx {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Next advances forward and returns the new current track. Overrides are
// served first, then the shuffle order or the scope continuation. A finite,
// non-repeating queue that has nothing left returns ErrQueueExhausted.
func (s *Session) Next() (*domain.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.overrides) > 0 {
		track := s.overrides[0]
		s.overrides = s.overrides[1:]
		s.pushHistory()
		s.setCursor(track)
		t := track
		return &t, nil
	}

	if len(s.scope) == 0 {
		return nil, domain.ErrQueueExhausted
	}

	var idx int
	if s.shuffle {
		if !s.orderGenerated {
			s.regenerateOrder()
		}
		if len(s.order) == 0 {
			if !s.repeat {
				return nil, domain.ErrQueueExhausted
			}
			s.regenerateOrder()
			if len(s.order) == 0 {
				return nil, domain.ErrQueueExhausted
			}
		}
		idx = s.order[0]
		s.order = s.order[1:]
	} else {
		idx = s.cursorIdx + 1
		if idx >= len(s.scope) {
			if !s.repeat {
				return nil, domain.ErrQueueExhausted
			}
			idx = 0
		}
	}

	s.pushHistory()
	s.setCursor(s.scope[idx])
	t := s.scope[idx]
	return &t, nil
}

// Previous pops the history stack and makes its top the current track. An
// empty history is a no-op, not an end-of-queue signal.
func (s *Session) Previous() (*domain.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return nil, false
	}

	// The track being left should come up again on the next forward step.
	if s.shuffle && s.cursorIdx >= 0 {
		s.order = append([]int{s.cursorIdx}, s.order...)
	}

	top := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.setCursor(top)
	t := top
	return &t, true
}

// InsertPlayNext appends tracks to the tail of the override buffer. The
// same track may be queued more than once.
func (s *Session) InsertPlayNext(tracks ...domain.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = append(s.overrides, tracks...)
}

// PeekUpcoming projects the future play order without consuming anything:
// remaining overrides first, then the shuffle or scope continuation.
func (s *Session) PeekUpcoming() []domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	upcoming := make([]domain.Track, 0, len(s.overrides)+len(s.scope))
	upcoming = append(upcoming, s.overrides...)

	if s.shuffle {
		if !s.orderGenerated {
			s.regenerateOrder()
		}
		for _, idx := range s.order {
			upcoming = append(upcoming, s.scope[idx])
		}
	} else {
		for i := s.cursorIdx + 1; i < len(s.scope); i++ {
			upcoming = append(upcoming, s.scope[i])
		}
	}
	return upcoming
}

// RemoveUpcoming drops the first upcoming occurrence of a path, looking in
// the override buffer before the scope continuation. The underlying
// playlist is never touched.
func (s *Session) RemoveUpcoming(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.overrides {
		if t.Path == path {
			s.overrides = append(s.overrides[:i], s.overrides[i+1:]...)
			return true
		}
	}

	if s.shuffle {
		if !s.orderGenerated {
			s.regenerateOrder()
		}
		for i, idx := range s.order {
			if s.scope[idx].Path == path {
				s.order = append(s.order[:i], s.order[i+1:]...)
				return true
			}
		}
		return false
	}

	for i := s.cursorIdx + 1; i < len(s.scope); i++ {
		if s.scope[i].Path == path {
			s.removeFromScope(i)
			return true
		}
	}
	return false
}

// ClearUpcoming empties the override buffer and the remaining continuation,
// leaving history and the current track alone.
func (s *Session) ClearUpcoming() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides = nil
	if s.shuffle {
		s.order = nil
		s.orderGenerated = true
		return
	}
	if s.cursorIdx+1 < len(s.scope) {
		s.scope = s.scope[:s.cursorIdx+1]
	}
}

// History returns a copy of the play history, oldest first.
func (s *Session) History() []domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Track, len(s.history))
	copy(out, s.history)
	return out
}

// regenerateOrder builds a fresh permutation of scope. The current track is
// kept out of position 0 when the scope has company, so a reshuffle never
// plays the same track back to back.
func (s *Session) regenerateOrder() {
	s.orderGenerated = true
	s.order = s.rng.Perm(len(s.scope))
	if len(s.order) > 1 && s.cursorIdx >= 0 && s.order[0] == s.cursorIdx {
		swap := 1 + s.rng.Intn(len(s.order)-1)
		s.order[0], s.order[swap] = s.order[swap], s.order[0]
	}
}

// pushHistory records the current track before the cursor moves. The same
// track is never recorded twice in a row.
func (s *Session) pushHistory() {
	if s.cursor == nil {
		return
	}
	if n := len(s.history); n > 0 && s.history[n-1].Path == s.cursor.Path {
		return
	}
	s.history = append(s.history, *s.cursor)
}

func (s *Session) setCursor(track domain.Track) {
	t := track
	s.cursor = &t
	s.cursorIdx = s.indexOf(&t)
}

func (s *Session) indexOf(track *domain.Track) int {
	if track == nil {
		return -1
	}
	for i, t := range s.scope {
		if t.Path == track.Path {
			return i
		}
	}
	return -1
}

// removeFromScope drops scope[i]. Only reachable in linear mode, where the
// shuffle order is not in play.
func (s *Session) removeFromScope(i int) {
	s.scope = append(s.scope[:i], s.scope[i+1:]...)
	if s.cursorIdx > i {
		s.cursorIdx--
	}
}
