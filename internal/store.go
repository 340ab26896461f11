package internal

import (
	"sync"
)

// TimelineStore holds the immutable recorded session plus the mutable
// playback cursor. It owns no timers; the playback clock drives it.
type TimelineStore struct {
	mu          sync.RWMutex
	sessionID   string
	session     *RecordedSession
	currentTime int64 // milliseconds since session start
	playing     bool
}

// NewTimelineStore creates an empty store with no active session
func NewTimelineStore() *TimelineStore {
	return &TimelineStore{}
}

// Enter replaces any existing session and cursor atomically. The cursor is
// reset to {0, paused} regardless of prior state; there is no carry-over
// between sessions.
func (s *TimelineStore) Enter(sessionID string, session *RecordedSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = sessionID
	s.session = session
	s.currentTime = 0
	s.playing = false
}

// Exit clears the session and cursor. Idempotent.
func (s *TimelineStore) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = ""
	s.session = nil
	s.currentTime = 0
	s.playing = false
}

// Play sets the playing flag. No-op if already playing.
func (s *TimelineStore) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
}

// Pause clears the playing flag. No-op if already paused.
func (s *TimelineStore) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

// SeekTo sets the cursor, clamped to [0, duration]. Seeking does not change
// the playing flag; seeking while playing continues playing.
func (s *TimelineStore) SeekTo(t int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var duration int64
	if s.session != nil {
		duration = s.session.Duration
	}
	if t < 0 {
		t = 0
	}
	if t > duration {
		t = duration
	}
	s.currentTime = t
}

// SetCurrentTime sets the cursor without clamping. This is the primitive the
// playback clock writes through; the clock detects end-of-session itself by
// comparing against the duration rather than relying on a clamp.
func (s *TimelineStore) SetCurrentTime(t int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTime = t
}

// CurrentTime returns the cursor position in milliseconds since session start
func (s *TimelineStore) CurrentTime() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentTime
}

// IsPlaying reports whether playback is running
func (s *TimelineStore) IsPlaying() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playing
}

// Session returns the active recorded session, or nil when none is loaded
func (s *TimelineStore) Session() *RecordedSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SessionID returns the active session ID, or "" when none is loaded
func (s *TimelineStore) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// Duration returns the active session's total span in milliseconds
func (s *TimelineStore) Duration() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return 0
	}
	return s.session.Duration
}

// Active reports whether a session is loaded
func (s *TimelineStore) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}
