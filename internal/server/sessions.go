package server

import (
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/keepormull/internal/game"
	"github.com/lox/keepormull/internal/sessionid"
)

// Session couples a live simulator with the deck it is practicing against.
// lastBottomed remembers the cards bottomed by the most recent keep so the
// decision record for that keep can carry them.
type Session struct {
	ID           string
	DeckID       string
	OnPlay       bool
	Simulator    *game.Simulator
	CreatedAt    time.Time
	lastBottomed []string
}

// SessionStore maps session ids to live simulators. It is an explicit value
// owned by the server rather than package state, so tests and embedders run
// isolated registries.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clock    quartz.Clock
}

// NewSessionStore creates an empty registry stamping creation times from
// the given clock.
func NewSessionStore(clock quartz.Clock) *SessionStore {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		clock:    clock,
	}
}

// Create registers a new session for the given deck and simulator.
func (s *SessionStore) Create(deckID string, onPlay bool, sim *game.Simulator) *Session {
	session := &Session{
		ID:        sessionid.New(),
		DeckID:    deckID,
		OnPlay:    onPlay,
		Simulator: sim,
		CreatedAt: s.clock.Now(),
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

// Get returns the session with the given id.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes a session, reporting whether it existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ExpireOlderThan drops sessions created more than maxAge ago and returns
// how many were removed. Abandoned practice sessions would otherwise pin
// their decks in memory forever.
func (s *SessionStore) ExpireOlderThan(maxAge time.Duration) int {
	cutoff := s.clock.Now().Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
