package storage

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value T
	seen  time.Time
}

// SessionStore keeps visitor sessions in memory. Sessions idle longer than
// the TTL expire, and once MaxSessions is reached the least recently seen
// session is evicted. Zero limits disable either bound.
type SessionStore[T any] struct {
	sessions map[string]*entry[T]
	ttl      time.Duration
	max      int
	now      func() time.Time
	mu       sync.Mutex
}

func New[T any](ttl time.Duration, maxSessions int) *SessionStore[T] {
	return &SessionStore[T]{
		sessions: make(map[string]*entry[T]),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
	}
}

// GetOrCreate returns the session for sessionID, building it with create when
// absent or expired. created reports whether create ran.
func (s *SessionStore[T]) GetOrCreate(sessionID string, create func() T) (session T, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.sessions[sessionID]; ok && !s.expired(existing, now) {
		existing.seen = now
		return existing.value, false
	}

	s.makeRoom(now)
	session = create()
	s.sessions[sessionID] = &entry[T]{value: session, seen: now}
	return session, true
}

func (s *SessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore[T]) expired(e *entry[T], now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.seen) > s.ttl
}

// makeRoom drops expired sessions, then the oldest ones while the store is full.
// Callers hold mu.
func (s *SessionStore[T]) makeRoom(now time.Time) {
	if s.ttl > 0 {
		for id, e := range s.sessions {
			if s.expired(e, now) {
				delete(s.sessions, id)
			}
		}
	}
	for s.max > 0 && len(s.sessions) >= s.max {
		oldest := ""
		var seen time.Time
		for id, e := range s.sessions {
			if oldest == "" || e.seen.Before(seen) {
				oldest, seen = id, e.seen
			}
		}
		delete(s.sessions, oldest)
	}
}
