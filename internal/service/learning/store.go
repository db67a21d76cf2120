package learning

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// sessionStore keeps at most one in-memory session per user. A janitor
// goroutine discards sessions untouched for longer than the TTL, so
// abandoned sessions do not accumulate. All access goes through the
// store's mutex; a session itself is not safe for concurrent use.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func newSessionStore(ttl time.Duration, cleanupInterval time.Duration) *sessionStore {
	st := &sessionStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go st.janitor(cleanupInterval)
	return st
}

// put replaces the user's session. A new session always starts from scratch.
func (st *sessionStore) put(userID uuid.UUID, s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[userID] = s
}

// delete discards the user's session, if any.
func (st *sessionStore) delete(userID uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}

// with runs fn against the user's session under the store lock, marking
// the session as touched. Returns ErrNotFound if the user has no session.
func (st *sessionStore) with(userID uuid.UUID, now time.Time, fn func(s *Session) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[userID]
	if !ok {
		return domain.ErrNotFound
	}
	s.touchedAt = now
	return fn(s)
}

// Stop terminates the janitor goroutine.
func (st *sessionStore) Stop() {
	st.stopOnce.Do(func() { close(st.stop) })
}

func (st *sessionStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-st.ttl)
			st.mu.Lock()
			for userID, s := range st.sessions {
				if s.touchedAt.Before(cutoff) {
					delete(st.sessions, userID)
				}
			}
			st.mu.Unlock()
		}
	}
}
