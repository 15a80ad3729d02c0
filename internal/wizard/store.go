package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("wizard session not found")

// DefaultIdleTTL is how long an untouched session survives before pruning
const DefaultIdleTTL = 2 * time.Hour

// Store keeps wizard sessions in memory. One goroutine at a time may touch a
// given session; the store's lock covers the whole callback so handlers get
// that for free.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewStore creates an empty session store
func NewStore(idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Create registers a new session and returns it
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked()

	s := NewSession(uuid.NewString(), st.now())
	st.sessions[s.ID] = s
	return s
}

// With runs fn against the session while holding the store lock. The session
// must not be retained outside the callback.
func (st *Store) With(id string, fn func(*Session) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked()

	s, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.UpdatedAt = st.now()
	return fn(s)
}

// Delete removes a session, if present
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len reports the number of live sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// pruneLocked drops sessions idle past the TTL. Caller holds the lock.
func (st *Store) pruneLocked() {
	cutoff := st.now().Add(-st.idleTTL)
	for id, s := range st.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
