package compare

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session scopes one compare set to one client, standing in for the
// browser's local-storage boundary.
type Session struct {
	ID       string
	Set      *Set
	LastSeen time.Time
}

// Manager mints sessions and caches their compare sets. A session that has
// not been touched within the idle TTL is pruned together with its
// persisted entry.
type Manager struct {
	mu       sync.Mutex
	store    Store
	idleTTL  time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

// NewManager creates a session manager over the given persistence port.
func NewManager(store Store, idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = 24 * time.Hour
	}
	return &Manager{
		store:    store,
		idleTTL:  idleTTL,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create mints a new session with an empty compare set.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	set, err := NewSet(ctx, m.store, sessionKey(id))
	if err != nil {
		return nil, err
	}

	s := &Session{ID: id, Set: set, LastSeen: m.now()}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session with the given id, rebuilding it from the
// persistence port when this process has not seen it yet, so the persisted
// list outlives both dataset reloads and restarts. Touches the idle clock.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", id, err)
	}

	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		s.LastSeen = m.now()
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	set, err := NewSet(ctx, m.store, sessionKey(id))
	if err != nil {
		return nil, err
	}
	s := &Session{ID: id, Set: set, LastSeen: m.now()}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s, nil
}

// PruneExpired drops sessions idle beyond the TTL and removes their
// persisted entries. Returns the ids pruned.
func (m *Manager) PruneExpired(ctx context.Context) []string {
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, s := range expired {
		// best effort: the entry ages out server-side either way
		_ = m.store.Remove(ctx, sessionKey(s.ID))
		ids = append(ids, s.ID)
	}
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func sessionKey(id string) string {
	return StorageKey + ":" + id
}
