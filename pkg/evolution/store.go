package evolution

import (
	"sync"

	"github.com/variantlab/evolve-go/pkg/errors"
)

// SessionStore persists evolution sessions. Implementations must be safe for
// concurrent use; the engine additionally serializes mutations per session id,
// so a store only needs to guard its own data structures. Get and List return
// detached snapshots: mutating a returned session has no effect until it is
// written back with Put.
type SessionStore interface {
	Get(id string) (*Session, error)
	Put(session *Session) error
	List() ([]*Session, error)
	Delete(id string) error
}

// MemoryStore is the default in-memory SessionStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string // insertion order for stable listing
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get implements SessionStore.
func (m *MemoryStore) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, errors.WithFields(
			errors.New(errors.SessionNotFound, "session not found"),
			errors.Fields{"session_id": id},
		)
	}
	return session.clone(), nil
}

// Put implements SessionStore. The stored copy is detached from the caller's
// pointer, matching the snapshot semantics of the SQLite backend.
func (m *MemoryStore) Put(session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.ID]; !exists {
		m.order = append(m.order, session.ID)
	}
	m.sessions[session.ID] = session.clone()
	return nil
}

// List implements SessionStore, returning sessions in creation order.
func (m *MemoryStore) List() ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, id := range m.order {
		if session, ok := m.sessions[id]; ok {
			out = append(out, session.clone())
		}
	}
	return out, nil
}

// Delete implements SessionStore.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return errors.WithFields(
			errors.New(errors.SessionNotFound, "session not found"),
			errors.Fields{"session_id": id},
		)
	}
	delete(m.sessions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
