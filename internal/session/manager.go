package session

import (
	"sync"

	"github.com/probelab/diaglens/internal/diag"
	"github.com/probelab/diaglens/internal/store"
)

// Manager manages session contexts. All sessions observe the same record
// store and resolver wiring.
type Manager struct {
	sessions  map[string]*Context
	mu        sync.RWMutex
	store     *store.Store
	resolvers diag.Resolvers
}

// NewManager creates a new session manager.
func NewManager(st *store.Store, res diag.Resolvers) *Manager {
	return &Manager{
		sessions:  make(map[string]*Context),
		store:     st,
		resolvers: res,
	}
}

// Store returns the shared record store.
func (m *Manager) Store() *store.Store {
	return m.store
}

// GetOrCreateSession gets an existing session or creates a new one.
func (m *Manager) GetOrCreateSession(sessionID string) *Context {
	m.mu.RLock()
	session, exists := m.sessions[sessionID]
	m.mu.RUnlock()

	if exists {
		return session
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if session, exists := m.sessions[sessionID]; exists {
		return session
	}

	session = NewContext(sessionID, m.store, m.resolvers)
	m.sessions[sessionID] = session
	return session
}

// DeleteSession removes a session.
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}
