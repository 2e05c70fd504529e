package session

import (
	"sync"

	"github.com/probelab/diaglens/internal/diag"
	"github.com/probelab/diaglens/internal/store"
)

// Context represents a session context with its associated resources.
// The record store and resolver wiring are shared across sessions; the
// seen cursor is per-session so listings can report only new records.
type Context struct {
	SessionID string
	Store     *store.Store
	Resolvers diag.Resolvers

	mu       sync.Mutex
	lastSeen int64
}

// NewContext creates a new session context.
func NewContext(sessionID string, st *store.Store, res diag.Resolvers) *Context {
	return &Context{SessionID: sessionID, Store: st, Resolvers: res}
}

// LastSeen returns the id of the newest record this session has listed.
func (c *Context) LastSeen() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

// MarkSeen advances the session's seen cursor. It never moves backwards.
func (c *Context) MarkSeen(id int64) {
	c.mu.Lock()
	if id > c.lastSeen {
		c.lastSeen = id
	}
	c.mu.Unlock()
}
