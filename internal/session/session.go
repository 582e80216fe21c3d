// Package session tracks per-browser-session assistant state.
//
// Each UI session gets one Agent (and with it one conversation memory),
// looked up by the opaque ID stored in the session cookie. Sessions live in
// process memory only: a server restart starts every conversation over,
// which is the documented lifecycle for conversation memory.
package session

import (
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/code-studio/internal/agent"
)

// CookieName is the cookie that carries the session ID.
const CookieName = "cs_session"

// Session is one browser session's assistant state.
type Session struct {
	ID        string
	Agent     *agent.Agent
	CreatedAt time.Time

	lastSeen time.Time
}

// Manager owns all live sessions. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	newAgent func() *agent.Agent
}

// NewManager creates a Manager that builds a fresh agent for each new
// session via newAgent.
func NewManager(newAgent func() *agent.Agent) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		newAgent: newAgent,
	}
}

// Get returns the session with the given ID, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = time.Now()
	}
	return s, ok
}

// Create starts a new session with a fresh agent and a generated ID.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        xid.New().String(),
		Agent:     m.newAgent(),
		CreatedAt: now,
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// GetOrCreate returns the existing session for id, or a new session when id
// is empty or unknown (e.g. the server restarted since the cookie was set).
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.Create()
}

// Reset clears the conversation memory of the given session.
// Returns false if the session doesn't exist.
func (m *Manager) Reset(id string) bool {
	s, ok := m.Get(id)
	if !ok {
		return false
	}
	s.Agent.Memory().Reset()
	return true
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
