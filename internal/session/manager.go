package session

import (
	"sync"

	"github.com/google/uuid"
)

// SaveState tracks the outcome of the one-shot score submission attached to a
// finished session. A failed save is reported, never retried.
type SaveState string

const (
	SaveStatePending SaveState = "pending"
	SaveStateSaved   SaveState = "saved"
	SaveStateFailed  SaveState = "failed"
)

// Entry couples a live session with its quiz title and submission outcome.
type Entry struct {
	Session   *Session
	QuizTitle string

	mu        sync.Mutex
	saveState SaveState
}

func (e *Entry) SetSaveState(state SaveState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.saveState = state
}

func (e *Entry) SaveState() SaveState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveState
}

// Manager is the in-memory session store. Sessions are ephemeral: a process
// restart loses in-flight attempts, mirroring a page reload in the web app.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewManager() *Manager {
	return &Manager{
		entries: make(map[string]*Entry),
	}
}

// NewID issues an identifier for a session about to be created.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

func (m *Manager) Put(entry *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Session.ID()] = entry
}

func (m *Manager) Get(id string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	return entry, ok
}

// Remove tears down and discards a session.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	entry, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if ok {
		entry.Session.Close()
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
