// Package dialog tracks each user's pending conversational state: which
// multi-step flow they are in and what has been collected so far. The
// state is ephemeral; it lives in memory for the duration of a dialog and
// is lost on restart.
package dialog

import "sync"

// State tags the step a user's dialog is waiting on.
type State int

const (
	// Idle means no dialog is pending; free text is ignored.
	Idle State = iota
	// AwaitingName waits for the name of the item being added.
	AwaitingName
	// AwaitingCategory waits for the category of the item being added.
	AwaitingCategory
	// AwaitingWearTarget waits for the user to pick which item they wore.
	AwaitingWearTarget
	// AwaitingWashTarget waits for the user to pick which item they washed.
	AwaitingWashTarget
)

// Session is one user's pending selection. The zero value is Idle.
type Session struct {
	State State
	Name  string // candidate item name collected by the add flow
}

// Sessions holds the pending selection of every user, keyed by user ID.
// Each user has at most one pending selection: starting a new dialog
// overwrites the old one, and nothing expires on its own. Safe for
// concurrent use by different users' handlers.
type Sessions struct {
	mu sync.Mutex
	m  map[int64]Session
}

// NewSessions returns an empty session store.
func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]Session)}
}

// Get returns the user's pending selection, or an Idle session if none.
func (s *Sessions) Get(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[userID]
}

// Set replaces the user's pending selection.
func (s *Sessions) Set(userID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[userID] = sess
}

// Clear returns the user to Idle.
func (s *Sessions) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}
