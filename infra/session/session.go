// Package session holds the process-wide authentication state: the bearer
// token and the identity of the logged-in user. It is the only state shared
// across screens; everything else is scoped to a view model.
package session

import "sync"

// Snapshot is an immutable view of the session. Token and UserID always
// change together, so a snapshot never shows one without the other.
type Snapshot struct {
	Token  string
	UserID int
}

// LoggedIn reports whether the snapshot carries a token.
func (s Snapshot) LoggedIn() bool {
	return s.Token != ""
}

// Store is the single source of truth for the login session. Mutation is
// infrequent (login/logout), reads are snapshot-based.
type Store struct {
	mu        sync.RWMutex
	current   Snapshot
	observers []func(Snapshot)
}

// NewStore creates an empty (logged-out) session store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces both fields atomically and notifies every observer once.
func (s *Store) Set(token string, userID int) {
	s.replace(Snapshot{Token: token, UserID: userID})
}

// Clear logs out: both fields are dropped atomically, observers notified once.
func (s *Store) Clear() {
	s.replace(Snapshot{})
}

func (s *Store) replace(next Snapshot) {
	s.mu.Lock()
	s.current = next
	observers := make([]func(Snapshot), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	// Observers run outside the lock so they may read the store freely.
	for _, fn := range observers {
		fn(next)
	}
}

// Current returns a snapshot of the session.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Authenticated reports whether a user is logged in.
func (s *Store) Authenticated() bool {
	return s.Current().LoggedIn()
}

// Token implements the museum client's TokenProvider.
func (s *Store) Token() (string, bool) {
	snap := s.Current()
	return snap.Token, snap.Token != ""
}

// OnChange registers an observer called after every Set or Clear with the
// snapshot that was installed. Registration order is notification order.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}
