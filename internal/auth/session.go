package auth

import (
	"sync"
	"time"
)

// SessionStore owns the current session token. It implements
// storefront.SessionStore and is safe for concurrent use.
//
// Subscribers are called synchronously, outside the lock, in the goroutine
// that changed the token. A subscriber must not change the token itself.
type SessionStore struct {
	mu          sync.RWMutex
	token       *Token
	subscribers map[uint64]func(token string)
	nextID      uint64

	// notifyMu keeps notifications in the order the changes were made.
	notifyMu sync.Mutex
}

// NewSessionStore creates a store seeded with initial, which may be empty.
func NewSessionStore(initial string) *SessionStore {
	store := &SessionStore{subscribers: make(map[uint64]func(string))}
	if initial != "" {
		store.token = NewToken(initial)
	}

	return store
}

// Token returns the current token, or "".
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return ""
	}

	return s.token.AccessToken
}

// ExpiresAt returns the expiry of a JWT token, or the zero time.
func (s *SessionStore) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return time.Time{}
	}

	return s.token.ExpiresAt
}

// Authenticated reports whether a token is held.
func (s *SessionStore) Authenticated() bool {
	return s.Token() != ""
}

// Valid reports whether a token is held and is not an expired JWT.
func (s *SessionStore) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token.Valid()
}

// SetToken replaces the token. Setting the current value does not notify.
// An empty token is equivalent to Clear.
func (s *SessionStore) SetToken(token string) {
	var next *Token
	if token != "" {
		next = NewToken(token)
	}

	s.swap(next)
}

// Clear removes the token.
func (s *SessionStore) Clear() {
	s.swap(nil)
}

// Subscribe registers fn for token changes.
func (s *SessionStore) Subscribe(fn func(token string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subscribers, id)
	}
}

func (s *SessionStore) swap(next *Token) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()

	current := ""
	if s.token != nil {
		current = s.token.AccessToken
	}

	value := ""
	if next != nil {
		value = next.AccessToken
	}

	if current == value {
		s.mu.Unlock()

		return
	}

	s.token = next

	subscribers := make([]func(string), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(value)
	}
}
