package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister saves the session token, e.g. to the CLI config file. An
// empty token means logged out.
type ConfigPersister interface {
	UpdateToken(token string, expiresAt time.Time) error
}

// PersistentSessionStore is a SessionStore whose changes are written through
// a ConfigPersister. Persist failures are logged and do not undo the change.
type PersistentSessionStore struct {
	*SessionStore

	persister ConfigPersister
	logger    storefront.Logger
	stop      func()
}

// NewPersistentSessionStore wraps store. logger may be nil.
func NewPersistentSessionStore(store *SessionStore, persister ConfigPersister, logger storefront.Logger) *PersistentSessionStore {
	if logger == nil {
		logger = storefront.NoopLogger{}
	}

	persistent := &PersistentSessionStore{
		SessionStore: store,
		persister:    persister,
		logger:       logger,
	}

	persistent.stop = store.Subscribe(func(string) {
		err := persistent.Persist()
		if err != nil {
			persistent.logger.Warn("failed to persist session token", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})

	return persistent
}

// Persist writes the current token.
func (s *PersistentSessionStore) Persist() error {
	if s.persister == nil {
		return ErrNoConfigPersister
	}

	err := s.persister.UpdateToken(s.Token(), s.ExpiresAt())
	if err != nil {
		return fmt.Errorf("failed to update session token: %w", err)
	}

	return nil
}

// Close stops persisting changes.
func (s *PersistentSessionStore) Close() {
	s.stop()
}
