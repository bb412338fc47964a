package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// SessionStore persists the local-only variant's current user under a
// single slot key, so a restart restores the session without
// re-entering credentials.
type SessionStore struct {
	store *Store
}

// NewSessionStore creates a new session store.
func NewSessionStore(store *Store) repositories.SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) Save(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.store.put(keySession, raw)
}

// Load returns the persisted session. An absent or unreadable slot means
// no session; corruption is logged, not surfaced.
func (s *SessionStore) Load(ctx context.Context) (*models.User, error) {
	raw, err := s.store.get(keySession)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.store.logger.Warn("session slot corrupt, treating as signed out",
			"key", keySession,
			"error", err,
		)
		return nil, nil
	}
	return &user, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.store.delete(keySession)
}
