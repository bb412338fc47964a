package repositories

import (
	"context"

	"janmanch/internal/domain/models"
)

// SessionStore persists the current user's identity across restarts for
// the local-only variant. The hosted provider owns its own session
// persistence and does not use this store.
type SessionStore interface {
	// Save replaces the persisted session with the given user.
	Save(ctx context.Context, user *models.User) error

	// Load returns the persisted session, or (nil, nil) when none is
	// stored or the slot is unreadable.
	Load(ctx context.Context) (*models.User, error)

	// Clear removes the persisted session. Clearing an empty slot is not
	// an error.
	Clear(ctx context.Context) error
}
