package repositories

import (
	"context"

	"janmanch/internal/domain/models"
)

// ProblemRepository is the persistence contract for the problem
// collection. Reads return point-in-time snapshots; List order is the
// persisted order (newest first, Insert prepends).
type ProblemRepository interface {
	// List returns the full collection. An empty or unreadable store
	// yields an empty slice, never an error.
	List(ctx context.Context) ([]models.Problem, error)

	// Get returns the problem with the given id, or an error matching
	// domain.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Problem, error)

	// Insert prepends a new problem to the collection.
	Insert(ctx context.Context, problem *models.Problem) error

	// Update replaces the stored record with the same id. Returns an
	// error matching domain.ErrNotFound if no such record exists.
	Update(ctx context.Context, problem *models.Problem) error

	// IncrementViews adds one to the problem's view counter. The local
	// store implements this as read-modify-write and may lose an update
	// under concurrent callers; the Postgres implementation is atomic.
	IncrementViews(ctx context.Context, id string) error
}
