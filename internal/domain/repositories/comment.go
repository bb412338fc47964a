package repositories

import (
	"context"

	"janmanch/internal/domain/models"
)

// CommentRepository is the persistence contract for the comment
// collection. Comments are append-only; there is no update.
type CommentRepository interface {
	List(ctx context.Context) ([]models.Comment, error)
	Get(ctx context.Context, id string) (*models.Comment, error)
	Insert(ctx context.Context, comment *models.Comment) error
}
