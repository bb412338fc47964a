package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// CommentRepository implements repositories.CommentRepository over the
// local store. Comments are append-only.
type CommentRepository struct {
	store *Store
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(store *Store) repositories.CommentRepository {
	return &CommentRepository{store: store}
}

func (r *CommentRepository) List(ctx context.Context) ([]models.Comment, error) {
	raw, err := r.store.get(keyComments)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Comment{}, nil
	}

	var comments []models.Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		r.store.logger.Warn("comment collection corrupt, treating as empty",
			"key", keyComments,
			"error", err,
		)
		return []models.Comment{}, nil
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

func (r *CommentRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	comments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ID == id {
			c := comments[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
}

func (r *CommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	comments, err := r.List(ctx)
	if err != nil {
		return err
	}
	comments = append([]models.Comment{*comment}, comments...)

	raw, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}
	return r.store.put(keyComments, raw)
}
