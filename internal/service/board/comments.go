package board

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"janmanch/internal/config"
	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
)

// CreateCommentRequest carries the caller-supplied fields of a new
// comment.
type CreateCommentRequest struct {
	Content    string            `json:"content"`
	ParentType models.ParentType `json:"parentType"`
	ParentID   string            `json:"parentId"`
}

// ListComments returns the full comment collection in stored order.
func (s *Service) ListComments(ctx context.Context) ([]models.Comment, error) {
	return s.comments.List(ctx)
}

// GetComment returns the comment with the given id.
func (s *Service) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	return s.comments.Get(ctx, id)
}

// ListCommentsByParent returns the comments attached to the given
// problem or solution, preserving stored order.
func (s *Service) ListCommentsByParent(ctx context.Context, parentType models.ParentType, parentID string) ([]models.Comment, error) {
	if !parentType.Valid() {
		return nil, fmt.Errorf("%w: unknown parent type %q", domain.ErrValidation, parentType)
	}

	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Comment{}
	for _, c := range comments {
		if c.ParentType == parentType && c.ParentID == parentID {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// CreateComment creates a new comment authored by actor. The parent
// record must exist. Comments are immutable once written.
func (s *Service) CreateComment(ctx context.Context, actor *models.User, req *CreateCommentRequest) (*models.Comment, error) {
	if err := s.validateCreateComment(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	switch req.ParentType {
	case models.ParentProblem:
		if _, err := s.problems.Get(ctx, req.ParentID); err != nil {
			return nil, err
		}
	case models.ParentSolution:
		if _, err := s.solutions.Get(ctx, req.ParentID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown parent type %q", domain.ErrValidation, req.ParentType)
	}

	comment := &models.Comment{
		ID:           s.newID(),
		Content:      req.Content,
		ParentType:   req.ParentType,
		ParentID:     req.ParentID,
		AuthorID:     actor.ID,
		AuthorName:   actor.Name,
		AuthorAvatar: actor.Avatar,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"id", comment.ID,
		"parent_type", comment.ParentType,
		"parent_id", comment.ParentID,
		"author_id", actor.ID,
	)

	return comment, nil
}

func (s *Service) validateCreateComment(req *CreateCommentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, config.MaxContentLength)),
		validation.Field(&req.ParentID, validation.Required),
	)
}
