package board

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"janmanch/internal/config"
	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
)

// CreateProblemRequest carries the caller-supplied fields of a new
// problem. Identity, timestamps, flags and counters are generated here.
type CreateProblemRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"categoryId"`
}

// ProblemPatch is a partial update. Nil fields are left unchanged.
type ProblemPatch struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	CategoryID *string `json:"categoryId"`
}

// VoteKind selects which counter a vote action increments.
type VoteKind string

const (
	VoteUp   VoteKind = "up"
	VoteDown VoteKind = "down"
)

// ParseVoteKind validates a wire-level vote direction.
func ParseVoteKind(s string) (VoteKind, error) {
	switch VoteKind(s) {
	case VoteUp, VoteDown:
		return VoteKind(s), nil
	default:
		return "", fmt.Errorf("%w: vote must be %q or %q", domain.ErrValidation, VoteUp, VoteDown)
	}
}

// ListProblems returns the full collection, newest first.
func (s *Service) ListProblems(ctx context.Context) ([]models.Problem, error) {
	return s.problems.List(ctx)
}

// GetProblem returns the problem with the given id.
func (s *Service) GetProblem(ctx context.Context, id string) (*models.Problem, error) {
	return s.problems.Get(ctx, id)
}

// ListProblemsByCategory filters the full snapshot, preserving relative
// order. O(n); the collections are small by design.
func (s *Service) ListProblemsByCategory(ctx context.Context, categoryID string) ([]models.Problem, error) {
	problems, err := s.problems.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Problem{}
	for _, p := range problems {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListProblemsByAuthor filters the full snapshot, preserving relative
// order.
func (s *Service) ListProblemsByAuthor(ctx context.Context, authorID string) ([]models.Problem, error) {
	problems, err := s.problems.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Problem{}
	for _, p := range problems {
		if p.AuthorID == authorID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// CreateProblem creates a new problem authored by actor. The new record
// gets a fresh id, createdAt=updatedAt=now, solved=false and zeroed
// counters, and is prepended to the collection.
func (s *Service) CreateProblem(ctx context.Context, actor *models.User, req *CreateProblemRequest) (*models.Problem, error) {
	if err := s.validateCreateProblem(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if _, ok := s.catalog.ByID(req.CategoryID); !ok {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, req.CategoryID)
	}

	now := s.clock.Now()
	problem := &models.Problem{
		ID:           s.newID(),
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		CategoryID:   req.CategoryID,
		AuthorID:     actor.ID,
		AuthorName:   actor.Name,
		AuthorAvatar: actor.Avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.problems.Insert(ctx, problem); err != nil {
		return nil, err
	}

	s.logger.Info("problem created",
		"id", problem.ID,
		"category_id", problem.CategoryID,
		"author_id", actor.ID,
	)

	return problem, nil
}

// UpdateProblem shallow-merges the patch over the existing record and
// refreshes updatedAt.
func (s *Service) UpdateProblem(ctx context.Context, id string, patch *ProblemPatch) (*models.Problem, error) {
	if err := s.validateProblemPatch(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	problem, err := s.problems.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		problem.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		problem.Content = *patch.Content
	}
	if patch.CategoryID != nil {
		if _, ok := s.catalog.ByID(*patch.CategoryID); !ok {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *patch.CategoryID)
		}
		problem.CategoryID = *patch.CategoryID
	}
	problem.UpdatedAt = s.clock.Now()

	if err := s.problems.Update(ctx, problem); err != nil {
		return nil, err
	}

	s.logger.Info("problem updated", "id", problem.ID)

	return problem, nil
}

// IncrementProblemViews bumps the view counter. On the local store this
// is a read-then-write cycle and two rapid calls can lose an increment;
// a known property of the single-session store, not silently "fixed"
// here.
func (s *Service) IncrementProblemViews(ctx context.Context, id string) error {
	return s.problems.IncrementViews(ctx, id)
}

// VoteProblem adds one to the problem's up or down counter. There is no
// per-user vote ledger: each accepted vote action counts once.
func (s *Service) VoteProblem(ctx context.Context, id string, kind VoteKind) (*models.Problem, error) {
	problem, err := s.problems.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch kind {
	case VoteUp:
		problem.Upvotes++
	case VoteDown:
		problem.Downvotes++
	default:
		return nil, fmt.Errorf("%w: unknown vote kind %q", domain.ErrValidation, kind)
	}
	problem.UpdatedAt = s.clock.Now()

	if err := s.problems.Update(ctx, problem); err != nil {
		return nil, err
	}

	return problem, nil
}

func (s *Service) validateCreateProblem(req *CreateProblemRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&req.Content, validation.Required, validation.Length(1, config.MaxContentLength)),
		validation.Field(&req.CategoryID, validation.Required),
	)
}

func (s *Service) validateProblemPatch(patch *ProblemPatch) error {
	return validation.ValidateStruct(patch,
		validation.Field(&patch.Title, validation.NilOrNotEmpty, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&patch.Content, validation.NilOrNotEmpty, validation.Length(1, config.MaxContentLength)),
		validation.Field(&patch.CategoryID, validation.NilOrNotEmpty),
	)
}
