package board

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"janmanch/internal/config"
	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
)

// CreateSolutionRequest carries the caller-supplied fields of a new
// solution.
type CreateSolutionRequest struct {
	Content   string `json:"content"`
	ProblemID string `json:"problemId"`
}

// SolutionPatch is a partial update. Nil fields are left unchanged.
// Acceptance is not patchable; it only changes through AcceptSolution.
type SolutionPatch struct {
	Content *string `json:"content"`
}

// GetSolution returns the solution with the given id.
func (s *Service) GetSolution(ctx context.Context, id string) (*models.Solution, error) {
	return s.solutions.Get(ctx, id)
}

// ListSolutionsByProblem filters the full snapshot, preserving relative
// order.
func (s *Service) ListSolutionsByProblem(ctx context.Context, problemID string) ([]models.Solution, error) {
	solutions, err := s.solutions.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Solution{}
	for _, sol := range solutions {
		if sol.ProblemID == problemID {
			filtered = append(filtered, sol)
		}
	}
	return filtered, nil
}

// ListSolutionsByAuthor filters the full snapshot, preserving relative
// order.
func (s *Service) ListSolutionsByAuthor(ctx context.Context, authorID string) ([]models.Solution, error) {
	solutions, err := s.solutions.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Solution{}
	for _, sol := range solutions {
		if sol.AuthorID == authorID {
			filtered = append(filtered, sol)
		}
	}
	return filtered, nil
}

// CreateSolution creates a new solution authored by actor. The target
// problem must exist.
func (s *Service) CreateSolution(ctx context.Context, actor *models.User, req *CreateSolutionRequest) (*models.Solution, error) {
	if err := s.validateCreateSolution(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if _, err := s.problems.Get(ctx, req.ProblemID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	solution := &models.Solution{
		ID:           s.newID(),
		Content:      req.Content,
		ProblemID:    req.ProblemID,
		AuthorID:     actor.ID,
		AuthorName:   actor.Name,
		AuthorAvatar: actor.Avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.solutions.Insert(ctx, solution); err != nil {
		return nil, err
	}

	s.logger.Info("solution created",
		"id", solution.ID,
		"problem_id", solution.ProblemID,
		"author_id", actor.ID,
	)

	return solution, nil
}

// UpdateSolution shallow-merges the patch over the existing record and
// refreshes updatedAt.
func (s *Service) UpdateSolution(ctx context.Context, id string, patch *SolutionPatch) (*models.Solution, error) {
	if err := s.validateSolutionPatch(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	solution, err := s.solutions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		solution.Content = *patch.Content
	}
	solution.UpdatedAt = s.clock.Now()

	if err := s.solutions.Update(ctx, solution); err != nil {
		return nil, err
	}

	s.logger.Info("solution updated", "id", solution.ID)

	return solution, nil
}

// VoteSolution adds one to the solution's up or down counter.
func (s *Service) VoteSolution(ctx context.Context, id string, kind VoteKind) (*models.Solution, error) {
	solution, err := s.solutions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch kind {
	case VoteUp:
		solution.Upvotes++
	case VoteDown:
		solution.Downvotes++
	default:
		return nil, fmt.Errorf("%w: unknown vote kind %q", domain.ErrValidation, kind)
	}
	solution.UpdatedAt = s.clock.Now()

	if err := s.solutions.Update(ctx, solution); err != nil {
		return nil, err
	}

	return solution, nil
}

// AcceptSolution marks the solution accepted and its problem solved.
// Only the problem's author may accept, and a problem is solved at most
// once: accepting against an already-solved problem is a conflict, so a
// problem can never hold two accepted solutions.
func (s *Service) AcceptSolution(ctx context.Context, actor *models.User, solutionID string) (*models.Solution, error) {
	solution, err := s.solutions.Get(ctx, solutionID)
	if err != nil {
		return nil, err
	}

	problem, err := s.problems.Get(ctx, solution.ProblemID)
	if err != nil {
		return nil, err
	}

	if problem.AuthorID != actor.ID {
		return nil, &domain.ForbiddenError{
			Message: "only the problem's author may accept a solution",
		}
	}
	if problem.Solved {
		return nil, &domain.ConflictError{
			Message: fmt.Sprintf("problem %s is already solved", problem.ID),
		}
	}

	now := s.clock.Now()
	solution.Accepted = true
	solution.UpdatedAt = now
	if err := s.solutions.Update(ctx, solution); err != nil {
		return nil, err
	}

	problem.Solved = true
	problem.UpdatedAt = now
	if err := s.problems.Update(ctx, problem); err != nil {
		return nil, err
	}

	s.logger.Info("solution accepted",
		"id", solution.ID,
		"problem_id", problem.ID,
		"actor_id", actor.ID,
	)

	return solution, nil
}

func (s *Service) validateCreateSolution(req *CreateSolutionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, config.MaxContentLength)),
		validation.Field(&req.ProblemID, validation.Required),
	)
}

func (s *Service) validateSolutionPatch(patch *SolutionPatch) error {
	return validation.ValidateStruct(patch,
		validation.Field(&patch.Content, validation.NilOrNotEmpty, validation.Length(1, config.MaxContentLength)),
	)
}
