package repositories

import (
	"context"

	"janmanch/internal/domain/models"
)

// SolutionRepository is the persistence contract for the solution
// collection. Same snapshot and ordering semantics as ProblemRepository.
type SolutionRepository interface {
	List(ctx context.Context) ([]models.Solution, error)
	Get(ctx context.Context, id string) (*models.Solution, error)
	Insert(ctx context.Context, solution *models.Solution) error
	Update(ctx context.Context, solution *models.Solution) error
}
