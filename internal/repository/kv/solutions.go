package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// SolutionRepository implements repositories.SolutionRepository over the
// local store.
type SolutionRepository struct {
	store *Store
}

// NewSolutionRepository creates a new solution repository.
func NewSolutionRepository(store *Store) repositories.SolutionRepository {
	return &SolutionRepository{store: store}
}

func (r *SolutionRepository) List(ctx context.Context) ([]models.Solution, error) {
	raw, err := r.store.get(keySolutions)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Solution{}, nil
	}

	var solutions []models.Solution
	if err := json.Unmarshal(raw, &solutions); err != nil {
		r.store.logger.Warn("solution collection corrupt, treating as empty",
			"key", keySolutions,
			"error", err,
		)
		return []models.Solution{}, nil
	}
	if solutions == nil {
		solutions = []models.Solution{}
	}
	return solutions, nil
}

func (r *SolutionRepository) Get(ctx context.Context, id string) (*models.Solution, error) {
	solutions, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range solutions {
		if solutions[i].ID == id {
			s := solutions[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("solution %s: %w", id, domain.ErrNotFound)
}

func (r *SolutionRepository) Insert(ctx context.Context, solution *models.Solution) error {
	solutions, err := r.List(ctx)
	if err != nil {
		return err
	}
	solutions = append([]models.Solution{*solution}, solutions...)
	return r.write(solutions)
}

func (r *SolutionRepository) Update(ctx context.Context, solution *models.Solution) error {
	solutions, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range solutions {
		if solutions[i].ID == solution.ID {
			solutions[i] = *solution
			return r.write(solutions)
		}
	}
	return fmt.Errorf("solution %s: %w", solution.ID, domain.ErrNotFound)
}

func (r *SolutionRepository) write(solutions []models.Solution) error {
	raw, err := json.Marshal(solutions)
	if err != nil {
		return fmt.Errorf("encode solutions: %w", err)
	}
	return r.store.put(keySolutions, raw)
}
