package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// ProblemRepository implements repositories.ProblemRepository over the
// local store.
type ProblemRepository struct {
	store *Store
}

// NewProblemRepository creates a new problem repository.
func NewProblemRepository(store *Store) repositories.ProblemRepository {
	return &ProblemRepository{store: store}
}

// List returns the full problem collection in persisted (newest-first)
// order. A missing or corrupt payload yields an empty collection: the
// corruption is logged and the caller is never failed for it.
func (r *ProblemRepository) List(ctx context.Context) ([]models.Problem, error) {
	raw, err := r.store.get(keyProblems)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Problem{}, nil
	}

	var problems []models.Problem
	if err := json.Unmarshal(raw, &problems); err != nil {
		r.store.logger.Warn("problem collection corrupt, treating as empty",
			"key", keyProblems,
			"error", err,
		)
		return []models.Problem{}, nil
	}
	if problems == nil {
		problems = []models.Problem{}
	}
	return problems, nil
}

// Get returns the problem with the given id.
func (r *ProblemRepository) Get(ctx context.Context, id string) (*models.Problem, error) {
	problems, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range problems {
		if problems[i].ID == id {
			p := problems[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("problem %s: %w", id, domain.ErrNotFound)
}

// Insert prepends the problem and writes the whole collection back.
func (r *ProblemRepository) Insert(ctx context.Context, problem *models.Problem) error {
	problems, err := r.List(ctx)
	if err != nil {
		return err
	}
	problems = append([]models.Problem{*problem}, problems...)
	return r.write(problems)
}

// Update replaces the stored record with the same id.
func (r *ProblemRepository) Update(ctx context.Context, problem *models.Problem) error {
	problems, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range problems {
		if problems[i].ID == problem.ID {
			problems[i] = *problem
			return r.write(problems)
		}
	}
	return fmt.Errorf("problem %s: %w", problem.ID, domain.ErrNotFound)
}

// IncrementViews bumps the view counter via a read-then-update cycle.
// Two concurrent calls can observe the same prior value and lose an
// increment; that matches the single-session contract of the local store.
func (r *ProblemRepository) IncrementViews(ctx context.Context, id string) error {
	problem, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	problem.Views++
	return r.Update(ctx, problem)
}

func (r *ProblemRepository) write(problems []models.Problem) error {
	raw, err := json.Marshal(problems)
	if err != nil {
		return fmt.Errorf("encode problems: %w", err)
	}
	return r.store.put(keyProblems, raw)
}
