package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// ProblemRepository implements repositories.ProblemRepository over
// Postgres.
type ProblemRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProblemRepository creates a new problem repository
func NewProblemRepository(config *RepositoryConfig) repositories.ProblemRepository {
	return &ProblemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const problemColumns = `id, title, content, category_id, author_id, author_name, author_avatar,
		created_at, updated_at, solved, upvotes, downvotes, views`

// List retrieves all problems, newest first.
func (r *ProblemRepository) List(ctx context.Context) ([]models.Problem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at DESC
	`, problemColumns, r.tables.Problems)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	defer rows.Close()

	var problems []models.Problem
	for rows.Next() {
		var p models.Problem
		err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.CategoryID,
			&p.AuthorID, &p.AuthorName, &p.AuthorAvatar,
			&p.CreatedAt, &p.UpdatedAt,
			&p.Solved, &p.Upvotes, &p.Downvotes, &p.Views,
		)
		if err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		problems = append(problems, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problems: %w", err)
	}

	// Return empty slice instead of nil if no problems
	if problems == nil {
		problems = []models.Problem{}
	}

	return problems, nil
}

// Get retrieves a problem by ID
func (r *ProblemRepository) Get(ctx context.Context, id string) (*models.Problem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, problemColumns, r.tables.Problems)

	var p models.Problem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.CategoryID,
		&p.AuthorID, &p.AuthorName, &p.AuthorAvatar,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Solved, &p.Upvotes, &p.Downvotes, &p.Views,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("problem %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get problem: %w", err)
	}

	return &p, nil
}

// Insert stores a new problem
func (r *ProblemRepository) Insert(ctx context.Context, problem *models.Problem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.Problems, problemColumns)

	_, err := r.pool.Exec(ctx, query,
		problem.ID, problem.Title, problem.Content, problem.CategoryID,
		problem.AuthorID, problem.AuthorName, problem.AuthorAvatar,
		problem.CreatedAt, problem.UpdatedAt,
		problem.Solved, problem.Upvotes, problem.Downvotes, problem.Views,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("problem %s: %w", problem.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert problem: %w", err)
	}

	return nil
}

// Update replaces the stored row with the same id
func (r *ProblemRepository) Update(ctx context.Context, problem *models.Problem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, category_id = $3, updated_at = $4,
		    solved = $5, upvotes = $6, downvotes = $7, views = $8
		WHERE id = $9
	`, r.tables.Problems)

	result, err := r.pool.Exec(ctx, query,
		problem.Title, problem.Content, problem.CategoryID, problem.UpdatedAt,
		problem.Solved, problem.Upvotes, problem.Downvotes, problem.Views,
		problem.ID,
	)

	if err != nil {
		return fmt.Errorf("update problem: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("problem %s: %w", problem.ID, domain.ErrNotFound)
	}

	return nil
}

// IncrementViews bumps the view counter in a single statement, so
// concurrent increments cannot lose updates.
func (r *ProblemRepository) IncrementViews(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET views = views + 1
		WHERE id = $1
	`, r.tables.Problems)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("problem %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
