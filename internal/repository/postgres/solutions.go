package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// SolutionRepository implements repositories.SolutionRepository over
// Postgres.
type SolutionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSolutionRepository creates a new solution repository
func NewSolutionRepository(config *RepositoryConfig) repositories.SolutionRepository {
	return &SolutionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const solutionColumns = `id, content, problem_id, author_id, author_name, author_avatar,
		created_at, updated_at, accepted, upvotes, downvotes`

func (r *SolutionRepository) List(ctx context.Context) ([]models.Solution, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at DESC
	`, solutionColumns, r.tables.Solutions)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	defer rows.Close()

	var solutions []models.Solution
	for rows.Next() {
		var s models.Solution
		err := rows.Scan(
			&s.ID, &s.Content, &s.ProblemID,
			&s.AuthorID, &s.AuthorName, &s.AuthorAvatar,
			&s.CreatedAt, &s.UpdatedAt,
			&s.Accepted, &s.Upvotes, &s.Downvotes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		solutions = append(solutions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solutions: %w", err)
	}

	if solutions == nil {
		solutions = []models.Solution{}
	}

	return solutions, nil
}

func (r *SolutionRepository) Get(ctx context.Context, id string) (*models.Solution, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, solutionColumns, r.tables.Solutions)

	var s models.Solution
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Content, &s.ProblemID,
		&s.AuthorID, &s.AuthorName, &s.AuthorAvatar,
		&s.CreatedAt, &s.UpdatedAt,
		&s.Accepted, &s.Upvotes, &s.Downvotes,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("solution %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get solution: %w", err)
	}

	return &s, nil
}

func (r *SolutionRepository) Insert(ctx context.Context, solution *models.Solution) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Solutions, solutionColumns)

	_, err := r.pool.Exec(ctx, query,
		solution.ID, solution.Content, solution.ProblemID,
		solution.AuthorID, solution.AuthorName, solution.AuthorAvatar,
		solution.CreatedAt, solution.UpdatedAt,
		solution.Accepted, solution.Upvotes, solution.Downvotes,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("solution %s: %w", solution.ID, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("problem %s: %w", solution.ProblemID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert solution: %w", err)
	}

	return nil
}

func (r *SolutionRepository) Update(ctx context.Context, solution *models.Solution) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, updated_at = $2, accepted = $3, upvotes = $4, downvotes = $5
		WHERE id = $6
	`, r.tables.Solutions)

	result, err := r.pool.Exec(ctx, query,
		solution.Content, solution.UpdatedAt,
		solution.Accepted, solution.Upvotes, solution.Downvotes,
		solution.ID,
	)

	if err != nil {
		return fmt.Errorf("update solution: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("solution %s: %w", solution.ID, domain.ErrNotFound)
	}

	return nil
}
