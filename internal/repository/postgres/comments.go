package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// CommentRepository implements repositories.CommentRepository over
// Postgres. Comments are append-only.
type CommentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *RepositoryConfig) repositories.CommentRepository {
	return &CommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const commentColumns = `id, content, parent_type, parent_id, author_id, author_name, author_avatar, created_at`

func (r *CommentRepository) List(ctx context.Context) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at DESC
	`, commentColumns, r.tables.Comments)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(
			&c.ID, &c.Content, &c.ParentType, &c.ParentID,
			&c.AuthorID, &c.AuthorName, &c.AuthorAvatar,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	return comments, nil
}

func (r *CommentRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, commentColumns, r.tables.Comments)

	var c models.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Content, &c.ParentType, &c.ParentID,
		&c.AuthorID, &c.AuthorName, &c.AuthorAvatar,
		&c.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &c, nil
}

func (r *CommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Comments, commentColumns)

	_, err := r.pool.Exec(ctx, query,
		comment.ID, comment.Content, comment.ParentType, comment.ParentID,
		comment.AuthorID, comment.AuthorName, comment.AuthorAvatar,
		comment.CreatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("comment %s: %w", comment.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}
