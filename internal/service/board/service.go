// Package board implements the data facade over the record
// repositories: CRUD and query operations for categories, problems,
// solutions and comments, plus the vote and accept actions.
package board

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"janmanch/internal/catalog"
	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// Clock supplies the current instant. Injected so tests control
// timestamps deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Config wires the service's collaborators. Clock and NewID default to
// the system clock and uuid generation when left nil.
type Config struct {
	Problems  repositories.ProblemRepository
	Solutions repositories.SolutionRepository
	Comments  repositories.CommentRepository
	Catalog   *catalog.Catalog
	Clock     Clock
	NewID     func() string
	Logger    *slog.Logger
}

// Service is the single source of truth for the board collections.
type Service struct {
	problems  repositories.ProblemRepository
	solutions repositories.SolutionRepository
	comments  repositories.CommentRepository
	catalog   *catalog.Catalog
	clock     Clock
	newID     func() string
	logger    *slog.Logger
}

// New creates a new board service.
func New(cfg Config) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Service{
		problems:  cfg.Problems,
		solutions: cfg.Solutions,
		comments:  cfg.Comments,
		catalog:   cfg.Catalog,
		clock:     clock,
		newID:     newID,
		logger:    cfg.Logger,
	}
}

// ListCategories returns the fixed seed set in stable order.
func (s *Service) ListCategories() []models.Category {
	return s.catalog.List()
}

// GetCategoryByID returns the category with the given id.
func (s *Service) GetCategoryByID(id string) (models.Category, error) {
	cat, ok := s.catalog.ByID(id)
	if !ok {
		return models.Category{}, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	return cat, nil
}

// GetCategoryBySlug returns the category with the given URL slug.
func (s *Service) GetCategoryBySlug(slug string) (models.Category, error) {
	cat, ok := s.catalog.BySlug(slug)
	if !ok {
		return models.Category{}, fmt.Errorf("category %s: %w", slug, domain.ErrNotFound)
	}
	return cat, nil
}
