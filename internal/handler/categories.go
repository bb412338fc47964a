package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"janmanch/internal/domain"
	"janmanch/internal/httputil"
	"janmanch/internal/service/board"
)

// CategoryHandler serves the fixed category set.
type CategoryHandler struct {
	boardService *board.Service
	logger       *slog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(boardService *board.Service, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// ListCategories returns the seed set in stable order.
// GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.boardService.ListCategories())
}

// GetCategory returns a category by its URL slug, falling back to an id
// lookup so both keys work.
// GET /api/categories/{slug}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	category, err := h.boardService.GetCategoryBySlug(slug)
	if errors.Is(err, domain.ErrNotFound) {
		category, err = h.boardService.GetCategoryByID(slug)
	}
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, category)
}
