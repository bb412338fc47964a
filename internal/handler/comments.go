package handler

import (
	"log/slog"
	"net/http"

	"janmanch/internal/domain/models"
	"janmanch/internal/httputil"
	"janmanch/internal/service/board"
)

// CommentHandler handles comment HTTP requests.
type CommentHandler struct {
	boardService *board.Service
	logger       *slog.Logger
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(boardService *board.Service, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// ListComments lists comments, filtered by parent when the query names
// one.
// GET /api/comments[?parentType=<problem|solution>&parentId=<id>]
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	var (
		comments []models.Comment
		err      error
	)

	if parentType := r.URL.Query().Get("parentType"); parentType != "" {
		comments, err = h.boardService.ListCommentsByParent(r.Context(),
			models.ParentType(parentType), r.URL.Query().Get("parentId"))
	} else {
		comments, err = h.boardService.ListComments(r.Context())
	}

	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}

// GetComment retrieves a comment by ID.
// GET /api/comments/{id}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.boardService.GetComment(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comment)
}

// CreateComment creates a new comment authored by the acting user.
// POST /api/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req board.CreateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.boardService.CreateComment(r.Context(), user, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}
