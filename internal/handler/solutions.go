package handler

import (
	"log/slog"
	"net/http"

	"janmanch/internal/httputil"
	"janmanch/internal/service/board"
)

// SolutionHandler handles solution HTTP requests.
type SolutionHandler struct {
	boardService *board.Service
	logger       *slog.Logger
}

// NewSolutionHandler creates a new solution handler.
func NewSolutionHandler(boardService *board.Service, logger *slog.Logger) *SolutionHandler {
	return &SolutionHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// ListSolutions lists solutions by author.
// GET /api/solutions?author=<id>
func (h *SolutionHandler) ListSolutions(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	if author == "" {
		httputil.RespondError(w, http.StatusBadRequest, "author query parameter is required")
		return
	}

	solutions, err := h.boardService.ListSolutionsByAuthor(r.Context(), author)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, solutions)
}

// GetSolution retrieves a solution by ID.
// GET /api/solutions/{id}
func (h *SolutionHandler) GetSolution(w http.ResponseWriter, r *http.Request) {
	solution, err := h.boardService.GetSolution(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, solution)
}

// CreateSolution creates a new solution authored by the acting user.
// POST /api/solutions
func (h *SolutionHandler) CreateSolution(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req board.CreateSolutionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	solution, err := h.boardService.CreateSolution(r.Context(), user, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, solution)
}

// UpdateSolution applies a partial update.
// PATCH /api/solutions/{id}
func (h *SolutionHandler) UpdateSolution(w http.ResponseWriter, r *http.Request) {
	if _, ok := actingUser(w, r); !ok {
		return
	}

	var patch board.SolutionPatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	solution, err := h.boardService.UpdateSolution(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, solution)
}

// VoteSolution increments the up or down counter.
// POST /api/solutions/{id}/vote
func (h *SolutionHandler) VoteSolution(w http.ResponseWriter, r *http.Request) {
	if _, ok := actingUser(w, r); !ok {
		return
	}

	var req struct {
		Vote string `json:"vote"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind, err := board.ParseVoteKind(req.Vote)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	solution, err := h.boardService.VoteSolution(r.Context(), r.PathValue("id"), kind)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, solution)
}

// AcceptSolution marks a solution accepted and its problem solved. Only
// the problem's author may do this.
// POST /api/solutions/{id}/accept
func (h *SolutionHandler) AcceptSolution(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	solution, err := h.boardService.AcceptSolution(r.Context(), user, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, solution)
}
