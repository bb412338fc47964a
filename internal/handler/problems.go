package handler

import (
	"log/slog"
	"net/http"

	"janmanch/internal/httputil"
	"janmanch/internal/service/board"
)

// ProblemHandler handles problem HTTP requests.
type ProblemHandler struct {
	boardService *board.Service
	logger       *slog.Logger
}

// NewProblemHandler creates a new problem handler.
func NewProblemHandler(boardService *board.Service, logger *slog.Logger) *ProblemHandler {
	return &ProblemHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// ListProblems lists the collection, optionally filtered by category or
// author.
// GET /api/problems?category=<id>&author=<id>
func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	var (
		problems interface{}
		err      error
	)

	switch {
	case r.URL.Query().Get("category") != "":
		problems, err = h.boardService.ListProblemsByCategory(r.Context(), r.URL.Query().Get("category"))
	case r.URL.Query().Get("author") != "":
		problems, err = h.boardService.ListProblemsByAuthor(r.Context(), r.URL.Query().Get("author"))
	default:
		problems, err = h.boardService.ListProblems(r.Context())
	}

	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, problems)
}

// GetProblem retrieves a problem by ID.
// GET /api/problems/{id}
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	problem, err := h.boardService.GetProblem(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, problem)
}

// CreateProblem creates a new problem authored by the acting user.
// POST /api/problems
func (h *ProblemHandler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req board.CreateProblemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	problem, err := h.boardService.CreateProblem(r.Context(), user, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, problem)
}

// UpdateProblem applies a partial update.
// PATCH /api/problems/{id}
func (h *ProblemHandler) UpdateProblem(w http.ResponseWriter, r *http.Request) {
	if _, ok := actingUser(w, r); !ok {
		return
	}

	var patch board.ProblemPatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	problem, err := h.boardService.UpdateProblem(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, problem)
}

// RecordView bumps the problem's view counter.
// POST /api/problems/{id}/views
func (h *ProblemHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	if err := h.boardService.IncrementProblemViews(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VoteProblem increments the up or down counter.
// POST /api/problems/{id}/vote
func (h *ProblemHandler) VoteProblem(w http.ResponseWriter, r *http.Request) {
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

	problem, err := h.boardService.VoteProblem(r.Context(), r.PathValue("id"), kind)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, problem)
}

// ListSolutions lists the solutions attached to a problem.
// GET /api/problems/{id}/solutions
func (h *ProblemHandler) ListSolutions(w http.ResponseWriter, r *http.Request) {
	solutions, err := h.boardService.ListSolutionsByProblem(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, solutions)
}
