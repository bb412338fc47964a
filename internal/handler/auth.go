package handler

import (
	"log/slog"
	"net/http"

	"janmanch/internal/httputil"
	"janmanch/internal/service/session"
)

// AuthHandler exposes the identity facade over HTTP.
type AuthHandler struct {
	sessions *session.Service
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions *session.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and establishes the session.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// Register creates a new identity. A 202 signals that the provider
// requires confirmation before the session becomes active.
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	status := http.StatusCreated
	if h.sessions.State() != session.StateAuthenticated {
		status = http.StatusAccepted
	}
	httputil.RespondJSON(w, status, user)
}

// Logout clears the session. Always succeeds.
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSession reports the current session state and user.
// GET /api/auth/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		State string      `json:"state"`
		User  interface{} `json:"user,omitempty"`
	}{
		State: string(h.sessions.State()),
	}
	if user, ok := h.sessions.CurrentUser(); ok {
		resp.User = user
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
