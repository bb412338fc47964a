package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/httputil"
)

// handleError maps service errors onto HTTP responses. Typed errors
// carry their own status; sentinels cover the rest; anything unknown is
// logged and becomes an opaque 500.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		// Degraded mode, not a client mistake: the deployment has no
		// hosted identity provider.
		httputil.RespondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// actingUser extracts the acting user, writing a 401 when anonymous.
func actingUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := httputil.GetUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return user, true
}
