package middleware

import (
	"net/http"
	"strings"

	"janmanch/internal/auth"
	"janmanch/internal/httputil"
	"janmanch/internal/service/session"
)

// Identity resolves who is acting and attaches the user to the request
// context. A bearer token, when present and verifiable, wins; otherwise
// the session facade's current user is used (the local-only variant has
// no tokens at all). Requests resolve to anonymous rather than failing
// here; handlers that need an identity reject anonymous themselves.
func Identity(verifier auth.TokenVerifier, sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" && verifier != nil {
				claims, err := verifier.VerifyToken(token)
				if err != nil {
					httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				user := auth.UserFromClaims(claims)
				next.ServeHTTP(w, httputil.WithUser(r, &user))
				return
			}

			if user, ok := sessions.CurrentUser(); ok {
				next.ServeHTTP(w, httputil.WithUser(r, &user))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
