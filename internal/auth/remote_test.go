package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"janmanch/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGoTrue is a minimal GoTrue endpoint for provider tests.
type fakeGoTrue struct {
	t *testing.T

	password string
	// when false, signup responds without an access token
	autoConfirm bool

	lastAPIKey string
	lastBearer string
	logoutHits int
}

func (g *fakeGoTrue) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token", g.token)
	mux.HandleFunc("POST /auth/v1/signup", g.signup)
	mux.HandleFunc("POST /auth/v1/logout", g.logout)
	return mux
}

func (g *fakeGoTrue) record(r *http.Request) {
	g.lastAPIKey = r.Header.Get("apikey")
	g.lastBearer = r.Header.Get("Authorization")
}

func (g *fakeGoTrue) token(w http.ResponseWriter, r *http.Request) {
	g.record(r)
	if r.URL.Query().Get("grant_type") != "password" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "unsupported grant type"})
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		g.t.Fatalf("decode token request: %v", err)
	}
	if body.Password != g.password {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": "jwt-token",
		"user": map[string]interface{}{
			"id":            "remote-1",
			"email":         body.Email,
			"user_metadata": map[string]string{"name": "Asha K"},
			"created_at":    "2025-06-01T12:00:00Z",
		},
	})
}

func (g *fakeGoTrue) signup(w http.ResponseWriter, r *http.Request) {
	g.record(r)

	var body struct {
		Email    string            `json:"email"`
		Password string            `json:"password"`
		Data     map[string]string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		g.t.Fatalf("decode signup request: %v", err)
	}

	resp := map[string]interface{}{
		"user": map[string]interface{}{
			"id":            "remote-2",
			"email":         body.Email,
			"user_metadata": map[string]string{"name": body.Data["name"]},
			"created_at":    "2025-06-01T12:00:00Z",
		},
	}
	if g.autoConfirm {
		resp["access_token"] = "jwt-token"
	}
	json.NewEncoder(w).Encode(resp)
}

func (g *fakeGoTrue) logout(w http.ResponseWriter, r *http.Request) {
	g.record(r)
	g.logoutHits++
	w.WriteHeader(http.StatusNoContent)
}

func newRemoteFixture(t *testing.T, gotrue *fakeGoTrue) *RemoteProvider {
	t.Helper()
	gotrue.t = t
	server := httptest.NewServer(gotrue.handler())
	t.Cleanup(server.Close)
	return NewRemoteProvider(server.URL, "anon-key", discardLogger())
}

func TestRemoteProvider_SignIn(t *testing.T) {
	ctx := context.Background()
	gotrue := &fakeGoTrue{password: "secret1"}
	provider := newRemoteFixture(t, gotrue)

	session, err := provider.SignIn(ctx, "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	if session.AccessToken != "jwt-token" {
		t.Errorf("expected access token, got %q", session.AccessToken)
	}
	if session.User.ID != "remote-1" || session.User.Name != "Asha K" {
		t.Errorf("unexpected mapped user: %+v", session.User)
	}
	if gotrue.lastAPIKey != "anon-key" {
		t.Errorf("apikey header missing, got %q", gotrue.lastAPIKey)
	}

	current, err := provider.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if current == nil || current.User.ID != "remote-1" {
		t.Errorf("session not established: %+v", current)
	}
}

func TestRemoteProvider_SignInRejected(t *testing.T) {
	ctx := context.Background()
	provider := newRemoteFixture(t, &fakeGoTrue{password: "secret1"})

	_, err := provider.SignIn(ctx, "asha@example.com", "wrong")
	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if perr.Message != "Invalid login credentials" {
		t.Errorf("provider message not surfaced: %q", perr.Message)
	}
	if perr.Transient {
		t.Error("a 4xx rejection is not transient")
	}

	current, err := provider.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if current != nil {
		t.Errorf("rejected sign-in must not establish a session: %+v", current)
	}
}

func TestRemoteProvider_SignInUnreachable(t *testing.T) {
	ctx := context.Background()
	provider := NewRemoteProvider("http://127.0.0.1:1", "anon-key", discardLogger())

	_, err := provider.SignIn(ctx, "asha@example.com", "secret1")
	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if !perr.Transient {
		t.Error("transport failure must be transient")
	}
}

func TestRemoteProvider_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmation required", func(t *testing.T) {
		provider := newRemoteFixture(t, &fakeGoTrue{})

		session, err := provider.SignUp(ctx, "Ravi", "ravi@example.com", "secret1")
		if err != nil {
			t.Fatalf("SignUp: %v", err)
		}
		if session.AccessToken != "" {
			t.Errorf("unconfirmed signup must not carry a token, got %q", session.AccessToken)
		}
		if session.User.Name != "Ravi" {
			t.Errorf("metadata name not mapped: %+v", session.User)
		}

		current, err := provider.CurrentSession(ctx)
		if err != nil {
			t.Fatalf("CurrentSession: %v", err)
		}
		if current != nil {
			t.Errorf("unconfirmed signup must not establish a session: %+v", current)
		}
	})

	t.Run("auto-confirmed", func(t *testing.T) {
		provider := newRemoteFixture(t, &fakeGoTrue{autoConfirm: true})

		session, err := provider.SignUp(ctx, "Ravi", "ravi@example.com", "secret1")
		if err != nil {
			t.Fatalf("SignUp: %v", err)
		}
		if session.AccessToken == "" {
			t.Error("auto-confirmed signup should carry a token")
		}

		current, err := provider.CurrentSession(ctx)
		if err != nil {
			t.Fatalf("CurrentSession: %v", err)
		}
		if current == nil {
			t.Fatal("auto-confirmed signup should establish a session")
		}
	})
}

func TestRemoteProvider_SignOut(t *testing.T) {
	ctx := context.Background()
	gotrue := &fakeGoTrue{password: "secret1"}
	provider := newRemoteFixture(t, gotrue)

	if _, err := provider.SignIn(ctx, "asha@example.com", "secret1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	var seen []*Session
	unsubscribe := provider.Subscribe(func(s *Session) { seen = append(seen, s) })
	defer unsubscribe()

	if err := provider.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if gotrue.logoutHits != 1 {
		t.Errorf("expected one logout call, got %d", gotrue.logoutHits)
	}
	if gotrue.lastBearer != "Bearer jwt-token" {
		t.Errorf("logout must carry the session token, got %q", gotrue.lastBearer)
	}

	current, err := provider.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if current != nil {
		t.Errorf("session must be cleared: %+v", current)
	}
	if len(seen) != 1 || seen[0] != nil {
		t.Errorf("expected a single nil notification, got %#v", seen)
	}
}

func TestMapRemoteUser(t *testing.T) {
	t.Run("metadata name wins", func(t *testing.T) {
		u := mapRemoteUser(gotrueUser{
			ID:           "u1",
			Email:        "asha@example.com",
			UserMetadata: map[string]interface{}{"name": "Asha K"},
			CreatedAt:    "2025-06-01T12:00:00Z",
		})
		if u.Name != "Asha K" {
			t.Errorf("expected metadata name, got %q", u.Name)
		}
		want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		if !u.CreatedAt.Equal(want) {
			t.Errorf("createdAt not parsed: %v", u.CreatedAt)
		}
	})

	t.Run("falls back to email local-part", func(t *testing.T) {
		u := mapRemoteUser(gotrueUser{ID: "u1", Email: "asha@example.com"})
		if u.Name != "asha" {
			t.Errorf("expected email local-part, got %q", u.Name)
		}
	})

	t.Run("no name sources", func(t *testing.T) {
		u := mapRemoteUser(gotrueUser{ID: "u1"})
		if u.Name != "" {
			t.Errorf("expected empty name, got %q", u.Name)
		}
	})

	t.Run("bad createdAt falls back to now", func(t *testing.T) {
		before := time.Now()
		u := mapRemoteUser(gotrueUser{ID: "u1", CreatedAt: "yesterday-ish"})
		if u.CreatedAt.Before(before) {
			t.Errorf("expected fallback to now, got %v", u.CreatedAt)
		}
	})
}
