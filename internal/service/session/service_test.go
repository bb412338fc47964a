package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"janmanch/internal/auth"
	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
)

// fakeProvider is a scriptable auth.Provider.
type fakeProvider struct {
	current    *auth.Session
	currentErr error

	signInSession *auth.Session
	signInErr     error

	signUpSession *auth.Session
	signUpErr     error
	// session granted on SignUp success, queried back via CurrentSession
	grantOnSignUp bool

	signOutErr   error
	signOutCalls int

	subscriber func(*auth.Session)
}

func (f *fakeProvider) CurrentSession(ctx context.Context) (*auth.Session, error) {
	return f.current, f.currentErr
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.current = f.signInSession
	return f.signInSession, nil
}

func (f *fakeProvider) SignUp(ctx context.Context, name, email, password string) (*auth.Session, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	if f.grantOnSignUp {
		f.current = f.signUpSession
	}
	return f.signUpSession, nil
}

func (f *fakeProvider) SignOut(ctx context.Context) error {
	f.signOutCalls++
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.current = nil
	return nil
}

func (f *fakeProvider) Subscribe(fn func(*auth.Session)) func() {
	f.subscriber = fn
	return func() { f.subscriber = nil }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSession() *auth.Session {
	return &auth.Session{
		User: models.User{
			ID:        "u1",
			Name:      "Asha",
			Email:     "asha@example.com",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		AccessToken: "token",
	}
}

func TestInit(t *testing.T) {
	ctx := context.Background()

	t.Run("restores prior session", func(t *testing.T) {
		provider := &fakeProvider{current: sampleSession()}
		svc := New(provider, discardLogger())

		if svc.State() != StateAuthenticating {
			t.Errorf("expected authenticating before Init, got %s", svc.State())
		}

		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		if svc.State() != StateAuthenticated {
			t.Errorf("expected authenticated, got %s", svc.State())
		}
		user, ok := svc.CurrentUser()
		if !ok || user.ID != "u1" {
			t.Errorf("expected restored user u1, got %+v ok=%v", user, ok)
		}
	})

	t.Run("no prior session", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		if svc.State() != StateAnonymous {
			t.Errorf("expected anonymous, got %s", svc.State())
		}
	})

	t.Run("restore failure degrades to anonymous", func(t *testing.T) {
		provider := &fakeProvider{currentErr: errors.New("store unreadable")}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("restore failure must not fail Init: %v", err)
		}
		defer svc.Close()

		if svc.State() != StateAnonymous {
			t.Errorf("expected anonymous, got %s", svc.State())
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		provider := &fakeProvider{signInSession: sampleSession()}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		user, err := svc.Login(ctx, "asha@example.com", "secret")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if user.ID != "u1" {
			t.Errorf("expected u1, got %s", user.ID)
		}
		if svc.State() != StateAuthenticated {
			t.Errorf("expected authenticated, got %s", svc.State())
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		svc := New(&fakeProvider{}, discardLogger())
		if _, err := svc.Login(ctx, "", "secret"); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
		if _, err := svc.Login(ctx, "asha@example.com", ""); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("rejected credentials leave state unchanged", func(t *testing.T) {
		provider := &fakeProvider{
			signInErr: &domain.ProviderError{Message: "Invalid login credentials"},
		}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		var perr *domain.ProviderError
		_, err := svc.Login(ctx, "asha@example.com", "wrong")
		if !errors.As(err, &perr) {
			t.Fatalf("expected provider error, got %v", err)
		}
		if svc.State() != StateAnonymous {
			t.Errorf("failed login must not change state, got %s", svc.State())
		}
	})

	t.Run("not configured surfaces as such", func(t *testing.T) {
		provider := &fakeProvider{signInErr: domain.ErrNotConfigured}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		if _, err := svc.Login(ctx, "asha@example.com", "secret"); !errors.Is(err, domain.ErrNotConfigured) {
			t.Errorf("expected not configured, got %v", err)
		}
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("provider grants session", func(t *testing.T) {
		provider := &fakeProvider{signUpSession: sampleSession(), grantOnSignUp: true}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		user, err := svc.Register(ctx, "Asha", "asha@example.com", "secret1")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if user.ID != "u1" {
			t.Errorf("expected u1, got %s", user.ID)
		}
		if svc.State() != StateAuthenticated {
			t.Errorf("expected authenticated, got %s", svc.State())
		}
	})

	t.Run("provider holds session until confirmation", func(t *testing.T) {
		provider := &fakeProvider{signUpSession: sampleSession()}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		user, err := svc.Register(ctx, "Asha", "asha@example.com", "secret1")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if user.ID != "u1" {
			t.Errorf("expected pending identity u1, got %s", user.ID)
		}
		if svc.State() != StateAnonymous {
			t.Errorf("unconfirmed registration must stay anonymous, got %s", svc.State())
		}
	})

	t.Run("validation", func(t *testing.T) {
		svc := New(&fakeProvider{}, discardLogger())
		cases := []struct {
			name                  string
			uname, email,upasswd string
		}{
			{"missing name", "", "a@b.c", "secret1"},
			{"missing email", "Asha", "", "secret1"},
			{"short password", "Asha", "a@b.c", "12345"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tc.uname, tc.email, tc.upasswd)
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
			})
		}
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears session", func(t *testing.T) {
		provider := &fakeProvider{current: sampleSession()}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		if err := svc.Logout(ctx); err != nil {
			t.Fatalf("Logout: %v", err)
		}
		if svc.State() != StateAnonymous {
			t.Errorf("expected anonymous, got %s", svc.State())
		}
		if _, ok := svc.CurrentUser(); ok {
			t.Error("user must be gone after logout")
		}
		if provider.signOutCalls != 1 {
			t.Errorf("expected one provider sign-out, got %d", provider.signOutCalls)
		}
	})

	t.Run("provider failure still clears locally", func(t *testing.T) {
		provider := &fakeProvider{
			current:    sampleSession(),
			signOutErr: &domain.ProviderError{Message: "gateway down", Transient: true},
		}
		svc := New(provider, discardLogger())
		if err := svc.Init(ctx); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer svc.Close()

		if err := svc.Logout(ctx); err != nil {
			t.Fatalf("Logout must not surface provider failure: %v", err)
		}
		if svc.State() != StateAnonymous {
			t.Errorf("expected anonymous, got %s", svc.State())
		}
	})
}

func TestProviderCallbacks(t *testing.T) {
	ctx := context.Background()

	provider := &fakeProvider{}
	svc := New(provider, discardLogger())
	if err := svc.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if provider.subscriber == nil {
		t.Fatal("Init must subscribe to provider changes")
	}

	// A provider-originated session change is mirrored.
	provider.subscriber(sampleSession())
	if svc.State() != StateAuthenticated {
		t.Errorf("expected authenticated after callback, got %s", svc.State())
	}

	provider.subscriber(nil)
	if svc.State() != StateAnonymous {
		t.Errorf("expected anonymous after sign-out callback, got %s", svc.State())
	}

	svc.Close()
	if provider.subscriber != nil {
		t.Error("Close must unsubscribe")
	}
}
