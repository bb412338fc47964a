// Package session implements the identity facade: it owns the
// current-user session, exposes login/register/logout, and mirrors the
// configured provider's session changes.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"janmanch/internal/auth"
	"janmanch/internal/config"
	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
)

// State is the facade's session state.
type State string

const (
	// StateAuthenticating is the initial state while a prior session is
	// being restored.
	StateAuthenticating State = "authenticating"
	StateAnonymous      State = "anonymous"
	StateAuthenticated  State = "authenticated"
)

// Service is an explicitly constructed, injectable session holder.
// Construct with New, call Init to restore a prior session, Close on
// teardown.
type Service struct {
	provider auth.Provider
	logger   *slog.Logger

	mu          sync.Mutex
	state       State
	user        *models.User
	unsubscribe func()
}

// New creates the session service in the authenticating state; the
// state is unresolved until Init completes.
func New(provider auth.Provider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
		state:    StateAuthenticating,
	}
}

// Init restores a prior session from the provider and subscribes to its
// change notifications. Restore failures degrade to anonymous; they
// never fail startup.
func (s *Service) Init(ctx context.Context) error {
	session, err := s.provider.CurrentSession(ctx)
	if err != nil {
		s.logger.Warn("session restore failed, starting anonymous", "error", err)
		session = nil
	}
	s.apply(session)

	// Provider callbacks may interleave with in-flight login/register
	// calls; assignment is last-write-wins in delivery order.
	s.mu.Lock()
	s.unsubscribe = s.provider.Subscribe(s.apply)
	s.mu.Unlock()

	return nil
}

// Close unsubscribes from provider notifications.
func (s *Service) Close() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// State returns the current session state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the authenticated user, if any.
func (s *Service) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Login verifies credentials with the provider. On failure the session
// state is left unchanged and the typed failure distinguishes "not
// configured" from rejected credentials from transport problems.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := validation.Validate(email, validation.Required); err != nil {
		return models.User{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if err := validation.Validate(password, validation.Required); err != nil {
		return models.User{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", "error", err)
		return models.User{}, err
	}

	s.apply(session)
	s.logger.Info("login succeeded", "user_id", session.User.ID)
	return session.User, nil
}

// Register creates a new identity. The session does not necessarily
// become authenticated: the hosted provider may require email
// confirmation first, in which case the returned user is the pending
// identity.
func (s *Service) Register(ctx context.Context, name, email, password string) (models.User, error) {
	err := validation.Errors{
		"name":     validation.Validate(name, validation.Required, validation.Length(1, config.MaxNameLength)),
		"email":    validation.Validate(email, validation.Required),
		"password": validation.Validate(password, validation.Required, validation.Length(6, 0)),
	}.Filter()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	session, err := s.provider.SignUp(ctx, name, email, password)
	if err != nil {
		s.logger.Info("registration failed", "error", err)
		return models.User{}, err
	}

	// Whether sign-up grants a session is the provider's call (the
	// hosted variant may hold it until confirmation); mirror whatever
	// it reports.
	if current, cerr := s.provider.CurrentSession(ctx); cerr == nil && current != nil {
		s.apply(current)
	}
	s.logger.Info("registration completed", "user_id", session.User.ID)
	return session.User, nil
}

// Logout clears the session. It always succeeds locally: a failing
// provider sign-out is logged, not surfaced.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		s.logger.Warn("provider sign-out failed, clearing local session anyway", "error", err)
	}
	s.apply(nil)
	return nil
}

// apply is the single state-assignment point, for both direct calls and
// provider callbacks.
func (s *Service) apply(session *auth.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session == nil {
		s.state = StateAnonymous
		s.user = nil
		return
	}
	user := session.User
	s.state = StateAuthenticated
	s.user = &user
}
