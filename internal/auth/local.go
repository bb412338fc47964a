package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
	"janmanch/internal/domain/repositories"
)

// LocalProvider is the identity variant used when no hosted provider is
// configured. It keeps the current user in the persisted session slot so
// a restart restores the session, and synthesizes pseudo-accounts on
// sign-up. It performs no credential verification: password sign-in
// against anything but the persisted session is reported as not
// configured, which is exactly the degradation the platform had before a
// hosted provider was wired in.
type LocalProvider struct {
	sessions repositories.SessionStore
	logger   *slog.Logger
	subs     subscribers

	now   func() time.Time
	newID func() string
}

// NewLocalProvider creates the local-only identity provider.
func NewLocalProvider(sessions repositories.SessionStore, logger *slog.Logger) *LocalProvider {
	return &LocalProvider{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (p *LocalProvider) CurrentSession(ctx context.Context) (*Session, error) {
	user, err := p.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &Session{User: *user}, nil
}

// SignIn restores the persisted pseudo-account when the email matches.
// There is no password database to check against, so anything else is a
// not-configured failure rather than an invalid-credentials one.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := p.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if user != nil && strings.EqualFold(user.Email, email) {
		session := &Session{User: *user}
		p.subs.notify(session)
		return session, nil
	}
	return nil, fmt.Errorf("cannot verify credentials locally: %w", domain.ErrNotConfigured)
}

// SignUp synthesizes a local pseudo-account and signs it in immediately;
// there is no confirmation step in the local variant.
func (p *LocalProvider) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	user := &models.User{
		ID:        p.newID(),
		Name:      name,
		Email:     email,
		CreatedAt: p.now(),
	}
	if err := p.sessions.Save(ctx, user); err != nil {
		return nil, err
	}

	p.logger.Info("local pseudo-account created", "user_id", user.ID)

	session := &Session{User: *user}
	p.subs.notify(session)
	return session, nil
}

func (p *LocalProvider) SignOut(ctx context.Context) error {
	if err := p.sessions.Clear(ctx); err != nil {
		return err
	}
	p.subs.notify(nil)
	return nil
}

func (p *LocalProvider) Subscribe(fn func(*Session)) func() {
	return p.subs.add(fn)
}
