// Package auth contains the identity provider implementations the
// session service selects between at construction time: a local-only
// variant persisting to the session slot, and the hosted GoTrue variant.
package auth

import (
	"context"
	"sync"

	"janmanch/internal/domain/models"
)

// Session is an authenticated identity plus the provider's access token.
// The token is empty for the local variant.
type Session struct {
	User        models.User
	AccessToken string
}

// Provider is the capability set the session service depends on. Both
// implementations satisfy it; which one is wired is a configuration
// decision, not a code path.
type Provider interface {
	// CurrentSession returns the provider's active session, or
	// (nil, nil) when none exists.
	CurrentSession(ctx context.Context) (*Session, error)

	// SignIn verifies credentials and establishes a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignUp creates a new identity. The returned session's AccessToken
	// may be empty when the provider requires out-of-band confirmation
	// before sign-in succeeds.
	SignUp(ctx context.Context, name, email, password string) (*Session, error)

	// SignOut terminates the provider-side session.
	SignOut(ctx context.Context) error

	// Subscribe registers a callback invoked whenever the provider's
	// session changes (nil on sign-out). Returns an unsubscribe func.
	Subscribe(fn func(*Session)) (unsubscribe func())
}

// subscribers is the shared change-notification fan-out. Callbacks are
// delivered in registration order; delivery order is the only ordering
// guarantee.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(*Session)
}

func (s *subscribers) add(fn func(*Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(*Session))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *subscribers) notify(session *Session) {
	s.mu.Lock()
	fns := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}
