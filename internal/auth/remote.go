package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
)

// RemoteProvider implements Provider against a Supabase GoTrue endpoint.
// The provider owns session state for the hosted variant: the access
// token and mapped user live here, and subscribers are notified on every
// change.
type RemoteProvider struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *slog.Logger
	subs       subscribers

	mu      sync.Mutex
	session *Session
}

// NewRemoteProvider creates a GoTrue-backed identity provider.
func NewRemoteProvider(baseURL, anonKey string, logger *slog.Logger) *RemoteProvider {
	return &RemoteProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// gotrueUser is the user record GoTrue returns.
type gotrueUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	CreatedAt    string                 `json:"created_at"`
}

// tokenResponse is the password-grant response.
type tokenResponse struct {
	AccessToken string     `json:"access_token"`
	User        gotrueUser `json:"user"`
}

// signUpResponse is the signup response. When email confirmation is
// required there is no access token yet.
type signUpResponse struct {
	AccessToken string      `json:"access_token"`
	User        *gotrueUser `json:"user"`
	// Older GoTrue versions return the bare user object at the top level.
	ID string `json:"id"`
}

// errorResponse covers the error payload shapes GoTrue uses.
type errorResponse struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *errorResponse) message() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	default:
		return "authentication failed"
	}
}

func (p *RemoteProvider) CurrentSession(ctx context.Context) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil, nil
	}
	s := *p.session
	return &s, nil
}

// SignIn performs the password grant and establishes the session.
func (p *RemoteProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}

	var resp tokenResponse
	if err := p.post(ctx, "/auth/v1/token?grant_type=password", "", payload, &resp); err != nil {
		return nil, err
	}

	session := &Session{
		User:        mapRemoteUser(resp.User),
		AccessToken: resp.AccessToken,
	}
	p.setSession(session)

	p.logger.Info("provider sign-in succeeded", "user_id", session.User.ID)
	return session, nil
}

// SignUp registers a new identity. When the endpoint requires email
// confirmation the returned session has no access token and the provider
// session stays unchanged.
func (p *RemoteProvider) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": name},
	}

	var resp signUpResponse
	if err := p.post(ctx, "/auth/v1/signup", "", payload, &resp); err != nil {
		return nil, err
	}

	user := resp.User
	if user == nil {
		// Bare-user response shape
		user = &gotrueUser{ID: resp.ID, Email: email}
	}

	session := &Session{
		User:        mapRemoteUser(*user),
		AccessToken: resp.AccessToken,
	}
	if session.AccessToken != "" {
		p.setSession(session)
	}

	p.logger.Info("provider sign-up completed",
		"user_id", session.User.ID,
		"confirmed", session.AccessToken != "",
	)
	return session, nil
}

// SignOut revokes the provider session. The in-memory session is cleared
// first so local state is consistent even when the revoke call fails.
func (p *RemoteProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	token := ""
	if p.session != nil {
		token = p.session.AccessToken
	}
	p.session = nil
	p.mu.Unlock()
	p.subs.notify(nil)

	if token == "" {
		return nil
	}
	return p.post(ctx, "/auth/v1/logout", token, nil, nil)
}

func (p *RemoteProvider) Subscribe(fn func(*Session)) func() {
	return p.subs.add(fn)
}

func (p *RemoteProvider) setSession(session *Session) {
	p.mu.Lock()
	p.session = session
	p.mu.Unlock()
	p.subs.notify(session)
}

// post sends a JSON request to a GoTrue endpoint and decodes the
// response into out (when non-nil). Provider rejections surface as
// ProviderError with the provider's own message; transport failures are
// marked transient.
func (p *RemoteProvider) post(ctx context.Context, path, bearer string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+p.anonKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &domain.ProviderError{
			Message:   fmt.Sprintf("identity provider unreachable: %v", err),
			Transient: true,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.ProviderError{
			Message:   fmt.Sprintf("failed to read provider response: %v", err),
			Transient: true,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.Unmarshal(raw, &errResp)
		p.logger.Warn("provider request rejected",
			"path", path,
			"status", resp.StatusCode,
		)
		return &domain.ProviderError{
			Message:   errResp.message(),
			Transient: resp.StatusCode >= 500,
		}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}
	return nil
}

// mapRemoteUser maps a GoTrue user record to the local User: id copied
// verbatim; name prefers the metadata display name, then the email
// local-part, then empty; createdAt falls back to now when the provider
// omits or mangles it.
func mapRemoteUser(u gotrueUser) models.User {
	name := ""
	if v, ok := u.UserMetadata["name"].(string); ok {
		name = v
	}
	if name == "" && u.Email != "" {
		name = strings.SplitN(u.Email, "@", 2)[0]
	}

	avatar := ""
	if v, ok := u.UserMetadata["avatar_url"].(string); ok {
		avatar = v
	}

	createdAt := time.Now()
	if u.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, u.CreatedAt); err == nil {
			createdAt = t
		}
	}

	return models.User{
		ID:        u.ID,
		Name:      name,
		Email:     u.Email,
		Avatar:    avatar,
		CreatedAt: createdAt,
	}
}
