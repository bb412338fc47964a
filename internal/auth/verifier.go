package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
)

// TokenVerifier validates bearer tokens presented to the HTTP surface.
type TokenVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed
	// claims. Returns an error if the token is invalid, expired, or has
	// an invalid signature.
	VerifyToken(tokenString string) (*models.GoTrueClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}

// JWKSVerifier implements TokenVerifier using the provider's JWKS
// endpoint. Keys are cached and refreshed based on HTTP cache headers.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWKSVerifier creates a verifier that fetches public keys from the
// given JWKS URL.
func NewJWKSVerifier(jwksURL string, logger *slog.Logger) (TokenVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx := context.Background()
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("token verifier initialized", "jwks_url", jwksURL)

	return &JWKSVerifier{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// VerifyToken validates a JWT and extracts its claims.
func (v *JWKSVerifier) VerifyToken(tokenString string) (*models.GoTrueClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.GoTrueClaims{}, v.jwks.Keyfunc)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	switch token.Method.Alg() {
	case "RS256", "ES256":
		// allowed
	default:
		v.logger.Warn("token uses unexpected algorithm",
			"algorithm", token.Method.Alg(),
			"allowed", []string{"RS256", "ES256"},
		)
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.GoTrueClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	// Reject anonymous tokens
	if claims.Role != "authenticated" {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close releases resources held by the verifier. keyfunc v3 manages its
// own refresh lifecycle, so this is a no-op kept for shutdown symmetry.
func (v *JWKSVerifier) Close() error {
	return nil
}

// UserFromClaims builds the acting user from verified token claims,
// using the same mapping rule as provider user records: name prefers
// the metadata display name, then the email local-part.
func UserFromClaims(c *models.GoTrueClaims) models.User {
	name := ""
	if v, ok := c.UserMetadata["name"].(string); ok {
		name = v
	}
	if name == "" && c.Email != "" {
		name = strings.SplitN(c.Email, "@", 2)[0]
	}

	avatar := ""
	if v, ok := c.UserMetadata["avatar_url"].(string); ok {
		avatar = v
	}

	user := models.User{
		ID:     c.Subject,
		Name:   name,
		Email:  c.Email,
		Avatar: avatar,
	}
	if c.IssuedAt != nil {
		user.CreatedAt = c.IssuedAt.Time
	}
	return user
}
