package models

import "github.com/golang-jwt/jwt/v5"

// GoTrueClaims represents the JWT claims structure issued by Supabase
// Auth (GoTrue). See: https://supabase.com/docs/guides/auth/jwts
type GoTrueClaims struct {
	jwt.RegisteredClaims                        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                 `json:"email"`
	UserMetadata         map[string]interface{} `json:"user_metadata"`
	Role                 string                 `json:"role"` // "authenticated" or "anon"
	SessionID            string                 `json:"session_id"`
	IsAnonymous          bool                   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *GoTrueClaims) GetUserID() string {
	return c.Subject
}
