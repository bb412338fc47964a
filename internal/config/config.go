package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Local store (default backend)
	StorePath string
	// Hosted backend (optional). DatabaseURL switches the record
	// repositories to Postgres; SupabaseURL+SupabaseKey switch identity to
	// the hosted provider.
	DatabaseURL     string
	SupabaseURL     string
	SupabaseKey     string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	// Log file directory; empty means stdout only
	LogDir string
}

func Load() *Config {
	supabaseURL := getEnv("SUPABASE_URL", "")

	// Construct JWKS URL from Supabase URL
	jwksURL := ""
	if supabaseURL != "" {
		jwksURL = supabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "dev"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StorePath:       getEnv("STORE_PATH", "janmanch.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SupabaseURL:     supabaseURL,
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseJWKSURL: jwksURL,
		LogDir:          getEnv("LOG_DIR", ""),
	}
}

// ProviderConfigured reports whether the hosted identity provider can be
// used. Both settings must be present; anything less degrades to the
// local-only variant.
func (c *Config) ProviderConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
