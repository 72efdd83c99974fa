// Package config reads the runtime configuration from the environment.
// File: config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is everything main needs to wire the server.
type Config struct {
	Addr          string
	DatabaseURL   string
	SessionSecret string
	Env           string // dev|production

	// OAuth provider settings
	OAuthBaseURL      string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectURL  string

	// SuperAdminSRNs are escalated to superadmin at login.
	SuperAdminSRNs []string
	// AcademicYear is the current two-digit year used to derive year of
	// study from SRNs.
	AcademicYear int

	RedisAddr string // optional: shared rate limiter
	SentryDSN string // optional
}

// Load reads the environment. Missing required variables abort startup
// via mustEnv.
func Load() (*Config, error) {
	year, err := strconv.Atoi(getenv("ACADEMIC_YEAR", "26"))
	if err != nil {
		return nil, fmt.Errorf("ACADEMIC_YEAR: %w", err)
	}

	cfg := &Config{
		Addr:              getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:       mustEnv("DATABASE_URL"),
		SessionSecret:     mustEnv("SESSION_SECRET"),
		Env:               getenv("ENV", "dev"),
		OAuthBaseURL:      getenv("OAUTH_BASE_URL", "https://pesu-oauth2.vercel.app"),
		OAuthClientID:     mustEnv("OAUTH_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
		OAuthRedirectURL:  mustEnv("OAUTH_REDIRECT_URI"),
		SuperAdminSRNs:    splitList(os.Getenv("SUPERADMIN_SRNS")),
		AcademicYear:      year,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
