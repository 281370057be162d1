// Package config loads deployment configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	AuthModeJWT   = "jwt"
	AuthModeDebug = "debug"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is the process-level configuration for the API server.
type Config struct {
	Port int

	// AdminEmails is the exact-match email allowlist that grants the admin
	// role. Comma-separated in ADMIN_EMAILS; no normalization is applied.
	AdminEmails []string

	// AuthMode selects bearer-token verification ("jwt") or the
	// header-based debug identity used in local development ("debug").
	AuthMode string

	// StorageBackend selects the persistence adapters ("memory" or
	// "postgres").
	StorageBackend string
	DatabaseURL    string

	// ResendAPIKey enables the Resend mailer when set; otherwise email
	// sends are recorded in memory only.
	ResendAPIKey string
	MailFrom     string

	// FrontendOrigin is the browser origin allowed by CORS.
	FrontendOrigin string
}

func Load() (Config, error) {
	cfg := Config{
		Port:           getEnvInt("PORT", 8080),
		AuthMode:       getEnv("AUTH_MODE", AuthModeJWT),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageMemory),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		MailFrom:       getEnv("MAIL_FROM", "portal@activities.local"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
	}

	for _, e := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if e = strings.TrimSpace(e); e != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, e)
		}
	}

	switch cfg.AuthMode {
	case AuthModeJWT, AuthModeDebug:
	default:
		return Config{}, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeJWT, AuthModeDebug, cfg.AuthMode)
	}
	switch cfg.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, cfg.StorageBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
