// Package config loads runtime configuration from the environment, with an
// optional .env file for development.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Secrets (CSRF key, cookie key, Resend
// key) stay as raw strings here and are decoded where they are consumed.
type Config struct {
	Addr      string
	Env       string // "development" or "production"
	DBPath    string
	StaticDir string

	AdminUsername string
	AdminPassword string

	ResendKey        string
	EmailFrom        string
	DigestRecipients []string // comma-separated in the env var
}

// Load reads .env (if present) and the process environment.
// POST: Every field has a usable value; development defaults fill the gaps
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := Config{
		Addr:          envOrDefault("YAOCHAI_ADDR", ":8080"),
		Env:           envOrDefault("YAOCHAI_ENV", "development"),
		DBPath:        envOrDefault("YAOCHAI_DB_PATH", "yaochaigym.db"),
		StaticDir:     envOrDefault("YAOCHAI_STATIC_DIR", "static"),
		AdminUsername: envOrDefault("YAOCHAI_ADMIN_USERNAME", "admin"),
		AdminPassword: envOrDefault("YAOCHAI_ADMIN_PASSWORD", "changeme-admin"),
		ResendKey:     os.Getenv("YAOCHAI_RESEND_KEY"),
		EmailFrom:     envOrDefault("YAOCHAI_EMAIL_FROM", "Yaochai Gym <noreply@yaochaigym.example>"),
	}

	if raw := os.Getenv("YAOCHAI_DIGEST_TO"); raw != "" {
		for _, addr := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(addr); trimmed != "" {
				cfg.DigestRecipients = append(cfg.DigestRecipients, trimmed)
			}
		}
	}

	return cfg
}

// IsProduction reports whether the app runs with production hardening.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
