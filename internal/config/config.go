// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends selectable with DVRHUB_STORE.
const (
	StoreSheets = "sheets"
	StoreSQLite = "sqlite"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	Store      string

	SheetName       string
	SheetID         string
	Worksheet       string
	CredentialsFile string
	SecretsPath     string
	ServiceAccount  string // raw service-account JSON from DVRHUB_GCP_SERVICE_ACCOUNT

	DBPath string

	ContributeRate int // contributions per minute per client IP
	SecureCookies  bool
}

// Load reads configuration from environment variables and returns a validated Config.
// Values from the file named by DVRHUB_ENV_FILE (default .env) are loaded first
// and never override variables already set in the environment; a missing file
// is not an error.
//
// Optional variables with defaults: DVRHUB_LISTEN_ADDR (127.0.0.1:8080),
// DVRHUB_STORE (sheets), DVRHUB_SHEET_NAME (DVR_DB),
// DVRHUB_CREDENTIALS_FILE (credentials.json), DVRHUB_SECRETS_PATH (.secrets.yaml),
// DVRHUB_DB_PATH (dvrhub.db), DVRHUB_CONTRIBUTE_RATE (10), DVRHUB_SECURE_COOKIES (false).
func Load() (*Config, error) {
	envFile := envOr("DVRHUB_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg := &Config{
		ListenAddr:      envOr("DVRHUB_LISTEN_ADDR", "127.0.0.1:8080"),
		Store:           envOr("DVRHUB_STORE", StoreSheets),
		SheetName:       envOr("DVRHUB_SHEET_NAME", "DVR_DB"),
		SheetID:         os.Getenv("DVRHUB_SHEET_ID"),
		Worksheet:       os.Getenv("DVRHUB_WORKSHEET"),
		CredentialsFile: envOr("DVRHUB_CREDENTIALS_FILE", "credentials.json"),
		SecretsPath:     envOr("DVRHUB_SECRETS_PATH", ".secrets.yaml"),
		ServiceAccount:  os.Getenv("DVRHUB_GCP_SERVICE_ACCOUNT"),
		DBPath:          envOr("DVRHUB_DB_PATH", "dvrhub.db"),
		ContributeRate:  10,
	}

	if cfg.Store != StoreSheets && cfg.Store != StoreSQLite {
		return nil, fmt.Errorf("DVRHUB_STORE must be %q or %q, got %q", StoreSheets, StoreSQLite, cfg.Store)
	}

	if v, ok := os.LookupEnv("DVRHUB_CONTRIBUTE_RATE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("DVRHUB_CONTRIBUTE_RATE has invalid value %q: %w", v, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("DVRHUB_CONTRIBUTE_RATE must be positive, got %d", n)
		}
		cfg.ContributeRate = n
	}

	if v, ok := os.LookupEnv("DVRHUB_SECURE_COOKIES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("DVRHUB_SECURE_COOKIES has invalid value %q: %w", v, err)
		}
		cfg.SecureCookies = b
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
