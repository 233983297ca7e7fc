// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Bind     string
	MediaURL string // public base URL files are served under, e.g. "https://example.org"
	AppEnv   string

	// Object storage (S3-compatible: MinIO locally, any S3 provider in production)
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	// Token introspection (RFC 7662)
	IntrospectEndpoint string
	OAuthClientID      string
	OAuthClientSecret  string

	// Upload policy
	RequiredScope   string
	AllowedUsername string // empty disables the single-principal restriction
	MaxUploadBytes  int64
	UploadRPS       float64
	UploadBurst     int

	// Default dimensions baked into generated photo URLs
	DefaultWidth  uint
	DefaultHeight uint
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, reading from environment")
	}

	cfg := &Config{
		Bind:     getEnv("BIND", "127.0.0.1:8180"),
		MediaURL: getEnv("MEDIA_URL", ""),
		AppEnv:   getEnv("APP_ENV", "development"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:    getEnv("S3_BUCKET", ""),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",

		IntrospectEndpoint: getEnv("OAUTH2_INTROSPECT_ENDPOINT", ""),
		OAuthClientID:      getEnv("OAUTH2_CLIENT_ID", ""),
		OAuthClientSecret:  getEnv("OAUTH2_CLIENT_SECRET", ""),

		RequiredScope:   getEnv("REQUIRED_SCOPE", "media"),
		AllowedUsername: getEnv("ALLOWED_USERNAME", ""),
	}

	if cfg.MediaURL == "" {
		return nil, errors.New("MEDIA_URL is required")
	}
	if cfg.StorageBucket == "" {
		return nil, errors.New("S3_BUCKET is required")
	}
	if cfg.IntrospectEndpoint == "" {
		return nil, errors.New("OAUTH2_INTROSPECT_ENDPOINT is required")
	}
	if cfg.OAuthClientID == "" || cfg.OAuthClientSecret == "" {
		return nil, errors.New("OAUTH2_CLIENT_ID and OAUTH2_CLIENT_SECRET are required")
	}

	maxUpload, err := getEnvInt64("MAX_UPLOAD_BYTES", 100<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = maxUpload

	rps, err := getEnvFloat("UPLOAD_RPS", 2)
	if err != nil {
		return nil, err
	}
	cfg.UploadRPS = rps

	burst, err := getEnvInt("UPLOAD_BURST", 5)
	if err != nil {
		return nil, err
	}
	cfg.UploadBurst = burst

	width, err := getEnvInt("DEFAULT_WIDTH", 1000)
	if err != nil {
		return nil, err
	}
	height, err := getEnvInt("DEFAULT_HEIGHT", 0)
	if err != nil {
		return nil, err
	}
	cfg.DefaultWidth = uint(width)
	cfg.DefaultHeight = uint(height)

	return cfg, nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func lookupEnv(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnv(key, fallback string) string {
	if v, ok := lookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := lookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(key + " must be a non-negative integer")
	}
	return n, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v, ok := lookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v, ok := lookupEnv(key)
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, errors.New(key + " must be a positive number")
	}
	return f, nil
}
