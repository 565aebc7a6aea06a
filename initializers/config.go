package initializers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/basit/pdf-proxy/storage"
)

const (
	BackendSupabase = "supabase"
	BackendS3       = "s3"
)

type Config struct {
	Port  string
	DBURL string

	SupabaseURL         string
	SupabaseServiceRole string

	StorageBackend  string
	FetchMode       storage.Mode
	Bucket          string
	SignedURLTTL    time.Duration
	AWSRegion       string
	S3PublicBaseURL string

	PublicBaseURL    string
	CORSAllowOrigins []string

	LogLevel string
	Dev      bool
}

// LoadConfig reads the environment, loading .env first outside Render.
func LoadConfig() (*Config, error) {
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("no .env file found, using system environment variables")
		}
	}

	cfg := &Config{
		Port:                envOr("PORT", "5001"),
		DBURL:               os.Getenv("DB_URL"),
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseServiceRole: os.Getenv("SUPABASE_SERVICE_ROLE"),
		StorageBackend:      strings.ToLower(envOr("STORAGE_BACKEND", BackendSupabase)),
		Bucket:              envOr("STORAGE_BUCKET", "secure-pdfs"),
		AWSRegion:           os.Getenv("AWS_REGION"),
		S3PublicBaseURL:     os.Getenv("S3_PUBLIC_BASE_URL"),
		PublicBaseURL:       strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		CORSAllowOrigins:    splitList(os.Getenv("CORS_ALLOW_ORIGINS")),
		LogLevel:            envOr("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.FetchMode, err = storage.ParseMode(envOr("FETCH_MODE", string(storage.ModeSigned))); err != nil {
		return nil, err
	}
	if cfg.SignedURLTTL, err = time.ParseDuration(envOr("SIGNED_URL_TTL", "60s")); err != nil {
		return nil, fmt.Errorf("invalid SIGNED_URL_TTL: %w", err)
	}
	if cfg.SignedURLTTL <= 0 {
		return nil, fmt.Errorf("SIGNED_URL_TTL must be positive")
	}
	if v := os.Getenv("DEV"); v != "" {
		if cfg.Dev, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid DEV: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBURL == "" {
		return fmt.Errorf("DB_URL is not set")
	}
	switch c.StorageBackend {
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceRole == "" {
			return fmt.Errorf("missing SUPABASE_URL or SUPABASE_SERVICE_ROLE")
		}
	case BackendS3:
		if c.AWSRegion == "" {
			return fmt.Errorf("AWS_REGION is not set")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want supabase or s3)", c.StorageBackend)
	}
	return nil
}

// Warnings lists settings that load fine but are unsafe outside development.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.PublicBaseURL == "" && !c.Dev {
		warnings = append(warnings, "PUBLIC_BASE_URL is not set; landing page links are built from the request Host header")
	}
	return warnings
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
