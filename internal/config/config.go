package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string // sqlite|postgres
	DBDSN    string

	BlobBasePath string // assignment upload files

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string
}

// FromEnv loads .env when present, then reads configuration from the
// environment with development defaults.
func FromEnv() Config {
	_ = godotenv.Load()

	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}

	return Config{
		HTTPAddr:     envOr("HTTP_ADDR", ":8080"),
		PublicURL:    os.Getenv("PUBLIC_URL"),
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./uploads"),
		JWTSecret:    envOr("JWT_SECRET", "classroom-dev-secret"),
		TokenTTL:     ttl,
		CORSOrigins:  csvOr("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
