// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

// DefaultMaxBodySize is the cap on captured request bodies (1 MiB).
const DefaultMaxBodySize = 1 << 20

// Config holds the runtime configuration for the service.
type Config struct {
	// BaseURL, when set, is the fixed external address used to derive
	// webhook URLs. When empty the URL is derived from request headers.
	BaseURL            string
	BindAddr           string
	DBPath             string
	MaxBodySize        int64
	CORSPermissive     bool
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment, honoring a .env file in the
// working directory when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:     os.Getenv("BASE_URL"),
		BindAddr:    os.Getenv("BIND_ADDR"),
		DBPath:      getEnv("HOOKTRAP_DB", "hooktrap.db"),
		MaxBodySize: DefaultMaxBodySize,
	}

	if cfg.BindAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.BindAddr = "0.0.0.0:" + port
		} else {
			cfg.BindAddr = "0.0.0.0:3000"
		}
	}

	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		size, err := humanize.ParseBytes(v)
		if err != nil {
			return nil, fmt.Errorf("parse MAX_BODY_SIZE %q: %w", v, err)
		}
		cfg.MaxBodySize = int64(size)
	}

	_, cfg.CORSPermissive = os.LookupEnv("CORS_PERMISSIVE")
	if !cfg.CORSPermissive {
		origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
