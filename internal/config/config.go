package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the service reads from the environment. It is
// loaded once at startup and treated as immutable after that.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	Port        string
	Seed        bool
}

// Load reads the configuration from environment variables. DATABASE_URL
// and JWT_SECRET are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     "3000",
		TokenTTL: 60 * time.Minute,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	if minutes := os.Getenv("JWT_MINUTES"); minutes != "" {
		n, err := strconv.Atoi(minutes)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid JWT_MINUTES value %q", minutes)
		}
		cfg.TokenTTL = time.Duration(n) * time.Minute
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if seed := os.Getenv("SEED"); seed != "" {
		v, err := strconv.ParseBool(seed)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED value %q", seed)
		}
		cfg.Seed = v
	}

	return cfg, nil
}
