package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultORSBaseURL = "https://api.openrouteservice.org"
	DefaultORSProfile = "driving-hgv"
)

type Config struct {
	Port            string
	ORSAPIKey       string
	ORSBaseURL      string
	ORSProfile      string
	GeocodeCountry  string // ISO country limiting geocode search; unrestricted when empty
	DatabaseURL     string // PostgreSQL; SQLite at DBPath when empty
	DBPath          string
	GeocodeSeedPath string
	NATSURL         string // publishing disabled when empty
	LogLevel        string
	PersistTrips    bool
}

// UsePostgres reports whether a PostgreSQL DSN was configured.
func (c *Config) UsePostgres() bool { return c.DatabaseURL != "" }

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment wins anyway.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            Get("PORT", "8080"),
		ORSAPIKey:       strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSBaseURL:      strings.TrimRight(Get("ORS_BASE_URL", DefaultORSBaseURL), "/"),
		ORSProfile:      Get("ORS_PROFILE", DefaultORSProfile),
		GeocodeCountry:  strings.ToUpper(strings.TrimSpace(os.Getenv("ORS_GEOCODE_COUNTRY"))),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBPath:          Get("DB_PATH", "data/app.db"),
		GeocodeSeedPath: strings.TrimSpace(os.Getenv("GEOCODE_SEED_PATH")),
		NATSURL:         strings.TrimSpace(os.Getenv("NATS_URL")),
		LogLevel:        Get("LOG_LEVEL", "info"),
		PersistTrips:    true,
	}

	if cfg.ORSAPIKey == "" {
		return nil, errors.New("ORS_API_KEY is required")
	}

	if v := os.Getenv("PERSIST_TRIPS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PERSIST_TRIPS: %q", v)
		}
		cfg.PersistTrips = b
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}

	return cfg, nil
}

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
