package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends.
const (
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
)

type AppConfig struct {
	Port string

	// Station cache.
	CacheBackend string        // "file" or "memory"
	CacheDir     string        // directory for the file backend
	CacheTTL     time.Duration // max age of a cached payload

	// Upstream transport.
	UpstreamTimeout   time.Duration
	UpstreamUserAgent string
	USGSURLTemplate   string // optional override, "{id}" is replaced by the station id
	WRURLTemplate     string

	// Optional static data files.
	StationsFile  string // enables identity enrichment
	LocationsFile string

	// WarmInterval controls how often configured locations are pre-fetched (0 = off).
	WarmInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %s", cfg.Port)
	}

	cfg.CacheBackend = getenvDefault("CACHE_BACKEND", CacheBackendFile)
	switch cfg.CacheBackend {
	case CacheBackendFile, CacheBackendMemory:
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND: %q (want %q or %q)", cfg.CacheBackend, CacheBackendFile, CacheBackendMemory)
	}
	cfg.CacheDir = getenvDefault("CACHE_DIR", "cache")

	var err error
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "60m"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("invalid CACHE_TTL: must be positive")
	}

	if cfg.UpstreamTimeout, err = getenvDuration("UPSTREAM_TIMEOUT", "120s"); err != nil {
		return nil, err
	}
	cfg.UpstreamUserAgent = os.Getenv("UPSTREAM_USER_AGENT")
	cfg.USGSURLTemplate = os.Getenv("USGS_URL_TEMPLATE")
	cfg.WRURLTemplate = os.Getenv("WR_URL_TEMPLATE")

	cfg.StationsFile = os.Getenv("STATIONS_FILE")
	cfg.LocationsFile = os.Getenv("LOCATIONS_FILE")

	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "0"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
