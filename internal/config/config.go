package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for janken statistics
const (
	StorageJSON     = "json"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string
	AppID   string
	GuildID string

	// Storage
	DataDir     string
	StorageType string
	StatsFile   string
	SQLitePath  string
	DatabaseURL string

	// Round history (optional)
	ElasticsearchURL      string
	ElasticsearchUsername string
	ElasticsearchPassword string
	ElasticsearchIndex    string
	HistoryRetention      time.Duration

	// Resource paths
	KitsPath string

	// Slot machine pacing
	SlotTimeout    time.Duration
	SlotFrameDelay time.Duration

	LogLevel string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := fromEnv(wd)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// fromEnv builds a Config from the process environment without validating it
func fromEnv(wd string) (*Config, error) {
	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))

	slotTimeout, err := getDurationWithDefault("SLOT_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	frameDelay, err := getDurationWithDefault("SLOT_FRAME_DELAY", 20*time.Millisecond)
	if err != nil {
		return nil, err
	}

	retention, err := getDurationWithDefault("HISTORY_RETENTION", 90*24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Token:                 os.Getenv("DISCORD_TOKEN"),
		AppID:                 os.Getenv("APP_ID"),
		GuildID:               os.Getenv("GUILD_ID"),
		DataDir:               dataDir,
		StorageType:           getEnvWithDefault("STORAGE_TYPE", StorageJSON),
		StatsFile:             getEnvWithDefault("STATS_FILE", filepath.Join(dataDir, "stats.json")),
		SQLitePath:            getEnvWithDefault("SQLITE_PATH", filepath.Join(dataDir, "naebot.db")),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		ElasticsearchURL:      os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchUsername: os.Getenv("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword: os.Getenv("ELASTICSEARCH_PASSWORD"),
		ElasticsearchIndex:    getEnvWithDefault("ELASTICSEARCH_INDEX_PREFIX", "naebot"),
		HistoryRetention:      retention,
		KitsPath:              os.Getenv("KITS_PATH"),
		SlotTimeout:           slotTimeout,
		SlotFrameDelay:        frameDelay,
		LogLevel:              getEnvWithDefault("LOG_LEVEL", "info"),
		Environment:           getEnvWithDefault("ENVIRONMENT", "development"),
	}, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}
	switch c.StorageType {
	case StorageJSON, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_TYPE=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	if c.SlotTimeout <= 0 {
		return fmt.Errorf("SLOT_TIMEOUT must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// HistoryEnabled reports whether rounds should be indexed to Elasticsearch
func (c *Config) HistoryEnabled() bool {
	return c.ElasticsearchURL != ""
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
