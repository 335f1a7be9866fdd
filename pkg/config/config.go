package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for sqlcoach-engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values. Secrets
// (Postgres password, AI API key) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8090"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Engine store (PostgreSQL): user profiles and the interaction log.
	Database DatabaseConfig `yaml:"database"`

	// Dataset store: the fixed retail dataset participants query.
	Dataset DatasetConfig `yaml:"dataset"`

	// AI model endpoint used by the translator, decision engine and
	// explanation synthesizer.
	AI AIConfig `yaml:"ai"`

	// Guard controls optional statement restrictions on generated SQL.
	Guard GuardConfig `yaml:"guard"`
}

// DatabaseConfig holds PostgreSQL engine-store configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"sqlcoach"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"sqlcoach_engine"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// DatasetConfig selects and configures the dataset backend.
type DatasetConfig struct {
	// Backend is "sqlite" (default, file-backed superstore dataset) or
	// "postgres".
	Backend string `yaml:"backend" env:"DATASET_BACKEND" env-default:"sqlite"`

	// Path is the SQLite database file (sqlite backend only).
	Path string `yaml:"path" env:"DATASET_PATH" env-default:"data/superstore.db"`

	// URL is the connection URL (postgres backend only). Treated as a
	// secret because it may embed credentials.
	URL string `yaml:"-" env:"DATASET_URL"`
}

// AIConfig holds the text-completion endpoint configuration.
type AIConfig struct {
	// Provider is "openai" (any OpenAI-compatible endpoint) or "anthropic".
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`

	// Endpoint is the base URL for OpenAI-compatible providers.
	Endpoint string `yaml:"endpoint" env:"AI_ENDPOINT" env-default:"https://api.openai.com/v1"`

	// Model is the completion model name.
	Model string `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o"`

	// APIKey is the provider credential. Secret - env only.
	APIKey string `yaml:"-" env:"AI_API_KEY"`

	// TimeoutSeconds bounds each completion call. A timeout is treated the
	// same as an unparseable response: the deterministic fallback applies.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"AI_TIMEOUT_SECONDS" env-default:"30"`

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int `yaml:"max_retries" env:"AI_MAX_RETRIES" env-default:"2"`
}

// Timeout returns the per-call timeout as a duration.
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GuardConfig controls optional restrictions on generated SQL. Both
// switches default to off: the study deliberately allows any statement
// type, so hardening is opt-in.
type GuardConfig struct {
	ReadOnly       bool `yaml:"read_only" env:"GUARD_READ_ONLY" env-default:"false"`
	InjectionCheck bool `yaml:"injection_check" env:"GUARD_INJECTION_CHECK" env-default:"false"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Dataset.Backend {
	case "sqlite":
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset path is required for the sqlite backend")
		}
	case "postgres":
		if c.Dataset.URL == "" {
			return fmt.Errorf("DATASET_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown dataset backend %q", c.Dataset.Backend)
	}

	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unknown AI provider %q", c.AI.Provider)
	}

	if c.AI.TimeoutSeconds <= 0 {
		return fmt.Errorf("ai timeout must be positive")
	}

	return nil
}
