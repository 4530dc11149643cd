package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for recruitiq.
type Config struct {
	Database DatabaseConfig
	Scrape   ScrapeConfig
	AI       AIConfig
	Report   ReportConfig
}

// DatabaseConfig holds the connection string. A postgres:// URL (or key=value
// DSN) selects the Postgres driver; anything else is a SQLite file path.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// CompanyConfig describes one company career board for the company scraper.
type CompanyConfig struct {
	Name       string `yaml:"name"`
	BoardToken string `yaml:"board_token"`
}

// ScrapeConfig controls the scrape pipeline defaults.
type ScrapeConfig struct {
	Query           string
	Location        string
	Limit           int
	Timeout         time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	MinDelay        time.Duration            // minimum gap between requests to the same platform
	PlatformDelays  map[string]time.Duration // per-platform overrides
	FallbackSamples bool                     // store synthetic records when a source is unreachable
	Companies       []CompanyConfig
}

// MinDelayFor returns the configured delay for the given platform, falling
// back to MinDelay.
func (s ScrapeConfig) MinDelayFor(platform string) time.Duration {
	if d, ok := s.PlatformDelays[platform]; ok {
		return d
	}
	return s.MinDelay
}

// AIConfig controls the optional résumé analysis layer.
type AIConfig struct {
	Enabled bool
	BaseURL string        // defaults to https://api.openai.com/v1
	Model   string        // model identifier, e.g. "gpt-4o-mini"
	APIKey  string        // expanded from env var by Load
	Timeout time.Duration // per-request timeout
}

// ReportConfig controls HTML report output.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultDSN           = "recruitiq.db"

	// EnvDatabaseURL overrides the configured DSN when set.
	EnvDatabaseURL = "RECRUITIQ_DATABASE_URL"
)

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as strings).
type rawConfig struct {
	Database DatabaseConfig  `yaml:"database"`
	Scrape   rawScrapeConfig `yaml:"scrape"`
	AI       rawAIConfig     `yaml:"ai"`
	Report   ReportConfig    `yaml:"report"`
}

type rawScrapeConfig struct {
	Query           string            `yaml:"query"`
	Location        string            `yaml:"location"`
	Limit           int               `yaml:"limit"`
	Timeout         string            `yaml:"timeout"`
	MaxRetries      *int              `yaml:"max_retries"`
	RetryDelay      string            `yaml:"retry_delay"`
	MinDelay        string            `yaml:"min_delay"`
	PlatformDelays  map[string]string `yaml:"platform_delays"`
	FallbackSamples *bool             `yaml:"fallback_samples"`
	Companies       []CompanyConfig   `yaml:"companies"`
}

type rawAIConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Database: DatabaseConfig{DSN: defaultDSN},
		Scrape: ScrapeConfig{
			Query:           "software engineer",
			Location:        "New York, NY",
			Limit:           25,
			Timeout:         30 * time.Second,
			MaxRetries:      2,
			RetryDelay:      5 * time.Second,
			MinDelay:        2 * time.Second,
			PlatformDelays:  map[string]time.Duration{},
			FallbackSamples: true,
		},
		AI: AIConfig{
			BaseURL: defaultOpenAIBaseURL,
			Model:   "gpt-4o-mini",
			Timeout: 30 * time.Second,
		},
		Report: ReportConfig{OutputDir: "reports"},
	}
	applyEnv(cfg)
	return cfg
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. Unset fields fall back to Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables (api keys, DSN credentials).
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Database.DSN != "" {
		cfg.Database.DSN = raw.Database.DSN
	}
	if raw.Report.OutputDir != "" {
		cfg.Report.OutputDir = raw.Report.OutputDir
	}

	if raw.Scrape.Query != "" {
		cfg.Scrape.Query = raw.Scrape.Query
	}
	if raw.Scrape.Location != "" {
		cfg.Scrape.Location = raw.Scrape.Location
	}
	if raw.Scrape.Limit > 0 {
		cfg.Scrape.Limit = raw.Scrape.Limit
	}
	if raw.Scrape.MaxRetries != nil {
		cfg.Scrape.MaxRetries = *raw.Scrape.MaxRetries
	}
	if raw.Scrape.FallbackSamples != nil {
		cfg.Scrape.FallbackSamples = *raw.Scrape.FallbackSamples
	}
	cfg.Scrape.Companies = raw.Scrape.Companies

	if cfg.Scrape.Timeout, err = parseDuration("scrape.timeout", raw.Scrape.Timeout, cfg.Scrape.Timeout); err != nil {
		return nil, err
	}
	if cfg.Scrape.RetryDelay, err = parseDuration("scrape.retry_delay", raw.Scrape.RetryDelay, cfg.Scrape.RetryDelay); err != nil {
		return nil, err
	}
	if cfg.Scrape.MinDelay, err = parseDuration("scrape.min_delay", raw.Scrape.MinDelay, cfg.Scrape.MinDelay); err != nil {
		return nil, err
	}
	for platform, rawDelay := range raw.Scrape.PlatformDelays {
		d, err := time.ParseDuration(rawDelay)
		if err != nil {
			return nil, fmt.Errorf("parse scrape.platform_delays[%q]: %w", platform, err)
		}
		cfg.Scrape.PlatformDelays[platform] = d
	}

	cfg.AI.Enabled = raw.AI.Enabled
	if raw.AI.BaseURL != "" {
		cfg.AI.BaseURL = raw.AI.BaseURL
	}
	if raw.AI.Model != "" {
		cfg.AI.Model = raw.AI.Model
	}
	cfg.AI.APIKey = raw.AI.APIKey
	if cfg.AI.Timeout, err = parseDuration("ai.timeout", raw.AI.Timeout, cfg.AI.Timeout); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return d, nil
}

func applyEnv(cfg *Config) {
	if dsn := os.Getenv(EnvDatabaseURL); dsn != "" {
		cfg.Database.DSN = dsn
	}
}

func validate(cfg *Config) error {
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}
	if cfg.Scrape.Limit <= 0 {
		return fmt.Errorf("scrape.limit must be positive, got %d", cfg.Scrape.Limit)
	}
	if cfg.Scrape.Timeout <= 0 {
		return fmt.Errorf("scrape.timeout must be positive, got %v", cfg.Scrape.Timeout)
	}
	if cfg.Scrape.MaxRetries < 0 {
		return fmt.Errorf("scrape.max_retries must not be negative, got %d", cfg.Scrape.MaxRetries)
	}
	for _, c := range cfg.Scrape.Companies {
		if c.Name == "" || c.BoardToken == "" {
			return fmt.Errorf("scrape.companies entries need both name and board_token")
		}
	}

	if cfg.AI.Enabled {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required when ai.enabled is true")
		}
		if cfg.AI.Model == "" {
			return fmt.Errorf("ai.model is required when ai.enabled is true")
		}
	}

	return nil
}
