// Package config loads application configuration from a .env file, the
// process environment, and an optional YAML file, in that order of
// discovery. Environment variables win over the YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"
)

// Config is the complete application configuration shared by the builder,
// the importer, and the server.
type Config struct {
	Panel       PanelConfig       `yaml:"panel" envconfig:"PANEL"`
	Credentials CredentialsConfig `yaml:"credentials" envconfig:"CREDENTIALS"`
	Store       StoreConfig       `yaml:"store" envconfig:"STORE"`
	Server      ServerConfig      `yaml:"server" envconfig:"SERVER"`
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
}

// PanelConfig controls the panel build range and output artifacts.
type PanelConfig struct {
	StartDate       string `yaml:"start_date" envconfig:"START_DATE" default:"1985-01-01"`
	OutputPath      string `yaml:"output_path" envconfig:"OUTPUT_PATH" default:"data/macro_labor_us_monthly_1985_present.json"`
	DefinitionsPath string `yaml:"definitions_path" envconfig:"DEFINITIONS_PATH" default:"data/series_definitions.json"`
}

// CredentialsConfig holds the upstream API keys. FRED and Census keys are
// required before any fetch begins; the BLS key is optional but raises the
// request quota.
type CredentialsConfig struct {
	FredAPIKey   string `yaml:"fred_api_key" envconfig:"FRED_API_KEY"`
	BLSAPIKey    string `yaml:"bls_api_key" envconfig:"BLS_API_KEY"`
	CensusAPIKey string `yaml:"census_api_key" envconfig:"CENSUS_API_KEY"`
}

// StoreConfig locates the SQLite document store.
type StoreConfig struct {
	Path string `yaml:"path" envconfig:"PATH" default:"data/macro_labor.db"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// Load builds the configuration. A .env file in the working directory is
// loaded into the environment first when present; then the optional YAML
// file named by MACRO_CONFIG_FILE (default config.yaml) is applied; finally
// environment variables override.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	path := os.Getenv("MACRO_CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("MACRO", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	return &cfg, nil
}

// ValidateCredentials checks that the required API keys are present. This is
// the single fatal precondition of a panel build: it runs before any fetch.
func (c *Config) ValidateCredentials() error {
	if c.Credentials.FredAPIKey == "" {
		return fmt.Errorf("FRED_API_KEY is not set")
	}
	if c.Credentials.CensusAPIKey == "" {
		return fmt.Errorf("CENSUS_API_KEY is not set")
	}
	return nil
}

// StartDate parses the configured panel start date.
func (c *Config) StartDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Panel.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse panel start date %q: %w", c.Panel.StartDate, err)
	}
	return t, nil
}
