// Package config loads the application configuration from YAML with
// environment-variable overrides for credentials.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"futures-trader-go/infrastructure/logger"
)

// Environment variables that override the credential fields. Named after the
// exchange environment this client targets.
const (
	EnvAPIKey    = "BINANCE_TESTNET_API_KEY"
	EnvAPISecret = "BINANCE_TESTNET_API_SECRET"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env     string        `yaml:"env"`
	Gateway GatewayConfig `yaml:"gateway"`
	Logger  logger.Config `yaml:"logger"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type GatewayConfig struct {
	APIKey    string `yaml:"apiKey"`
	APISecret string `yaml:"apiSecret"`
	BaseURL   string `yaml:"baseURL"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads YAML config from path and applies basic validation.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides credentials from env vars
// if present. Env always wins over the file, so secrets can stay out of it.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	applyDefaults(&cfg)
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.Gateway.APIKey = v
	}
	if v := os.Getenv(EnvAPISecret); v != "" {
		cfg.Gateway.APISecret = v
	}
	return cfg, Validate(cfg)
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = logger.DefaultConfig().Level
	}
	if len(cfg.Logger.Outputs) == 0 {
		cfg.Logger.Outputs = logger.DefaultConfig().Outputs
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = logger.DefaultConfig().Format
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
}

// Validate ensures required fields are present. Missing credentials are a
// fatal configuration error: nothing in the client works without them.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if cfg.Gateway.APIKey == "" || cfg.Gateway.APISecret == "" {
		return fmt.Errorf("gateway.apiKey/apiSecret is required (or %s/%s)", EnvAPIKey, EnvAPISecret)
	}
	return nil
}
