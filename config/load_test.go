package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
env: testnet
gateway:
  apiKey: foo
  apiSecret: bar
  baseURL: https://testnet.binancefuture.com
logger:
  level: debug
  format: console
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "testnet" || cfg.Gateway.APIKey != "foo" {
		t.Fatalf("unexpected cfg values: %+v", cfg)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("logger config not loaded: %+v", cfg.Logger)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `
env: testnet
gateway:
  apiKey: file-key
  apiSecret: file-secret
`)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvAPISecret, "env-secret")
	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gateway.APIKey != "env-key" || cfg.Gateway.APISecret != "env-secret" {
		t.Fatalf("env overrides not applied: %+v", cfg.Gateway)
	}
}

func TestLoadEnvSuppliesMissingCredentials(t *testing.T) {
	path := writeTempConfig(t, `
env: testnet
gateway:
  baseURL: https://testnet.binancefuture.com
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error without credentials")
	}

	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvAPISecret, "env-secret")
	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gateway.APIKey != "env-key" {
		t.Fatalf("env credentials not applied: %+v", cfg.Gateway)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(AppConfig{}); err == nil {
		t.Fatalf("expected error for empty config")
	}
	err := Validate(AppConfig{Env: "testnet"})
	if err == nil {
		t.Fatalf("expected error for missing credentials")
	}
}

func TestMetricsDefaultAddr(t *testing.T) {
	path := writeTempConfig(t, `
env: testnet
gateway:
  apiKey: k
  apiSecret: s
metrics:
  enabled: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Fatalf("default metrics addr not applied: %+v", cfg.Metrics)
	}
}
