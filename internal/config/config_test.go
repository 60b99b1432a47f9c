package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "LAYOUTS_FILE", "LOG_LEVEL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS", "MAX_LAYOUT_DAYS"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if !cfg.SeedDefaultLayout || cfg.DefaultLayoutName != defaultLayoutName {
		t.Fatalf("expected default layout seeding, got %v %q", cfg.SeedDefaultLayout, cfg.DefaultLayoutName)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("expected log level %s, got %s", defaultLogLevel, cfg.LogLevel)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LAYOUTS_FILE", "/tmp/layouts.yaml")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("RATE_LIMIT_RPS", "3.5")
	t.Setenv("RATE_LIMIT_BURST", "7")

	cfg, err := Load(&CLIOverrides{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.LayoutsFile != "/tmp/layouts.yaml" {
		t.Fatalf("unexpected layouts file: %s", cfg.LayoutsFile)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected lower-cased log level, got %s", cfg.LogLevel)
	}
	if cfg.RateLimitRPS != 3.5 || cfg.RateLimitBurst != 7 {
		t.Fatalf("unexpected rate limit: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_BURST", "7")

	path := writeConfig(t, `
port: "9100"
seed_default_layout: false
write_timeout: 2s
enable_request_logging: false
rate_limit:
  rps: 0
`)
	port := "9200"

	cfg, err := Load(&CLIOverrides{ConfigFile: path, Port: &port})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9200" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.SeedDefaultLayout {
		t.Fatalf("expected YAML to disable default layout seeding")
	}
	if cfg.WriteTimeout != 2*time.Second {
		t.Fatalf("unexpected write timeout: %s", cfg.WriteTimeout)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected YAML to disable request logging")
	}
	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected YAML rps 0, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 7 {
		t.Fatalf("expected env burst to survive YAML without burst, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadRejectsInvalidInput(t *testing.T) {
	clearEnv(t)

	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}

	badDuration := writeConfig(t, "idle_timeout: soon\n")
	if _, err := Load(&CLIOverrides{ConfigFile: badDuration}); err == nil {
		t.Fatalf("expected error for invalid duration")
	}

	level := "verbose"
	if _, err := Load(&CLIOverrides{LogLevel: &level}); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.RateLimitRPS = -1
	if err := validateConfig(cfg); err == nil {
		t.Fatalf("expected error for negative rps")
	}

	cfg = defaultConfig()
	cfg.DefaultLayoutName = " "
	if err := validateConfig(cfg); err == nil {
		t.Fatalf("expected error for blank default layout name")
	}

	cfg.SeedDefaultLayout = false
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("unexpected error when seeding is disabled: %v", err)
	}
}

func TestLoadAllowedOrigins(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"*"}) {
		t.Fatalf("expected wildcard origins by default, got %v", cfg.AllowedOrigins)
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", " http://localhost:5173 , ,http://localhost:8080")
	cfg, err = Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := []string{"http://localhost:5173", "http://localhost:8080"}; !slices.Equal(cfg.AllowedOrigins, want) {
		t.Fatalf("expected origins %v from environment, got %v", want, cfg.AllowedOrigins)
	}

	path := writeConfig(t, "allowed_origins:\n  - https://trips.example\n")
	cfg, err = Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := []string{"https://trips.example"}; !slices.Equal(cfg.AllowedOrigins, want) {
		t.Fatalf("expected YAML origins %v, got %v", want, cfg.AllowedOrigins)
	}
}

func TestLoadRequestLimits(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxLayoutDays != defaultMaxLayoutDays || cfg.MaxBodyBytes != defaultMaxBodyBytes {
		t.Fatalf("expected default limits, got %d days / %d bytes", cfg.MaxLayoutDays, cfg.MaxBodyBytes)
	}

	t.Setenv("MAX_LAYOUT_DAYS", "30")
	cfg, err = Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxLayoutDays != 30 {
		t.Fatalf("expected max layout days 30 from environment, got %d", cfg.MaxLayoutDays)
	}

	path := writeConfig(t, "max_layout_days: 14\nmax_body_bytes: 4096\n")
	cfg, err = Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxLayoutDays != 14 || cfg.MaxBodyBytes != 4096 {
		t.Fatalf("expected YAML limits, got %d days / %d bytes", cfg.MaxLayoutDays, cfg.MaxBodyBytes)
	}

	zero := writeConfig(t, "max_layout_days: 0\n")
	if _, err := Load(&CLIOverrides{ConfigFile: zero}); err == nil {
		t.Fatalf("expected error for zero max layout days")
	}
}
