package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port     int           `env:"NORTHLINE_TEST_PORT" envDefault:"123"`
	Interval time.Duration `env:"NORTHLINE_TEST_INTERVAL" envDefault:"2s"`
	Emails   []string      `env:"NORTHLINE_TEST_EMAILS" envSeparator:","`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.Interval != 2*time.Second {
		t.Fatalf("expected default interval 2s, got %s", cfg.Interval)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("NORTHLINE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFromUsesExplicitEnvironment(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	err := ParseEnvFrom(&cfg, map[string]string{
		"NORTHLINE_TEST_PORT":   "9090",
		"NORTHLINE_TEST_EMAILS": "ops@example.com,sales@example.com",
	})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("Port = %d, want 9090", cfg.Port)
	}
	if len(cfg.Emails) != 2 || cfg.Emails[1] != "sales@example.com" {
		t.Fatalf("Emails = %v", cfg.Emails)
	}
}

func TestFirstNonEmptySkipsBlankValues(t *testing.T) {
	t.Parallel()

	environment := map[string]string{
		"PRIMARY":  "  ",
		"FALLBACK": " https://example.com ",
	}
	got, ok := FirstNonEmpty(environment, "PRIMARY", "FALLBACK")
	if !ok || got != "https://example.com" {
		t.Fatalf("FirstNonEmpty() = %q, %t", got, ok)
	}
	if _, ok := FirstNonEmpty(environment, "MISSING"); ok {
		t.Fatal("expected missing key to report false")
	}
}
