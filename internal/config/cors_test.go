package config_test

import (
	"testing"

	"github.com/0xi4o/cms-api/internal/config"
)

func TestCORSFinalize_Defaults(t *testing.T) {
	t.Setenv(config.EnvCORSEnabled, "")
	t.Setenv(config.EnvCORSOrigins, "")

	cfg := &config.CORSConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Enabled {
		t.Error("Expected CORS disabled by default")
	}
	if len(cfg.AllowedMethods) == 0 {
		t.Error("Expected default allowed methods")
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("Expected default max_age 3600, got %d", cfg.MaxAge)
	}
}

func TestCORSFinalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvCORSEnabled, "true")
	t.Setenv(config.EnvCORSOrigins, "https://a.example.com, https://b.example.com")
	t.Setenv(config.EnvCORSMaxAge, "600")

	cfg := &config.CORSConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("Expected CORS enabled from env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "https://b.example.com" {
		t.Errorf("Unexpected origins: %v", cfg.Origins)
	}
	if cfg.MaxAge != 600 {
		t.Errorf("Expected max_age 600, got %d", cfg.MaxAge)
	}
}

func TestCORSMerge(t *testing.T) {
	cfg := &config.CORSConfig{
		Enabled: true,
		Origins: []string{"https://a.example.com"},
		MaxAge:  3600,
	}

	cfg.Merge(&config.CORSConfig{
		Enabled: true,
		Origins: []string{"https://b.example.com"},
	})

	if len(cfg.Origins) != 1 || cfg.Origins[0] != "https://b.example.com" {
		t.Errorf("Expected overlay origins, got %v", cfg.Origins)
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("Expected base max_age retained, got %d", cfg.MaxAge)
	}
}
