package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all STRIKEPLAN_ env vars to test pure defaults
	envVars := []string{
		"STRIKEPLAN_PORT", "STRIKEPLAN_METRICS_PORT", "STRIKEPLAN_MODEL_PATH",
		"STRIKEPLAN_MODEL_URL", "STRIKEPLAN_REFERENCE_DATABASE_URL",
		"STRIKEPLAN_EVENTS_URL", "STRIKEPLAN_CORS_ALLOWED_ORIGINS",
		"STRIKEPLAN_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8710 {
		t.Errorf("expected port 8710, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8711 {
		t.Errorf("expected metrics port 8711, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Model.Path != "./model/strike_optimizer.json" {
		t.Errorf("unexpected model path: %s", cfg.Model.Path)
	}
	if cfg.Model.URL != "" {
		t.Errorf("expected empty model URL, got %s", cfg.Model.URL)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS origin, got %v", cfg.CORS.AllowedOrigins)
	}
	w := cfg.Scoring.Weights
	if w.StrikeRotation != 1.0 || w.Pressure != 1.0 || w.Boundary != 1.5 {
		t.Errorf("unexpected default weights: %+v", w)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
server:
  port: 9001
  metrics_port: 9002
model:
  path: /opt/models/gbt.json
reference:
  database_url: postgres://localhost/strikeplan
cors:
  allowed_origins:
    - http://localhost:5173
scoring:
  weights:
    strike_rotation: 0.9
    pressure: 1.1
    boundary: 2.0
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("expected port 9001, got %d", cfg.Server.Port)
	}
	if cfg.Model.Path != "/opt/models/gbt.json" {
		t.Errorf("unexpected model path: %s", cfg.Model.Path)
	}
	if cfg.Reference.DatabaseURL != "postgres://localhost/strikeplan" {
		t.Errorf("unexpected database url: %s", cfg.Reference.DatabaseURL)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Scoring.Weights.Boundary != 2.0 {
		t.Errorf("expected boundary weight 2.0, got %f", cfg.Scoring.Weights.Boundary)
	}
	// Defaults survive a partial file
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected default events URL, got %s", cfg.Events.URL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STRIKEPLAN_PORT", "7500")
	t.Setenv("STRIKEPLAN_MODEL_URL", "http://model-server:9000")
	t.Setenv("STRIKEPLAN_CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7500 {
		t.Errorf("expected port 7500, got %d", cfg.Server.Port)
	}
	if cfg.Model.URL != "http://model-server:9000" {
		t.Errorf("unexpected model URL: %s", cfg.Model.URL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "http://b.example" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
