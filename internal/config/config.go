package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Model     ModelConfig     `yaml:"model"`
	Reference ReferenceConfig `yaml:"reference"`
	Events    EventsConfig    `yaml:"events"`
	CORS      CORSConfig      `yaml:"cors"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

type ModelConfig struct {
	// Path points at the serialized classifier artifact loaded once at startup.
	Path string `yaml:"path"`
	// URL, when set, routes inference to a remote model server instead of the
	// local artifact.
	URL string `yaml:"url"`
}

type ReferenceConfig struct {
	// DatabaseURL optionally overlays the embedded reference tables with rows
	// read once at startup. Empty means embedded data only.
	DatabaseURL string `yaml:"database_url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type ScoringConfig struct {
	Weights ScoringWeights `yaml:"weights"`
}

type ScoringWeights struct {
	StrikeRotation float64 `yaml:"strike_rotation"`
	Pressure       float64 `yaml:"pressure"`
	Boundary       float64 `yaml:"boundary"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8710,
			MetricsPort: 8711,
		},
		Model: ModelConfig{
			Path: "./model/strike_optimizer.json",
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				StrikeRotation: 1.0,
				Pressure:       1.0,
				Boundary:       1.5,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STRIKEPLAN_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("STRIKEPLAN_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("STRIKEPLAN_MODEL_PATH"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("STRIKEPLAN_MODEL_URL"); v != "" {
		cfg.Model.URL = v
	}
	if v := os.Getenv("STRIKEPLAN_REFERENCE_DATABASE_URL"); v != "" {
		cfg.Reference.DatabaseURL = v
	}
	if v := os.Getenv("STRIKEPLAN_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("STRIKEPLAN_CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORS.AllowedOrigins = origins
		}
	}
	if v := os.Getenv("STRIKEPLAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
