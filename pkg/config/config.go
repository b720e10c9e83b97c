package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, loaded from the environment
// (with an optional .env file for development).
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Analysis backend (classification, summarization, IR search, NER)
	EnronAPIURL     string        `env:"ENRON_API_URL" envDefault:"http://localhost:5050/api"`
	EnronAPITimeout time.Duration `env:"ENRON_API_TIMEOUT" envDefault:"240s"`

	// Database
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"host=localhost user=enron password=enron dbname=enronbox port=5432 sslmode=disable"`

	// AI fallback provider
	AIProvider         string  `env:"AI_PROVIDER" envDefault:"auto"` // "backend", "ollama" or "auto"
	OllamaBaseURL      string  `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaModel        string  `env:"OLLAMA_MODEL" envDefault:"llama3.2"`
	DefaultTemperature float64 `env:"DEFAULT_TEMPERATURE" envDefault:"0.7"`

	// Background summarization
	SummaryWorkers int `env:"SUMMARY_WORKERS" envDefault:"3"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SummaryWorkers <= 0 {
		cfg.SummaryWorkers = 3
	}

	return cfg, nil
}
