// Package config loads the application configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the top-level application configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Corpus CorpusConfig `yaml:"corpus"`
	Model  ModelConfig  `yaml:"model"`
	Server ServerConfig `yaml:"server"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	LogLevel string `yaml:"log_level"`
}

// CorpusConfig describes the training corpus.
type CorpusConfig struct {
	Path         string `yaml:"path"`
	MaxSentences int    `yaml:"max_sentences"`
	Lowercase    bool   `yaml:"lowercase"`
}

// ModelConfig holds estimator options. The smoothing constants and blend
// weights are fixed by the estimators themselves; only the operational
// knobs live here.
type ModelConfig struct {
	MaxGeneratedWords int `yaml:"max_generated_words"`

	// Bloom-filtered singleton suppression for the trigram table, for
	// very large corpora. Trigram counts become lower bounds when enabled.
	UseBloom               bool    `yaml:"use_bloom"`
	BloomExpectedItems     uint    `yaml:"bloom_expected_items"`
	BloomFalsePositiveRate float64 `yaml:"bloom_false_positive_rate"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		App: AppConfig{
			LogLevel: "info",
		},
		Corpus: CorpusConfig{
			Lowercase: true,
		},
		Model: ModelConfig{
			MaxGeneratedWords:      100,
			BloomExpectedItems:     100000,
			BloomFalsePositiveRate: 0.01,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot run
// with.
func (c *Config) Validate() error {
	if c.Corpus.MaxSentences < 0 {
		return fmt.Errorf("corpus.max_sentences must be >= 0, got %d", c.Corpus.MaxSentences)
	}
	if c.Model.MaxGeneratedWords <= 0 {
		return fmt.Errorf("model.max_generated_words must be > 0, got %d", c.Model.MaxGeneratedWords)
	}
	if c.Model.UseBloom {
		if c.Model.BloomExpectedItems == 0 {
			return fmt.Errorf("model.bloom_expected_items must be > 0 when bloom is enabled")
		}
		if c.Model.BloomFalsePositiveRate <= 0 || c.Model.BloomFalsePositiveRate >= 1 {
			return fmt.Errorf("model.bloom_false_positive_rate must be in (0,1), got %v", c.Model.BloomFalsePositiveRate)
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}
