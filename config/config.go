// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/marifa/ai"
	"github.com/poiesic/marifa/core"
	"gopkg.in/yaml.v3"
)

// Environment variables applied after the config file.
const (
	EnvDatabase = "MARIFA_DB"
	EnvLogLevel = "MARIFA_LOG_LEVEL"
	EnvAIHost   = "MARIFA_AI_HOST"
	EnvAIModel  = "MARIFA_AI_MODEL"
)

// Config is the engine configuration.
type Config struct {
	Database     DatabaseConfig     `yaml:"database"`
	LogLevel     string             `yaml:"log_level"`
	Analysis     AnalysisConfig     `yaml:"analysis"`
	Exploration  ExplorationConfig  `yaml:"exploration"`
	Reasoning    ReasoningConfig    `yaml:"reasoning"`
	Verification VerificationConfig `yaml:"verification"`
	Ingestion    IngestionConfig    `yaml:"ingestion"`
	Reverify     ReverifyConfig     `yaml:"reverify"`
	AI           AIConfig           `yaml:"ai"`
}

// DatabaseConfig locates the badger store.
type DatabaseConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// AnalysisConfig holds text analysis thresholds.
type AnalysisConfig struct {
	MinConfidence   float64 `yaml:"min_confidence"`
	IncludeSemantic bool    `yaml:"include_semantic"`
}

// ExplorationConfig holds concept exploration settings.
type ExplorationConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// ReasoningConfig holds reasoning engine thresholds.
type ReasoningConfig struct {
	MinConfidence      float64 `yaml:"min_confidence"`
	InferMinConfidence float64 `yaml:"infer_min_confidence"`
}

// VerificationConfig holds knowledge graph verification settings.
type VerificationConfig struct {
	PoolSize int `yaml:"pool_size"`
	// SourceReliability overrides entries of the built-in reliability table.
	SourceReliability map[string]float64 `yaml:"source_reliability"`
}

// IngestionConfig holds ingestion pipeline settings.
type IngestionConfig struct {
	PoolSize int `yaml:"pool_size"`
}

// ReverifyConfig holds reverification sweep settings.
type ReverifyConfig struct {
	BatchSize   int           `yaml:"batch_size"`
	Concurrency int           `yaml:"concurrency"`
	MaxRetries  int           `yaml:"max_retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// AIConfig configures the lexicon entry generator. Generation is off unless Enabled.
type AIConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host"`
	Model       string `yaml:"model"`
	Token       string `yaml:"token"`
	MaxExamples int    `yaml:"max_examples"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Database: DatabaseConfig{Path: "marifa.db"},
		LogLevel: "info",
		Analysis: AnalysisConfig{MinConfidence: 0.7},
		Exploration: ExplorationConfig{
			MaxDepth: 2,
		},
		Reasoning: ReasoningConfig{
			MinConfidence:      0.6,
			InferMinConfidence: 0.7,
		},
		Verification: VerificationConfig{},
		Ingestion:    IngestionConfig{},
		Reverify: ReverifyConfig{
			BatchSize:   100,
			Concurrency: 4,
			MaxRetries:  3,
			RetryDelay:  100 * time.Millisecond,
		},
		AI: AIConfig{
			Host:        aiDefaults.Host,
			Model:       aiDefaults.Model,
			Token:       aiDefaults.Token,
			MaxExamples: aiDefaults.MaxExamples,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then with environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := cfg.decode(f); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays YAML from r. Unknown keys are rejected.
func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", core.ErrValidation, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabase); v != "" {
		if v == ":memory:" {
			c.Database.InMemory = true
		} else {
			c.Database.Path = v
			c.Database.InMemory = false
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvAIHost); v != "" {
		c.AI.Host = v
	}
	if v := os.Getenv(EnvAIModel); v != "" {
		c.AI.Model = v
	}
}

// Validate rejects out-of-range values.
func (c *Config) Validate() error {
	var errs []error
	if !c.Database.InMemory && strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is required unless database.in_memory is set"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	for name, v := range map[string]float64{
		"analysis.min_confidence":        c.Analysis.MinConfidence,
		"reasoning.min_confidence":       c.Reasoning.MinConfidence,
		"reasoning.infer_min_confidence": c.Reasoning.InferMinConfidence,
	} {
		if !core.IsValidConfidence(v) {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, v))
		}
	}
	for source, v := range c.Verification.SourceReliability {
		if !core.IsValidConfidence(v) {
			errs = append(errs, fmt.Errorf("verification.source_reliability[%s] must be within [0,1], got %v", source, v))
		}
	}
	if c.Exploration.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("exploration.max_depth must not be negative, got %d", c.Exploration.MaxDepth))
	}
	if c.Verification.PoolSize < 0 || c.Ingestion.PoolSize < 0 {
		errs = append(errs, errors.New("pool sizes must not be negative"))
	}
	if c.Reverify.BatchSize < 1 || c.Reverify.Concurrency < 1 || c.Reverify.MaxRetries < 1 {
		errs = append(errs, errors.New("reverify.batch_size, concurrency and max_retries must be at least 1"))
	}
	if c.AI.Enabled {
		if err := c.AIConfig().Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: config: %w", core.ErrValidation, err)
	}
	return nil
}

// AIConfig returns the ai package configuration for the lexicon generator.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.AI.Host),
		ai.WithModel(c.AI.Model),
		ai.WithToken(c.AI.Token),
		ai.WithMaxExamples(c.AI.MaxExamples),
	)
}

// Level returns the configured log level. Validate has already rejected
// unknown names, so an invalid level falls back to info.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error (any case) to slog levels.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
