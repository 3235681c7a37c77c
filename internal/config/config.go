// Package config provides configuration loading and per-component config
// validation for autocoder.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete autocoder configuration.
type Config struct {
	Generator    GeneratorConfig    `yaml:"generator"`
	Validation   ValidationConfig   `yaml:"validation"`
	Reachability ReachabilityConfig `yaml:"reachability"`
	Bus          BusConfig          `yaml:"bus"`
}

// GeneratorConfig configures the LLM-backed code emitter (C3).
type GeneratorConfig struct {
	// Default is the default capability/role resolved for generation.
	Default string `yaml:"default"`
	// Timeout bounds a single component's generation attempt.
	Timeout time.Duration `yaml:"timeout"`
}

// ValidationConfig configures integration validation (C4).
type ValidationConfig struct {
	// Threshold is the fractional pass rate a blueprint must clear.
	Threshold float64 `yaml:"threshold"`
}

// ReachabilityConfig configures the boundary-termination analyzer (C1)
// rollout.
type ReachabilityConfig struct {
	Enabled                 bool     `yaml:"enabled"`
	RolloutEnvironments     []string `yaml:"rollout_environments"`
	ProductionMaxComponents int      `yaml:"production_max_components"`
	StagingMaxComponents    int      `yaml:"staging_max_components"`
}

// BusConfig configures the in-process message bus used by validation (C4).
type BusConfig struct {
	URL      string `yaml:"url"`
	Embedded bool   `yaml:"embedded"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Default: "generator",
			Timeout: 120 * time.Second,
		},
		Validation: ValidationConfig{
			Threshold: 0.8,
		},
		Reachability: ReachabilityConfig{
			Enabled:                 true,
			RolloutEnvironments:     nil,
			ProductionMaxComponents: 50,
			StagingMaxComponents:    200,
		},
		Bus: BusConfig{
			URL:      "",
			Embedded: true,
		},
	}
}

// Validate checks that the configuration is well formed.
func (c *Config) Validate() error {
	if c.Generator.Default == "" {
		return fmt.Errorf("generator.default is required")
	}
	if c.Validation.Threshold <= 0 || c.Validation.Threshold > 1 {
		return fmt.Errorf("validation.threshold must be in (0, 1]")
	}
	if c.Reachability.ProductionMaxComponents <= 0 {
		return fmt.Errorf("reachability.production_max_components must be positive")
	}
	if c.Reachability.StagingMaxComponents <= 0 {
		return fmt.Errorf("reachability.staging_max_components must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Merge merges another config into this one; other takes precedence for
// non-zero values.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Generator.Default != "" {
		c.Generator.Default = other.Generator.Default
	}
	if other.Generator.Timeout != 0 {
		c.Generator.Timeout = other.Generator.Timeout
	}
	if other.Validation.Threshold != 0 {
		c.Validation.Threshold = other.Validation.Threshold
	}
	if other.Reachability.ProductionMaxComponents != 0 {
		c.Reachability.ProductionMaxComponents = other.Reachability.ProductionMaxComponents
	}
	if other.Reachability.StagingMaxComponents != 0 {
		c.Reachability.StagingMaxComponents = other.Reachability.StagingMaxComponents
	}
	if len(other.Reachability.RolloutEnvironments) > 0 {
		c.Reachability.RolloutEnvironments = other.Reachability.RolloutEnvironments
	}
	if other.Bus.URL != "" {
		c.Bus.URL = other.Bus.URL
		c.Bus.Embedded = false
	}
}

// ApplyEnv overlays process environment variables on top of the config:
// AUTOCODER_GENERATOR, VALIDATION_THRESHOLD, BOUNDARY_TERMINATION_ENABLED,
// VR1_ROLLOUT_ENVIRONMENTS, VR1_PRODUCTION_MAX_COMPONENTS,
// VR1_STAGING_MAX_COMPONENTS.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("AUTOCODER_GENERATOR"); v != "" {
		c.Generator.Default = v
	}
	if v := os.Getenv("VALIDATION_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Validation.Threshold = f
		}
	}
	if v := os.Getenv("BOUNDARY_TERMINATION_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Reachability.Enabled = b
		}
	}
	if v := os.Getenv("VR1_ROLLOUT_ENVIRONMENTS"); v != "" {
		c.Reachability.RolloutEnvironments = strings.Split(v, ",")
	}
	if v := os.Getenv("VR1_PRODUCTION_MAX_COMPONENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reachability.ProductionMaxComponents = n
		}
	}
	if v := os.Getenv("VR1_STAGING_MAX_COMPONENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reachability.StagingMaxComponents = n
		}
	}
}

// RolloutEnabledFor reports whether boundary-termination checking is active
// for the named deployment environment.
func (c *Config) RolloutEnabledFor(env string) bool {
	if !c.Reachability.Enabled {
		return false
	}
	if len(c.Reachability.RolloutEnvironments) == 0 {
		return true
	}
	for _, e := range c.Reachability.RolloutEnvironments {
		if strings.EqualFold(strings.TrimSpace(e), env) {
			return true
		}
	}
	return false
}
