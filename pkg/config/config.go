// Package config loads the application configuration from YAML with
// environment-variable fallbacks and policy defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Provider configures the LLM extraction pass.
	Provider ProviderConfig `yaml:"provider"`

	// Store configures session persistence.
	Store StoreConfig `yaml:"store"`

	// Policy holds the tunable conversation parameters.
	Policy PolicyConfig `yaml:"policy"`

	// CatalogPath is the service-package catalog file.
	CatalogPath string `yaml:"catalog_path"`
}

// ProviderConfig holds LLM provider configuration.
type ProviderConfig struct {
	// Name selects the registered provider: openai, gemini, or fake.
	Name string `yaml:"name"`
	// Model overrides the provider's default model.
	Model string `yaml:"model"`
	// APIKey is taken from the provider's environment variable when empty.
	APIKey string `yaml:"api_key"`
	// TimeoutSeconds bounds the model extraction pass per turn.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// MaxRetries for retryable provider failures. At most one retry is
	// allowed so a turn never waits on more than two model calls.
	MaxRetries int `yaml:"max_retries"`
	// RequestsPerSecond enables rate limiting when positive.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	// Burst is the rate limiter burst size.
	Burst int `yaml:"burst"`
}

// StoreConfig holds session store configuration.
type StoreConfig struct {
	// Type is "redis" or "file".
	Type string `yaml:"type"`
	// RedisAddr is the Redis server address (host:port).
	RedisAddr string `yaml:"redis_addr"`
	// RedisPassword is optional.
	RedisPassword string `yaml:"redis_password"`
	// RedisDB is the Redis database number.
	RedisDB int `yaml:"redis_db"`
	// Dir is the file store directory.
	Dir string `yaml:"dir"`
	// SessionTTLMinutes is the inactivity window before expiry (0 = never).
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`
	// SweepSpec is the cron spec for the expiry sweeper.
	SweepSpec string `yaml:"sweep_spec"`
}

// PolicyConfig holds the conversation policy parameters.
type PolicyConfig struct {
	// ConfidenceThreshold gates extraction completeness.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	// RelevanceFloor is the minimum recommendation score.
	RelevanceFloor float64 `yaml:"relevance_floor"`
	// UrgencyMultiplier scales proposal prices for urgent requests.
	UrgencyMultiplier float64 `yaml:"urgency_multiplier"`
	// TimelineReduction is the urgent timeline compression fraction.
	TimelineReduction float64 `yaml:"timeline_reduction"`
	// WeightIndustry/WeightUrgency/WeightRoleCount are the scoring mix.
	WeightIndustry  float64 `yaml:"weight_industry"`
	WeightUrgency   float64 `yaml:"weight_urgency"`
	WeightRoleCount float64 `yaml:"weight_role_count"`
}

// SessionTTL returns the configured TTL as a duration.
func (s StoreConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}

// Timeout returns the provider timeout as a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:           "openai",
			TimeoutSeconds: 5,
			MaxRetries:     1,
		},
		Store: StoreConfig{
			Type:              "file",
			Dir:               ".hireflow/sessions",
			SessionTTLMinutes: 60,
			SweepSpec:         "@every 5m",
		},
		Policy: PolicyConfig{
			ConfidenceThreshold: 0.5,
			RelevanceFloor:      0.2,
			UrgencyMultiplier:   1.2,
			TimelineReduction:   0.3,
			WeightIndustry:      0.4,
			WeightUrgency:       0.3,
			WeightRoleCount:     0.3,
		},
		CatalogPath: "config/catalog.yaml",
	}
}

// Load reads configuration from a YAML file over the defaults. An empty
// path loads defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HIREFLOW_PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
	if v := os.Getenv("HIREFLOW_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("HIREFLOW_STORE"); v != "" {
		cfg.Store.Type = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Store.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Store.RedisPassword = v
	}
	if v := os.Getenv("HIREFLOW_STORE_DIR"); v != "" {
		cfg.Store.Dir = v
	}
	if v := os.Getenv("HIREFLOW_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("HIREFLOW_SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Store.SessionTTLMinutes = n
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case "file":
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir is required for the file store")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store type %q", c.Store.Type)
	}

	if c.Provider.Name == "" {
		return fmt.Errorf("provider.name is required")
	}
	if c.Provider.MaxRetries < 0 || c.Provider.MaxRetries > 1 {
		return fmt.Errorf("provider.max_retries must be 0 or 1")
	}
	if c.CatalogPath == "" {
		return fmt.Errorf("catalog_path is required")
	}
	if c.Policy.ConfidenceThreshold <= 0 || c.Policy.ConfidenceThreshold > 1 {
		return fmt.Errorf("policy.confidence_threshold must be in (0, 1]")
	}
	if c.Policy.RelevanceFloor < 0 || c.Policy.RelevanceFloor > 1 {
		return fmt.Errorf("policy.relevance_floor must be in [0, 1]")
	}
	if c.Policy.UrgencyMultiplier < 1 {
		return fmt.Errorf("policy.urgency_multiplier must be >= 1")
	}
	if c.Policy.TimelineReduction < 0 || c.Policy.TimelineReduction >= 1 {
		return fmt.Errorf("policy.timeline_reduction must be in [0, 1)")
	}
	return nil
}
