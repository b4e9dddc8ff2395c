// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

const DefaultPath = "config.yaml"

type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`

	RateLimit struct {
		RequestsPerSecond int `yaml:"requestsPerSecond"`
		Burst             int `yaml:"burst"`
	} `yaml:"rateLimit"`

	Concurrency int `yaml:"concurrency"`

	HTTPClient struct {
		TimeoutMs  int    `yaml:"timeoutMs"`
		MaxRetries int    `yaml:"maxRetries"`
		UserAgent  string `yaml:"userAgent"`
	} `yaml:"httpClient"`

	Dictionary struct {
		BaseURL         string `yaml:"baseURL"`
		LookupTimeoutMs int    `yaml:"lookupTimeoutMs"`
		MaxWords        int    `yaml:"maxWords"`
	} `yaml:"dictionary"`

	Cache struct {
		Backend  string `yaml:"backend"`
		RedisURL string `yaml:"redisURL"`
	} `yaml:"cache"`

	Logging struct {
		Mode string `yaml:"mode"`
	} `yaml:"logging"`
}

// Load reads the YAML configuration at path, applies environment overrides
// and defaults, and validates the result. A missing file is not an error:
// the service then runs on defaults and environment values.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error decoding config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("error opening config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	// Set default values
	setDefaults(&cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnv overrides file values with the process environment.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := os.Getenv("DICTIONARY_BASE_URL"); v != "" {
		cfg.Dictionary.BaseURL = v
	}
	if v := os.Getenv("LOOKUP_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOOKUP_TIMEOUT_MS: %w", err)
		}
		cfg.Dictionary.LookupTimeoutMs = ms
	}
	if v := os.Getenv("LOG_MODE"); v != "" {
		cfg.Logging.Mode = v
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 10
	}
	if cfg.Dictionary.BaseURL == "" {
		cfg.Dictionary.BaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	}
	if cfg.Dictionary.LookupTimeoutMs == 0 {
		cfg.Dictionary.LookupTimeoutMs = 3000
	}
	// Defaults to the lookup timeout; Validate rejects a shorter one
	if cfg.HTTPClient.TimeoutMs == 0 {
		cfg.HTTPClient.TimeoutMs = cfg.Dictionary.LookupTimeoutMs
	}
	if cfg.Dictionary.MaxWords == 0 {
		cfg.Dictionary.MaxWords = 10
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	if cfg.Logging.Mode == "" {
		cfg.Logging.Mode = "production"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q (supported: debug, release, test)", c.Server.Mode)
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("requestsPerSecond must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("burst must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.HTTPClient.TimeoutMs <= 0 {
		return fmt.Errorf("httpClient.timeoutMs must be positive")
	}
	if c.HTTPClient.MaxRetries < 0 {
		return fmt.Errorf("httpClient.maxRetries must not be negative")
	}
	if c.Dictionary.BaseURL == "" {
		return fmt.Errorf("dictionary.baseURL is required")
	}
	if c.Dictionary.LookupTimeoutMs <= 0 {
		return fmt.Errorf("dictionary.lookupTimeoutMs must be positive")
	}
	if c.HTTPClient.TimeoutMs < c.Dictionary.LookupTimeoutMs {
		return fmt.Errorf("httpClient.timeoutMs (%d) must not be below dictionary.lookupTimeoutMs (%d)",
			c.HTTPClient.TimeoutMs, c.Dictionary.LookupTimeoutMs)
	}
	if c.Dictionary.MaxWords <= 0 {
		return fmt.Errorf("dictionary.maxWords must be positive")
	}
	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redisURL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q (supported: memory, redis)", c.Cache.Backend)
	}
	return nil
}
