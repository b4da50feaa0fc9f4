// Package config provides configuration loading and structs for the caselaw
// service.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool     `yaml:"debug"`
	Server   Server   `yaml:"server"`
	Wikidata Wikidata `yaml:"wikidata"`
	Cache    Cache    `yaml:"cache"`
	Breaker  Breaker  `yaml:"breaker"`
}

// Server holds HTTP server settings.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Wikidata holds settings for the upstream SPARQL endpoint.
type Wikidata struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
	MaxResults     int    `yaml:"max_results"`
}

// Timeout returns the upstream fetch timeout.
func (w *Wikidata) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// Cache holds capacity and TTL settings for the in-process caches. The
// corpus TTL is deliberately much longer than the query TTL: the corpus
// changes far less often than queries arrive.
type Cache struct {
	Capacity             int `yaml:"capacity"`
	CorpusTTLMinutes     int `yaml:"corpus_ttl_minutes"`
	QueryTTLMinutes      int `yaml:"query_ttl_minutes"`
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
}

// CorpusTTL returns how long the whole-corpus snapshot stays fresh.
func (c *Cache) CorpusTTL() time.Duration {
	return time.Duration(c.CorpusTTLMinutes) * time.Minute
}

// QueryTTL returns how long a cached page result stays fresh.
func (c *Cache) QueryTTL() time.Duration {
	return time.Duration(c.QueryTTLMinutes) * time.Minute
}

// SweepInterval returns how often expired entries are swept.
func (c *Cache) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

// Breaker holds circuit-breaker settings for the upstream fetch.
type Breaker struct {
	Enabled         *bool   `yaml:"enabled"`
	MaxRequests     uint32  `yaml:"max_requests"`
	IntervalSeconds int     `yaml:"interval_seconds"`
	TimeoutSeconds  int     `yaml:"timeout_seconds"`
	FailureRatio    float64 `yaml:"failure_ratio"`
}

// EnabledOrDefault reports whether the breaker is on; defaults to true when
// unset.
func (b *Breaker) EnabledOrDefault() bool {
	if b.Enabled != nil {
		return *b.Enabled
	}
	return true
}

// Interval returns the breaker's failure-counting window.
func (b *Breaker) Interval() time.Duration {
	return time.Duration(b.IntervalSeconds) * time.Second
}

// Timeout returns how long an open breaker stays open.
func (b *Breaker) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// Load reads and parses the config file at path, applies defaults, and
// validates. Returns an error if the file cannot be read or parsed, or if a
// value is out of range.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the ranges defaults cannot fix.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Wikidata.Endpoint == "" {
		return fmt.Errorf("wikidata.endpoint must not be empty")
	}
	if c.Wikidata.TimeoutSeconds < 1 {
		return fmt.Errorf("wikidata.timeout_seconds must be positive")
	}
	if c.Wikidata.MaxResults < 1 {
		return fmt.Errorf("wikidata.max_results must be positive")
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("cache.capacity must be positive")
	}
	if c.Cache.CorpusTTLMinutes < 1 || c.Cache.QueryTTLMinutes < 1 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Cache.SweepIntervalMinutes < 1 {
		return fmt.Errorf("cache.sweep_interval_minutes must be positive")
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio %v out of (0, 1]", c.Breaker.FailureRatio)
	}
	return nil
}
