// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Offline   OfflineConfig   `mapstructure:"offline"`
	Enricher  EnricherConfig  `mapstructure:"enricher"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

// ProviderConfig holds settings for the external jobs/courses API.
type ProviderConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	Timeout       int    `mapstructure:"timeout"`        // milliseconds
	RetryAttempts int    `mapstructure:"retry_attempts"` // total attempts, including the first
	RetryDelay    int    `mapstructure:"retry_delay"`    // milliseconds between attempts
}

// TimeoutDuration returns the per-attempt timeout.
func (p ProviderConfig) TimeoutDuration() time.Duration {
	return time.Duration(p.Timeout) * time.Millisecond
}

// RetryDelayDuration returns the fixed delay between retry attempts.
func (p ProviderConfig) RetryDelayDuration() time.Duration {
	return time.Duration(p.RetryDelay) * time.Millisecond
}

// RateLimitConfig holds the request budgets shared by every category.
type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
	PerDay    int `mapstructure:"per_day"`
}

// CacheConfig holds the cache backend selection and per-kind TTLs in seconds.
type CacheConfig struct {
	Backend       string `mapstructure:"backend"` // "memory" or "redis"
	CheckPeriod   int    `mapstructure:"check_period"`
	JobsTTL       int    `mapstructure:"jobs_ttl"`
	JobDetailsTTL int    `mapstructure:"job_details_ttl"`
	CoursesTTL    int    `mapstructure:"courses_ttl"`
	CourseDetTTL  int    `mapstructure:"course_details_ttl"`
	HealthTTL     int    `mapstructure:"health_ttl"`
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func (c CacheConfig) CheckPeriodDuration() time.Duration   { return seconds(c.CheckPeriod) }
func (c CacheConfig) JobsTTLDuration() time.Duration       { return seconds(c.JobsTTL) }
func (c CacheConfig) JobDetailsTTLDuration() time.Duration { return seconds(c.JobDetailsTTL) }
func (c CacheConfig) CoursesTTLDuration() time.Duration    { return seconds(c.CoursesTTL) }
func (c CacheConfig) CourseDetailsTTLDuration() time.Duration {
	return seconds(c.CourseDetTTL)
}
func (c CacheConfig) HealthTTLDuration() time.Duration { return seconds(c.HealthTTL) }

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OfflineConfig holds paths to the bundled fallback corpus and the synonym
// table used for fuzzy term matching against it.
type OfflineConfig struct {
	CoursesPath string            `mapstructure:"courses_path"`
	JobsPath    string            `mapstructure:"jobs_path"`
	Synonyms    map[string]string `mapstructure:"synonyms"`
}

// EnricherConfig holds settings for roadmap enrichment.
type EnricherConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.RetryAttempts < 1 {
		return fmt.Errorf("provider.retry_attempts must be at least 1, got %d", c.Provider.RetryAttempts)
	}
	if c.RateLimit.PerMinute <= 0 || c.RateLimit.PerDay <= 0 {
		return fmt.Errorf("rate_limit budgets must be positive (per_minute=%d, per_day=%d)",
			c.RateLimit.PerMinute, c.RateLimit.PerDay)
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be \"memory\" or \"redis\", got %q", c.Cache.Backend)
	}
	if c.Enricher.Concurrency < 1 {
		return fmt.Errorf("enricher.concurrency must be at least 1, got %d", c.Enricher.Concurrency)
	}
	return nil
}
