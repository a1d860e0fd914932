// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml plus an optional per-environment overlay and
// applies environment variable overrides (PROVIDER_API_KEY, RATE_LIMIT_PER_DAY...).
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.App.Environment = env

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults applies the provider contract defaults so the module works with
// an empty config file plus an API key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "impulsai-resolution")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.metrics_port", 9102)

	// Empty defaults register the keys so AutomaticEnv can overlay them even
	// when the config file leaves them out.
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.timeout", 10000)
	v.SetDefault("provider.retry_attempts", 3)
	v.SetDefault("provider.retry_delay", 1000)

	v.SetDefault("rate_limit.per_minute", 10)
	v.SetDefault("rate_limit.per_day", 200)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.check_period", 60)
	v.SetDefault("cache.jobs_ttl", 300)
	v.SetDefault("cache.job_details_ttl", 600)
	v.SetDefault("cache.courses_ttl", 600)
	v.SetDefault("cache.course_details_ttl", 900)
	v.SetDefault("cache.health_ttl", 60)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("offline.courses_path", "data/cursos.json")
	v.SetDefault("offline.jobs_path", "data/vagas.json")

	v.SetDefault("enricher.concurrency", 3)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// loadEnvFile loads a .env file from the working directory or a parent, when
// one exists. Missing files are not an error.
func loadEnvFile() {
	candidates := []string{".env", "../.env", "../../.env"}
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			_ = godotenv.Load(abs)
			return
		}
	}
}
