// Package config holds process-level configuration for supplysense
// binaries. The core packages take their settings through constructor
// options; this package only feeds those options from the environment
// or a config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the global configuration for supplysense binaries.
type Config struct {
	// Logging configuration
	Logging struct {
		Level string
	}

	// Agent configuration
	Agent struct {
		Strategy string
	}

	// Memory configuration
	Memory struct {
		Backend    string // "inprocess" or "redis"
		MaxEntries int

		// Redis configuration, used when Backend is "redis"
		Redis struct {
			URL      string
			Password string
			DB       int
		}
	}

	// Data generation configuration
	Data struct {
		Seed        int64
		ScaleFactor float64
	}
}

// LoadFromEnv loads configuration from environment variables, applying
// defaults for anything unset.
func LoadFromEnv() *Config {
	config := &Config{}

	config.Logging.Level = getEnv("SUPPLYSENSE_LOG_LEVEL", "info")

	config.Agent.Strategy = getEnv("SUPPLYSENSE_STRATEGY", "reflex")

	config.Memory.Backend = getEnv("SUPPLYSENSE_MEMORY_BACKEND", "inprocess")
	config.Memory.MaxEntries = getEnvInt("SUPPLYSENSE_MEMORY_MAX_ENTRIES", 10)
	config.Memory.Redis.URL = getEnv("REDIS_URL", "localhost:6379")
	config.Memory.Redis.Password = getEnv("REDIS_PASSWORD", "")
	config.Memory.Redis.DB = getEnvInt("REDIS_DB", 0)

	config.Data.Seed = getEnvInt64("SUPPLYSENSE_DATA_SEED", 42)
	config.Data.ScaleFactor = getEnvFloat("SUPPLYSENSE_DATA_SCALE", 1.0)

	return config
}

// LoadFromFile loads configuration from a file, with environment
// variables (prefixed SUPPLYSENSE_) overriding file values.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("SUPPLYSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("agent.strategy", "reflex")
	v.SetDefault("memory.backend", "inprocess")
	v.SetDefault("memory.maxentries", 10)
	v.SetDefault("memory.redis.url", "localhost:6379")
	v.SetDefault("memory.redis.db", 0)
	v.SetDefault("data.seed", 42)
	v.SetDefault("data.scalefactor", 1.0)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
