// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration holds all configuration for the promo console service.
type Configuration struct {
	SpannerDB string        `mapstructure:"spanner_db"`
	HTTPPort  string        `mapstructure:"http_port"`
	LogLevel  string        `mapstructure:"log_level"`
	Redis     RedisConfig   `mapstructure:"redis"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// RedisConfig holds the snapshot cache connection settings. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load reads configuration from the given file path (optional, may be
// empty) and the environment. Environment variables use the PROMO_ prefix
// with underscores, e.g. PROMO_HTTP_PORT, PROMO_REDIS_ADDR.
func Load(configPath string) (*Configuration, error) {
	v := viper.New()

	v.SetDefault("spanner_db", "projects/test-project/instances/dev-instance/databases/promo-console-db")
	v.SetDefault("http_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache_ttl", 5*time.Minute)

	v.SetEnvPrefix("PROMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if configuration.CacheTTL <= 0 {
		configuration.CacheTTL = 5 * time.Minute
	}

	return &configuration, nil
}
