package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backend identifiers
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// Cache backend identifiers
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Monitoring MonitoringConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	ReadingsDB PostgresConfig `mapstructure:"readings"`
	AppDB      PostgresConfig `mapstructure:"postgres_app"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// StorageConfig selects the reading store backend
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// CacheConfig selects the cache backend and the per-operation TTLs
type CacheConfig struct {
	Backend    string        `mapstructure:"backend"`
	LatestTTL  time.Duration `mapstructure:"latest_ttl"`
	Last24hTTL time.Duration `mapstructure:"last24h_ttl"`
	DailyTTL   time.Duration `mapstructure:"daily_ttl"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MonitoringConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("BWS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Storage defaults
	viper.SetDefault("storage.backend", StorageBackendPostgres)

	// Database defaults
	viper.SetDefault("database.readings.sslmode", "disable")
	viper.SetDefault("database.postgres_app.sslmode", "disable")

	// Cache defaults
	viper.SetDefault("cache.backend", CacheBackendMemory)
	viper.SetDefault("cache.latest_ttl", "45m")
	viper.SetDefault("cache.last24h_ttl", "45m")
	viper.SetDefault("cache.daily_ttl", "120m")

	// Redis defaults
	viper.SetDefault("redis.db", 0)

	// Monitoring defaults
	viper.SetDefault("monitoring.log_level", "info")
}

func validateConfig(config *Config) error {
	switch config.Storage.Backend {
	case StorageBackendPostgres:
		if config.Database.ReadingsDB.Host == "" {
			return fmt.Errorf("readings database host is required")
		}
		if config.Database.AppDB.Host == "" {
			return fmt.Errorf("postgres app host is required")
		}
	case StorageBackendMemory:
		// No external dependencies to validate
	default:
		return fmt.Errorf("unknown storage backend: %s", config.Storage.Backend)
	}

	switch config.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if config.Redis.Host == "" {
			return fmt.Errorf("redis host is required for redis cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", config.Cache.Backend)
	}

	return nil
}
