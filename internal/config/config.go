package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Compare store backends.
const (
	CompareBackendMemory = "memory"
	CompareBackendRedis  = "redis"
)

// Config holds all configuration for catalog-service
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Compare CompareConfig `yaml:"compare"`
	Redis   RedisConfig   `yaml:"redis"`
	Cleanup CleanupConfig `yaml:"cleanup"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig holds dataset file storage configuration
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// CompareConfig holds compare-set persistence configuration
type CompareConfig struct {
	Backend    string        `yaml:"backend"` // memory | redis
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// RedisConfig holds Redis configuration for the compare store
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CleanupConfig holds cleanup worker configuration
type CleanupConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Load builds the configuration: defaults, then the optional YAML file named
// by CONFIG_FILE, then environment variable overrides.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Compare: CompareConfig{
			Backend:    CompareBackendMemory,
			SessionTTL: 24 * time.Hour,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Cleanup: CleanupConfig{
			Interval: 5 * time.Minute,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsInt("SERVER_PORT", cfg.Server.Port)
	cfg.Data.Dir = getEnv("DATA_DIR", cfg.Data.Dir)
	cfg.Compare.Backend = getEnv("COMPARE_BACKEND", cfg.Compare.Backend)
	cfg.Compare.SessionTTL = getEnvAsDuration("COMPARE_SESSION_TTL", cfg.Compare.SessionTTL)
	cfg.Redis.Address = getEnv("REDIS_ADDRESS", cfg.Redis.Address)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Cleanup.Interval = getEnvAsDuration("CLEANUP_INTERVAL", cfg.Cleanup.Interval)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Data.Dir == "" {
		return fmt.Errorf("data directory is required")
	}

	switch c.Compare.Backend {
	case CompareBackendMemory, CompareBackendRedis:
	default:
		return fmt.Errorf("invalid compare backend: %q", c.Compare.Backend)
	}

	if c.Compare.Backend == CompareBackendRedis && c.Redis.Address == "" {
		return fmt.Errorf("redis address is required for the redis compare backend")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
