package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the engine
type Config struct {
	Redis      RedisConfig
	Cache      CacheConfig
	Simulation SimulationConfig
	DND5E      DND5EConfig
}

// RedisConfig holds Redis-specific configuration. An empty Addr means no
// Redis: the result cache runs in memory instead.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig bounds the evaluation result cache
type CacheConfig struct {
	MaxEntries int
	TTL        time.Duration
}

// SimulationConfig holds Monte Carlo defaults and limits
type SimulationConfig struct {
	Iterations    int // default per-run trial count
	MaxIterations int // hard request ceiling
	Workers       int
	BatchSize     int
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	BaseURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			MaxEntries: getEnvAsIntOrDefault("DPR_CACHE_MAX_ENTRIES", 1024),
			TTL:        time.Duration(getEnvAsIntOrDefault("DPR_CACHE_TTL_SECONDS", 900)) * time.Second,
		},
		Simulation: SimulationConfig{
			Iterations:    getEnvAsIntOrDefault("DPR_SIM_ITERATIONS", 10000),
			MaxIterations: getEnvAsIntOrDefault("DPR_SIM_MAX_ITERATIONS", 1000000),
			Workers:       getEnvAsIntOrDefault("DPR_SIM_WORKERS", 4),
			BatchSize:     getEnvAsIntOrDefault("DPR_SIM_BATCH_SIZE", 1000),
		},
		DND5E: DND5EConfig{
			BaseURL: getEnvOrDefault("DND5E_API_URL", "https://www.dnd5eapi.co/api"),
		},
	}

	if cfg.Simulation.Iterations > cfg.Simulation.MaxIterations {
		return nil, fmt.Errorf("DPR_SIM_ITERATIONS (%d) exceeds DPR_SIM_MAX_ITERATIONS (%d)",
			cfg.Simulation.Iterations, cfg.Simulation.MaxIterations)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
