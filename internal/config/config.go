// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	StorageType string
	RedisURL    string
	LogLevel    string

	// Requests per second allowed per client IP; 0 disables limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Host:           os.Getenv("HOST"),
		Port:           8080,
		StorageType:    envDefault("STORAGE_TYPE", StorageTypeMemory),
		RedisURL:       os.Getenv("REDIS_URL"),
		LogLevel:       envDefault("LOG_LEVEL", "info"),
		RateLimitRPS:   10,
		RateLimitBurst: 30,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if rpsStr := os.Getenv("RATE_LIMIT_RPS"); rpsStr != "" {
		rps, err := strconv.ParseFloat(rpsStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", rpsStr, err)
		}
		cfg.RateLimitRPS = rps
	}

	if burstStr := os.Getenv("RATE_LIMIT_BURST"); burstStr != "" {
		burst, err := strconv.Atoi(burstStr)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", burstStr, err)
		}
		cfg.RateLimitBurst = burst
	}

	switch cfg.StorageType {
	case StorageTypeMemory:
	case StorageTypeRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=%s", StorageTypeRedis)
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q",
			cfg.StorageType, StorageTypeMemory, StorageTypeRedis)
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
