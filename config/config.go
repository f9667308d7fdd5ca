// Package config loads service configuration from a TOML file, a .env file
// and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LoggingConfig   `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Cache     CacheConfig     `toml:"cache"`
	Storage   StorageConfig   `toml:"storage"`
	Advisor   AdvisorConfig   `toml:"advisor"`
}

type ServerConfig struct {
	Port            int      `toml:"port"`
	ReadTimeout     string   `toml:"read_timeout"`
	WriteTimeout    string   `toml:"write_timeout"`
	IdleTimeout     string   `toml:"idle_timeout"`
	ShutdownTimeout string   `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// RateLimitConfig allows Requests per Window for each client IP.
type RateLimitConfig struct {
	Requests int    `toml:"requests"`
	Window   string `toml:"window"`
}

// CacheConfig selects the schedule cache: "memory" or "redis".
type CacheConfig struct {
	Driver    string `toml:"driver"`
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"`
}

// StorageConfig selects where calculations are recorded: "memory" or "postgres".
type StorageConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type AdvisorConfig struct {
	APIKey  string `toml:"api_key"`
	APIURL  string `toml:"api_url"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			IdleTimeout:     "60s",
			ShutdownTimeout: "10s",
			AllowedOrigins:  []string{"*"},
		},
		Logging:   LoggingConfig{Level: "info"},
		RateLimit: RateLimitConfig{Requests: 5, Window: "1m"},
		Cache:     CacheConfig{Driver: "memory", RedisAddr: "localhost:6379", TTL: "1h"},
		Storage:   StorageConfig{Driver: "memory"},
		Advisor: AdvisorConfig{
			APIURL:  "https://api.openai.com/v1/chat/completions",
			Model:   "gpt-4o-mini",
			Timeout: "30s",
		},
	}
}

// Load reads path (if it exists) over the defaults, then applies .env and
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MORTGAGE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MORTGAGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Storage.Driver = "postgres"
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Advisor.APIKey = v
	}
}

// Duration parses a duration string, falling back when it is empty or malformed.
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
