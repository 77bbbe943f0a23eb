// Package config reads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/joho/godotenv"
)

// Config holds everything the binary needs besides command-line flags.
type Config struct {
	Server ServerConfig
	Cache  CacheConfig
	Log    LogConfig
	LLM    llm.Config

	// DBPath enables the LLM audit log when set.
	DBPath string

	// ServerURL points the TUI at a running server instead of calling the
	// provider in-process.
	ServerURL string

	// Structured asks providers for schema-constrained JSON output.
	Structured bool
}

type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	TTL           time.Duration
}

type LogConfig struct {
	Level       string
	Development bool
	File        string
}

var errInvalidEnv = errors.New("invalid environment variables")

// LoadDotEnv loads .env from the working directory if present. Variables
// already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads configuration from the environment. Every variable is optional;
// malformed values are reported together.
func Load() (Config, error) {
	var invalid []string
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optBool := func(key string) bool {
		v := opt(key)
		if v == "" {
			return false
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
		}
		return b
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := opt(key)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:        opt("CAREERPATH_ADDR"),
			CORSOrigins: splitList(opt("CAREERPATH_CORS_ORIGINS")),
		},
		Cache: CacheConfig{
			RedisAddr:     opt("CAREERPATH_REDIS_ADDR"),
			RedisPassword: opt("CAREERPATH_REDIS_PASSWORD"),
			TTL:           optDuration("CAREERPATH_CACHE_TTL", 10*time.Minute),
		},
		Log: LogConfig{
			Level:       opt("CAREERPATH_LOG_LEVEL"),
			Development: optBool("CAREERPATH_DEV"),
			File:        opt("CAREERPATH_LOG_FILE"),
		},
		LLM:        llm.ConfigFromEnv(),
		DBPath:     opt("CAREERPATH_DB"),
		ServerURL:  opt("CAREERPATH_SERVER_URL"),
		Structured: optBool("CAREERPATH_STRUCTURED"),
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
