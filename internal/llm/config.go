package llm

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrMissingAPIKey is wrapped by Config.Validate when the selected provider
// has no credential. Callers use errors.Is to tell configuration problems
// apart from provider failures.
var ErrMissingAPIKey = errors.New("missing LLM API key")

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
	Breaker    BreakerConfig

	// Timeout bounds a single advice request including retries.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// BreakerConfig configures the circuit breaker in front of the provider.
type BreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultConfig returns a Config with sensible defaults. Gemini is the
// default provider.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         30 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.8,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
//
// Keys are read from CAREERPATH_<PROVIDER>_API_KEY first and then from the
// vendor's standard variable (GEMINI_API_KEY, OPENAI_API_KEY, ...). When
// CAREERPATH_LLM_PROVIDER is unset the first provider with a key wins, in the
// order Gemini, OpenAI, Anthropic, OpenRouter. With no key at all the
// provider stays "gemini" and Validate reports the missing credential.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Gemini.APIKey = firstEnv("CAREERPATH_GEMINI_API_KEY", "GEMINI_API_KEY")
	cfg.OpenAI.APIKey = firstEnv("CAREERPATH_OPENAI_API_KEY", "OPENAI_API_KEY")
	cfg.Anthropic.APIKey = firstEnv("CAREERPATH_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	cfg.OpenRouter.APIKey = firstEnv("CAREERPATH_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")

	if m := os.Getenv("CAREERPATH_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if m := os.Getenv("CAREERPATH_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("CAREERPATH_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if m := os.Getenv("CAREERPATH_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	if m := os.Getenv("CAREERPATH_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if p := os.Getenv("CAREERPATH_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	} else {
		cfg.Provider = discoverProvider(cfg)
	}

	if v := os.Getenv("CAREERPATH_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("CAREERPATH_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("CAREERPATH_LLM_BREAKER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Breaker.Enabled = b
		}
	}

	return cfg
}

func discoverProvider(cfg Config) string {
	switch {
	case cfg.Gemini.APIKey != "":
		return "gemini"
	case cfg.OpenAI.APIKey != "":
		return "openai"
	case cfg.Anthropic.APIKey != "":
		return "anthropic"
	case cfg.OpenRouter.APIKey != "":
		return "openrouter"
	}
	return "gemini"
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: set GEMINI_API_KEY or CAREERPATH_GEMINI_API_KEY", ErrMissingAPIKey)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY or CAREERPATH_OPENAI_API_KEY", ErrMissingAPIKey)
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("%w: set ANTHROPIC_API_KEY or CAREERPATH_ANTHROPIC_API_KEY", ErrMissingAPIKey)
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("%w: set OPENROUTER_API_KEY or CAREERPATH_OPENROUTER_API_KEY", ErrMissingAPIKey)
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
