package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/careerpath/internal/store"
	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration.
// The base adapter is wrapped as caller → retry → breaker → logging → base,
// so every attempt is logged and the breaker sees each attempt's outcome.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg, eventRepo, logger), nil
}

// Wrap applies the standard middleware stack to an existing provider.
func Wrap(base Provider, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) Provider {
	p := WithLogging(base, cfg.Provider, eventRepo, logger)
	if cfg.Breaker.Enabled {
		p = WithCircuitBreaker(p, cfg.Breaker, logger)
	}
	return WithRetry(p, cfg.Retry, logger)
}

// NewProviderFromEnv builds a provider from CAREERPATH_* and vendor
// environment variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	return NewProvider(ctx, ConfigFromEnv(), eventRepo, logger)
}
