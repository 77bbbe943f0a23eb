// Package gateway is the single entry point for career advice requests.
// It builds the prompt, calls the configured LLM provider and normalizes
// whatever comes back.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	// ErrConfiguration means no usable provider credential is configured.
	ErrConfiguration = errors.New("API configuration error")

	// ErrRequest means the provider call failed after retries.
	ErrRequest = errors.New("failed to process request")
)

// Metrics receives gateway events. observability.Collector implements it.
type Metrics interface {
	ObserveAdvice(strategy string, cached bool, d time.Duration)
	ObserveAdviceError(kind string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveAdvice(string, bool, time.Duration) {}
func (nopMetrics) ObserveAdviceError(string)                 {}

// Options configures a Gateway.
type Options struct {
	// Structured sends the advice JSON schema so providers use native
	// structured output.
	Structured bool

	// Timeout bounds one request including retries. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration

	Cache   Cache
	Metrics Metrics
	Logger  *zap.Logger
}

// Gateway turns skills into Advice. It is safe for concurrent use.
type Gateway struct {
	provider  llm.Provider
	configErr error
	opts      Options
	logger    *zap.Logger
	metrics   Metrics
	tracer    trace.Tracer
}

// New creates a Gateway around an already built provider.
func New(provider llm.Provider, opts Options) *Gateway {
	g := &Gateway{
		provider: provider,
		opts:     opts,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		tracer:   otel.Tracer("careerpath/gateway"),
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.metrics == nil {
		g.metrics = nopMetrics{}
	}
	return g
}

// NewFromConfig builds the provider from cfg. A missing credential does not
// fail construction: the gateway is returned and every request reports
// ErrConfiguration, so a server can start and answer with a structured
// error. Other construction failures are returned.
func NewFromConfig(ctx context.Context, cfg llm.Config, repo store.EventRepo, opts Options) (*Gateway, error) {
	if opts.Timeout == 0 {
		opts.Timeout = cfg.Timeout
	}
	provider, err := llm.NewProvider(ctx, cfg, repo, opts.Logger)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			g := New(nil, opts)
			g.configErr = err
			g.logger.Warn("LLM provider not configured; advice requests will fail", zap.Error(err))
			return g, nil
		}
		return nil, err
	}
	return New(provider, opts), nil
}

// Configured reports whether a provider is available.
func (g *Gateway) Configured() bool {
	return g.provider != nil && g.configErr == nil
}

// ModelID returns the provider's model, or "" when unconfigured.
func (g *Gateway) ModelID() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.ModelID()
}

// RequestCareerAdvice asks the model for advice on the given skills.
func (g *Gateway) RequestCareerAdvice(ctx context.Context, skills []string) (*advice.Advice, error) {
	return g.request(llm.WithPurpose(ctx, llm.PurposeCareerAdvice), "", skills)
}

// RequestWithPrompt sends prompt verbatim. An empty prompt falls back to the
// standard career-advice prompt for skills.
func (g *Gateway) RequestWithPrompt(ctx context.Context, prompt string, skills []string) (*advice.Advice, error) {
	if prompt == "" {
		return g.RequestCareerAdvice(ctx, skills)
	}
	return g.request(llm.WithPurpose(ctx, llm.PurposeCustomPrompt), prompt, skills)
}

func (g *Gateway) request(ctx context.Context, custom string, skills []string) (*advice.Advice, error) {
	start := time.Now()
	ctx, span := g.tracer.Start(ctx, "Gateway.RequestCareerAdvice",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int("skills.count", len(skills)),
			attribute.Bool("prompt.custom", custom != ""),
			attribute.Bool("structured", g.opts.Structured),
		),
	)
	defer span.End()

	if !g.Configured() {
		err := g.configErr
		if err == nil {
			err = llm.ErrMissingAPIKey
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider not configured")
		g.metrics.ObserveAdviceError("configuration")
		g.logger.Error("advice request without configured provider", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	model := g.provider.ModelID()
	span.SetAttributes(attribute.String("llm.model", model))

	key := CacheKey(model, custom, skills)
	if g.opts.Cache != nil {
		if adv, ok := g.opts.Cache.Get(ctx, key); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			g.metrics.ObserveAdvice("cache", true, time.Since(start))
			g.logger.Debug("advice cache hit", zap.Strings("skills", skills))
			return adv, nil
		}
	}

	prompt := custom
	if prompt == "" {
		prompt = advice.BuildPrompt(skills)
	}
	req := llm.UserPrompt(prompt)
	req.Temperature = 0.7
	if g.opts.Structured {
		req.Schema = advice.AdviceSchema
	}

	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	text, err := g.generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		g.metrics.ObserveAdviceError("request")
		g.logger.Error("advice request failed",
			zap.String("model", model),
			zap.Strings("skills", skills),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}

	g.logger.Debug("raw model response", zap.String("model", model), zap.String("text", text))

	adv, strategy := advice.NormalizeWithStrategy(text)
	span.SetAttributes(attribute.String("advice.strategy", strategy))
	g.metrics.ObserveAdvice(strategy, false, time.Since(start))
	if adv.ParseError {
		g.logger.Info("model response was not valid JSON; used fallback extraction",
			zap.String("strategy", strategy),
		)
	} else if g.opts.Cache != nil {
		g.opts.Cache.Set(ctx, key, adv)
	}
	return adv, nil
}

// generate calls the provider. In structured mode a schema mismatch is not
// a failure: the raw text is handed to the normalizer like any other reply.
func (g *Gateway) generate(ctx context.Context, req llm.Request) (string, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err == nil {
		return resp.Text, nil
	}
	var invalid *llm.ErrInvalidResponse
	if req.Schema != nil && errors.As(err, &invalid) && invalid.Text != "" {
		g.logger.Warn("structured response failed validation, normalizing raw text", zap.Error(err))
		return invalid.Text, nil
	}
	return "", err
}
