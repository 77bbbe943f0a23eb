// Package server exposes the advice gateway, skill matcher and diagram
// builder over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/diagram"
	"github.com/abhisek/careerpath/internal/observability"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Advisor produces career advice. *gateway.Gateway implements it.
type Advisor interface {
	RequestWithPrompt(ctx context.Context, prompt string, skills []string) (*advice.Advice, error)
}

// Options configures the HTTP server.
type Options struct {
	CORSOrigins []string
	Metrics     *observability.Collector
	Logger      *zap.Logger
	Builder     *diagram.Builder
}

// Server holds the HTTP handlers.
type Server struct {
	advisor  Advisor
	builder  *diagram.Builder
	metrics  *observability.Collector
	logger   *zap.Logger
	validate *validator.Validate
	origins  []string
}

// New creates a Server.
func New(advisor Advisor, opts Options) *Server {
	s := &Server{
		advisor:  advisor,
		builder:  opts.Builder,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		validate: newValidator(),
		origins:  opts.CORSOrigins,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.builder == nil {
		s.builder = diagram.NewBuilder(nil)
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.accessLog)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.healthCheck)
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Post("/gemini", s.handleAdvice)
		r.Post("/advice", s.handleAdvice)
		r.Get("/match", s.handleMatch)
		r.Post("/diagram", s.handleDiagram)
	})

	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
