package cmd

import (
	"fmt"

	"github.com/abhisek/careerpath/internal/gateway"
	"github.com/abhisek/careerpath/internal/observability"
	"github.com/abhisek/careerpath/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the advice API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		// A server never proxies to another server.
		cfg.ServerURL = ""

		logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		metrics := observability.NewCollector("careerpath")
		opts := gateway.Options{Metrics: metrics}
		if cfg.Cache.RedisAddr != "" {
			cache := gateway.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.TTL, logger)
			defer cache.Close()
			opts.Cache = cache
		}

		a, status, cleanup, err := buildAdvisor(ctx, cfg, logger, opts)
		if err != nil {
			return err
		}
		defer cleanup()

		logger.Info("starting careerpath server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("advisor", status),
			zap.Bool("cache", opts.Cache != nil),
			zap.Bool("audit_log", cfg.DBPath != ""),
		)

		srv := server.New(a, server.Options{
			CORSOrigins: cfg.Server.CORSOrigins,
			Metrics:     metrics,
			Logger:      logger,
		})
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides CAREERPATH_ADDR)")
}
