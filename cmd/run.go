package cmd

import (
	"fmt"

	"github.com/abhisek/careerpath/internal/app"
	"github.com/abhisek/careerpath/internal/gateway"
	"github.com/abhisek/careerpath/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runApp builds the advisor and launches the TUI. Logs go to
// CAREERPATH_LOG_FILE when set and are discarded otherwise.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if cfg.Log.File != "" {
		logger, err = observability.NewFileLogger(cfg.Log.File, cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logger.Sync() //nolint:errcheck
	}

	a, status, cleanup, err := buildAdvisor(ctx, cfg, logger, gateway.Options{})
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Run(ctx, app.Options{
		Advisor: a,
		Status:  status,
		Logger:  logger,
	})
}
