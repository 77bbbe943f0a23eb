package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/client"
	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/gateway"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "careerpath",
	Short: "Map your skills to career paths",
	Long:  "CareerPath turns a list of skills into AI career recommendations and a skills-to-careers map.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite audit log (overrides CAREERPATH_DB env var)")
	rootCmd.PersistentFlags().String("server", "", "URL of a running careerpath server (overrides CAREERPATH_SERVER_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides CAREERPATH_LOG_LEVEL)")
	rootCmd.PersistentFlags().Bool("structured", false, "Ask the provider for schema-constrained JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if u, _ := cmd.Flags().GetString("server"); u != "" {
		cfg.ServerURL = u
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if s, _ := cmd.Flags().GetBool("structured"); s {
		cfg.Structured = true
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CAREERPATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// advisor is what the TUI and the advise command call. *gateway.Gateway and
// *client.Client both satisfy it.
type advisor interface {
	RequestCareerAdvice(ctx context.Context, skills []string) (*advice.Advice, error)
	RequestWithPrompt(ctx context.Context, prompt string, skills []string) (*advice.Advice, error)
}

// buildAdvisor returns a remote client when a server URL is configured and
// an in-process gateway otherwise. status describes the choice for display.
// The returned cleanup closes the audit log, if one was opened.
func buildAdvisor(ctx context.Context, cfg config.Config, logger *zap.Logger, opts gateway.Options) (a advisor, status string, cleanup func(), err error) {
	cleanup = func() {}
	if cfg.ServerURL != "" {
		return client.New(cfg.ServerURL, nil, logger), "server " + cfg.ServerURL, cleanup, nil
	}

	var repo store.EventRepo
	if cfg.DBPath != "" {
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return nil, "", cleanup, fmt.Errorf("prepare audit log dir: %w", err)
		}
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, "", cleanup, fmt.Errorf("open audit log: %w", err)
		}
		repo = st.EventRepo()
		cleanup = func() { _ = st.Close() }
	}

	opts.Structured = cfg.Structured
	opts.Logger = logger
	g, err := gateway.NewFromConfig(ctx, cfg.LLM, repo, opts)
	if err != nil {
		cleanup()
		return nil, "", func() {}, fmt.Errorf("build gateway: %w", err)
	}
	status = g.ModelID()
	if !g.Configured() {
		status = "AI not configured"
	}
	return g, status, cleanup, nil
}
