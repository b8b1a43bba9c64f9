package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"NewsAggregator/internal/app"
	"NewsAggregator/internal/config"
	"NewsAggregator/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, cfg.Logging.Level, err)
		return 1
	}
	return 0
}

// reportError logs a failed command once, away from stdout so client output
// stays machine-readable.
func reportError(w io.Writer, level string, err error) {
	logging.NewWithWriter(w, level).Error("command failed", "error", err)
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "newsaggregator",
		Short:         "Ingest news articles and serve interest-ranked recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfg.Client.BaseURL, "api-url", cfg.Client.BaseURL, "base URL of the news service")

	root.AddCommand(newServeCmd(&cfg))
	addClientCommands(root, &cfg)
	return root
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cmd.Context(), *cfg, logger)
			if err != nil {
				return fmt.Errorf("start application: %w", err)
			}
			defer func() {
				if err := application.Close(); err != nil {
					logger.Error("close application", "error", err)
				}
			}()

			return application.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "listen address")
	return cmd
}
