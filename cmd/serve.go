package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/compliance-hub/internal/registry"
	"github.com/sells-group/compliance-hub/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	Long: `Serves the read-only JSON dashboard API. Scores, pillars, synergies,
roadmaps, and penalties are derived per request from the stored answers.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg, err := registry.Load()
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	zap.L().Info("starting dashboard API",
		zap.Int("port", cfg.Server.Port),
		zap.String("driver", cfg.Store.Driver),
	)
	return server.New(cfg.Server, st, reg).Run(ctx)
}
