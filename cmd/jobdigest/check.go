package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmelton/jobdigest/internal/ledger"
	"github.com/dmelton/jobdigest/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run one ingestion pass",
	Long:  "Fetches and enriches every enabled feed once with a no-op ledger and store; nothing is persisted.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: nothing will be persisted")

	pipelines := buildPipelines(cfg, ledger.NewNopLedger(), store.NewNopPostingStore(), logger)
	if len(pipelines) == 0 {
		logger.Error("no feeds to ingest")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, p := range pipelines {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline run failed", "source", p.Source(), "error", err)
		}
	}

	logger.Info("check complete")
	return nil
}
