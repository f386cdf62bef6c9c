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

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one ingestion pass and exit",
	Long:  "Fetches every enabled feed once, enriches the new postings, writes them to the store, then exits.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	seenLedger, err := ledger.NewSQLiteLedger(db)
	if err != nil {
		logger.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	postingStore := store.NewSQLitePostingStore(db)

	pipelines := buildPipelines(cfg, seenLedger, postingStore, logger)
	if len(pipelines) == 0 {
		logger.Error("no feeds to ingest")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, p := range pipelines {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline run failed", "source", p.Source(), "error", err)
			failed++
		}
	}

	if failed == len(pipelines) {
		logger.Error("all pipeline runs failed")
		os.Exit(1)
	}
	logger.Info("ingestion complete", "feeds", len(pipelines), "failed", failed)
	return nil
}
