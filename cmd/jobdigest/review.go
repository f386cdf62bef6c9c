package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmelton/jobdigest/internal/config"
	"github.com/dmelton/jobdigest/internal/review"
	"github.com/dmelton/jobdigest/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse stored postings",
	Long:  "Opens an interactive browser over the stored postings for one feed source, ranked by fit score.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var feeds []config.FeedConfig
	for _, f := range cfg.Feeds {
		if f.Enabled {
			feeds = append(feeds, f)
		}
	}
	if len(feeds) == 0 {
		logger.Error("no feeds configured")
		os.Exit(1)
	}

	idx, err := review.RunFeedPicker(feeds)
	if err != nil {
		logger.Error("picker failed", "error", err)
		os.Exit(1)
	}
	if idx < 0 {
		return nil
	}
	source := feeds[idx].Name

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Browse everything stored for the source, best scores first.
	postings, err := store.NewSQLitePostingStore(db).TopByFit(context.Background(), source, 500)
	if err != nil {
		logger.Error("failed to read postings", "source", source, "error", err)
		os.Exit(1)
	}

	if err := review.Run(source, postings); err != nil {
		logger.Error("review failed", "error", err)
		os.Exit(1)
	}
	return nil
}
