package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmelton/jobdigest/internal/digest"
	"github.com/dmelton/jobdigest/internal/model"
	"github.com/dmelton/jobdigest/internal/store"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Email the ranked digest",
	Long:  "Reads the top postings per feed from storage, formats them, and sends one email via Mailgun.",
	RunE:  runDigest,
}

func init() {
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateEmail(); err != nil {
		logger.Error("email not configured", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	postingStore := store.NewSQLitePostingStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Top N per configured source, concatenated in config order.
	var selected []model.Posting
	for _, feed := range cfg.Feeds {
		if !feed.Enabled {
			continue
		}
		top, err := postingStore.TopByFit(ctx, feed.Name, cfg.Digest.TopN)
		if err != nil {
			logger.Error("failed to read postings", "source", feed.Name, "error", err)
			os.Exit(1)
		}
		selected = append(selected, top...)
	}

	body := digest.BuildBody(selected)
	subject := digest.Subject(time.Now())

	httpClient := &http.Client{Timeout: 30 * time.Second}
	mailer := digest.NewMailgunMailer(
		cfg.Email.BaseURL, cfg.Email.Domain, cfg.Email.APIKey,
		cfg.Email.From, cfg.Email.To,
		httpClient, logger,
	)

	if err := mailer.Send(ctx, subject, body); err != nil {
		logger.Error("digest delivery failed", "error", err)
		os.Exit(1)
	}

	logger.Info("digest sent", "postings", len(selected), "to", cfg.Email.To)
	return nil
}
