package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmelton/jobdigest/internal/config"
	"github.com/dmelton/jobdigest/internal/enrich"
	"github.com/dmelton/jobdigest/internal/filter"
	"github.com/dmelton/jobdigest/internal/ingest"
	"github.com/dmelton/jobdigest/internal/model"
	"github.com/dmelton/jobdigest/internal/pipeline"
	"github.com/dmelton/jobdigest/internal/ratelimit"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobdigest",
	Short: "Ingest job feeds and rank postings against your resume",
	Long:  "jobdigest pulls job postings from RSS feeds, scores them against your resume with an LLM, and emails a ranked digest.",
	// Default to `run` so cron entries can invoke the binary directly.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBDIGEST_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBDIGEST_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBDIGEST_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// buildPipelines wires one pipeline per enabled feed. The enrichment pool is
// shared: all feeds talk to the same LLM provider through the same limiter.
func buildPipelines(cfg *config.Config, ledger model.SeenLedger, postings model.PostingStore, logger *slog.Logger) []*pipeline.FeedPipeline {
	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	limiter := ratelimit.NewLimiter(cfg.AI.MinDelay)

	provider := enrich.NewOpenAIProvider(
		cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.VectorStoreID,
		httpClient, limiter,
	)
	pool := enrich.NewPool(cfg.AI.Concurrency,
		enrich.NewCompanyEnricher(provider, logger),
		enrich.NewFitScorer(provider, logger),
	)

	var pipelines []*pipeline.FeedPipeline
	for _, feed := range cfg.Feeds {
		if !feed.Enabled {
			continue
		}

		var postingFilter model.PostingFilter
		if len(feed.TitleKeywords) > 0 || len(feed.TitleExcludeKeywords) > 0 {
			postingFilter = filter.NewTitleFilter(feed.TitleKeywords, feed.TitleExcludeKeywords)
		}

		ingestor := ingest.NewIngestor(feed.Name, feed.URL, ledger, postingFilter, logger)
		pipelines = append(pipelines, pipeline.NewFeedPipeline(ingestor, pool, postings, logger))
		logger.Info("registered feed", "name", feed.Name, "url", feed.URL)
	}
	return pipelines
}
