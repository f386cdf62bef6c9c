// Package pipeline wires one feed source's ingestion run: fetch new entries,
// enrich them, and upsert the results.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmelton/jobdigest/internal/model"
)

// Fetcher produces the new postings for one pass. Implemented by
// ingest.Ingestor.
type Fetcher interface {
	Source() string
	Fetch(ctx context.Context) ([]model.Posting, error)
}

// EnrichPool applies the enrichment stages to a batch. Implemented by
// enrich.Pool.
type EnrichPool interface {
	EnrichAll(ctx context.Context, postings []model.Posting) []model.Posting
}

// FeedPipeline owns the full run for a single feed source:
// ingest → enrich → upsert.
type FeedPipeline struct {
	fetcher Fetcher
	pool    EnrichPool
	store   model.PostingStore
	logger  *slog.Logger
}

// NewFeedPipeline creates a pipeline wired with all its dependencies.
func NewFeedPipeline(fetcher Fetcher, pool EnrichPool, store model.PostingStore, logger *slog.Logger) *FeedPipeline {
	return &FeedPipeline{
		fetcher: fetcher,
		pool:    pool,
		store:   store,
		logger:  logger,
	}
}

// Source returns the feed source this pipeline serves.
func (p *FeedPipeline) Source() string { return p.fetcher.Source() }

// Run executes one pass. Enrichment failures are record-local and already
// degraded inside the pool; fetch and storage failures fail the pass.
func (p *FeedPipeline) Run(ctx context.Context) error {
	source := p.fetcher.Source()

	postings, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("running %s: %w", source, err)
	}

	enriched := p.pool.EnrichAll(ctx, postings)

	stored := 0
	for _, posting := range enriched {
		if err := p.store.Upsert(ctx, source, posting); err != nil {
			return fmt.Errorf("running %s: storing %s: %w", source, posting.ID, err)
		}
		stored++
	}

	p.logger.Info("pipeline run complete",
		"source", source,
		"new", len(postings),
		"stored", stored,
	)
	return nil
}
