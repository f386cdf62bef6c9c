package model

import (
	"context"
	"time"
)

// Posting is one job posting lifted from a syndication feed, enriched in
// place by the pipeline before it is stored.
type Posting struct {
	ID          string    // hex SHA-256 of Link, dedup and upsert key
	Title       string    // job title as published
	Summary     string    // feed summary, may contain markup
	Link        string    // canonical posting URL
	PublishedAt string    // feed-supplied timestamp, kept verbatim
	FetchedAt   time.Time // our clock (set at ingestion)

	// Enrichment outputs. Nil means the stage ran but could not produce
	// a value; the posting is still stored.
	CompanyName *string
	FitScore    *int
	Reasoning   string
}

// SeenLedger tracks which entry IDs have been emitted per feed source, for
// deduplication across runs.
type SeenLedger interface {
	HasSeen(source, id string) (bool, error)
	Record(source, id string) error
}

// PostingStore persists enriched postings, one table per feed source, keyed
// by posting ID with replace-on-conflict semantics.
type PostingStore interface {
	Upsert(ctx context.Context, source string, p Posting) error
	TopByFit(ctx context.Context, source string, n int) ([]Posting, error)
}

// PostingFilter decides whether a posting is worth processing at all.
type PostingFilter interface {
	Match(p Posting) bool
}

// Enricher attaches one derived field set to a posting. Implementations are
// best-effort: they return the posting with fallback values on failure and
// never fail the batch.
type Enricher interface {
	Enrich(ctx context.Context, p Posting) Posting
}
