// Package ingest turns a syndication feed into a stream of new, deduplicated
// postings.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/dmelton/jobdigest/internal/identity"
	"github.com/dmelton/jobdigest/internal/model"
)

const fetchTimeout = 30 * time.Second

// Ingestor fetches one feed and emits only entries whose identity digest has
// not been seen before, recording each emitted digest in the ledger.
type Ingestor struct {
	source string // feed source name, scopes the ledger and the postings table
	url    string
	parser *gofeed.Parser
	ledger model.SeenLedger
	filter model.PostingFilter // nil means no filtering
	logger *slog.Logger
}

// NewIngestor creates an ingestor for a single feed source.
func NewIngestor(source, url string, ledger model.SeenLedger, filter model.PostingFilter, logger *slog.Logger) *Ingestor {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: fetchTimeout}
	return &Ingestor{
		source: source,
		url:    url,
		parser: parser,
		ledger: ledger,
		filter: filter,
		logger: logger,
	}
}

// Source returns the feed source name.
func (in *Ingestor) Source() string { return in.source }

// Fetch retrieves the feed and returns the new postings in feed order.
//
// Per entry: a missing link means the entry is skipped entirely (no emission,
// no ledger write); an already-seen digest is skipped; otherwise the posting
// is emitted and its digest recorded. Recording happens at emission time, so
// an entry fetched but never stored is not retried on the next run.
func (in *Ingestor) Fetch(ctx context.Context) ([]model.Posting, error) {
	feed, err := in.parser.ParseURLWithContext(in.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", in.source, err)
	}

	var postings []model.Posting
	for _, item := range feed.Items {
		id, err := identity.Digest(item.Link)
		if errors.Is(err, identity.ErrEmptyLink) {
			in.logger.Warn("skipping entry without link", "source", in.source, "title", item.Title)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("hashing entry link: %w", err)
		}

		seen, err := in.ledger.HasSeen(in.source, id)
		if err != nil {
			return nil, fmt.Errorf("checking ledger for %s: %w", id, err)
		}
		if seen {
			in.logger.Debug("skipping already processed entry", "source", in.source, "id", id)
			continue
		}

		p := model.Posting{
			ID:          id,
			Title:       item.Title,
			Summary:     item.Description,
			Link:        item.Link,
			PublishedAt: item.Published,
			FetchedAt:   time.Now(),
		}

		if in.filter != nil && !in.filter.Match(p) {
			// Filtered entries stay unrecorded so a later filter change
			// can still surface them.
			in.logger.Debug("skipping filtered entry", "source", in.source, "title", p.Title)
			continue
		}

		if err := in.ledger.Record(in.source, id); err != nil {
			return nil, fmt.Errorf("recording %s in ledger: %w", id, err)
		}
		postings = append(postings, p)
	}

	return postings, nil
}
