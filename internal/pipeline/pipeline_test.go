package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dmelton/jobdigest/internal/model"
)

// fakeFetcher returns a canned batch or an error.
type fakeFetcher struct {
	source   string
	postings []model.Posting
	err      error
}

func (f *fakeFetcher) Source() string { return f.source }

func (f *fakeFetcher) Fetch(_ context.Context) ([]model.Posting, error) {
	return f.postings, f.err
}

// taggingPool marks every posting so the test can see enrichment ran.
type taggingPool struct{}

func (taggingPool) EnrichAll(_ context.Context, postings []model.Posting) []model.Posting {
	out := make([]model.Posting, len(postings))
	for i, p := range postings {
		p.Reasoning = "enriched"
		out[i] = p
	}
	return out
}

// recordingStore captures upserts per source.
type recordingStore struct {
	upserts map[string][]model.Posting
	err     error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{upserts: make(map[string][]model.Posting)}
}

func (s *recordingStore) Upsert(_ context.Context, source string, p model.Posting) error {
	if s.err != nil {
		return s.err
	}
	s.upserts[source] = append(s.upserts[source], p)
	return nil
}

func (s *recordingStore) TopByFit(_ context.Context, source string, n int) ([]model.Posting, error) {
	return s.upserts[source], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_EnrichesAndStoresEveryPosting(t *testing.T) {
	fetcher := &fakeFetcher{
		source: "jobs",
		postings: []model.Posting{
			{ID: "a", Title: "Job A"},
			{ID: "b", Title: "Job B"},
		},
	}
	store := newRecordingStore()
	p := NewFeedPipeline(fetcher, taggingPool{}, store, discardLogger())

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := store.upserts["jobs"]
	if len(got) != 2 {
		t.Fatalf("stored %d postings, want 2", len(got))
	}
	for _, posting := range got {
		if posting.Reasoning != "enriched" {
			t.Errorf("posting %s stored without enrichment", posting.ID)
		}
	}
}

func TestRun_FetchErrorFailsPass(t *testing.T) {
	fetcher := &fakeFetcher{source: "jobs", err: errors.New("feed unreachable")}
	p := NewFeedPipeline(fetcher, taggingPool{}, newRecordingStore(), discardLogger())

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error when fetch fails")
	}
}

func TestRun_StoreErrorFailsPass(t *testing.T) {
	fetcher := &fakeFetcher{source: "jobs", postings: []model.Posting{{ID: "a"}}}
	store := newRecordingStore()
	store.err = errors.New("disk full")
	p := NewFeedPipeline(fetcher, taggingPool{}, store, discardLogger())

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error when upsert fails")
	}
}

func TestRun_EmptyBatchIsFine(t *testing.T) {
	fetcher := &fakeFetcher{source: "jobs"}
	store := newRecordingStore()
	p := NewFeedPipeline(fetcher, taggingPool{}, store, discardLogger())

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.upserts["jobs"]) != 0 {
		t.Error("empty batch stored postings")
	}
}
