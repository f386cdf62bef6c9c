package enrich

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmelton/jobdigest/internal/model"
)

// countingStage tags each posting and tracks peak concurrency.
type countingStage struct {
	mu      sync.Mutex
	active  int
	peak    int
	applied atomic.Int64
}

func (s *countingStage) Enrich(_ context.Context, p model.Posting) model.Posting {
	s.mu.Lock()
	s.active++
	if s.active > s.peak {
		s.peak = s.active
	}
	s.mu.Unlock()

	p.Reasoning = "enriched:" + p.ID
	s.applied.Add(1)

	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	return p
}

func TestEnrichAll_AppliesAllStagesPreservesOrder(t *testing.T) {
	stage := &countingStage{}
	pool := NewPool(3, stage, stage)

	postings := make([]model.Posting, 10)
	for i := range postings {
		postings[i] = model.Posting{ID: fmt.Sprintf("id-%d", i)}
	}

	got := pool.EnrichAll(context.Background(), postings)
	if len(got) != 10 {
		t.Fatalf("got %d postings, want 10", len(got))
	}
	for i, p := range got {
		if p.ID != fmt.Sprintf("id-%d", i) {
			t.Errorf("result[%d].ID = %q, order not preserved", i, p.ID)
		}
		if p.Reasoning != "enriched:"+p.ID {
			t.Errorf("result[%d] not enriched", i)
		}
	}
	if stage.applied.Load() != 20 {
		t.Errorf("stage applications = %d, want 20 (2 stages x 10 postings)", stage.applied.Load())
	}
}

func TestEnrichAll_BoundsConcurrency(t *testing.T) {
	stage := &countingStage{}
	pool := NewPool(2, stage)

	postings := make([]model.Posting, 20)
	for i := range postings {
		postings[i] = model.Posting{ID: fmt.Sprintf("id-%d", i)}
	}
	pool.EnrichAll(context.Background(), postings)

	if stage.peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", stage.peak)
	}
}

func TestEnrichAll_EmptyInput(t *testing.T) {
	pool := NewPool(4, &countingStage{})
	got := pool.EnrichAll(context.Background(), nil)
	if len(got) != 0 {
		t.Errorf("got %d postings for empty input", len(got))
	}
}
