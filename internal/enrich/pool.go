package enrich

import (
	"context"
	"sync"

	"github.com/dmelton/jobdigest/internal/model"
)

// Pool runs the enrichment stages over a batch of postings with bounded
// concurrency. Each posting's enrichment is independent, so records are
// processed in parallel; the result slice preserves input order.
type Pool struct {
	stages      []model.Enricher
	concurrency int
}

// NewPool creates a pool applying stages in order to each posting.
func NewPool(concurrency int, stages ...model.Enricher) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{
		stages:      stages,
		concurrency: concurrency,
	}
}

// EnrichAll returns the postings with every stage applied. Stages are
// best-effort, so EnrichAll never fails; a cancelled context surfaces as
// per-record fallback values from the stages themselves.
func (p *Pool) EnrichAll(ctx context.Context, postings []model.Posting) []model.Posting {
	if len(postings) == 0 {
		return postings
	}

	results := make([]model.Posting, len(postings))
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i, posting := range postings {
		wg.Add(1)
		go func(i int, posting model.Posting) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			for _, stage := range p.stages {
				posting = stage.Enrich(ctx, posting)
			}
			results[i] = posting
		}(i, posting)
	}

	wg.Wait()
	return results
}
