package enrich

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dmelton/jobdigest/internal/model"
)

// fallbackReasoning is stored when the model output cannot be decoded.
const fallbackReasoning = "Failed to parse response"

// FitScorer compares a posting summary against the stored resume corpus and
// attaches a 1-10 fit score with a short justification. Best-effort: any
// failure degrades to a nil score and the fallback reasoning.
type FitScorer struct {
	provider LLMProvider
	logger   *slog.Logger
}

var _ model.Enricher = (*FitScorer)(nil)

// NewFitScorer creates the fit scoring stage.
func NewFitScorer(provider LLMProvider, logger *slog.Logger) *FitScorer {
	return &FitScorer{
		provider: provider,
		logger:   logger,
	}
}

// Enrich attaches the fit score and reasoning to the posting. Score and
// reasoning are always written together, never partially.
func (s *FitScorer) Enrich(ctx context.Context, p model.Posting) model.Posting {
	raw, err := s.provider.CompleteWithCorpus(ctx, fitScorePrompt, p.Summary)
	if err != nil {
		s.logger.Warn("fit scoring failed", "id", p.ID, "error", err)
		p.FitScore = nil
		p.Reasoning = fallbackReasoning
		return p
	}

	res := decodeFit(raw)
	if !res.ok {
		s.logger.Warn("fit scoring returned undecodable output", "id", p.ID)
	}
	p.FitScore = res.score
	p.Reasoning = res.reasoning
	return p
}

// fitResult is the typed outcome of decoding the model output.
type fitResult struct {
	ok        bool
	score     *int
	reasoning string
}

// decodeFit parses `{"fit_score": <1-10>, "reasoning": <string>}`. Malformed
// output or an out-of-range score degrades to a nil score with the fallback
// reasoning.
func decodeFit(raw string) fitResult {
	var payload struct {
		FitScore  *int   `json:"fit_score"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fitResult{ok: false, reasoning: fallbackReasoning}
	}
	if payload.FitScore == nil || *payload.FitScore < 1 || *payload.FitScore > 10 {
		return fitResult{ok: false, reasoning: fallbackReasoning}
	}
	return fitResult{ok: true, score: payload.FitScore, reasoning: payload.Reasoning}
}
