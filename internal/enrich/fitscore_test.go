package enrich

import (
	"context"
	"errors"
	"testing"
)

func TestFitEnrich_AttachesScoreAndReasoning(t *testing.T) {
	s := NewFitScorer(&mockProvider{
		corpusResponse: `{"fit_score": 8, "reasoning": "Strong backend overlap."}`,
	}, discardLogger())

	got := s.Enrich(context.Background(), testPosting())
	if got.FitScore == nil || *got.FitScore != 8 {
		t.Errorf("FitScore = %v, want 8", got.FitScore)
	}
	if got.Reasoning != "Strong backend overlap." {
		t.Errorf("Reasoning = %q", got.Reasoning)
	}
}

func TestFitEnrich_NonJSONFallback(t *testing.T) {
	s := NewFitScorer(&mockProvider{corpusResponse: "I'd say about a 7 out of 10"}, discardLogger())

	got := s.Enrich(context.Background(), testPosting())
	if got.FitScore != nil {
		t.Errorf("FitScore = %d, want nil on undecodable output", *got.FitScore)
	}
	if got.Reasoning != "Failed to parse response" {
		t.Errorf("Reasoning = %q, want fallback string", got.Reasoning)
	}
}

func TestFitEnrich_ProviderErrorFallback(t *testing.T) {
	s := NewFitScorer(&mockProvider{corpusErr: errors.New("timeout")}, discardLogger())

	got := s.Enrich(context.Background(), testPosting())
	if got.FitScore != nil {
		t.Error("expected nil FitScore on provider error")
	}
	if got.Reasoning != "Failed to parse response" {
		t.Errorf("Reasoning = %q, want fallback string", got.Reasoning)
	}
}

func TestFitEnrich_UsesCorpusEndpoint(t *testing.T) {
	p := &mockProvider{corpusResponse: `{"fit_score": 5, "reasoning": "ok"}`}
	s := NewFitScorer(p, discardLogger())

	s.Enrich(context.Background(), testPosting())
	if p.corpusCalls != 1 || p.completeCalls != 0 {
		t.Errorf("corpusCalls = %d, completeCalls = %d; fit scoring must search the resume corpus", p.corpusCalls, p.completeCalls)
	}
}

func TestDecodeFit(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		ok        bool
		score     int // 0 means nil expected
		reasoning string
	}{
		{"valid", `{"fit_score": 7, "reasoning": "good"}`, true, 7, "good"},
		{"bounds low", `{"fit_score": 1, "reasoning": "poor"}`, true, 1, "poor"},
		{"bounds high", `{"fit_score": 10, "reasoning": "ideal"}`, true, 10, "ideal"},
		{"zero out of range", `{"fit_score": 0, "reasoning": "x"}`, false, 0, "Failed to parse response"},
		{"eleven out of range", `{"fit_score": 11, "reasoning": "x"}`, false, 0, "Failed to parse response"},
		{"missing score", `{"reasoning": "x"}`, false, 0, "Failed to parse response"},
		{"not json", `maybe a 6?`, false, 0, "Failed to parse response"},
		{"string score", `{"fit_score": "7", "reasoning": "x"}`, false, 0, "Failed to parse response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := decodeFit(tt.raw)
			if res.ok != tt.ok {
				t.Errorf("ok = %v, want %v", res.ok, tt.ok)
			}
			if tt.score == 0 && res.score != nil {
				t.Errorf("score = %d, want nil", *res.score)
			}
			if tt.score != 0 && (res.score == nil || *res.score != tt.score) {
				t.Errorf("score = %v, want %d", res.score, tt.score)
			}
			if res.reasoning != tt.reasoning {
				t.Errorf("reasoning = %q, want %q", res.reasoning, tt.reasoning)
			}
		})
	}
}
