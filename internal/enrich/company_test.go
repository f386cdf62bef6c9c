package enrich

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dmelton/jobdigest/internal/model"
)

// mockProvider is a stub LLMProvider for testing.
type mockProvider struct {
	response string
	err      error

	corpusResponse string
	corpusErr      error

	completeCalls int
	corpusCalls   int
}

func (m *mockProvider) Complete(_ context.Context, _, _ string) (string, error) {
	m.completeCalls++
	return m.response, m.err
}

func (m *mockProvider) CompleteWithCorpus(_ context.Context, _, _ string) (string, error) {
	m.corpusCalls++
	return m.corpusResponse, m.corpusErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPosting() model.Posting {
	return model.Posting{
		ID:      "abc123",
		Title:   "Senior Go Engineer at Acme Corp",
		Summary: "Build backend services in Go.",
	}
}

func TestCompanyEnrich_ExtractsName(t *testing.T) {
	e := NewCompanyEnricher(&mockProvider{response: `{"company": "Acme Corp"}`}, discardLogger())

	got := e.Enrich(context.Background(), testPosting())
	if got.CompanyName == nil || *got.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName = %v, want Acme Corp", got.CompanyName)
	}
}

func TestCompanyEnrich_NullCompany(t *testing.T) {
	e := NewCompanyEnricher(&mockProvider{response: `{"company": null}`}, discardLogger())

	got := e.Enrich(context.Background(), testPosting())
	if got.CompanyName != nil {
		t.Errorf("CompanyName = %q, want nil for explicit null", *got.CompanyName)
	}
}

func TestCompanyEnrich_NonJSONDegradesToNil(t *testing.T) {
	e := NewCompanyEnricher(&mockProvider{response: "Sure! The company is Acme."}, discardLogger())

	got := e.Enrich(context.Background(), testPosting())
	if got.CompanyName != nil {
		t.Errorf("CompanyName = %q, want nil on undecodable output", *got.CompanyName)
	}
}

func TestCompanyEnrich_ProviderErrorDegradesToNil(t *testing.T) {
	e := NewCompanyEnricher(&mockProvider{err: errors.New("timeout")}, discardLogger())

	got := e.Enrich(context.Background(), testPosting())
	if got.CompanyName != nil {
		t.Error("expected nil CompanyName on provider error")
	}
	if got.ID != "abc123" || got.Title == "" {
		t.Error("enrichment failure must not discard the posting")
	}
}

func TestDecodeCompany(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		ok      bool
		company string // "" means nil expected
	}{
		{"valid", `{"company": "Acme"}`, true, "Acme"},
		{"null", `{"company": null}`, true, ""},
		{"empty string treated as none", `{"company": ""}`, true, ""},
		{"missing key", `{}`, true, ""},
		{"not json", `the company is Acme`, false, ""},
		{"wrong type", `{"company": 42}`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := decodeCompany(tt.raw)
			if res.ok != tt.ok {
				t.Errorf("ok = %v, want %v", res.ok, tt.ok)
			}
			if tt.company == "" && res.company != nil {
				t.Errorf("company = %q, want nil", *res.company)
			}
			if tt.company != "" && (res.company == nil || *res.company != tt.company) {
				t.Errorf("company = %v, want %q", res.company, tt.company)
			}
		})
	}
}
