package enrich

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dmelton/jobdigest/internal/model"
)

// CompanyEnricher extracts the employing company name from a posting title
// via the LLM. Extraction is best-effort: any failure leaves CompanyName nil
// and never blocks the rest of the pipeline.
type CompanyEnricher struct {
	provider LLMProvider
	logger   *slog.Logger
}

var _ model.Enricher = (*CompanyEnricher)(nil)

// NewCompanyEnricher creates the company extraction stage.
func NewCompanyEnricher(provider LLMProvider, logger *slog.Logger) *CompanyEnricher {
	return &CompanyEnricher{
		provider: provider,
		logger:   logger,
	}
}

// Enrich attaches the extracted company name to the posting, or leaves it
// nil when extraction fails or finds none.
func (e *CompanyEnricher) Enrich(ctx context.Context, p model.Posting) model.Posting {
	raw, err := e.provider.Complete(ctx, companyExtractionPrompt, p.Title)
	if err != nil {
		e.logger.Warn("company extraction failed", "id", p.ID, "error", err)
		p.CompanyName = nil
		return p
	}

	res := decodeCompany(raw)
	if !res.ok {
		e.logger.Warn("company extraction returned undecodable output", "id", p.ID)
	}
	p.CompanyName = res.company
	return p
}

// companyResult is the typed outcome of decoding the model output: either a
// decoded value (possibly a legitimate null) or an unparseable response.
type companyResult struct {
	ok      bool
	company *string
}

// decodeCompany parses `{"company": <string-or-null>}`. Malformed output
// degrades to an absent company instead of an error.
func decodeCompany(raw string) companyResult {
	var payload struct {
		Company *string `json:"company"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return companyResult{ok: false}
	}
	if payload.Company != nil && *payload.Company == "" {
		return companyResult{ok: true}
	}
	return companyResult{ok: true, company: payload.Company}
}
