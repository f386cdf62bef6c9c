package enrich

import _ "embed"

//go:embed prompts/company_extraction.md
var companyExtractionPrompt string

//go:embed prompts/fit_score.md
var fitScorePrompt string
