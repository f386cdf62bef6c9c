package enrich

import "context"

// LLMProvider sends a fixed instruction block plus an input to an LLM and
// returns the raw output text. Used only inside this package.
type LLMProvider interface {
	// Complete runs a plain completion over the input.
	Complete(ctx context.Context, instructions, input string) (string, error)
	// CompleteWithCorpus additionally lets the model search the configured
	// resume corpus while answering.
	CompleteWithCorpus(ctx context.Context, instructions, input string) (string, error)
}
