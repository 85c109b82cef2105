package llm

import (
	"context"
)

// LLMClient is the single surface the pipeline needs from a model provider.
// Every remote call in the pipeline is one prompt, one reply, no retries:
// failure degrades to the deterministic local fallback at the call site.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
