package llm

import "context"

// Provider is the single adapter to the remote text-generation service.
// It returns the model's raw text reply; it never parses or validates.
type Provider interface {
	// Generate sends one prompt and blocks for the reply. Options may be
	// nil, in which case the provider's defaults apply. Any transport or
	// provider failure is returned as a *ProviderError.
	Generate(ctx context.Context, prompt string, opts *Options) (string, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Options tunes a single generation call.
type Options struct {
	// Temperature controls randomness, 0.0 - 1.0. Zero means provider default.
	Temperature float64

	// TopP is the nucleus sampling cutoff. Zero means provider default.
	TopP float64

	// MaxTokens caps the reply length. Zero means provider default.
	MaxTokens int32
}
