package llm

import "fmt"

// ProviderError wraps any failure coming back from the remote
// text-generation service: network errors, quota errors, provider-side
// 5xx. Callers decide whether the failure is fatal for their operation.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
