package llm

import (
	"context"
	"sync"
)

// MockReply is a canned reply for the MockProvider.
type MockReply struct {
	Text string
	Err  error
}

// MockProvider is a deterministic Provider for testing. It returns canned
// replies in FIFO order and records every prompt it receives.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply

	Prompts []string
}

func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate returns the next canned reply, or a *ProviderError when the
// queue is exhausted.
func (m *MockProvider) Generate(_ context.Context, prompt string, _ *Options) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	if len(m.replies) == 0 {
		return "", &ProviderError{Provider: "mock", Err: errQueueEmpty}
	}

	reply := m.replies[0]
	m.replies = m.replies[1:]

	if reply.Err != nil {
		return "", reply.Err
	}
	return reply.Text, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

type mockQueueError string

func (e mockQueueError) Error() string { return string(e) }

var errQueueEmpty = mockQueueError("mock reply queue is empty")
