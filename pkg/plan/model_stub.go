package plan

import (
	"context"
	"sync"
)

// StubModel replays a canned reply and records prompts. Used by tests.
type StubModel struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	prompts []string
}

func NewStubModel(reply string) *StubModel {
	return &StubModel{Reply: reply}
}

func (m *StubModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

func (m *StubModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
