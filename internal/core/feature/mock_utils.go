package feature

import (
	"context"
)

type MockLLMClient struct {
	Response      string
	ResponseQueue []string
	Err           error
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}
