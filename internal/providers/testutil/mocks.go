package testutil

import (
	"context"
	"sync"
	"time"
)

// StubProvider is a scriptable AIProvider for tests. Responses can be keyed
// per query, delayed to simulate slow platforms, or forced to fail.
type StubProvider struct {
	Platform  string
	Response  string
	Responses map[string]string // per-query override
	Err       error
	Delay     time.Duration

	mu    sync.Mutex
	calls []string
}

func (s *StubProvider) Name() string {
	return s.Platform
}

func (s *StubProvider) RunQuery(ctx context.Context, query string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, query)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	if s.Responses != nil {
		if r, ok := s.Responses[query]; ok {
			return r, nil
		}
	}
	return s.Response, nil
}

// Calls returns the queries received so far, in arrival order
func (s *StubProvider) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}
