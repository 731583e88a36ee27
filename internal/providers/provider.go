package providers

import (
	"context"
)

// AIProvider is one AI platform that can answer a single query with free text.
// Implementations return an error for transport/API failures; turning that
// into a non-fatal PlatformResponse is the tracking client's job.
type AIProvider interface {
	RunQuery(ctx context.Context, query string) (string, error)
	Name() string
}
