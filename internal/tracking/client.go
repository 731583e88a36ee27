package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/ido-cryptoson/geo-platform/internal/config"
	"github.com/ido-cryptoson/geo-platform/internal/models"
	"github.com/ido-cryptoson/geo-platform/internal/providers"
)

// Client is the platform query boundary. A failed platform call is data, not
// a crash: failures surface on the Error field of the PlatformResponse so one
// platform outage can never abort a batch. The client performs no retries;
// retry policy, if ever added, belongs to the orchestrator.
type Client struct {
	providers map[models.Platform]providers.AIProvider
	timeout   time.Duration
}

// NewClient builds providers for each requested platform. Provider
// construction failures (unknown platform, missing API key) are configuration
// errors and are returned before any call is made.
func NewClient(cfg *config.Config, platforms []string, perCallTimeout time.Duration) (*Client, error) {
	built := make(map[models.Platform]providers.AIProvider, len(platforms))
	for _, platform := range platforms {
		provider, err := providers.NewProvider(platform, cfg)
		if err != nil {
			return nil, err
		}
		built[models.Platform(platform)] = provider
	}

	return &Client{
		providers: built,
		timeout:   perCallTimeout,
	}, nil
}

// Query sends one query to one platform. The per-call timeout bounds the call;
// a timed-out or failed call comes back with Error set and RawText empty.
func (c *Client) Query(ctx context.Context, platform models.Platform, text string) *models.PlatformResponse {
	start := time.Now()
	response := &models.PlatformResponse{
		Platform:  platform,
		Query:     text,
		Timestamp: start.UTC(),
	}

	provider, ok := c.providers[platform]
	if !ok {
		response.Error = "no provider configured for platform " + string(platform)
		return response
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rawText, err := provider.RunQuery(callCtx, text)
	response.ElapsedMs = time.Since(start).Milliseconds()
	if err != nil {
		response.Error = err.Error()
		return response
	}

	response.RawText = rawText
	return response
}

// QueryMultiple issues one call per platform in parallel and returns one
// response per platform in the same order as the input list, regardless of
// completion order.
func (c *Client) QueryMultiple(ctx context.Context, platforms []models.Platform, text string) []*models.PlatformResponse {
	responses := make([]*models.PlatformResponse, len(platforms))

	var wg sync.WaitGroup
	for i, platform := range platforms {
		wg.Add(1)
		go func(idx int, p models.Platform) {
			defer wg.Done()
			responses[idx] = c.Query(ctx, p, text)
		}(i, platform)
	}
	wg.Wait()

	return responses
}
