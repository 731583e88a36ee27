package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ido-cryptoson/geo-platform/internal/models"
	"github.com/ido-cryptoson/geo-platform/internal/providers"
	"github.com/ido-cryptoson/geo-platform/internal/providers/testutil"
)

func newStubClient(stubs map[models.Platform]*testutil.StubProvider, timeout time.Duration) *Client {
	built := make(map[models.Platform]providers.AIProvider, len(stubs))
	for platform, stub := range stubs {
		built[platform] = stub
	}
	return &Client{providers: built, timeout: timeout}
}

func TestQuerySuccess(t *testing.T) {
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt": {Platform: "chatgpt", Response: "canned answer"},
	}, time.Second)

	response := client.Query(context.Background(), "chatgpt", "best pasta in town")

	if response.Failed() {
		t.Fatalf("Query() failed: %s", response.Error)
	}
	if response.RawText != "canned answer" {
		t.Errorf("Query() RawText = %q, want %q", response.RawText, "canned answer")
	}
	if response.Platform != "chatgpt" || response.Query != "best pasta in town" {
		t.Errorf("Query() provenance = %s/%q, want chatgpt/best pasta in town", response.Platform, response.Query)
	}
	if response.Timestamp.IsZero() {
		t.Error("Query() Timestamp is zero")
	}
}

func TestQueryFailureIsData(t *testing.T) {
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt": {Platform: "chatgpt", Err: errors.New("rate limited")},
	}, time.Second)

	response := client.Query(context.Background(), "chatgpt", "any query")

	if !response.Failed() {
		t.Fatal("Query() Failed() = false for erroring provider, want true")
	}
	if response.Error != "rate limited" {
		t.Errorf("Query() Error = %q, want %q", response.Error, "rate limited")
	}
	if response.RawText != "" {
		t.Errorf("Query() RawText = %q for failed call, want empty", response.RawText)
	}
}

func TestQueryUnknownPlatform(t *testing.T) {
	client := newStubClient(nil, time.Second)

	response := client.Query(context.Background(), "gemini", "any query")

	if !response.Failed() {
		t.Fatal("Query() Failed() = false for unconfigured platform, want true")
	}
}

func TestQueryTimeout(t *testing.T) {
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt": {Platform: "chatgpt", Response: "too late", Delay: 200 * time.Millisecond},
	}, 20*time.Millisecond)

	response := client.Query(context.Background(), "chatgpt", "any query")

	if !response.Failed() {
		t.Fatal("Query() Failed() = false for timed-out call, want true")
	}
	if response.RawText != "" {
		t.Errorf("Query() RawText = %q after timeout, want empty", response.RawText)
	}
}

func TestQueryMultiplePreservesOrder(t *testing.T) {
	// The slow platform is listed first; completion order inverts, input order
	// must not
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt":    {Platform: "chatgpt", Response: "slow answer", Delay: 80 * time.Millisecond},
		"claude":     {Platform: "claude", Response: "medium answer", Delay: 40 * time.Millisecond},
		"perplexity": {Platform: "perplexity", Response: "fast answer"},
	}, time.Second)

	platforms := []models.Platform{"chatgpt", "claude", "perplexity"}
	responses := client.QueryMultiple(context.Background(), platforms, "best pasta")

	if len(responses) != len(platforms) {
		t.Fatalf("QueryMultiple() returned %d responses, want %d", len(responses), len(platforms))
	}
	wantText := []string{"slow answer", "medium answer", "fast answer"}
	for i, platform := range platforms {
		if responses[i] == nil {
			t.Fatalf("QueryMultiple() responses[%d] = nil", i)
		}
		if responses[i].Platform != platform {
			t.Errorf("QueryMultiple() responses[%d].Platform = %s, want %s", i, responses[i].Platform, platform)
		}
		if responses[i].RawText != wantText[i] {
			t.Errorf("QueryMultiple() responses[%d].RawText = %q, want %q", i, responses[i].RawText, wantText[i])
		}
	}
}

func TestQueryMultipleMixedOutcome(t *testing.T) {
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt":    {Platform: "chatgpt", Response: "good answer"},
		"perplexity": {Platform: "perplexity", Err: errors.New("upstream 500")},
	}, time.Second)

	responses := client.QueryMultiple(context.Background(), []models.Platform{"chatgpt", "perplexity"}, "best pasta")

	if responses[0].Failed() {
		t.Errorf("QueryMultiple() responses[0] failed unexpectedly: %s", responses[0].Error)
	}
	if !responses[1].Failed() {
		t.Error("QueryMultiple() responses[1].Failed() = false, want true")
	}
}
