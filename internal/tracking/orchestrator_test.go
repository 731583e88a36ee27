package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ido-cryptoson/geo-platform/internal/config"
	"github.com/ido-cryptoson/geo-platform/internal/models"
	"github.com/ido-cryptoson/geo-platform/internal/providers"
	"github.com/ido-cryptoson/geo-platform/internal/providers/testutil"
)

func testTrackingConfig(platforms ...string) config.TrackingConfig {
	return config.TrackingConfig{
		Platforms:      platforms,
		MaxQueries:     20,
		RunsPerQuery:   1,
		PerCallTimeout: time.Second,
	}
}

func queriesOf(texts ...string) []models.Query {
	out := make([]models.Query, len(texts))
	for i, text := range texts {
		out[i] = models.Query{Text: text, Type: models.QueryTypeCustom, Priority: 1}
	}
	return out
}

func TestNewOrchestratorRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TrackingConfig
	}{
		{"no platforms", config.TrackingConfig{MaxQueries: 10, RunsPerQuery: 1, PerCallTimeout: time.Second}},
		{"zero max queries", config.TrackingConfig{Platforms: []string{"chatgpt"}, RunsPerQuery: 1, PerCallTimeout: time.Second}},
		{"zero runs per query", config.TrackingConfig{Platforms: []string{"chatgpt"}, MaxQueries: 10, PerCallTimeout: time.Second}},
		{"zero timeout", config.TrackingConfig{Platforms: []string{"chatgpt"}, MaxQueries: 10, RunsPerQuery: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOrchestrator(tt.cfg, nil); err == nil {
				t.Error("NewOrchestrator() error = nil, want configuration error")
			}
		})
	}
}

func TestRunJobResultOrdering(t *testing.T) {
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt":    {Platform: "chatgpt", Response: testutil.NumberedListResponse(), Delay: 30 * time.Millisecond},
		"perplexity": {Platform: "perplexity", Response: testutil.ProseResponse()},
	}, time.Second)

	orchestrator, err := NewOrchestrator(testTrackingConfig("chatgpt", "perplexity"), client)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	batch := queriesOf("best italian in SF", "top rated italian in SF")
	result, err := orchestrator.RunJob(context.Background(), testutil.SampleBusiness(), nil, batch)
	if err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	if len(result.Results) != 4 {
		t.Fatalf("RunJob() produced %d results, want 4", len(result.Results))
	}

	// Results must follow the (query, run, platform) enumeration order even
	// though the chatgpt stub finishes after perplexity
	wantOrder := []struct {
		query    string
		platform models.Platform
	}{
		{"best italian in SF", "chatgpt"},
		{"best italian in SF", "perplexity"},
		{"top rated italian in SF", "chatgpt"},
		{"top rated italian in SF", "perplexity"},
	}
	for i, want := range wantOrder {
		got := result.Results[i]
		if got.Query != want.query || got.Platform != want.platform {
			t.Errorf("RunJob() results[%d] = %s/%q, want %s/%q",
				i, got.Platform, got.Query, want.platform, want.query)
		}
	}
}

func TestRunJobSkipsFailedCalls(t *testing.T) {
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt":    {Platform: "chatgpt", Response: testutil.NumberedListResponse()},
		"perplexity": {Platform: "perplexity", Err: errors.New("service unavailable")},
	}, time.Second)

	orchestrator, err := NewOrchestrator(testTrackingConfig("chatgpt", "perplexity"), client)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	batch := queriesOf("q1", "q2", "q3")
	result, err := orchestrator.RunJob(context.Background(), testutil.SampleBusiness(), nil, batch)
	if err != nil {
		t.Fatalf("RunJob() error = %v, want nil even with platform failures", err)
	}

	if result.FailedCalls != 3 {
		t.Errorf("RunJob() FailedCalls = %d, want 3", result.FailedCalls)
	}
	if len(result.Results) != 3 {
		t.Fatalf("RunJob() produced %d results, want 3 from the healthy platform", len(result.Results))
	}
	for i, r := range result.Results {
		if r.Platform != "chatgpt" {
			t.Errorf("RunJob() results[%d].Platform = %s, want chatgpt only", i, r.Platform)
		}
	}
	// Failed calls never enter aggregation denominators
	if result.Metrics.TotalQueries != 3 {
		t.Errorf("RunJob() Metrics.TotalQueries = %d, want 3", result.Metrics.TotalQueries)
	}
}

func TestRunJobParsesMentions(t *testing.T) {
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt": {Platform: "chatgpt", Response: testutil.NumberedListResponse()},
	}, time.Second)

	orchestrator, err := NewOrchestrator(testTrackingConfig("chatgpt"), client)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	result, err := orchestrator.RunJob(context.Background(), testutil.SampleBusiness(), testutil.SampleCompetitors(), queriesOf("best italian in SF"))
	if err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	r := result.Results[0]
	if !r.Mention.IsMentioned {
		t.Fatal("RunJob() result mention = false, want true")
	}
	if r.Mention.Position == nil || *r.Mention.Position != 2 {
		t.Errorf("RunJob() result position = %v, want 2", r.Mention.Position)
	}
	if !r.Citation.HasCitation {
		t.Error("RunJob() result citation = false, want true")
	}
	if r.Sentiment == nil {
		t.Error("RunJob() result sentiment = nil, want finding")
	}
	if len(r.Competitors) == 0 {
		t.Error("RunJob() result competitors empty, want Tony's finding")
	}
	if result.Metrics.MentionRate != 100 {
		t.Errorf("RunJob() Metrics.MentionRate = %v, want 100", result.Metrics.MentionRate)
	}
}

func TestRunJobDeduplicatesAndCaps(t *testing.T) {
	stub := &testutil.StubProvider{Platform: "chatgpt", Response: testutil.NumberedListResponse()}
	client := newStubClient(map[models.Platform]*testutil.StubProvider{"chatgpt": stub}, time.Second)

	cfg := testTrackingConfig("chatgpt")
	cfg.MaxQueries = 2
	orchestrator, err := NewOrchestrator(cfg, client)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	batch := queriesOf("same query", "same query", "second query", "third query")
	result, err := orchestrator.RunJob(context.Background(), testutil.SampleBusiness(), nil, batch)
	if err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	if len(result.Results) != 2 {
		t.Fatalf("RunJob() produced %d results, want 2 after de-dup and cap", len(result.Results))
	}
	calls := stub.Calls()
	if len(calls) != 2 || calls[0] != "same query" || calls[1] != "second query" {
		t.Errorf("RunJob() dispatched %v, want [same query, second query]", calls)
	}
}

func TestRunJobRunsPerQuery(t *testing.T) {
	stub := &testutil.StubProvider{Platform: "chatgpt", Response: testutil.NumberedListResponse()}
	client := newStubClient(map[models.Platform]*testutil.StubProvider{"chatgpt": stub}, time.Second)

	cfg := testTrackingConfig("chatgpt")
	cfg.RunsPerQuery = 3
	orchestrator, err := NewOrchestrator(cfg, client)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	result, err := orchestrator.RunJob(context.Background(), testutil.SampleBusiness(), nil, queriesOf("only query"))
	if err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	if len(result.Results) != 3 {
		t.Errorf("RunJob() produced %d results, want 3 (one per run)", len(result.Results))
	}
	if len(stub.Calls()) != 3 {
		t.Errorf("RunJob() dispatched %d calls, want 3", len(stub.Calls()))
	}
}

// cancellingProvider answers normally but cancels the job context on every
// call, simulating a shutdown arriving while the batch is in flight
type cancellingProvider struct {
	cancel   context.CancelFunc
	response string

	mu    sync.Mutex
	calls int
}

func (p *cancellingProvider) Name() string { return "chatgpt" }

func (p *cancellingProvider) RunQuery(ctx context.Context, query string) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	p.cancel()
	return p.response, nil
}

func TestRunJobMidBatchCancellationKeepsGatheredResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &cancellingProvider{cancel: cancel, response: testutil.NumberedListResponse()}
	client := &Client{
		providers: map[models.Platform]providers.AIProvider{"chatgpt": stub},
		timeout:   time.Second,
	}

	orchestrator, err := NewOrchestrator(testTrackingConfig("chatgpt"), client)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	result, err := orchestrator.RunJob(ctx, testutil.SampleBusiness(), nil, queriesOf("q1", "q2", "q3"))
	if err != nil {
		t.Fatalf("RunJob() error = %v, want nil for cancelled job", err)
	}

	// The first query's result is kept; the cancellation stops the remaining
	// dispatches instead of discarding what was gathered
	if len(result.Results) != 1 {
		t.Fatalf("RunJob() produced %d results after mid-batch cancel, want 1", len(result.Results))
	}
	if result.Results[0].Query != "q1" {
		t.Errorf("RunJob() kept result for %q, want q1", result.Results[0].Query)
	}
	if stub.calls != 1 {
		t.Errorf("RunJob() dispatched %d calls after cancellation, want 1", stub.calls)
	}
	if result.FailedCalls != 0 {
		t.Errorf("RunJob() FailedCalls = %d, want 0 (cancellation is not a platform failure)", result.FailedCalls)
	}
	if result.Metrics.TotalQueries != 1 {
		t.Errorf("RunJob() Metrics.TotalQueries = %d, want 1 (aggregated over gathered results only)", result.Metrics.TotalQueries)
	}
}

func TestRunJobCancelledContext(t *testing.T) {
	client := newStubClient(map[models.Platform]*testutil.StubProvider{
		"chatgpt": {Platform: "chatgpt", Response: testutil.NumberedListResponse()},
	}, time.Second)

	orchestrator, err := NewOrchestrator(testTrackingConfig("chatgpt"), client)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := orchestrator.RunJob(ctx, testutil.SampleBusiness(), nil, queriesOf("q1", "q2"))
	if err != nil {
		t.Fatalf("RunJob() error = %v, want nil for cancelled job", err)
	}
	if len(result.Results) != 0 {
		t.Errorf("RunJob() produced %d results after pre-cancelled context, want 0", len(result.Results))
	}
	if result.JobID == uuid.Nil {
		t.Error("RunJob() JobID is empty")
	}
}
