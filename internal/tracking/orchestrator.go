// Package tracking fans a batch of queries out across AI platforms, parses
// every successful response, and reduces the results into one job record.
package tracking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ido-cryptoson/geo-platform/internal/config"
	"github.com/ido-cryptoson/geo-platform/internal/metrics"
	"github.com/ido-cryptoson/geo-platform/internal/models"
	"github.com/ido-cryptoson/geo-platform/internal/parser"
)

// jobState tracks the orchestration phases of a single job
type jobState string

const (
	stateGenerating  jobState = "generating"
	stateDispatching jobState = "dispatching"
	stateParsing     jobState = "parsing"
	stateAggregating jobState = "aggregating"
	stateDone        jobState = "done"
)

// Orchestrator runs tracking jobs. Platform calls within one query run in
// parallel; queries are processed in order, so the results in a job correspond
// 1:1 and in-order to the (query, run, platform) enumeration — callers can zip
// results back to their originating query deterministically.
type Orchestrator struct {
	client    *Client
	cfg       config.TrackingConfig
	platforms []models.Platform
}

// NewOrchestrator validates the tracking configuration up front. Invalid
// config is a constructor-time error; no platform call is ever made for a job
// that cannot be configured.
func NewOrchestrator(cfg config.TrackingConfig, client *Client) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	platforms := make([]models.Platform, len(cfg.Platforms))
	for i, p := range cfg.Platforms {
		platforms[i] = models.Platform(p)
	}

	return &Orchestrator{
		client:    client,
		cfg:       cfg,
		platforms: platforms,
	}, nil
}

// RunJob executes one full tracking job: Generating → Dispatching → Parsing →
// Aggregating → Done. A platform-level failure is logged, counted, and
// excluded from aggregation; it never aborts the remaining batch. Cancelling
// the context stops new dispatches, but whatever was already gathered is still
// returned — the job returns exactly once, with the subset that succeeded.
func (o *Orchestrator) RunJob(ctx context.Context, business *models.Business, competitors []models.Competitor, queries []models.Query) (*models.TrackingJobResult, error) {
	start := time.Now()
	jobID := uuid.New()
	log := logrus.WithField("job_id", jobID.String())

	log.Infof("[TrackingOrchestrator] %s: %d queries x %d runs x %d platforms for %q",
		stateGenerating, len(queries), o.cfg.RunsPerQuery, len(o.platforms), business.Name)

	batch := o.prepareBatch(queries)

	competitorNames := make([]string, len(competitors))
	for i, c := range competitors {
		competitorNames[i] = c.Name
	}
	parseOpts := parser.Options{
		BusinessName:    business.Name,
		BusinessAliases: business.Aliases,
		WebsiteURL:      business.WebsiteURL,
		CompetitorNames: competitorNames,
	}

	log.Infof("[TrackingOrchestrator] %s: dispatching %d queries", stateDispatching, len(batch))

	var results []*models.ParsedResult
	failedCalls := 0

dispatch:
	for _, query := range batch {
		for run := 0; run < o.cfg.RunsPerQuery; run++ {
			// A cancelled job stops issuing new platform calls; in-flight
			// calls bound themselves via the per-call timeout
			if ctx.Err() != nil {
				log.Warnf("[TrackingOrchestrator] job cancelled, returning %d gathered results", len(results))
				break dispatch
			}

			responses := o.client.QueryMultiple(ctx, o.platforms, query.Text)

			for _, response := range responses {
				if response.Failed() {
					failedCalls++
					log.Warnf("[TrackingOrchestrator] %s: %s call failed for query %q: %s",
						stateParsing, response.Platform, query.Text, response.Error)
					continue
				}

				parsed := parser.Parse(response.RawText, parseOpts)
				results = append(results, &models.ParsedResult{
					ID:          uuid.New(),
					Platform:    response.Platform,
					Query:       response.Query,
					RawText:     response.RawText,
					Mention:     parsed.Mention,
					Citation:    parsed.Citation,
					Sentiment:   parsed.Sentiment,
					Competitors: parsed.Competitors,
					ElapsedMs:   response.ElapsedMs,
					Timestamp:   response.Timestamp,
				})
			}
		}
	}

	log.Infof("[TrackingOrchestrator] %s: %d parsed results, %d failed calls",
		stateAggregating, len(results), failedCalls)

	agg := metrics.Aggregate(results)

	result := &models.TrackingJobResult{
		JobID:       jobID,
		Business:    business,
		Results:     results,
		Metrics:     agg,
		FailedCalls: failedCalls,
		Duration:    time.Since(start),
	}

	log.Infof("[TrackingOrchestrator] %s: mention rate %.1f%%, avg position %.1f, duration %s",
		stateDone, agg.MentionRate, agg.AvgPosition, result.Duration)

	return result, nil
}

// prepareBatch de-duplicates queries by text (a batch may not contain two
// identical queries) and caps the batch at MaxQueries.
func (o *Orchestrator) prepareBatch(queries []models.Query) []models.Query {
	seen := make(map[string]bool, len(queries))
	batch := make([]models.Query, 0, len(queries))
	for _, q := range queries {
		if seen[q.Text] {
			continue
		}
		seen[q.Text] = true
		batch = append(batch, q)
		if len(batch) >= o.cfg.MaxQueries {
			break
		}
	}
	return batch
}
