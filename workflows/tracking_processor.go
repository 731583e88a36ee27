// workflows/tracking_processor.go
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
	"github.com/sirupsen/logrus"

	"github.com/ido-cryptoson/geo-platform/internal/config"
	"github.com/ido-cryptoson/geo-platform/internal/metrics"
	"github.com/ido-cryptoson/geo-platform/internal/models"
	"github.com/ido-cryptoson/geo-platform/internal/queries"
	"github.com/ido-cryptoson/geo-platform/internal/storage"
	"github.com/ido-cryptoson/geo-platform/internal/tracking"
)

// TrackingProcessor owns the event-driven visibility tracking pipeline
type TrackingProcessor struct {
	cfg    *config.Config
	store  storage.Store
	client inngestgo.Client
}

func NewTrackingProcessor(cfg *config.Config, store storage.Store) *TrackingProcessor {
	return &TrackingProcessor{
		cfg:   cfg,
		store: store,
	}
}

func (p *TrackingProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

// BusinessTrackEvent triggers one tracking run for a business
type BusinessTrackEvent struct {
	Business    models.Business     `json:"business"`
	Competitors []models.Competitor `json:"competitors,omitempty"`
	TriggeredBy string              `json:"triggered_by,omitempty"`
}

// TrackBusiness registers the full tracking workflow: generate queries, fan
// them out across platforms, aggregate, persist the metrics window.
func (p *TrackingProcessor) TrackBusiness() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "track-business",
			Name:    "Track Business - AI Visibility Pipeline",
			Retries: inngestgo.IntPtr(3),
		},
		inngestgo.EventTrigger("business.track", nil),
		func(ctx context.Context, input inngestgo.Input[BusinessTrackEvent]) (any, error) {
			business := input.Event.Data.Business
			competitors := input.Event.Data.Competitors
			logrus.Infof("[TrackBusiness] Starting visibility tracking for business: %s", business.Name)

			// Step 1: Generate the query batch
			batch, err := step.Run(ctx, "generate-queries", func(ctx context.Context) ([]models.Query, error) {
				competitorNames := make([]string, len(competitors))
				for i, c := range competitors {
					competitorNames[i] = c.Name
				}
				generated := queries.GenerateForBusiness(&business, queries.Options{
					MaxQueries:               p.cfg.Tracking.MaxQueries,
					IncludeCompetitorQueries: len(competitorNames) > 0,
					CompetitorNames:          competitorNames,
				})
				logrus.Infof("[TrackBusiness] Step 1: generated %d queries", len(generated))
				return generated, nil
			})
			if err != nil {
				p.alertFailure("generate-queries", business, err)
				return nil, fmt.Errorf("step 1 failed: %w", err)
			}

			// Step 2: Run the tracking job across all configured platforms
			jobResult, err := step.Run(ctx, "run-tracking-job", func(ctx context.Context) (*models.TrackingJobResult, error) {
				client, err := tracking.NewClient(p.cfg, p.cfg.Tracking.Platforms, p.cfg.Tracking.PerCallTimeout)
				if err != nil {
					return nil, fmt.Errorf("failed to build platform client: %w", err)
				}
				orchestrator, err := tracking.NewOrchestrator(p.cfg.Tracking, client)
				if err != nil {
					return nil, fmt.Errorf("failed to build orchestrator: %w", err)
				}

				result, err := orchestrator.RunJob(ctx, &business, competitors, batch)
				if err != nil {
					return nil, fmt.Errorf("tracking job failed: %w", err)
				}

				logrus.Infof("[TrackBusiness] Step 2: %d results, %d failed calls",
					len(result.Results), result.FailedCalls)
				return result, nil
			})
			if err != nil {
				p.alertFailure("run-tracking-job", business, err)
				return nil, fmt.Errorf("step 2 failed: %w", err)
			}

			// Step 3: Persist results and the day's metrics window
			visibility, err := step.Run(ctx, "persist-results-and-metrics", func(ctx context.Context) (*models.VisibilityMetrics, error) {
				m := metrics.BuildVisibilityMetrics(business.ID, time.Now(), jobResult.Metrics)

				if p.store == nil {
					logrus.Warn("[TrackBusiness] Step 3: no store configured, skipping persistence")
					return &m, nil
				}
				if err := p.store.SaveJobResult(ctx, jobResult); err != nil {
					return nil, fmt.Errorf("failed to save job result: %w", err)
				}
				if err := p.store.SaveMetrics(ctx, &m); err != nil {
					return nil, fmt.Errorf("failed to save metrics: %w", err)
				}

				logrus.Infof("[TrackBusiness] Step 3: visibility score %d persisted for %s",
					m.VisibilityScore, m.Date)
				return &m, nil
			})
			if err != nil {
				p.alertFailure("persist-results-and-metrics", business, err)
				return nil, fmt.Errorf("step 3 failed: %w", err)
			}

			return map[string]interface{}{
				"business_id":      business.ID.String(),
				"business_name":    business.Name,
				"status":           "completed",
				"queries":          len(batch),
				"results":          len(jobResult.Results),
				"failed_calls":     jobResult.FailedCalls,
				"visibility_score": visibility.VisibilityScore,
				"share_of_voice":   visibility.ShareOfVoice,
				"completed_at":     time.Now().UTC(),
			}, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create TrackBusiness function: %w", err))
	}
	return fn
}

// alertFailure is best-effort: an unreachable webhook never masks the
// original step error
func (p *TrackingProcessor) alertFailure(step string, business models.Business, err error) {
	if alertErr := ReportTrackingFailureToSlack(step, business.ID.String(), business.Name, err); alertErr != nil {
		logrus.Warnf("[TrackBusiness] Failed to send Slack alert: %v", alertErr)
	}
}
