// Smoke-runs the tracking pipeline end to end against the mock provider and
// prints the score breakdown. Useful for checking parser behavior on the
// canned response shapes without touching any API.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/ido-cryptoson/geo-platform/internal/config"
	"github.com/ido-cryptoson/geo-platform/internal/metrics"
	"github.com/ido-cryptoson/geo-platform/internal/models"
	"github.com/ido-cryptoson/geo-platform/internal/queries"
	"github.com/ido-cryptoson/geo-platform/internal/tracking"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	cfg.UseMockResponses = true
	cfg.Tracking = config.TrackingConfig{
		Platforms:      []string{"chatgpt", "perplexity"},
		MaxQueries:     5,
		RunsPerQuery:   1,
		PerCallTimeout: 10 * time.Second,
	}

	business := &models.Business{
		Name:        "Mario's Italian Kitchen",
		CuisineType: "Italian",
		City:        "San Francisco",
		WebsiteURL:  "https://mariositalian.com",
	}
	competitors := []models.Competitor{
		{Name: "Tony's Pizza Napoletana"},
		{Name: "Flour + Water"},
	}

	client, err := tracking.NewClient(cfg, cfg.Tracking.Platforms, cfg.Tracking.PerCallTimeout)
	if err != nil {
		log.Fatalf("Failed to build platform client: %v", err)
	}
	orchestrator, err := tracking.NewOrchestrator(cfg.Tracking, client)
	if err != nil {
		log.Fatalf("Failed to build orchestrator: %v", err)
	}

	batch := queries.Sample(business)
	result, err := orchestrator.RunJob(context.Background(), business, competitors, batch)
	if err != nil {
		log.Fatalf("Tracking job failed: %v", err)
	}

	fmt.Printf("\n=== Quick test: %s ===\n", business.Name)
	fmt.Printf("Queries: %d  Results: %d  Failed calls: %d  Duration: %s\n\n",
		len(batch), len(result.Results), result.FailedCalls, result.Duration)

	for _, r := range result.Results {
		status := "not mentioned"
		if r.Mention.IsMentioned {
			status = fmt.Sprintf("mentioned at position %d", *r.Mention.Position)
			if r.Sentiment != nil {
				status += fmt.Sprintf(" (%s %.2f)", r.Sentiment.Label, r.Sentiment.Score)
			}
		}
		fmt.Printf("  [%s] %q -> %s\n", r.Platform, r.Query, status)
		for _, c := range r.Competitors {
			fmt.Printf("      competitor %s at position %d\n", c.Name, c.Position)
		}
	}

	agg := result.Metrics
	score := metrics.VisibilityScore(agg.MentionRate, agg.AvgPosition, agg.SentimentScore, agg.CitationRate)
	fmt.Printf("\nMention rate: %.1f%%  Avg position: %.1f  Citation rate: %.1f%%  Sentiment: %.0f\n",
		agg.MentionRate, agg.AvgPosition, agg.CitationRate, agg.SentimentScore)
	fmt.Printf("Visibility score: %d/100\n", score)
}
