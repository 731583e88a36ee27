// Package metrics reduces parsed tracking results into visibility metrics.
// All functions are pure; callers own the inputs and outputs.
package metrics

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ido-cryptoson/geo-platform/internal/models"
)

// Weighted score components. These weights are part of the product definition
// and must not drift: mention rate 40%, position 30%, sentiment 20%,
// citations 10%.
const (
	mentionRateWeight    = 0.4
	positionScoreWeight  = 0.3
	sentimentScoreWeight = 0.2
	citationRateWeight   = 0.1
)

// Aggregate reduces a set of parsed results into raw rates.
// Denominator rules: citation rate is computed over mentioned results only,
// and average position only over results that carry a defined position —
// undefined positions are excluded, never treated as zero.
func Aggregate(results []*models.ParsedResult) models.AggregateMetrics {
	agg := models.AggregateMetrics{
		TotalQueries:   len(results),
		SentimentScore: 50,
	}
	if len(results) == 0 {
		return agg
	}

	var (
		positionSum   float64
		positionCount int
		sentimentSum  float64
		sentimentN    int
		citationCount int
	)

	for _, r := range results {
		if !r.Mention.IsMentioned {
			continue
		}
		agg.TotalMentions++

		if r.Mention.Position != nil {
			positionSum += float64(*r.Mention.Position)
			positionCount++
		}
		if r.Sentiment != nil {
			sentimentSum += r.Sentiment.Score
			sentimentN++
		}
		if r.Citation.HasCitation {
			citationCount++
		}
	}

	agg.MentionRate = float64(agg.TotalMentions) / float64(agg.TotalQueries) * 100
	if positionCount > 0 {
		agg.AvgPosition = positionSum / float64(positionCount)
	}
	if agg.TotalMentions > 0 {
		agg.CitationRate = float64(citationCount) / float64(agg.TotalMentions) * 100
	}
	if sentimentN > 0 {
		agg.SentimentScore = sentimentSum / float64(sentimentN) * 100
	}

	return agg
}

// VisibilityScore computes the 0-100 weighted composite.
// Position score: 1st = 100, 2nd = 80, 3rd = 60, and so on; no positions at
// all scores zero on that component.
func VisibilityScore(mentionRate, avgPosition, sentimentScore, citationRate float64) int {
	positionScore := 0.0
	if avgPosition > 0 {
		positionScore = math.Max(0, 100-(avgPosition-1)*20)
	}

	score := mentionRate*mentionRateWeight +
		positionScore*positionScoreWeight +
		sentimentScore*sentimentScoreWeight +
		citationRate*citationRateWeight

	return int(math.Round(math.Min(100, math.Max(0, score))))
}

// BuildVisibilityMetrics assembles one immutable metrics window for a business.
// ShareOfVoice is defined as the mention rate — the competitor-normalized
// denominator is a documented simplification, not an omission to fix here.
// CompetitorGap is left zero for the downstream joiner.
func BuildVisibilityMetrics(businessID uuid.UUID, now time.Time, agg models.AggregateMetrics) models.VisibilityMetrics {
	return models.VisibilityMetrics{
		BusinessID:      businessID,
		Date:            now.UTC().Format("2006-01-02"),
		VisibilityScore: VisibilityScore(agg.MentionRate, agg.AvgPosition, agg.SentimentScore, agg.CitationRate),
		ShareOfVoice:    roundTo(agg.MentionRate, 1),
		AveragePosition: roundTo(agg.AvgPosition, 1),
		MentionCount:    agg.TotalMentions,
		TotalQueries:    agg.TotalQueries,
		CitationRate:    math.Round(agg.CitationRate),
		SentimentScore:  math.Round(agg.SentimentScore),
	}
}

// Change returns the percent change between two window values, rounded.
// A zero previous value reports 100 for any growth and 0 otherwise.
func Change(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
