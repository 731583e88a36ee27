// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Platform identifies one AI assistant being queried
type Platform string

const (
	PlatformChatGPT    Platform = "chatgpt"
	PlatformClaude     Platform = "claude"
	PlatformPerplexity Platform = "perplexity"
)

// QueryType categorizes a generated query (pass-through metadata for tracking)
type QueryType string

const (
	QueryTypeBestInCity QueryType = "best_in_city"
	QueryTypeTopRated   QueryType = "top_rated"
	QueryTypeWhereToEat QueryType = "where_to_eat"
	QueryTypeReviews    QueryType = "reviews"
	QueryTypeDietary    QueryType = "dietary"
	QueryTypeOccasion   QueryType = "occasion"
	QueryTypeDishType   QueryType = "dish_type"
	QueryTypeCustom     QueryType = "custom"
)

// Sentiment labels for a mention's surrounding text
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Business is the tracked business whose visibility is measured
type Business struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Aliases      []string  `json:"aliases,omitempty"`
	CuisineType  string    `json:"cuisine_type" db:"cuisine_type"`
	City         string    `json:"city" db:"city"`
	Neighborhood string    `json:"neighborhood,omitempty" db:"neighborhood"`
	WebsiteURL   string    `json:"website_url,omitempty" db:"website_url"`
}

// Competitor is a named competitor tracked alongside the business
type Competitor struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	WebsiteURL string    `json:"website_url,omitempty" db:"website_url"`
}

// Query is one generated search query, produced upstream.
// Queries are de-duplicated by Text within a batch.
type Query struct {
	Text     string    `json:"text"`
	Type     QueryType `json:"type"`
	Priority int       `json:"priority"`
}

// PlatformResponse is the raw outcome of one platform call.
// Exactly one of RawText or Error is meaningful; a non-empty Error means the
// call failed and the response is skipped downstream.
type PlatformResponse struct {
	Platform  Platform  `json:"platform"`
	Query     string    `json:"query"`
	RawText   string    `json:"raw_text"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Failed reports whether the platform call produced an error instead of text.
func (r *PlatformResponse) Failed() bool {
	return r.Error != ""
}

// MentionFinding describes whether and where a tracked name was found.
// Position is the 1-based rank within a detected list, 1 when mentioned
// outside any list, and nil when not mentioned.
type MentionFinding struct {
	IsMentioned bool   `json:"is_mentioned"`
	Position    *int   `json:"position,omitempty"`
	ContextText string `json:"context_text,omitempty"`
}

// CitationFinding describes an outbound URL found in a response
type CitationFinding struct {
	HasCitation bool   `json:"has_citation"`
	URL         string `json:"url,omitempty"`
}

// SentimentFinding is defined only when a mention exists
type SentimentFinding struct {
	Label Sentiment `json:"label"`
	Score float64   `json:"score"` // 0..1
}

// CompetitorFinding is one competitor found in the same response.
// Competitors with no position are never included.
type CompetitorFinding struct {
	Name        string            `json:"name"`
	Position    int               `json:"position"`
	ContextText string            `json:"context_text,omitempty"`
	Sentiment   *SentimentFinding `json:"sentiment,omitempty"`
}

// ParsedResult is the structured record for one (query, platform) response
type ParsedResult struct {
	ID          uuid.UUID           `json:"id"`
	Platform    Platform            `json:"platform"`
	Query       string              `json:"query"`
	RawText     string              `json:"raw_text"`
	Mention     MentionFinding      `json:"mention"`
	Citation    CitationFinding     `json:"citation"`
	Sentiment   *SentimentFinding   `json:"sentiment,omitempty"`
	Competitors []CompetitorFinding `json:"competitors,omitempty"`
	ElapsedMs   int64               `json:"elapsed_ms"`
	Timestamp   time.Time           `json:"timestamp"`
}

// AggregateMetrics are the raw rates reduced from a set of parsed results
type AggregateMetrics struct {
	MentionRate    float64 `json:"mention_rate"`    // 0..100
	AvgPosition    float64 `json:"avg_position"`    // 0 when no positions
	CitationRate   float64 `json:"citation_rate"`   // 0..100, mentioned results only
	SentimentScore float64 `json:"sentiment_score"` // 0..100
	TotalQueries   int     `json:"total_queries"`
	TotalMentions  int     `json:"total_mentions"`
}

// VisibilityMetrics is one business's scored window. Instances are immutable
// once computed; the next window supersedes rather than mutates.
type VisibilityMetrics struct {
	BusinessID      uuid.UUID `json:"business_id" db:"business_id"`
	Date            string    `json:"date" db:"date"`
	VisibilityScore int       `json:"visibility_score" db:"visibility_score"` // 0..100
	ShareOfVoice    float64   `json:"share_of_voice" db:"share_of_voice"`     // 0..100
	AveragePosition float64   `json:"average_position" db:"average_position"`
	MentionCount    int       `json:"mention_count" db:"mention_count"`
	TotalQueries    int       `json:"total_queries" db:"total_queries"`
	CitationRate    float64   `json:"citation_rate" db:"citation_rate"` // 0..100
	SentimentScore  float64   `json:"sentiment_score" db:"sentiment_score"`
	CompetitorGap   float64   `json:"competitor_gap" db:"competitor_gap"` // filled by downstream joiner
}

// TrendPoint is one dated sample for the visibility chart
type TrendPoint struct {
	Date            string  `json:"date" db:"date"`
	VisibilityScore int     `json:"visibility_score" db:"visibility_score"`
	ShareOfVoice    float64 `json:"share_of_voice" db:"share_of_voice"`
	Mentions        int     `json:"mentions" db:"mention_count"`
}

// TrackingJobResult bundles everything produced by one orchestration run.
// It is returned exactly once and never mutated afterwards; persistence is
// the caller's responsibility.
type TrackingJobResult struct {
	JobID       uuid.UUID        `json:"job_id"`
	Business    *Business        `json:"business"`
	Results     []*ParsedResult  `json:"results"`
	Metrics     AggregateMetrics `json:"metrics"`
	FailedCalls int              `json:"failed_calls"`
	Duration    time.Duration    `json:"duration"`
}
