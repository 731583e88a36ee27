package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ido-cryptoson/geo-platform/internal/models"
)

// PostgresStore implements Store on Postgres via sqlx
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tracking tables when they do not exist yet
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tracking_results (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL,
		business_id UUID NOT NULL,
		platform TEXT NOT NULL,
		query TEXT NOT NULL,
		raw_response TEXT NOT NULL,
		is_mentioned BOOLEAN NOT NULL,
		mention_position INT,
		mention_text TEXT,
		has_citation BOOLEAN NOT NULL,
		citation_url TEXT,
		sentiment TEXT,
		sentiment_score DOUBLE PRECISION,
		competitor_mentions JSONB,
		response_time_ms BIGINT NOT NULL,
		query_timestamp TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_tracking_results_business ON tracking_results (business_id, created_at);

	CREATE TABLE IF NOT EXISTS visibility_metrics (
		business_id UUID NOT NULL,
		date DATE NOT NULL,
		visibility_score INT NOT NULL,
		share_of_voice DOUBLE PRECISION NOT NULL,
		average_position DOUBLE PRECISION NOT NULL,
		mention_count INT NOT NULL,
		total_queries INT NOT NULL,
		citation_rate DOUBLE PRECISION NOT NULL,
		sentiment_score DOUBLE PRECISION NOT NULL,
		competitor_gap DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (business_id, date)
	);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveJobResult writes every parsed result of a job in one transaction
func (s *PostgresStore) SaveJobResult(ctx context.Context, result *models.TrackingJobResult) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const insert = `
	INSERT INTO tracking_results (
		id, job_id, business_id, platform, query, raw_response,
		is_mentioned, mention_position, mention_text,
		has_citation, citation_url, sentiment, sentiment_score,
		competitor_mentions, response_time_ms, query_timestamp
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`

	for _, r := range result.Results {
		competitorJSON, err := json.Marshal(r.Competitors)
		if err != nil {
			return fmt.Errorf("failed to marshal competitor mentions: %w", err)
		}

		var sentimentLabel *string
		var sentimentScore *float64
		if r.Sentiment != nil {
			label := string(r.Sentiment.Label)
			sentimentLabel = &label
			sentimentScore = &r.Sentiment.Score
		}

		if _, err := tx.ExecContext(ctx, insert,
			r.ID, result.JobID, result.Business.ID, r.Platform, r.Query, r.RawText,
			r.Mention.IsMentioned, r.Mention.Position, nullableString(r.Mention.ContextText),
			r.Citation.HasCitation, nullableString(r.Citation.URL), sentimentLabel, sentimentScore,
			competitorJSON, r.ElapsedMs, r.Timestamp,
		); err != nil {
			return fmt.Errorf("failed to insert tracking result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit job result: %w", err)
	}
	return nil
}

// SaveMetrics upserts the metrics window for (business, date). Windows are
// immutable from the caller's perspective; a re-run of the same day supersedes
// the previous computation wholesale.
func (s *PostgresStore) SaveMetrics(ctx context.Context, m *models.VisibilityMetrics) error {
	const upsert = `
	INSERT INTO visibility_metrics (
		business_id, date, visibility_score, share_of_voice, average_position,
		mention_count, total_queries, citation_rate, sentiment_score, competitor_gap
	) VALUES (:business_id, :date, :visibility_score, :share_of_voice, :average_position,
		:mention_count, :total_queries, :citation_rate, :sentiment_score, :competitor_gap)
	ON CONFLICT (business_id, date) DO UPDATE SET
		visibility_score = EXCLUDED.visibility_score,
		share_of_voice = EXCLUDED.share_of_voice,
		average_position = EXCLUDED.average_position,
		mention_count = EXCLUDED.mention_count,
		total_queries = EXCLUDED.total_queries,
		citation_rate = EXCLUDED.citation_rate,
		sentiment_score = EXCLUDED.sentiment_score,
		competitor_gap = EXCLUDED.competitor_gap`

	if _, err := s.db.NamedExecContext(ctx, upsert, m); err != nil {
		return fmt.Errorf("failed to save visibility metrics: %w", err)
	}
	return nil
}

// LatestMetrics returns the most recent metrics window, or nil when the
// business has never been tracked.
func (s *PostgresStore) LatestMetrics(ctx context.Context, businessID uuid.UUID) (*models.VisibilityMetrics, error) {
	const query = `
	SELECT business_id, to_char(date, 'YYYY-MM-DD') AS date, visibility_score,
		share_of_voice, average_position, mention_count, total_queries,
		citation_rate, sentiment_score, competitor_gap
	FROM visibility_metrics
	WHERE business_id = $1
	ORDER BY date DESC
	LIMIT 1`

	var m models.VisibilityMetrics
	if err := s.db.GetContext(ctx, &m, query, businessID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest metrics: %w", err)
	}
	return &m, nil
}

// Trend returns up to `days` most recent windows, oldest first
func (s *PostgresStore) Trend(ctx context.Context, businessID uuid.UUID, days int) ([]models.TrendPoint, error) {
	const query = `
	SELECT to_char(date, 'YYYY-MM-DD') AS date, visibility_score, share_of_voice, mention_count
	FROM (
		SELECT date, visibility_score, share_of_voice, mention_count
		FROM visibility_metrics
		WHERE business_id = $1
		ORDER BY date DESC
		LIMIT $2
	) recent
	ORDER BY date ASC`

	var points []models.TrendPoint
	if err := s.db.SelectContext(ctx, &points, query, businessID, days); err != nil {
		return nil, fmt.Errorf("failed to load trend: %w", err)
	}
	return points, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
