package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/ido-cryptoson/geo-platform/internal/models"
)

// Store persists tracking output. The pipeline itself never depends on
// persistence — job results are handed over here after the orchestrator has
// already returned them to the caller.
type Store interface {
	SaveJobResult(ctx context.Context, result *models.TrackingJobResult) error
	SaveMetrics(ctx context.Context, m *models.VisibilityMetrics) error
	LatestMetrics(ctx context.Context, businessID uuid.UUID) (*models.VisibilityMetrics, error)
	Trend(ctx context.Context, businessID uuid.UUID, days int) ([]models.TrendPoint, error)
}
