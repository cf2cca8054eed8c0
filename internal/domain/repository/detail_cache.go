package repository

import (
	"context"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
)

// DetailCache holds recent enrichment results keyed by the lookup
// tuple. Get returns nil on a miss; Set failures are best effort and
// only logged by callers.
type DetailCache interface {
	Get(ctx context.Context, query ScheduleQuery) (*entity.FlightDetail, error)
	Set(ctx context.Context, query ScheduleQuery, detail *entity.FlightDetail) error
}
