package repository

import (
	"context"
	"time"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
)

// FlightRepository defines the persistence operations for flight
// records. FindByID and UpdateProgram return a nil record when the id
// is unknown; DeleteByID reports the same through its bool.
type FlightRepository interface {
	Create(ctx context.Context, record *entity.FlightRecord) error
	FindByID(ctx context.Context, id string) (*entity.FlightRecord, error)
	// FindAll returns all records, newest creation first.
	FindAll(ctx context.Context) ([]*entity.FlightRecord, error)
	UpdateProgram(ctx context.Context, id string, program *string, now time.Time) (*entity.FlightRecord, error)
	// PatchAvailability writes the patch with per-field granularity so
	// concurrent patches to disjoint date-keys both survive. ensure
	// lists date-keys that need a fresh empty entry. The bool reports
	// whether the record existed.
	PatchAvailability(ctx context.Context, id string, patch entity.AvailabilityPatch, ensure []string, now time.Time) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
