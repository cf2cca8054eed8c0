package usecase

import (
	"context"
	"time"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/internal/domain/repository"
	"github.com/jemis-lakhani/points-go-backend/pkg/logger"
	"github.com/jemis-lakhani/points-go-backend/pkg/metrics"
)

// FlightService carries the record lifecycle: creation, listing,
// program update, availability patching and deletion.
type FlightService struct {
	flights repository.FlightRepository
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewFlightService creates a new flight service.
func NewFlightService(flights repository.FlightRepository, logger logger.Logger, metrics *metrics.Metrics) *FlightService {
	return &FlightService{
		flights: flights,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Create stores a new flight record. Origin, destination and airline
// are required; everything else takes creation defaults.
func (s *FlightService) Create(ctx context.Context, origin, destination, airline string) (*entity.FlightRecord, error) {
	if origin == "" || destination == "" || airline == "" {
		return nil, entity.ValidationError("origin, destination and airline are required")
	}

	record := entity.NewFlightRecord(origin, destination, airline, s.now().UTC())
	if err := s.flights.Create(ctx, record); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("create").Inc()
		return nil, entity.StoreError(err)
	}

	s.metrics.FlightsCreated.Inc()
	s.logger.Info("Flight record created",
		"id", record.ID,
		"origin", origin,
		"destination", destination,
		"airline", airline)
	return record, nil
}

// List returns all flight records, newest first.
func (s *FlightService) List(ctx context.Context) ([]*entity.FlightRecord, error) {
	records, err := s.flights.FindAll(ctx)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("list").Inc()
		return nil, entity.StoreError(err)
	}
	return records, nil
}

// UpdateProgram sets or clears the loyalty program of a record.
func (s *FlightService) UpdateProgram(ctx context.Context, id string, program *string) (*entity.FlightRecord, error) {
	record, err := s.flights.UpdateProgram(ctx, id, program, s.now().UTC())
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("update_program").Inc()
		return nil, entity.StoreError(err)
	}
	if record == nil {
		return nil, entity.NotFoundError("flight not found")
	}
	return record, nil
}

// PatchAvailability merges a per-date seat-class patch into a record.
// The stored write is field granular, so concurrent patches to
// disjoint date-keys both land; the returned record reflects this
// caller's merge.
func (s *FlightService) PatchAvailability(ctx context.Context, id string, patch entity.AvailabilityPatch) (*entity.FlightRecord, error) {
	record, err := s.flights.FindByID(ctx, id)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("patch_availability").Inc()
		return nil, entity.StoreError(err)
	}
	if record == nil {
		return nil, entity.NotFoundError("flight not found")
	}

	ensure := record.MissingDates(patch)
	now := s.now().UTC()
	record.ApplyAvailability(patch, now)

	matched, err := s.flights.PatchAvailability(ctx, id, patch, ensure, now)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("patch_availability").Inc()
		return nil, entity.StoreError(err)
	}
	if !matched {
		// Deleted between the read and the write.
		return nil, entity.NotFoundError("flight not found")
	}

	s.metrics.AvailabilityPatches.Inc()
	return record, nil
}

// Delete removes a record, failing with not-found for unknown ids.
func (s *FlightService) Delete(ctx context.Context, id string) error {
	deleted, err := s.flights.DeleteByID(ctx, id)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("delete").Inc()
		return entity.StoreError(err)
	}
	if !deleted {
		return entity.NotFoundError("flight not found")
	}
	s.logger.Info("Flight record deleted", "id", id)
	return nil
}
