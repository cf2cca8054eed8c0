package usecase

import (
	"context"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/internal/domain/repository"
	"github.com/jemis-lakhani/points-go-backend/pkg/logger"
	"github.com/jemis-lakhani/points-go-backend/pkg/metrics"
	"github.com/jemis-lakhani/points-go-backend/pkg/timeutil"

	"github.com/prometheus/client_golang/prometheus"
)

// DetailService augments a flight query with schedule data from the
// external provider: one lookup, no retries, result never persisted.
// Airlines and cache are optional collaborators; either may be nil.
type DetailService struct {
	provider repository.ScheduleProvider
	airlines repository.AirlineRepository
	cache    repository.DetailCache
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// NewDetailService creates a new detail enrichment service.
func NewDetailService(
	provider repository.ScheduleProvider,
	airlines repository.AirlineRepository,
	cache repository.DetailCache,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *DetailService {
	return &DetailService{
		provider: provider,
		airlines: airlines,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
	}
}

// Lookup runs the enrichment pass: build the query key, probe the
// cache, query the provider once, project the schedule through the
// time helpers. No match is a not-found outcome; any transport or
// payload failure surfaces as a generic lookup failure.
func (s *DetailService) Lookup(ctx context.Context, q entity.DetailQuery) (*entity.FlightDetail, error) {
	if q.Airline == "" || q.Origin == "" || q.Destination == "" {
		return nil, entity.ValidationError("airline, origin and destination are required")
	}
	if q.FlightNumber <= 0 || q.Day <= 0 || q.Month <= 0 || q.Year <= 0 {
		return nil, entity.ValidationError("flightNumber, day, month and year must be positive integers")
	}

	query := repository.ScheduleQuery{
		Date:       q.DateKey(),
		DepAirport: q.Origin,
		ArrAirport: q.Destination,
		Designator: q.Designator(),
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, query)
		if err != nil {
			s.logger.Warn("Detail cache read failed", "error", err)
		} else if cached != nil {
			s.metrics.DetailCacheHits.Inc()
			return cached, nil
		}
	}

	s.metrics.DetailLookups.Inc()
	timer := prometheus.NewTimer(s.metrics.LookupDuration)
	schedule, err := s.provider.QueryFlight(ctx, query)
	timer.ObserveDuration()
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("detail_lookup").Inc()
		s.logger.Error("Provider lookup failed",
			"designator", query.Designator,
			"date", query.Date,
			"error", err)
		return nil, entity.UpstreamError(err)
	}
	if schedule == nil {
		return nil, entity.NotFoundError("flight not found")
	}

	detail := s.project(ctx, q, schedule)

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, detail); err != nil {
			s.logger.Warn("Detail cache write failed", "error", err)
		}
	}
	return detail, nil
}

// project folds the provider schedule and the caller's identifying
// fields into the response shape.
func (s *DetailService) project(ctx context.Context, q entity.DetailQuery, schedule *entity.FlightSchedule) *entity.FlightDetail {
	arrivalParts := timeutil.CalendarPartsUTC(schedule.ScheduledArrival)

	aircraft := schedule.Aircraft
	if aircraft == "" {
		aircraft = timeutil.Unavailable
	}

	detail := &entity.FlightDetail{
		Airline:      q.Airline,
		FlightNumber: q.FlightNumber,
		Origin:       q.Origin,
		Destination:  q.Destination,
		Day:          q.Day,
		Month:        q.Month,
		Year:         q.Year,

		DepartureTime:   timeutil.ClockUTC(schedule.ScheduledDeparture),
		ArrivalTime:     timeutil.ClockUTC(schedule.ScheduledArrival),
		DurationMinutes: timeutil.DurationMinutes(schedule.ScheduledDeparture, schedule.ScheduledArrival),
		ArrivalDay:      arrivalParts.Day,
		ArrivalMonth:    arrivalParts.Month,
		ArrivalYear:     arrivalParts.Year,
		Aircraft:        aircraft,
	}

	if s.airlines != nil {
		airline, err := s.airlines.GetByCode(ctx, q.Airline)
		if err != nil {
			s.logger.Debug("Airline name lookup failed", "code", q.Airline, "error", err)
		} else {
			detail.AirlineName = airline.Name
		}
	}
	return detail
}
