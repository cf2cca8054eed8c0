package repository

import (
	"context"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
)

// ScheduleQuery keys one provider lookup.
type ScheduleQuery struct {
	Date       string // ISO calendar date, e.g. "2024-03-01"
	DepAirport string
	ArrAirport string
	Designator string // carrier code + flight number, e.g. "AA100"
}

// ScheduleProvider issues exactly one request against the external
// aviation data API. A nil schedule with a nil error means the
// provider had no matching flight; it is never retried.
type ScheduleProvider interface {
	QueryFlight(ctx context.Context, query ScheduleQuery) (*entity.FlightSchedule, error)
}
