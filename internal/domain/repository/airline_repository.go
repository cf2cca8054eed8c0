package repository

import (
	"context"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
)

// AirlineRepository resolves IATA carrier codes against the reference
// table.
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}
