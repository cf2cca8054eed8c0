package entity

import "time"

// Airline is a reference row resolving an IATA carrier code to its
// display name.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
