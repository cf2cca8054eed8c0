package entity

import "fmt"

// DetailQuery identifies one flight on one calendar day for
// enrichment. Numeric fields arrive already coerced to integers.
type DetailQuery struct {
	Airline      string
	FlightNumber int
	Origin       string
	Destination  string
	Day          int
	Month        int
	Year         int
}

// Designator composes the provider flight designator, e.g. "AA100".
func (q DetailQuery) Designator() string {
	return fmt.Sprintf("%s%d", q.Airline, q.FlightNumber)
}

// DateKey composes the ISO calendar date with zero-padded month and
// day, e.g. "2024-03-01".
func (q DetailQuery) DateKey() string {
	return fmt.Sprintf("%04d-%02d-%02d", q.Year, q.Month, q.Day)
}

// FlightSchedule is the normalized slice of a provider payload the
// enrichment needs. Empty strings mean the provider omitted the field.
type FlightSchedule struct {
	ScheduledDeparture string
	ScheduledArrival   string
	Aircraft           string
}

// FlightDetail is the enrichment response. It is built fresh per
// request and never persisted. Fields derived from provider timestamps
// are strings because any of them can be the "N/A" sentinel.
type FlightDetail struct {
	Airline      string `json:"airline"`
	AirlineName  string `json:"airlineName,omitempty"`
	FlightNumber int    `json:"flightNumber"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Day          int    `json:"day"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`

	DepartureTime   string `json:"departureTime"`
	ArrivalTime     string `json:"arrivalTime"`
	DurationMinutes string `json:"durationMinutes"`
	ArrivalDay      string `json:"arrivalDay"`
	ArrivalMonth    string `json:"arrivalMonth"`
	ArrivalYear     string `json:"arrivalYear"`
	Aircraft        string `json:"aircraft"`
}
