package entity

import (
	"time"
)

// AvailabilityEntry carries the seat-class flags for one calendar
// date. The zero value means both classes are unknown.
type AvailabilityEntry struct {
	Economy  TriState `bson:"economy" json:"economy"`
	Business TriState `bson:"business" json:"business"`
}

// FlightRecord is a tracked flight route. Origin, destination and
// airline are fixed at creation; program and availability mutate
// through their dedicated updates. Availability maps an ISO calendar
// date ("2024-03-01") to the seat-class flags for that day.
type FlightRecord struct {
	ID           string                       `bson:"_id,omitempty" json:"id"`
	Origin       string                       `bson:"origin" json:"origin"`
	Destination  string                       `bson:"destination" json:"destination"`
	Airline      string                       `bson:"airline" json:"airline"`
	Program      *string                      `bson:"program" json:"program"`
	Availability map[string]AvailabilityEntry `bson:"availability" json:"availability"`
	CreatedAt    time.Time                    `bson:"createdAt" json:"createdAt"`
	LastUpdated  time.Time                    `bson:"lastUpdated" json:"lastUpdated"`
}

// NewFlightRecord builds a record with creation defaults: no program,
// empty availability, createdAt and lastUpdated set to the same
// instant. The ID is assigned by the store.
func NewFlightRecord(origin, destination, airline string, now time.Time) *FlightRecord {
	return &FlightRecord{
		Origin:       origin,
		Destination:  destination,
		Airline:      airline,
		Program:      nil,
		Availability: make(map[string]AvailabilityEntry),
		CreatedAt:    now,
		LastUpdated:  now,
	}
}

// ApplyAvailability merges a patch into the record in place. Every
// date named by the patch ends up with an entry; fields the patch
// carries overwrite the stored value (an explicit null clears it to
// unknown), fields it omits keep their previous value. An empty patch
// only refreshes lastUpdated.
func (f *FlightRecord) ApplyAvailability(patch AvailabilityPatch, now time.Time) {
	if f.Availability == nil {
		f.Availability = make(map[string]AvailabilityEntry)
	}
	for date, fields := range patch {
		entry := f.Availability[date]
		if fields.Economy.Set {
			entry.Economy = fields.Economy.Value
		}
		if fields.Business.Set {
			entry.Business = fields.Business.Value
		}
		f.Availability[date] = entry
	}
	f.LastUpdated = now
}

// MissingDates lists the patch date-keys the record has no entry for
// yet. The store uses it to create empty entries without touching
// existing ones.
func (f *FlightRecord) MissingDates(patch AvailabilityPatch) []string {
	var missing []string
	for date := range patch {
		if _, ok := f.Availability[date]; !ok {
			missing = append(missing, date)
		}
	}
	return missing
}
