package timeutil

import (
	"fmt"
	"strconv"
	"time"
)

// Unavailable marks a time-derived field whose source was missing or
// could not be parsed. It is distinct from an absent field: callers
// receive it verbatim in responses.
const Unavailable = "N/A"

// Timestamp layouts accepted from the schedules provider. Payloads
// frequently omit the zone offset; those instants are read as UTC.
const (
	LayoutRFC3339  = time.RFC3339
	LayoutNoOffset = "2006-01-02T15:04:05"
)

// CalendarParts holds the UTC calendar fields of an instant. Month is
// 1-based. Every field is Unavailable when the source timestamp did
// not parse.
type CalendarParts struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// DurationMinutes returns the whole minutes between departure and
// arrival, floored, as a decimal string. The result is negative when
// arrival precedes departure; that is not corrected here. Either input
// being Unavailable, or failing to parse, yields Unavailable.
func DurationMinutes(departure, arrival string) string {
	dep, ok := parseInstant(departure)
	if !ok {
		return Unavailable
	}
	arr, ok := parseInstant(arrival)
	if !ok {
		return Unavailable
	}

	ms := arr.Sub(dep).Milliseconds()
	minutes := ms / 60000
	if ms%60000 != 0 && ms < 0 {
		minutes-- // floor, not truncate, for negative spans
	}
	return strconv.FormatInt(minutes, 10)
}

// ClockUTC formats an instant as "HH:MM" in UTC, both fields
// zero-padded. Unparseable or absent input yields Unavailable.
func ClockUTC(timestamp string) string {
	t, ok := parseInstant(timestamp)
	if !ok {
		return Unavailable
	}
	return fmt.Sprintf("%02d:%02d", t.UTC().Hour(), t.UTC().Minute())
}

// CalendarPartsUTC returns the UTC day, 1-based month and year of an
// instant. Taking the parts from the arrival instant itself is what
// carries the overnight rollover into responses.
func CalendarPartsUTC(timestamp string) CalendarParts {
	t, ok := parseInstant(timestamp)
	if !ok {
		return CalendarParts{Day: Unavailable, Month: Unavailable, Year: Unavailable}
	}
	u := t.UTC()
	return CalendarParts{
		Day:   strconv.Itoa(u.Day()),
		Month: strconv.Itoa(int(u.Month())),
		Year:  strconv.Itoa(u.Year()),
	}
}

// parseInstant accepts RFC 3339 and the offset-less provider layout.
// Malformed non-sentinel input is treated the same as the sentinel.
func parseInstant(s string) (time.Time, bool) {
	if s == "" || s == Unavailable {
		return time.Time{}, false
	}
	if t, err := time.Parse(LayoutRFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(LayoutNoOffset, s, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}
