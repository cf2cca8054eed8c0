package entity

// OptionalTriState distinguishes a patch field that was omitted from
// one that was explicitly sent, including an explicit null. Only Set
// fields are written to the record; a Set field with TriUnknown is a
// deliberate clear.
type OptionalTriState struct {
	Set   bool
	Value TriState
}

// UnmarshalJSON is only invoked for fields present in the payload, so
// reaching it at all marks the field as set.
func (o *OptionalTriState) UnmarshalJSON(data []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(data)
}

// SeatClassPatch is the per-date fragment of an availability patch.
type SeatClassPatch struct {
	Economy  OptionalTriState `json:"economy"`
	Business OptionalTriState `json:"business"`
}

// AvailabilityPatch maps date-keys to partial seat-class updates. A
// date present with no fields still forces an empty entry to exist.
type AvailabilityPatch map[string]SeatClassPatch
