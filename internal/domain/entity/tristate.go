package entity

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// TriState is a three-valued seat-class flag. The zero value is
// TriUnknown, so a missing document field decodes to "unknown" without
// special casing.
type TriState uint8

const (
	TriUnknown TriState = iota
	TriYes
	TriNo
)

// String returns the debug form of the flag.
func (t TriState) String() string {
	switch t {
	case TriYes:
		return "true"
	case TriNo:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes TriYes/TriNo as JSON booleans and TriUnknown as
// null, matching the wire shape of the stored documents.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriYes:
		return []byte("true"), nil
	case TriNo:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false or null.
func (t *TriState) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TriUnknown
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("tri-state must be true, false or null: %w", err)
	}
	if b {
		*t = TriYes
	} else {
		*t = TriNo
	}
	return nil
}

// MarshalBSONValue stores the flag as a BSON boolean, or null for
// TriUnknown, keeping documents readable from the shell.
func (t TriState) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch t {
	case TriYes:
		return bson.MarshalValue(true)
	case TriNo:
		return bson.MarshalValue(false)
	default:
		return bson.TypeNull, nil, nil
	}
}

// UnmarshalBSONValue accepts boolean, null or undefined.
func (t *TriState) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	switch bt {
	case bson.TypeBoolean:
		rv := bson.RawValue{Type: bt, Value: data}
		b, ok := rv.BooleanOK()
		if !ok {
			return fmt.Errorf("invalid boolean bson value")
		}
		if b {
			*t = TriYes
		} else {
			*t = TriNo
		}
		return nil
	case bson.TypeNull, bson.TypeUndefined:
		*t = TriUnknown
		return nil
	default:
		return fmt.Errorf("cannot decode bson type %s into tri-state", bt)
	}
}
