package decode

import (
	"errors"
)

// Predicate inspects the cursor without consuming it and reports whether the
// payload has the shape a candidate expects.
type Predicate func(Cursor) bool

// DecodeFunc decodes the payload into the candidate's Go representation.
type DecodeFunc func(Cursor) (any, error)

// Candidate pairs a shape predicate with a decode function.
type Candidate struct {
	Name   string
	Match  Predicate
	Decode DecodeFunc
}

// Candidate names used by the built-in constructors.
const (
	NameNull   = "null"
	NameInt32  = "int32"
	NameInt64  = "int64"
	NameString = "string"
)

// Null matches the JSON null literal. Its payload is always nil.
func Null() Candidate {
	return Candidate{
		Name:  NameNull,
		Match: PeekIs('n'),
		Decode: func(cur Cursor) (any, error) {
			var probe any = struct{}{}
			if err := cur.DecodeInto(&probe); err != nil {
				return nil, err
			}
			if probe != nil {
				return nil, errors.New("decode: payload is not null")
			}
			return nil, nil
		},
	}
}

// Int32 matches integer literals that fit in 32 bits.
func Int32() Candidate {
	return Typed[int32](NameInt32, IsNumeric)
}

// Int64 matches integer literals that fit in 64 bits.
func Int64() Candidate {
	return Typed[int64](NameInt64, IsNumeric)
}

// String matches JSON string literals.
func String() Candidate {
	return Typed[string](NameString, PeekIs('"'))
}

// Typed builds a candidate that decodes the payload into T once match accepts
// it. A nil match accepts every payload.
func Typed[T any](name string, match Predicate) Candidate {
	return Candidate{
		Name:  name,
		Match: match,
		Decode: func(cur Cursor) (any, error) {
			var out T
			if err := cur.DecodeInto(&out); err != nil {
				return nil, err
			}
			return out, nil
		},
	}
}

// PeekIs returns a predicate matching payloads whose first significant byte is
// one of the provided bytes.
func PeekIs(first ...byte) Predicate {
	return func(cur Cursor) bool {
		got := cur.Peek()
		for _, b := range first {
			if got == b {
				return true
			}
		}
		return false
	}
}

// IsNumeric matches payloads that start like a JSON number.
func IsNumeric(cur Cursor) bool {
	got := cur.Peek()
	return got == '-' || (got >= '0' && got <= '9')
}
