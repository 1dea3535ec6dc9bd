package decode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShapeMismatch marks a candidate that does not match the payload's
	// shape. The resolver recovers it locally and tries the next candidate.
	ErrShapeMismatch = errors.New("decode: shape mismatch")
	// ErrUnrecognizedScalar is returned when no candidate, including the raw
	// text fallback, accepts the payload.
	ErrUnrecognizedScalar = errors.New("decode: unrecognized scalar shape")
)

// ShapeMismatchError records why a single candidate rejected the payload.
type ShapeMismatchError struct {
	Candidate string
	Err       error
}

func (e *ShapeMismatchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode: candidate %q: shape mismatch", e.Candidate)
	}
	return fmt.Sprintf("decode: candidate %q: %v", e.Candidate, e.Err)
}

func (e *ShapeMismatchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrShapeMismatch regardless of the wrapped cause.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// UnrecognizedScalarError carries the raw payload (when the cursor exposes it)
// and every rejected attempt.
type UnrecognizedScalarError struct {
	Raw      string
	Attempts []*ShapeMismatchError
	Reason   string
}

func (e *UnrecognizedScalarError) Error() string {
	var b strings.Builder
	b.WriteString(ErrUnrecognizedScalar.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if raw := truncate(e.Raw, 64); raw != "" {
		b.WriteString(" (payload ")
		b.WriteString(raw)
		b.WriteString(")")
	}
	if len(e.Attempts) > 0 {
		names := make([]string, 0, len(e.Attempts))
		for _, attempt := range e.Attempts {
			names = append(names, attempt.Candidate)
		}
		b.WriteString(" tried [")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("]")
	}
	return b.String()
}

func (e *UnrecognizedScalarError) Is(target error) bool {
	return target == ErrUnrecognizedScalar
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
