package layout

import (
	"errors"
	"fmt"
)

// ErrMalformedLayout marks layout documents that cannot be turned into a
// widget tree. It aborts rendering of the response that carried it.
var ErrMalformedLayout = errors.New("layout: malformed layout")

// MalformedLayoutError locates a structural problem in a layout document.
type MalformedLayoutError struct {
	// Path points at the offending node, e.g. row[1].col[0].tabGroup[0].tab[2].
	Path   string
	Reason string
	Err    error
}

func (e *MalformedLayoutError) Error() string {
	msg := "layout: malformed layout"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedLayoutError) Unwrap() error {
	return e.Err
}

func (e *MalformedLayoutError) Is(target error) bool {
	return target == ErrMalformedLayout
}

func malformed(path, format string, args ...any) *MalformedLayoutError {
	return &MalformedLayoutError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
