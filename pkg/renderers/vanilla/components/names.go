package components

import (
	"strings"

	"github.com/goliatone/go-kroviz/pkg/widget"
)

// Chrome components wrap other markup rather than mapping onto a widget kind.
const (
	NameFieldChrome = "field"
	controlPrefix   = "control."
)

// ControlName is the registry key of a field control ("control.link").
func ControlName(control string) string {
	return controlPrefix + strings.ToLower(strings.TrimSpace(control))
}

// KindName is the registry key of a widget kind.
func KindName(kind widget.Kind) string {
	return string(kind)
}
