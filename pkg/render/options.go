package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the widget tree.
type RenderOptions struct {
	// Title is used for the document title. Renderers fall back to the label
	// of the first content tab.
	Title string
	// Theme carries the resolved go-theme selection: tokens, CSS variables,
	// partial overrides and an asset resolver.
	Theme *theme.RendererConfig
	// Errors surfaces server-side invalid reasons keyed by member id. Field
	// widgets bound to the member show them inline.
	Errors map[string][]string
	// FormErrors are shown above the content when no member matches.
	FormErrors []string
}
