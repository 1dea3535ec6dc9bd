// Package template defines the template engine seam used by HTML renderers.
// The gotemplate sub-package provides the pongo2-backed implementation.
package template
