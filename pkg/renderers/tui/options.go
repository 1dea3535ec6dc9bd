package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles controls how outline elements are decorated.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Link    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warn    lipgloss.Style
}

// DefaultStyles uses adaptive colours that read on light and dark terminals.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
			Bold(true),
		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}).
			Bold(true),
		Label: lipgloss.NewStyle().Bold(true),
		Link: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}).
			Underline(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true),
		Warn: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}),
	}
}

// PlainStyles leaves text undecorated; useful for logs and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Heading: plain,
		Label:   plain,
		Link:    plain,
		Muted:   plain,
		Error:   plain,
		Warn:    plain,
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithStyles overrides the outline styles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithIndent sets the number of spaces per nesting level.
func WithIndent(spaces int) Option {
	return func(r *Renderer) {
		if spaces >= 0 {
			r.indent = spaces
		}
	}
}

// WithHrefs prints link targets after linked values.
func WithHrefs(show bool) Option {
	return func(r *Renderer) {
		r.showHrefs = show
	}
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithPromptDriver overrides the prompt driver used by the navigator.
func WithPromptDriver(driver PromptDriver) NavigatorOption {
	return func(n *Navigator) {
		if driver != nil {
			n.driver = driver
		}
	}
}

// WithRenderer sets the renderer used to print pages before prompting.
func WithRenderer(renderer *Renderer) NavigatorOption {
	return func(n *Navigator) {
		if renderer != nil {
			n.renderer = renderer
		}
	}
}

// WithOutput sets where pages are printed.
func WithOutput(out io.Writer) NavigatorOption {
	return func(n *Navigator) {
		if out != nil {
			n.out = out
		}
	}
}
