package kroviz

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-kroviz/pkg/orchestrator"
	"github.com/goliatone/go-kroviz/pkg/render"
)

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Content aliases orchestrator.Content.
type Content = orchestrator.Content

// Payloads aliases orchestrator.Payloads.
type Payloads = orchestrator.Payloads

// RenderOptions describes per-request overrides that renderers can use to
// surface server-side validation errors or a theme.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML decodes the raw RO payloads and renders them with the named
// renderer. It is the simplest entry point for callers that already hold
// response bodies.
func GenerateHTML(ctx context.Context, payloads Payloads, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Raw:      payloads,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromContent renders already decoded representations.
func GenerateHTMLFromContent(ctx context.Context, content Content, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Content:  content,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeManifests registers theme manifests and selects among them,
// starting from the given theme and variant.
func WithThemeManifests(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) []orchestrator.Option {
	return []orchestrator.Option{
		orchestrator.WithThemeManifests(manifests...),
		orchestrator.WithThemeDefaults(defaultTheme, defaultVariant),
	}
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
