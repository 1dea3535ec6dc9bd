package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-kroviz/pkg/page"
	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/renderers/vanilla"
	"github.com/goliatone/go-kroviz/pkg/widget"
	"github.com/goliatone/go-kroviz/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against the composed page
// before rendering, after the control decorator.
func WithDecorators(decorators ...widget.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithControlRegistry replaces the registry that picks field controls.
func WithControlRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.controls = registry
	}
}

// WithShortcuts sets the icon bar entries shown on every page.
func WithShortcuts(shortcuts ...page.Shortcut) Option {
	return func(o *Orchestrator) {
		o.shortcuts = append([]page.Shortcut(nil), shortcuts...)
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from RO payloads to rendered output.
// It applies the built-in defaults (vanilla renderer, control decorator)
// while remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	decorators      []widget.Decorator
	controls        *widgets.Registry
	shortcuts       []page.Shortcut
	logger          *zap.Logger
	initialiseErr   error

	themeSelector  theme.ThemeSelector
	themeName      string
	themeVariant   string
	themeFallbacks map[string]string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one page to render.
type Request struct {
	// Content is what the tabs show. Raw payloads are decoded first.
	Content Content
	Raw     Payloads

	// Status is shown in the status bar.
	Status page.Status

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the configured theme defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request data such as invalid reasons. A theme
	// resolved by the orchestrator replaces RenderOptions.Theme.
	RenderOptions render.RenderOptions
}

// Page is a composed widget tree with the options it renders with.
type Page struct {
	Root    *widget.Widget
	Options render.RenderOptions
}

// Rendered is renderer output with its media type.
type Rendered struct {
	Body        []byte
	ContentType string
}

// Generate composes the page and renders it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	p, err := o.Compose(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := o.Render(ctx, p, req.Renderer)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Render renders a composed page. An empty name picks the default renderer.
func (o *Orchestrator) Render(ctx context.Context, p Page, rendererName string) (Rendered, error) {
	if p.Root == nil {
		return Rendered{}, errors.New("orchestrator: page has no widget tree")
	}
	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return Rendered{}, err
	}

	started := time.Now()
	output, err := renderer.Render(ctx, p.Root, p.Options)
	if err != nil {
		return Rendered{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("page rendered",
		zap.String("renderer", renderer.Name()),
		zap.Int("bytes", len(output)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return Rendered{Body: output, ContentType: renderer.ContentType()}, nil
}

// Compose runs every stage except rendering: decode, layout, page
// composition, decorators and theme resolution.
func (o *Orchestrator) Compose(ctx context.Context, req Request) (Page, error) {
	if ctx == nil {
		return Page{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Page{}, err
	}

	content, err := req.Content.decode(req.Raw)
	if err != nil {
		return Page{}, err
	}
	tabs, err := content.tabs()
	if err != nil {
		return Page{}, err
	}

	parts := page.Parts{
		IconBar:   page.IconBar(o.shortcuts...),
		Tabs:      page.Tabs(tabs...),
		StatusBar: page.StatusBar(req.Status),
	}
	if content.Menubars != nil {
		parts.MenuBar = page.MenuBar(*content.Menubars)
	}
	root := page.Build(parts)

	if err := o.applyDecorators(root); err != nil {
		return Page{}, err
	}

	options := req.RenderOptions
	cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return Page{}, err
	}
	if cfg != nil {
		options.Theme = cfg
	}
	return Page{Root: root, Options: options}, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(root *widget.Widget) error {
	if o.controls != nil {
		if err := o.controls.Decorate(root); err != nil {
			return fmt.Errorf("orchestrator: decorate controls: %w", err)
		}
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(root); err != nil {
			return fmt.Errorf("orchestrator: decorate page: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.controls == nil {
		o.controls = widgets.NewRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithControlRegistry(o.controls))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
}
