package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-kroviz/pkg/render"
	rendertemplate "github.com/goliatone/go-kroviz/pkg/render/template"
	gotemplate "github.com/goliatone/go-kroviz/pkg/render/template/gotemplate"
	"github.com/goliatone/go-kroviz/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-kroviz/pkg/widget"
	"github.com/goliatone/go-kroviz/pkg/widgets"
)

const (
	pageTemplate = "templates/page.tmpl"
	defaultTitle = "kroviz"

	// PartialPage overrides the page shell through theme partials.
	PartialPage = "kroviz.page"
)

// DefaultPartials lists every theme partial key the renderer honours with
// the bundled template it falls back to.
func DefaultPartials() map[string]string {
	partials := components.DefaultPartials()
	partials[PartialPage] = pageTemplate
	return partials
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	controls         *widgets.Registry
	linkPrefix       string
	stylesheets      []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry. The
// registry is cloned so later mutations by the caller do not leak in.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry.Clone()
		}
	}
}

// WithControlRegistry sets the registry used for fields that reach the
// renderer without a resolved control.
func WithControlRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.controls = registry
		}
	}
}

// WithLinkPrefix rewrites absolute backend hrefs as prefix+escaped(href),
// for example "/follow?href=".
func WithLinkPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.linkPrefix = strings.TrimSpace(prefix)
	}
}

// WithStylesheet links an external stylesheet from the page head.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into the page head.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer renders a composed widget tree as an HTML page.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	components   *components.Registry
	controls     *widgets.Registry
	href         func(string) string
	stylesheets  []string
	inlineStyles bool
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.controls == nil {
		cfg.controls = widgets.NewRegistry()
	}

	return &Renderer{
		templates:    renderer,
		components:   cfg.components,
		controls:     cfg.controls,
		href:         followHref(cfg.linkPrefix),
		stylesheets:  cfg.stylesheets,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render walks the tree, renders every node through its component and wraps
// the body in the page shell. The tree is not modified.
func (r *Renderer) Render(ctx context.Context, root *widget.Widget, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if root == nil {
		return nil, fmt.Errorf("vanilla renderer: widget tree is nil")
	}

	state := &renderState{
		ctx:      ctx,
		renderer: r,
		options:  options,
		used:     make(map[string]struct{}),
	}
	if options.Theme != nil {
		state.partials = options.Theme.Partials
	}

	body, err := state.render(root)
	if err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(state.pageTemplate(), r.pageData(root, options, body, state.usedNames()))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) pageData(root *widget.Widget, options render.RenderOptions, body string, used []string) map[string]any {
	stylesheets := append([]string(nil), r.stylesheets...)
	stylesheets = append(stylesheets, r.components.Stylesheets(used)...)

	data := map[string]any{
		"title":       pageTitle(root, options.Title),
		"body":        body,
		"stylesheets": stylesheets,
		"form_errors": options.FormErrors,
	}
	if r.inlineStyles {
		data["inline_css"] = defaultStylesheet()
	}
	if cfg := options.Theme; cfg != nil {
		data["theme"] = cfg.Theme
		data["variant"] = cfg.Variant
		data["css_vars"] = cssVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			if href := strings.TrimSpace(cfg.AssetURL(StylesheetName)); href != "" {
				data["stylesheets"] = append(stylesheets, href)
			}
		}
	}
	return data
}

// pageTitle prefers the explicit title, then the first labelled tab.
func pageTitle(root *widget.Widget, title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	tabs := root.Find(func(node *widget.Widget) bool {
		return node.Kind == widget.KindTab && strings.TrimSpace(node.Label) != ""
	})
	if len(tabs) > 0 {
		return tabs[0].Label
	}
	return defaultTitle
}

type renderState struct {
	ctx      context.Context
	renderer *Renderer
	options  render.RenderOptions
	partials map[string]string
	used     map[string]struct{}
	order    []string
}

func (s *renderState) render(node *widget.Widget) (string, error) {
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	if node.Kind == widget.KindField {
		return s.renderField(node)
	}

	descriptor, ok := s.renderer.components.Descriptor(components.KindName(node.Kind))
	if !ok {
		return "", fmt.Errorf("vanilla renderer: no component registered for kind %q", node.Kind)
	}
	s.use(descriptor.Name)

	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, node, s.componentData()); err != nil {
		return "", fmt.Errorf("vanilla renderer: render %s %q: %w", node.Kind, node.Name, err)
	}
	return buf.String(), nil
}

func (s *renderState) componentData() components.ComponentData {
	return components.ComponentData{
		Template:      s.renderer.templates,
		ThemePartials: s.partials,
		RenderChild:   s.render,
		Href:          s.renderer.href,
		Sanitize:      sanitizeDescription,
		Icon:          iconHTML,
	}
}

func (s *renderState) fieldErrors(node *widget.Widget) []string {
	member := node.Attr(widget.AttrMember)
	if member == "" || len(s.options.Errors) == 0 {
		return nil
	}
	return s.options.Errors[member]
}

func (s *renderState) use(name string) {
	if _, seen := s.used[name]; seen {
		return
	}
	s.used[name] = struct{}{}
	s.order = append(s.order, name)
}

func (s *renderState) usedNames() []string {
	return s.order
}

func (s *renderState) pageTemplate() string {
	if candidate := strings.TrimSpace(s.partials[PartialPage]); candidate != "" {
		return candidate
	}
	return pageTemplate
}
