package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

// Renderer implements render.Renderer for terminals. It prints the widget
// tree as an indented outline: containers without labels are transparent,
// labelled containers become headings and leaves become single lines.
type Renderer struct {
	styles    Styles
	indent    int
	showHrefs bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the default styles.
func New(options ...Option) *Renderer {
	r := &Renderer{
		styles: DefaultStyles(),
		indent: 2,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the outline of the tree. Member errors are printed under
// the field they belong to; form errors come first.
func (r *Renderer) Render(ctx context.Context, root *widget.Widget, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.New("tui: widget tree is nil")
	}

	var b strings.Builder
	if title := strings.TrimSpace(opts.Title); title != "" {
		b.WriteString(r.styles.Title.Render(title))
		b.WriteString("\n")
	}
	for _, message := range opts.FormErrors {
		b.WriteString(r.styles.Error.Render("! " + message))
		b.WriteString("\n")
	}
	r.writeNode(&b, root, 0, opts)
	return []byte(b.String()), nil
}

func (r *Renderer) writeNode(b *strings.Builder, node *widget.Widget, depth int, opts render.RenderOptions) {
	switch node.Kind {
	case widget.KindField:
		r.writeField(b, node, depth, opts)
		return
	case widget.KindText:
		r.writeText(b, node, depth)
		return
	case widget.KindLink, widget.KindMenuItem, widget.KindButton:
		r.line(b, depth, "- "+r.linkText(node))
		return
	case widget.KindRow:
		cells := make([]string, 0, len(node.Children))
		for _, child := range node.Children {
			cells = append(cells, r.cellText(child))
		}
		r.line(b, depth, "- "+strings.Join(cells, " | "))
		return
	case widget.KindStatusBar:
		r.writeStatus(b, node, depth)
		return
	}

	childDepth := depth
	if heading := r.heading(node); heading != "" {
		r.line(b, depth, heading)
		childDepth = depth + 1
	}
	for _, child := range node.Children {
		r.writeNode(b, child, childDepth, opts)
	}
}

// heading returns the heading line for labelled containers.
func (r *Renderer) heading(node *widget.Widget) string {
	label := strings.TrimSpace(node.Label)
	switch node.Kind {
	case widget.KindTab:
		if label == "" {
			label = node.Name
		}
		return r.styles.Title.Render("[" + label + "]")
	case widget.KindMenu:
		if label == "" {
			return ""
		}
		return r.styles.Heading.Render(label)
	case widget.KindFieldSet, widget.KindTable:
		if label == "" {
			label = node.Name
		}
		if label == "" {
			return ""
		}
		text := r.styles.Heading.Render("# " + label)
		if r.showHrefs && node.Href != "" {
			text += " " + r.styles.Muted.Render("<"+node.Href+">")
		}
		return text
	default:
		if label == "" {
			return ""
		}
		return r.styles.Heading.Render(label)
	}
}

func (r *Renderer) writeField(b *strings.Builder, node *widget.Widget, depth int, opts render.RenderOptions) {
	label := strings.TrimSpace(node.Label)
	if label == "" {
		label = node.Name
	}
	value := node.Value
	if node.Href != "" {
		value = r.styles.Link.Render(value)
		if r.showHrefs {
			value += " " + r.styles.Muted.Render("<"+node.Href+">")
		}
	}
	text := r.styles.Label.Render(label+":") + " " + value
	if reason := node.Attr(widget.AttrDisabled); reason != "" {
		text += " " + r.styles.Muted.Render("("+reason+")")
	}
	r.line(b, depth, text)
	for _, message := range opts.Errors[node.Attr(widget.AttrMember)] {
		r.line(b, depth+1, r.styles.Error.Render("! "+message))
	}
}

func (r *Renderer) writeText(b *strings.Builder, node *widget.Widget, depth int) {
	parts := make([]string, 0, 2)
	if label := strings.TrimSpace(node.Label); label != "" {
		parts = append(parts, r.styles.Label.Render(label))
	}
	if value := strings.TrimSpace(node.Value); value != "" {
		parts = append(parts, value)
	}
	if len(parts) == 0 {
		return
	}
	r.line(b, depth, strings.Join(parts, " "))
}

func (r *Renderer) writeStatus(b *strings.Builder, node *widget.Widget, depth int) {
	if len(node.Children) == 0 {
		return
	}
	parts := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		parts = append(parts, r.cellText(child))
	}
	text := strings.Join(parts, " ")
	switch node.Attr(widget.AttrLevel) {
	case "error":
		text = r.styles.Error.Render(text)
	case "warn":
		text = r.styles.Warn.Render(text)
	default:
		text = r.styles.Muted.Render(text)
	}
	r.line(b, depth, text)
}

func (r *Renderer) linkText(node *widget.Widget) string {
	label := strings.TrimSpace(node.Label)
	if label == "" {
		label = node.Name
	}
	if node.Href == "" {
		return label
	}
	text := r.styles.Link.Render(label)
	if r.showHrefs {
		text += " " + r.styles.Muted.Render("<"+node.Href+">")
	}
	return text
}

func (r *Renderer) cellText(node *widget.Widget) string {
	switch node.Kind {
	case widget.KindLink, widget.KindMenuItem, widget.KindButton:
		return r.linkText(node)
	}
	if value := strings.TrimSpace(node.Value); value != "" {
		return value
	}
	return strings.TrimSpace(node.Label)
}

func (r *Renderer) line(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat(" ", depth*r.indent))
	b.WriteString(text)
	b.WriteString("\n")
}
