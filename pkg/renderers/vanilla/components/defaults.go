package components

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-kroviz/pkg/widget"
	"github.com/goliatone/go-kroviz/pkg/widgets"
)

const (
	templatePrefix = "templates/components/"

	// PartialPrefix namespaces the theme partial keys of template components
	// ("kroviz.field", "kroviz.control.link").
	PartialPrefix = "kroviz."
)

var fieldControls = []string{
	widgets.ControlLink,
	widgets.ControlDateTime,
	widgets.ControlCheckbox,
	widgets.ControlNumber,
	widgets.ControlTextArea,
	widgets.ControlText,
}

// DefaultPartials maps the theme partial key of every template component onto
// its bundled template. Themes override entries by key.
func DefaultPartials() map[string]string {
	out := make(map[string]string)
	for name, templateName := range templateComponents() {
		out[PartialPrefix+name] = templateName
	}
	return out
}

func templateComponents() map[string]string {
	out := map[string]string{
		KindName(widget.KindText):     templatePrefix + "text.tmpl",
		KindName(widget.KindLink):     templatePrefix + "link.tmpl",
		KindName(widget.KindButton):   templatePrefix + "button.tmpl",
		KindName(widget.KindMenuItem): templatePrefix + "menuitem.tmpl",
		NameFieldChrome:               templatePrefix + "field.tmpl",
	}
	for _, control := range fieldControls {
		out[ControlName(control)] = templatePrefix + "controls/" + control + ".tmpl"
	}
	return out
}

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer: one per widget kind, the field
// chrome and one per field control.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(KindName(widget.KindPanel), Descriptor{Renderer: boxRenderer("div", "kv-panel")})
	registry.MustRegister(KindName(widget.KindHBox), Descriptor{Renderer: boxRenderer("div", "kv-hbox")})
	registry.MustRegister(KindName(widget.KindVBox), Descriptor{Renderer: boxRenderer("div", "kv-vbox")})
	registry.MustRegister(KindName(widget.KindNavbar), Descriptor{Renderer: boxRenderer("nav", "kv-navbar")})
	registry.MustRegister(KindName(widget.KindIconBar), Descriptor{Renderer: boxRenderer("aside", "kv-iconbar")})
	registry.MustRegister(KindName(widget.KindMenu), Descriptor{Renderer: menuRenderer})
	registry.MustRegister(KindName(widget.KindTabPanel), Descriptor{Renderer: tabPanelRenderer})
	registry.MustRegister(KindName(widget.KindTab), Descriptor{Renderer: tabRenderer})
	registry.MustRegister(KindName(widget.KindFieldSet), Descriptor{Renderer: fieldSetRenderer})
	registry.MustRegister(KindName(widget.KindTable), Descriptor{Renderer: tableRenderer})
	registry.MustRegister(KindName(widget.KindRow), Descriptor{Renderer: rowRenderer})
	registry.MustRegister(KindName(widget.KindStatusBar), Descriptor{Renderer: statusBarRenderer})

	for name, templateName := range templateComponents() {
		registry.MustRegister(name, Descriptor{
			Renderer: templateComponentRenderer(PartialPrefix+name, templateName),
		})
	}

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.ThemePartials != nil {
			if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		rendered, err := data.Template.RenderTemplate(resolvedTemplate, leafPayload(node, data))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// leafPayload flattens a node into template data. Markup that templates
// print unescaped (description, icon, inner) is sanitised or pre-rendered
// here.
func leafPayload(node *widget.Widget, data ComponentData) map[string]any {
	rows := node.Attr(widget.AttrMultiLine)
	if rows == "" {
		rows = "1"
	}
	return map[string]any{
		"id":          node.ID,
		"name":        node.Name,
		"label":       node.Label,
		"value":       node.Value,
		"href":        resolveHref(data, node.Href),
		"icon":        iconMarkup(data, node.Icon),
		"description": sanitize(data, node.Description),
		"class":       sanitizeClassList(node.CSSClass),
		"member":      node.Attr(widget.AttrMember),
		"control":     node.Attr(widget.AttrControl),
		"value_kind":  node.Attr(widget.AttrValueKind),
		"format":      node.Attr(widget.AttrFormat),
		"disabled":    node.Attr(widget.AttrDisabled),
		"method":      node.Attr(widget.AttrMethod),
		"level":       node.Attr(widget.AttrLevel),
		"rows":        rows,
		"checked":     strings.EqualFold(strings.TrimSpace(node.Value), "true"),
		"errors":      data.Errors,
		"inner":       data.Inner,
	}
}

func boxRenderer(tag, class string) Renderer {
	return func(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
		var builder strings.Builder
		classes := []string{class}
		if span := node.Attr(widget.AttrSpan); span != "" {
			classes = append(classes, "kv-span-"+span)
		}
		openTag(&builder, tag, node, classes...)
		if err := writeChildren(&builder, node, data); err != nil {
			return err
		}
		closeTag(&builder, tag)
		buf.WriteString(builder.String())
		return nil
	}
}

func menuRenderer(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
	var builder strings.Builder
	classes := []string{"kv-menu"}
	if level := node.Attr(widget.AttrLevel); level != "" {
		classes = append(classes, "kv-menu-"+level)
	}
	openTag(&builder, "div", node, classes...)
	if label := strings.TrimSpace(node.Label); label != "" {
		builder.WriteString(`<span class="kv-menu-label">`)
		builder.WriteString(html.EscapeString(label))
		builder.WriteString(`</span>`)
	}
	builder.WriteString(`<ul class="kv-menu-items">`)
	for _, child := range node.Children {
		rendered, err := data.RenderChild(child)
		if err != nil {
			return err
		}
		if child.Kind == widget.KindMenuItem {
			builder.WriteString(rendered)
			continue
		}
		builder.WriteString(`<li class="kv-menu-section">`)
		builder.WriteString(rendered)
		builder.WriteString(`</li>`)
	}
	builder.WriteString(`</ul>`)
	closeTag(&builder, "div")
	buf.WriteString(builder.String())
	return nil
}

func tabPanelRenderer(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
	var builder strings.Builder
	openTag(&builder, "div", node, "kv-tabs")
	if len(node.Children) > 0 {
		builder.WriteString(`<ul class="kv-tab-headers" role="tablist">`)
		for _, tab := range node.Children {
			label := strings.TrimSpace(tab.Label)
			if label == "" {
				label = tab.Name
			}
			builder.WriteString(`<li role="tab"><a href="#`)
			builder.WriteString(html.EscapeString(tab.ID))
			builder.WriteString(`">`)
			builder.WriteString(html.EscapeString(label))
			builder.WriteString(`</a></li>`)
		}
		builder.WriteString(`</ul>`)
	}
	if err := writeChildren(&builder, node, data); err != nil {
		return err
	}
	closeTag(&builder, "div")
	buf.WriteString(builder.String())
	return nil
}

func tabRenderer(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
	var builder strings.Builder
	openTag(&builder, "section", node, "kv-tab")
	if label := strings.TrimSpace(node.Label); label != "" {
		builder.WriteString(`<h2 class="kv-tab-title">`)
		if href := resolveHref(data, node.Href); href != "" {
			builder.WriteString(`<a href="`)
			builder.WriteString(html.EscapeString(href))
			builder.WriteString(`">`)
			builder.WriteString(html.EscapeString(label))
			builder.WriteString(`</a>`)
		} else {
			builder.WriteString(html.EscapeString(label))
		}
		builder.WriteString(`</h2>`)
	}
	if err := writeChildren(&builder, node, data); err != nil {
		return err
	}
	closeTag(&builder, "section")
	buf.WriteString(builder.String())
	return nil
}

func fieldSetRenderer(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
	var builder strings.Builder
	openTag(&builder, "fieldset", node, "kv-fieldset")
	label := strings.TrimSpace(node.Label)
	if label == "" {
		label = node.Name
	}
	if label != "" {
		builder.WriteString(`<legend>`)
		builder.WriteString(html.EscapeString(label))
		builder.WriteString(`</legend>`)
	}
	if err := writeChildren(&builder, node, data); err != nil {
		return err
	}
	closeTag(&builder, "fieldset")
	buf.WriteString(builder.String())
	return nil
}

func tableRenderer(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
	var builder strings.Builder
	classes := []string{"kv-table"}
	if style := sanitizeClassList(node.Attr(widget.AttrStyle)); style != "" {
		classes = append(classes, "kv-table-"+style)
	}
	openTag(&builder, "table", node, classes...)
	label := strings.TrimSpace(node.Label)
	if label == "" {
		label = node.Name
	}
	if label != "" {
		builder.WriteString(`<caption>`)
		if href := resolveHref(data, node.Href); href != "" {
			builder.WriteString(`<a href="`)
			builder.WriteString(html.EscapeString(href))
			builder.WriteString(`">`)
			builder.WriteString(html.EscapeString(label))
			builder.WriteString(`</a>`)
		} else {
			builder.WriteString(html.EscapeString(label))
		}
		builder.WriteString(`</caption>`)
	}
	builder.WriteString(`<tbody>`)
	if err := writeChildren(&builder, node, data); err != nil {
		return err
	}
	builder.WriteString(`</tbody>`)
	closeTag(&builder, "table")
	buf.WriteString(builder.String())
	return nil
}

func rowRenderer(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
	var builder strings.Builder
	openTag(&builder, "tr", node, "kv-row")
	for _, child := range node.Children {
		rendered, err := data.RenderChild(child)
		if err != nil {
			return err
		}
		builder.WriteString(`<td>`)
		builder.WriteString(rendered)
		builder.WriteString(`</td>`)
	}
	closeTag(&builder, "tr")
	buf.WriteString(builder.String())
	return nil
}

func statusBarRenderer(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error {
	var builder strings.Builder
	level := sanitizeClassList(node.Attr(widget.AttrLevel))
	if level == "" {
		level = "info"
	}
	openTag(&builder, "footer", node, "kv-statusbar", "kv-level-"+level)
	if err := writeChildren(&builder, node, data); err != nil {
		return err
	}
	closeTag(&builder, "footer")
	buf.WriteString(builder.String())
	return nil
}

func writeChildren(builder *strings.Builder, node *widget.Widget, data ComponentData) error {
	if data.RenderChild == nil {
		return nil
	}
	for _, child := range node.Children {
		rendered, err := data.RenderChild(child)
		if err != nil {
			return err
		}
		builder.WriteString(rendered)
	}
	return nil
}

// openTag writes the opening tag with id, classes, data-name and any inline
// style set on the node.
func openTag(builder *strings.Builder, tag string, node *widget.Widget, classes ...string) {
	if extra := sanitizeClassList(node.CSSClass); extra != "" {
		classes = append(classes, extra)
	}
	builder.WriteString(`<`)
	builder.WriteString(tag)
	if node.ID != "" {
		builder.WriteString(` id="`)
		builder.WriteString(html.EscapeString(node.ID))
		builder.WriteString(`"`)
	}
	builder.WriteString(` class="`)
	builder.WriteString(html.EscapeString(strings.Join(classes, " ")))
	builder.WriteString(`"`)
	if name := strings.TrimSpace(node.Name); name != "" {
		builder.WriteString(` data-name="`)
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`"`)
	}
	if style := node.Attr(widget.AttrStyle); style != "" && node.Kind != widget.KindTable {
		builder.WriteString(` style="`)
		builder.WriteString(html.EscapeString(style))
		builder.WriteString(`"`)
	}
	builder.WriteString(`>`)
}

func closeTag(builder *strings.Builder, tag string) {
	builder.WriteString(`</`)
	builder.WriteString(tag)
	builder.WriteString(`>`)
}

func resolveHref(data ComponentData, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || data.Href == nil {
		return href
	}
	return data.Href(href)
}

func sanitize(data ComponentData, markup string) string {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return ""
	}
	if data.Sanitize == nil {
		return html.EscapeString(markup)
	}
	return data.Sanitize(markup)
}

func iconMarkup(data ComponentData, icon string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" || data.Icon == nil {
		return ""
	}
	return data.Icon(icon)
}

// sanitizeClassList keeps tokens that are safe inside a class attribute and
// drops the renderer's own kv- prefix so content cannot restyle chrome.
func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "kv-") || !classToken(token) {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func classToken(token string) bool {
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return token != ""
}
