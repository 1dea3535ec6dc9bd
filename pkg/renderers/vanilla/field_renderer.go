package vanilla

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/goliatone/go-kroviz/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-kroviz/pkg/widget"
	"github.com/goliatone/go-kroviz/pkg/widgets"
)

// renderField renders the control picked for the field and wraps it in the
// field chrome (label, description, disabled reason, errors). Fields that
// were not decorated resolve their control here.
func (s *renderState) renderField(node *widget.Widget) (string, error) {
	control := node.Attr(widget.AttrControl)
	if control == "" {
		control, _ = s.renderer.controls.Resolve(node)
	}
	descriptor, ok := s.renderer.components.Descriptor(components.ControlName(control))
	if !ok {
		descriptor, ok = s.renderer.components.Descriptor(components.ControlName(widgets.ControlText))
		if !ok {
			return "", fmt.Errorf("vanilla renderer: no component for control %q", control)
		}
	}
	s.use(descriptor.Name)

	data := s.componentData()
	data.Errors = s.fieldErrors(node)

	var markup bytes.Buffer
	if err := descriptor.Renderer(&markup, node, data); err != nil {
		return "", fmt.Errorf("vanilla renderer: render control %q for %s: %w", descriptor.Name, node.Name, err)
	}

	chrome, ok := s.renderer.components.Descriptor(components.NameFieldChrome)
	if !ok {
		return markup.String(), nil
	}
	s.use(chrome.Name)

	data.Inner = markup.String()
	var out bytes.Buffer
	if err := chrome.Renderer(&out, withControl(node, control), data); err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %s: %w", node.Name, err)
	}
	return out.String(), nil
}

// withControl returns a shallow copy of the field carrying the resolved
// control so the tree itself is never mutated by rendering.
func withControl(node *widget.Widget, control string) *widget.Widget {
	if node.Attr(widget.AttrControl) == control {
		return node
	}
	clone := *node
	clone.Attrs = maps.Clone(node.Attrs)
	return clone.SetAttr(widget.AttrControl, control)
}
