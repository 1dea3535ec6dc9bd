package widgets

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-kroviz/pkg/ro"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

// Built-in control identifiers exposed by the registry.
const (
	ControlLink     = "link"
	ControlDateTime = "datetime"
	ControlCheckbox = "checkbox"
	ControlNumber   = "number"
	ControlTextArea = "textarea"
	ControlText     = "text"
)

// Matcher decides whether a control should render the supplied field.
type Matcher func(field *widget.Widget) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects the control used for a bound field based on explicit
// hints or registered matchers. Higher priority wins; ties fall back to
// registration order. An empty registry never resolves a control.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority. Callers
// should avoid duplicate names; the latest registration wins during
// resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the control name for a field. An explicit control
// attribute is honoured before matcher evaluation.
func (r *Registry) Resolve(field *widget.Widget) (string, bool) {
	if field == nil {
		return "", false
	}
	if explicit := strings.TrimSpace(field.Attr(widget.AttrControl)); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements widget.Decorator, setting the control attribute of
// every field in the tree. Existing values are preserved.
func (r *Registry) Decorate(root *widget.Widget) error {
	if r == nil || root == nil {
		return nil
	}
	root.Walk(func(node *widget.Widget, _ int) bool {
		if node.Kind != widget.KindField {
			return true
		}
		if control, ok := r.Resolve(node); ok {
			node.SetAttr(widget.AttrControl, control)
		}
		return true
	})
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(ControlLink, 90, func(field *widget.Widget) bool {
		return field.Attr(widget.AttrValueKind) == string(ro.KindLink)
	})

	r.Register(ControlDateTime, 80, func(field *widget.Widget) bool {
		if field.Attr(widget.AttrValueKind) == string(ro.KindLong) {
			return true
		}
		format := normalisedFormat(field)
		return strings.Contains(format, "date") || strings.Contains(format, "timestamp")
	})

	r.Register(ControlCheckbox, 70, func(field *widget.Widget) bool {
		return normalisedFormat(field) == "boolean"
	})

	r.Register(ControlNumber, 60, func(field *widget.Widget) bool {
		if field.Attr(widget.AttrValueKind) == string(ro.KindInt) {
			return true
		}
		switch normalisedFormat(field) {
		case "int", "long", "short", "byte", "double", "float", "decimal", "big-integer", "big-decimal":
			return true
		}
		return false
	})

	r.Register(ControlTextArea, 50, func(field *widget.Widget) bool {
		lines, err := strconv.Atoi(field.Attr(widget.AttrMultiLine))
		return err == nil && lines > 1
	})

	r.Register(ControlText, 0, func(*widget.Widget) bool {
		return true
	})
}

func normalisedFormat(field *widget.Widget) string {
	return strings.TrimSpace(strings.ToLower(field.Attr(widget.AttrFormat)))
}
