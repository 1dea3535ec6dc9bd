// Package widget is the toolkit-neutral widget tree produced by layout
// building and page composition and consumed by renderers.
package widget

import (
	"strings"

	"github.com/google/uuid"
)

// Kind selects how a renderer draws a widget.
type Kind string

const (
	KindPanel     Kind = "panel"
	KindHBox      Kind = "hbox"
	KindVBox      Kind = "vbox"
	KindNavbar    Kind = "navbar"
	KindMenu      Kind = "menu"
	KindMenuItem  Kind = "menuitem"
	KindIconBar   Kind = "iconbar"
	KindButton    Kind = "button"
	KindTabPanel  Kind = "tabpanel"
	KindTab       Kind = "tab"
	KindFieldSet  Kind = "fieldset"
	KindField     Kind = "field"
	KindTable     Kind = "table"
	KindRow       Kind = "row"
	KindLink      Kind = "link"
	KindStatusBar Kind = "statusbar"
	KindText      Kind = "text"
)

// Attribute keys shared by builders, decorators and renderers.
const (
	AttrMember    = "member"
	AttrControl   = "control"
	AttrValueKind = "valueKind"
	AttrFormat    = "format"
	AttrDisabled  = "disabled"
	AttrMultiLine = "multiLine"
	AttrSpan      = "span"
	AttrStyle     = "style"
	AttrMethod    = "method"
	AttrLevel     = "level"
)

// Widget is one node of the tree. Containers hold children; leaves carry a
// label, a display value and optionally an href.
type Widget struct {
	ID          string            `json:"id"`
	Kind        Kind              `json:"kind"`
	Name        string            `json:"name,omitempty"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	CSSClass    string            `json:"cssClass,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Value       string            `json:"value,omitempty"`
	Href        string            `json:"href,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
	Children    []*Widget         `json:"children,omitempty"`
}

// New creates a widget with a generated id.
func New(kind Kind, name string) *Widget {
	return &Widget{
		ID:   NewID(),
		Kind: kind,
		Name: name,
	}
}

// NewID returns a DOM-safe unique identifier.
func NewID() string {
	return "kv-" + uuid.NewString()
}

func NewPanel(name string) *Widget     { return New(KindPanel, name) }
func NewHBox(name string) *Widget      { return New(KindHBox, name) }
func NewVBox(name string) *Widget      { return New(KindVBox, name) }
func NewTabPanel(name string) *Widget  { return New(KindTabPanel, name) }
func NewStatusBar(name string) *Widget { return New(KindStatusBar, name) }
func NewNavbar(name string) *Widget    { return New(KindNavbar, name) }
func NewIconBar(name string) *Widget   { return New(KindIconBar, name) }

// NewText creates a text leaf.
func NewText(name, value string) *Widget {
	w := New(KindText, name)
	w.Value = value
	return w
}

// NewLink creates a link leaf.
func NewLink(label, href string) *Widget {
	w := New(KindLink, label)
	w.Label = label
	w.Href = href
	return w
}

// AddChild appends children in order, skipping nils, and returns w.
func (w *Widget) AddChild(children ...*Widget) *Widget {
	for _, child := range children {
		if child == nil {
			continue
		}
		w.Children = append(w.Children, child)
	}
	return w
}

// SetAttr sets an attribute and returns w. Empty values remove the key.
func (w *Widget) SetAttr(key, value string) *Widget {
	key = strings.TrimSpace(key)
	if key == "" {
		return w
	}
	if value == "" {
		delete(w.Attrs, key)
		return w
	}
	if w.Attrs == nil {
		w.Attrs = make(map[string]string)
	}
	w.Attrs[key] = value
	return w
}

// Attr returns an attribute value or "".
func (w *Widget) Attr(key string) string {
	if w == nil {
		return ""
	}
	return w.Attrs[key]
}

// Walk visits w and its descendants depth-first in child order. Returning
// false from fn skips the node's children.
func (w *Widget) Walk(fn func(node *Widget, depth int) bool) {
	w.walk(fn, 0)
}

func (w *Widget) walk(fn func(node *Widget, depth int) bool, depth int) {
	if w == nil {
		return
	}
	if !fn(w, depth) {
		return
	}
	for _, child := range w.Children {
		child.walk(fn, depth+1)
	}
}

// Find returns every node (including w) that matches.
func (w *Widget) Find(match func(*Widget) bool) []*Widget {
	var out []*Widget
	w.Walk(func(node *Widget, _ int) bool {
		if match(node) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Count returns the number of nodes of the given kind in the subtree.
func (w *Widget) Count(kind Kind) int {
	return len(w.Find(func(node *Widget) bool { return node.Kind == kind }))
}

// ChildKinds lists the kinds of the immediate children.
func (w *Widget) ChildKinds() []Kind {
	out := make([]Kind, 0, len(w.Children))
	for _, child := range w.Children {
		out = append(out, child.Kind)
	}
	return out
}
