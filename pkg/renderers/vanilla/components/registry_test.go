package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-kroviz/pkg/widget"
	"github.com/goliatone/go-kroviz/pkg/widgets"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error { return nil }

	if err := reg.Register("test", Descriptor{Renderer: renderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("TEST ")
	if !ok {
		t.Fatalf("descriptor not found")
	}

	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if len(original.Stylesheets) != 1 || original.Stylesheets[0] != "/a.css" {
		t.Fatalf("registry descriptor mutated: %#v", original.Stylesheets)
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register(" ", Descriptor{Renderer: func(*bytes.Buffer, *widget.Widget, ComponentData) error { return nil }}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register("text", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestRegistryStylesheetsDeduplicates(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, node *widget.Widget, data ComponentData) error { return nil }

	reg.MustRegister("table", Descriptor{
		Renderer:    renderer,
		Stylesheets: []string{"/shared.css", "/table.css"},
	})
	reg.MustRegister("field", Descriptor{
		Renderer:    renderer,
		Stylesheets: []string{"/shared.css", "/field.css"},
	})

	styles := reg.Stylesheets([]string{"table", "field", "missing"})
	want := []string{"/shared.css", "/table.css", "/field.css"}
	if strings.Join(styles, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected stylesheets %v", styles)
	}
}

func TestRegistryCloneIsIsolated(t *testing.T) {
	base := NewDefaultRegistry()
	clone := base.Clone()
	clone.MustRegister("custom", Descriptor{Renderer: func(*bytes.Buffer, *widget.Widget, ComponentData) error { return nil }})

	if _, ok := base.Descriptor("custom"); ok {
		t.Fatalf("clone registration leaked into base registry")
	}
}

func TestDefaultRegistryCoversKindsAndControls(t *testing.T) {
	reg := NewDefaultRegistry()
	kinds := []widget.Kind{
		widget.KindPanel, widget.KindHBox, widget.KindVBox, widget.KindNavbar,
		widget.KindMenu, widget.KindMenuItem, widget.KindIconBar, widget.KindButton,
		widget.KindTabPanel, widget.KindTab, widget.KindFieldSet, widget.KindTable,
		widget.KindRow, widget.KindLink, widget.KindStatusBar, widget.KindText,
	}
	for _, kind := range kinds {
		if _, ok := reg.Descriptor(KindName(kind)); !ok {
			t.Errorf("missing component for kind %s", kind)
		}
	}
	for _, control := range []string{widgets.ControlLink, widgets.ControlDateTime, widgets.ControlCheckbox, widgets.ControlNumber, widgets.ControlTextArea, widgets.ControlText} {
		if _, ok := reg.Descriptor(ControlName(control)); !ok {
			t.Errorf("missing control %s", control)
		}
	}
	if _, ok := reg.Descriptor(NameFieldChrome); !ok {
		t.Errorf("missing field chrome")
	}
}

func TestBoxRendererEscapesAndNests(t *testing.T) {
	root := widget.NewHBox("main").SetAttr(widget.AttrStyle, "width: 100%")
	root.ID = "main"
	root.CSSClass = `wide kv-hbox "x" <b>`
	child := widget.NewVBox("col").SetAttr(widget.AttrSpan, "6")
	child.ID = "col"
	root.AddChild(child)

	var data ComponentData
	data.RenderChild = func(node *widget.Widget) (string, error) {
		var buf bytes.Buffer
		err := boxRenderer("div", "kv-vbox")(&buf, node, data)
		return buf.String(), err
	}

	var buf bytes.Buffer
	if err := boxRenderer("div", "kv-hbox")(&buf, root, data); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div id="main" class="kv-hbox wide" data-name="main" style="width: 100%"><div id="col" class="kv-vbox kv-span-6" data-name="col"></div></div>`
	if buf.String() != want {
		t.Fatalf("unexpected markup\nwant %s\n got %s", want, buf.String())
	}
}

func TestResolveHrefUsesRewriter(t *testing.T) {
	data := ComponentData{Href: func(href string) string { return "/follow?href=" + href }}
	if got := resolveHref(data, " http://x/y "); got != "/follow?href=http://x/y" {
		t.Fatalf("unexpected href %q", got)
	}
	if got := resolveHref(ComponentData{}, "http://x"); got != "http://x" {
		t.Fatalf("expected passthrough without rewriter, got %q", got)
	}
}

func TestDefaultPartialsMatchRegistry(t *testing.T) {
	partials := DefaultPartials()
	if partials["kroviz.field"] != "templates/components/field.tmpl" {
		t.Fatalf("unexpected field partial %q", partials["kroviz.field"])
	}
	if partials["kroviz.control.textarea"] != "templates/components/controls/textarea.tmpl" {
		t.Fatalf("unexpected textarea partial %q", partials["kroviz.control.textarea"])
	}
	reg := NewDefaultRegistry()
	for key := range partials {
		if _, ok := reg.Descriptor(strings.TrimPrefix(key, PartialPrefix)); !ok {
			t.Errorf("partial %q has no component", key)
		}
	}
}
