package page_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-kroviz/pkg/layout"
	"github.com/goliatone/go-kroviz/pkg/page"
	"github.com/goliatone/go-kroviz/pkg/ro"
	"github.com/goliatone/go-kroviz/pkg/testsupport"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

func TestBuild_CompositionOrder(t *testing.T) {
	menu := page.MenuBar(testsupport.MustMenubars(t))
	icons := page.IconBar(page.Shortcut{Label: "Home", Icon: "fa-home", Href: "/"})
	tabs := page.Tabs(widget.NewText("welcome", "hello"))
	status := page.StatusBar(page.Status{Message: "ready"})

	root := page.Build(page.Parts{MenuBar: menu, IconBar: icons, Tabs: tabs, StatusBar: status})

	if root.Kind != widget.KindPanel || root.Name != page.NameRoot {
		t.Fatalf("unexpected root %s %s", root.Kind, root.Name)
	}
	if diff := cmp.Diff([]widget.Kind{widget.KindNavbar, widget.KindHBox, widget.KindStatusBar}, root.ChildKinds()); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}
	main := root.Children[1]
	if main.Name != page.NameMain || main.Attr(widget.AttrStyle) != "width: 100%" {
		t.Fatalf("unexpected main box %+v", main)
	}
	if main.Children[0] != icons || main.Children[1] != tabs {
		t.Fatalf("expected icon bar then tabs inside main")
	}
	if root.Children[0] != menu || root.Children[2] != status {
		t.Fatalf("expected supplied parts to be mounted as-is")
	}
}

func TestBuild_NilPartsAreEmptyRegions(t *testing.T) {
	root := page.Build(page.Parts{})

	if diff := cmp.Diff([]widget.Kind{widget.KindNavbar, widget.KindHBox, widget.KindStatusBar}, root.ChildKinds()); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]widget.Kind{widget.KindIconBar, widget.KindTabPanel}, root.Children[1].ChildKinds()); diff != "" {
		t.Fatalf("main children mismatch (-want +got):\n%s", diff)
	}
	root.Walk(func(node *widget.Widget, depth int) bool {
		if depth > 0 && node.Kind != widget.KindHBox && len(node.Children) > 0 {
			t.Fatalf("expected empty region %s", node.Name)
		}
		return true
	})
}

func TestBuild_IndependentTrees(t *testing.T) {
	a := page.Build(page.Parts{})
	b := page.Build(page.Parts{})
	if a == b || a.ID == b.ID {
		t.Fatalf("each call must build a fresh tree")
	}
}

func TestMenuBar(t *testing.T) {
	nav := page.MenuBar(testsupport.MustMenubars(t))

	if len(nav.Children) != 2 {
		t.Fatalf("expected primary and tertiary menus, got %d", len(nav.Children))
	}
	objects := nav.Children[0]
	if objects.Label != "Simple Objects" || objects.Attr(widget.AttrLevel) != "primary" {
		t.Fatalf("unexpected menu %+v", objects)
	}
	var labels []string
	for _, item := range objects.Children {
		labels = append(labels, item.Label)
	}
	if diff := cmp.Diff([]string{"Create", "List All"}, labels); diff != "" {
		t.Fatalf("menu items mismatch (-want +got):\n%s", diff)
	}
	if got := objects.Children[1].Attr(widget.AttrMethod); got != "GET" {
		t.Fatalf("expected GET method, got %q", got)
	}

	logout := nav.Children[1].Children[0]
	if logout.Href != "" || logout.Attr(widget.AttrLevel) != "" {
		t.Fatalf("expected logout without link, got %+v", logout)
	}
	if nav.Children[1].Attr(widget.AttrLevel) != "tertiary" {
		t.Fatalf("expected tertiary menu")
	}
}

func TestStatusBar(t *testing.T) {
	bar := page.StatusBar(page.Status{Level: page.LevelError, Message: "boom", URL: "http://x"})
	if bar.Attr(widget.AttrLevel) != page.LevelError {
		t.Fatalf("expected error level")
	}
	if diff := cmp.Diff([]widget.Kind{widget.KindText, widget.KindLink}, bar.ChildKinds()); diff != "" {
		t.Fatalf("status children mismatch (-want +got):\n%s", diff)
	}
	if page.StatusBar(page.Status{}).Attr(widget.AttrLevel) != page.LevelInfo {
		t.Fatalf("expected info level by default")
	}
}

func TestTabs_WrapsNonTabs(t *testing.T) {
	tab := widget.New(widget.KindTab, "existing")
	text := widget.NewText("note", "x")
	text.Label = "Note"

	panel := page.Tabs(tab, nil, text)

	if len(panel.Children) != 2 || panel.Children[0] != tab {
		t.Fatalf("unexpected tabs %+v", panel.Children)
	}
	wrapped := panel.Children[1]
	if wrapped.Kind != widget.KindTab || wrapped.Label != "Note" || wrapped.Children[0] != text {
		t.Fatalf("expected text wrapped in a tab, got %+v", wrapped)
	}
}

func fieldsByMember(root *widget.Widget) map[string]*widget.Widget {
	out := map[string]*widget.Widget{}
	for _, node := range root.Find(func(w *widget.Widget) bool { return w.Kind == widget.KindField }) {
		out[node.Attr(widget.AttrMember)] = node
	}
	return out
}

func TestObjectTab_BindsValues(t *testing.T) {
	obj := testsupport.MustObject(t)
	tab := page.ObjectTab(obj, testsupport.MustGrid(t, testsupport.LayoutJSON))

	if tab.Kind != widget.KindTab || tab.Label != "Fred" {
		t.Fatalf("unexpected tab %+v", tab)
	}
	if tab.Count(widget.KindButton) != 0 {
		t.Fatalf("object tabs never contain action buttons")
	}

	fields := fieldsByMember(tab)
	type bound struct{ Label, Value, Kind, Href, Disabled string }
	got := map[string]bound{}
	for id, field := range fields {
		got[id] = bound{
			Label:    field.Label,
			Value:    field.Value,
			Kind:     field.Attr(widget.AttrValueKind),
			Href:     field.Href,
			Disabled: field.Attr(widget.AttrDisabled),
		}
	}
	want := map[string]bound{
		"name":      {Label: "Name", Value: "Fred", Kind: "string"},
		"notes":     {Label: "Notes", Kind: "none", Disabled: "Always disabled"},
		"version":   {Label: "version", Value: "3", Kind: "int"},
		"createdAt": {Label: "Created", Value: "2018-01-01 00:00:00", Kind: "long"},
		"owner":     {Label: "Owner", Value: "Ada", Kind: "link", Href: "http://localhost:8080/restful/objects/simple.Person/7"},
		"price":     {Label: "price", Value: "12.5", Kind: "string"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bound fields mismatch (-want +got):\n%s", diff)
	}
	if fields["price"].Attr(widget.AttrFormat) != "decimal" {
		t.Fatalf("expected decimal format on price")
	}

	tables := tab.Find(func(w *widget.Widget) bool { return w.Kind == widget.KindTable })
	if len(tables) != 1 || tables[0].Href == "" {
		t.Fatalf("expected children table bound to details link, got %+v", tables)
	}

	headers := tab.Find(func(w *widget.Widget) bool { return w.Name == layout.NameHeader })
	if len(headers) != 1 || headers[0].Value != "Fred" {
		t.Fatalf("expected header bound to title, got %+v", headers)
	}
}

func TestObjectTab_DefaultGrid(t *testing.T) {
	obj := testsupport.MustObject(t)
	tab := page.ObjectTab(obj, layout.Grid{})

	var ids []string
	for _, field := range tab.Find(func(w *widget.Widget) bool { return w.Kind == widget.KindField }) {
		ids = append(ids, field.Attr(widget.AttrMember))
	}
	want := []string{"createdAt", "name", "notes", "owner", "price", "version"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("default field order mismatch (-want +got):\n%s", diff)
	}
	if tab.Count(widget.KindTable) != 1 {
		t.Fatalf("expected one collection table")
	}
	if err := page.DefaultGrid(obj).Validate(); err != nil {
		t.Fatalf("default grid must validate: %v", err)
	}
}

func TestListTab(t *testing.T) {
	result, err := ro.ParseActionResult(testsupport.MustFixture(t, testsupport.ListResultFixture))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	list, err := result.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	tab := page.ListTab("", list)
	if tab.Label != "Simple Objects" {
		t.Fatalf("expected plural name as title, got %q", tab.Label)
	}
	links := tab.Find(func(w *widget.Widget) bool { return w.Kind == widget.KindLink })
	var titles []string
	for _, link := range links {
		titles = append(titles, link.Label)
	}
	if diff := cmp.Diff([]string{"Fred", "Wilma"}, titles); diff != "" {
		t.Fatalf("list links mismatch (-want +got):\n%s", diff)
	}
	if tab.Count(widget.KindRow) != 2 {
		t.Fatalf("expected one row per entry")
	}
}

func TestValueTab(t *testing.T) {
	tab := page.ValueTab("Result", ro.IntValue(42))
	if tab.Children[0].Value != "42" || tab.Children[0].Attr(widget.AttrValueKind) != "int" {
		t.Fatalf("unexpected value tab %+v", tab.Children[0])
	}
}
