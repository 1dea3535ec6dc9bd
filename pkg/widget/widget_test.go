package widget

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWidget_AddChildSkipsNil(t *testing.T) {
	root := NewPanel("root")
	root.AddChild(NewHBox("a"), nil, NewVBox("b"))

	if diff := cmp.Diff([]Kind{KindHBox, KindVBox}, root.ChildKinds()); diff != "" {
		t.Fatalf("child kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_WalkDepthFirst(t *testing.T) {
	root := NewPanel("root").AddChild(
		NewHBox("left").AddChild(NewText("l1", "x"), NewText("l2", "y")),
		NewVBox("right").AddChild(NewText("r1", "z")),
	)

	var visited []string
	root.Walk(func(node *Widget, depth int) bool {
		visited = append(visited, strings.Repeat("-", depth)+node.Name)
		return true
	})

	want := []string{"root", "-left", "--l1", "--l2", "-right", "--r1"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
	if got := root.Count(KindText); got != 3 {
		t.Fatalf("expected 3 text widgets, got %d", got)
	}
}

func TestWidget_WalkCanPrune(t *testing.T) {
	root := NewPanel("root").AddChild(NewHBox("box").AddChild(NewText("hidden", "")))

	var names []string
	root.Walk(func(node *Widget, _ int) bool {
		names = append(names, node.Name)
		return node.Kind != KindHBox
	})
	if diff := cmp.Diff([]string{"root", "box"}, names); diff != "" {
		t.Fatalf("pruned walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_Attrs(t *testing.T) {
	w := New(KindField, "name")
	w.SetAttr(AttrControl, "text").SetAttr(AttrFormat, "string")
	if w.Attr(AttrControl) != "text" {
		t.Fatalf("expected control attr")
	}
	w.SetAttr(AttrControl, "")
	if _, ok := w.Attrs[AttrControl]; ok {
		t.Fatalf("expected empty value to delete attribute")
	}
	if !strings.HasPrefix(w.ID, "kv-") {
		t.Fatalf("unexpected id %q", w.ID)
	}
	if NewID() == NewID() {
		t.Fatalf("ids must be unique")
	}
}
