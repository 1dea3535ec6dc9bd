package page

import (
	"strings"

	"github.com/goliatone/go-kroviz/pkg/layout"
	"github.com/goliatone/go-kroviz/pkg/ro"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

// ObjectTab builds the layout of an object and binds member values into the
// field and table widgets. A grid without rows falls back to DefaultGrid.
func ObjectTab(obj ro.DomainObject, grid layout.Grid) *widget.Widget {
	if len(grid.Rows) == 0 {
		grid = DefaultGrid(obj)
	}
	tab := widget.New(widget.KindTab, obj.DomainType)
	tab.Label = obj.Title
	if self, ok := obj.Self(); ok {
		tab.Href = self.Href
	}

	content := grid.Build()
	content.Walk(func(node *widget.Widget, _ int) bool {
		switch node.Kind {
		case widget.KindField:
			bindField(node, obj)
		case widget.KindTable:
			bindTable(node, obj)
		case widget.KindText:
			if node.Name == layout.NameHeader {
				bindHeader(node, obj)
			}
		}
		return true
	})
	return tab.AddChild(content)
}

func bindField(field *widget.Widget, obj ro.DomainObject) {
	member, ok := obj.Member(field.Attr(widget.AttrMember))
	if !ok {
		return
	}
	if field.Label == "" {
		field.Label = member.Label()
	}
	if field.Description == "" {
		field.Description = member.Extensions.Description
	}
	field.Value = member.Value.Display()
	field.SetAttr(widget.AttrValueKind, string(member.Value.Kind()))
	field.SetAttr(widget.AttrFormat, memberFormat(member))
	field.SetAttr(widget.AttrDisabled, member.DisabledReason)
	if link, ok := member.Value.Link(); ok {
		field.Href = link.Href
	}
}

func bindTable(table *widget.Widget, obj ro.DomainObject) {
	member, ok := obj.Member(table.Attr(widget.AttrMember))
	if !ok {
		return
	}
	if table.Label == "" {
		table.Label = member.Label()
	}
	if details, ok := ro.FindLink(member.Links, ro.RelDetails); ok {
		table.Href = details.Href
	}
}

func bindHeader(header *widget.Widget, obj ro.DomainObject) {
	header.Value = obj.Title
	if header.Label == "" {
		header.Label = obj.Extensions.FriendlyName
	}
}

func memberFormat(member ro.Member) string {
	if member.Format != "" {
		return member.Format
	}
	return member.Extensions.Format
}

// DefaultGrid lays out an object without a server layout: a header, then
// one field set with every property and a table per collection.
func DefaultGrid(obj ro.DomainObject) layout.Grid {
	col := layout.Col{
		Span:         layout.MaxSpan,
		DomainObject: &layout.DomainObject{},
	}
	set := layout.FieldSet{ID: "properties", Name: "Properties"}
	for _, member := range obj.MembersOf(ro.MemberProperty) {
		set.Properties = append(set.Properties, layout.Property{ID: member.ID})
	}
	col.FieldSets = []layout.FieldSet{set}
	for _, member := range obj.MembersOf(ro.MemberCollection) {
		col.Collections = append(col.Collections, layout.Collection{ID: member.ID})
	}
	return layout.Grid{Rows: []layout.Row{{Cols: []layout.Cols{{Col: col}}}}}
}

// ListTab builds a table with one row per list entry.
func ListTab(title string, list ro.List) *widget.Widget {
	if strings.TrimSpace(title) == "" {
		title = list.Extensions.Plural
	}
	tab := widget.New(widget.KindTab, "list")
	tab.Label = title

	table := widget.New(widget.KindTable, "list")
	table.Label = title
	for _, link := range list.Value {
		label := link.Title
		if label == "" {
			label = link.Href
		}
		row := widget.New(widget.KindRow, "")
		row.AddChild(widget.NewLink(label, link.Href))
		table.AddChild(row)
	}
	return tab.AddChild(table)
}

// ValueTab shows a single scalar value, e.g. an action result.
func ValueTab(title string, value ro.Value) *widget.Widget {
	tab := widget.New(widget.KindTab, "value")
	tab.Label = title
	text := widget.NewText("value", value.Display())
	text.SetAttr(widget.AttrValueKind, string(value.Kind()))
	if link, ok := value.Link(); ok {
		text.Href = link.Href
	}
	return tab.AddChild(text)
}
