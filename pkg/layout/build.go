package layout

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-kroviz/pkg/widget"
)

// Widget names given to built containers.
const (
	NameGrid     = "GridLayout"
	NameRow      = "RowLayout"
	NameColumn   = "Column"
	NameCol      = "ColLayout"
	NameTabGroup = "TabGroupLayout"
	NameHeader   = "DomainObjectLayout"
)

// Build turns the grid into a VBox of rows. Build never fails: Parse has
// already rejected malformed trees.
func (g Grid) Build() *widget.Widget {
	root := widget.NewVBox(NameGrid)
	for _, row := range g.Rows {
		root.AddChild(row.Build())
	}
	return root
}

// Build returns an HBox with one column container per declared column. A
// column container holds the optional domain object header, the column
// layout and then its collections.
func (r Row) Build() *widget.Widget {
	box := widget.NewHBox(NameRow)
	box.CSSClass = r.CSSClass
	for _, cols := range r.Cols {
		col := cols.Col
		column := widget.NewVBox(NameColumn)
		column.CSSClass = col.CSSClass
		if col.Span > 0 {
			column.SetAttr(widget.AttrSpan, strconv.Itoa(col.Span))
		}
		if col.DomainObject != nil {
			column.AddChild(col.DomainObject.Build())
		}
		column.AddChild(col.Build())
		for _, coll := range col.Collections {
			column.AddChild(coll.Build())
		}
		box.AddChild(column)
	}
	return box
}

// Build returns an HBox named ColLayout whose children are the tab groups
// followed by the field sets, in declaration order. Declared actions are
// not rendered as buttons.
func (c Col) Build() *widget.Widget {
	box := widget.NewHBox(NameCol)
	for _, group := range c.TabGroups {
		box.AddChild(group.Build())
	}
	for _, set := range c.FieldSets {
		box.AddChild(set.Build())
	}
	return box
}

// Build places the title and icon of the object.
func (d DomainObject) Build() *widget.Widget {
	header := widget.New(widget.KindText, NameHeader)
	header.Label = d.Named
	header.Description = d.DescribedAs
	header.CSSClass = d.CSSClass
	header.Icon = d.CSSClassFa
	return header
}

// Build returns a tab panel with one tab per declared tab.
func (t TabGroup) Build() *widget.Widget {
	panel := widget.NewTabPanel(NameTabGroup)
	for _, tab := range t.Tabs {
		panel.AddChild(tab.Build())
	}
	return panel
}

// Build returns a tab holding its rows.
func (t Tab) Build() *widget.Widget {
	tab := widget.New(widget.KindTab, t.Name)
	tab.Label = t.Name
	for _, row := range t.Rows {
		tab.AddChild(row.Build())
	}
	return tab
}

// Build returns a field set with one field per visible property. Field set
// actions are omitted.
func (f FieldSet) Build() *widget.Widget {
	name := f.ID
	if name == "" {
		name = f.Name
	}
	set := widget.New(widget.KindFieldSet, name)
	set.Label = f.Name
	for _, prop := range f.Properties {
		set.AddChild(prop.Build())
	}
	return set
}

// Build returns an unbound field for the property, or nil when the layout
// hides it on object forms.
func (p Property) Build() *widget.Widget {
	if hiddenOnForms(p.Hidden) {
		return nil
	}
	field := widget.New(widget.KindField, p.ID)
	field.Label = p.Named
	field.Description = p.DescribedAs
	field.SetAttr(widget.AttrMember, p.ID)
	if p.MultiLine > 1 {
		field.SetAttr(widget.AttrMultiLine, strconv.Itoa(p.MultiLine))
	}
	if p.Link != nil {
		field.Href = p.Link.Href
	}
	return field
}

// Build returns a table placeholder for the collection.
func (c Collection) Build() *widget.Widget {
	table := widget.New(widget.KindTable, c.ID)
	table.Label = c.Named
	table.Description = c.DescribedAs
	table.SetAttr(widget.AttrMember, c.ID)
	table.SetAttr(widget.AttrStyle, strings.ToLower(c.DefaultView))
	if c.Link != nil {
		table.Href = c.Link.Href
	}
	return table
}

func hiddenOnForms(where string) bool {
	switch strings.ToUpper(strings.TrimSpace(where)) {
	case "EVERYWHERE", "ANYWHERE", "OBJECT_FORMS":
		return true
	default:
		return false
	}
}
