// Package layout models server-provided object layouts (Apache Causeway
// "bootstrap grid" documents) and builds widget trees from them.
//
// A layout is a strict tree: Grid → Row → Col, where a column holds tab
// groups (Tab → Row …), field sets (Property, Action), collections, actions
// and an optional domain object header. Trees are decoded and validated once
// by Parse and then only read.
package layout

import (
	"encoding/xml"

	"github.com/goliatone/go-kroviz/pkg/ro"
)

// Grid is the layout root.
type Grid struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"grid"`
	Rows    []Row    `json:"row" yaml:"row" xml:"row"`
}

// Row is a horizontal band of columns. The JSON form wraps every column in
// a {"col": …} object; XML lists <col> elements directly.
type Row struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	CSSClass      string `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	MetadataError string `json:"metadataError,omitempty" yaml:"metadataError,omitempty"`
	Cols          []Cols `json:"cols" yaml:"cols"`
}

// Cols is the JSON wrapper around a column.
type Cols struct {
	Col Col `json:"col" yaml:"col"`
}

// Col is a column of up to 12 grid units.
type Col struct {
	ID                      string        `json:"id,omitempty" yaml:"id,omitempty" xml:"id,attr,omitempty"`
	Span                    int           `json:"span,omitempty" yaml:"span,omitempty" xml:"span,attr,omitempty"`
	Size                    string        `json:"size,omitempty" yaml:"size,omitempty" xml:"size,attr,omitempty"`
	CSSClass                string        `json:"cssClass,omitempty" yaml:"cssClass,omitempty" xml:"cssClass,attr,omitempty"`
	UnreferencedActions     bool          `json:"unreferencedActions,omitempty" yaml:"unreferencedActions,omitempty" xml:"unreferencedActions,attr,omitempty"`
	UnreferencedCollections bool          `json:"unreferencedCollections,omitempty" yaml:"unreferencedCollections,omitempty" xml:"unreferencedCollections,attr,omitempty"`
	MetadataError           string        `json:"metadataError,omitempty" yaml:"metadataError,omitempty" xml:"metadataError,omitempty"`
	DomainObject            *DomainObject `json:"domainObject,omitempty" yaml:"domainObject,omitempty" xml:"domainObject,omitempty"`
	Actions                 []Action      `json:"action,omitempty" yaml:"action,omitempty" xml:"action"`
	TabGroups               []TabGroup    `json:"tabGroup,omitempty" yaml:"tabGroup,omitempty" xml:"tabGroup"`
	FieldSets               []FieldSet    `json:"fieldSet,omitempty" yaml:"fieldSet,omitempty" xml:"fieldSet"`
	Collections             []Collection  `json:"collection,omitempty" yaml:"collection,omitempty" xml:"collection"`
}

// DomainObject marks where the object title and icon go.
type DomainObject struct {
	Named       string   `json:"named,omitempty" yaml:"named,omitempty" xml:"named,omitempty"`
	DescribedAs string   `json:"describedAs,omitempty" yaml:"describedAs,omitempty" xml:"describedAs,omitempty"`
	Plural      string   `json:"plural,omitempty" yaml:"plural,omitempty" xml:"plural,omitempty"`
	CSSClass    string   `json:"cssClass,omitempty" yaml:"cssClass,omitempty" xml:"cssClass,attr,omitempty"`
	CSSClassFa  string   `json:"cssClassFa,omitempty" yaml:"cssClassFa,omitempty" xml:"cssClassFa,attr,omitempty"`
	Bookmarking string   `json:"bookmarking,omitempty" yaml:"bookmarking,omitempty" xml:"bookmarking,attr,omitempty"`
	Link        *ro.Link `json:"link,omitempty" yaml:"link,omitempty" xml:"link,omitempty"`
}

// TabGroup holds tabs; only one tab is visible at a time.
type TabGroup struct {
	CollapseIfOne           bool   `json:"collapseIfOne,omitempty" yaml:"collapseIfOne,omitempty" xml:"collapseIfOne,attr,omitempty"`
	UnreferencedCollections bool   `json:"unreferencedCollections,omitempty" yaml:"unreferencedCollections,omitempty" xml:"unreferencedCollections,attr,omitempty"`
	MetadataError           string `json:"metadataError,omitempty" yaml:"metadataError,omitempty" xml:"metadataError,omitempty"`
	Tabs                    []Tab  `json:"tab" yaml:"tab" xml:"tab"`
}

// Tab is a named page of rows inside a tab group.
type Tab struct {
	Name string `json:"name" yaml:"name" xml:"name,attr"`
	Rows []Row  `json:"row,omitempty" yaml:"row,omitempty" xml:"row"`
}

// FieldSet groups properties under a caption.
type FieldSet struct {
	ID                     string     `json:"id,omitempty" yaml:"id,omitempty" xml:"id,attr,omitempty"`
	Name                   string     `json:"name,omitempty" yaml:"name,omitempty" xml:"name,attr,omitempty"`
	UnreferencedActions    bool       `json:"unreferencedActions,omitempty" yaml:"unreferencedActions,omitempty" xml:"unreferencedActions,attr,omitempty"`
	UnreferencedProperties bool       `json:"unreferencedProperties,omitempty" yaml:"unreferencedProperties,omitempty" xml:"unreferencedProperties,attr,omitempty"`
	MetadataError          string     `json:"metadataError,omitempty" yaml:"metadataError,omitempty" xml:"metadataError,omitempty"`
	Actions                []Action   `json:"action,omitempty" yaml:"action,omitempty" xml:"action"`
	Properties             []Property `json:"property,omitempty" yaml:"property,omitempty" xml:"property"`
}

// Property references an object property by id.
type Property struct {
	ID            string   `json:"id" yaml:"id" xml:"id,attr"`
	Named         string   `json:"named,omitempty" yaml:"named,omitempty" xml:"named,omitempty"`
	DescribedAs   string   `json:"describedAs,omitempty" yaml:"describedAs,omitempty" xml:"describedAs,omitempty"`
	Hidden        string   `json:"hidden,omitempty" yaml:"hidden,omitempty" xml:"hidden,attr,omitempty"`
	LabelPosition string   `json:"labelPosition,omitempty" yaml:"labelPosition,omitempty" xml:"labelPosition,attr,omitempty"`
	MultiLine     int      `json:"multiLine,omitempty" yaml:"multiLine,omitempty" xml:"multiLine,attr,omitempty"`
	TypicalLength int      `json:"typicalLength,omitempty" yaml:"typicalLength,omitempty" xml:"typicalLength,attr,omitempty"`
	PromptStyle   string   `json:"promptStyle,omitempty" yaml:"promptStyle,omitempty" xml:"promptStyle,attr,omitempty"`
	RenderDay     string   `json:"renderDay,omitempty" yaml:"renderDay,omitempty" xml:"renderDay,attr,omitempty"`
	Link          *ro.Link `json:"link,omitempty" yaml:"link,omitempty" xml:"link,omitempty"`
	Actions       []Action `json:"action,omitempty" yaml:"action,omitempty" xml:"action"`
}

// Collection references an object collection by id.
type Collection struct {
	ID          string   `json:"id" yaml:"id" xml:"id,attr"`
	Named       string   `json:"named,omitempty" yaml:"named,omitempty" xml:"named,omitempty"`
	DescribedAs string   `json:"describedAs,omitempty" yaml:"describedAs,omitempty" xml:"describedAs,omitempty"`
	DefaultView string   `json:"defaultView,omitempty" yaml:"defaultView,omitempty" xml:"defaultView,attr,omitempty"`
	Paged       int      `json:"paged,omitempty" yaml:"paged,omitempty" xml:"paged,attr,omitempty"`
	SortedBy    string   `json:"sortedBy,omitempty" yaml:"sortedBy,omitempty" xml:"sortedBy,omitempty"`
	Link        *ro.Link `json:"link,omitempty" yaml:"link,omitempty" xml:"link,omitempty"`
	Actions     []Action `json:"action,omitempty" yaml:"action,omitempty" xml:"action"`
}

// Action references an object action by id. Actions are kept in the tree
// for consumers such as menus but never become buttons in built widgets.
type Action struct {
	ID          string   `json:"id" yaml:"id" xml:"id,attr"`
	Named       string   `json:"named,omitempty" yaml:"named,omitempty" xml:"named,omitempty"`
	DescribedAs string   `json:"describedAs,omitempty" yaml:"describedAs,omitempty" xml:"describedAs,omitempty"`
	Position    string   `json:"position,omitempty" yaml:"position,omitempty" xml:"position,attr,omitempty"`
	CSSClass    string   `json:"cssClass,omitempty" yaml:"cssClass,omitempty" xml:"cssClass,attr,omitempty"`
	CSSClassFa  string   `json:"cssClassFa,omitempty" yaml:"cssClassFa,omitempty" xml:"cssClassFa,attr,omitempty"`
	Bookmarking string   `json:"bookmarking,omitempty" yaml:"bookmarking,omitempty" xml:"bookmarking,attr,omitempty"`
	PromptStyle string   `json:"promptStyle,omitempty" yaml:"promptStyle,omitempty" xml:"promptStyle,attr,omitempty"`
	Link        *ro.Link `json:"link,omitempty" yaml:"link,omitempty" xml:"link,omitempty"`
}

// UnmarshalXML reads <row> elements, whose <col> children are not wrapped.
func (r *Row) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw struct {
		ID            string `xml:"id,attr"`
		CSSClass      string `xml:"cssClass,attr"`
		MetadataError string `xml:"metadataError"`
		Cols          []Col  `xml:"col"`
	}
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	r.ID = raw.ID
	r.CSSClass = raw.CSSClass
	r.MetadataError = raw.MetadataError
	r.Cols = make([]Cols, 0, len(raw.Cols))
	for _, col := range raw.Cols {
		r.Cols = append(r.Cols, Cols{Col: col})
	}
	return nil
}

// Label returns the caption of an action.
func (a Action) Label() string {
	if a.Named != "" {
		return a.Named
	}
	return a.ID
}

// Actions lists every action declared anywhere under the grid, in
// declaration order. Built widget trees never contain them.
func (g Grid) Actions() []Action {
	var out []Action
	for _, row := range g.Rows {
		out = append(out, row.actions()...)
	}
	return out
}

func (r Row) actions() []Action {
	var out []Action
	for _, cols := range r.Cols {
		col := cols.Col
		out = append(out, col.Actions...)
		for _, group := range col.TabGroups {
			for _, tab := range group.Tabs {
				for _, row := range tab.Rows {
					out = append(out, row.actions()...)
				}
			}
		}
		for _, set := range col.FieldSets {
			out = append(out, set.Actions...)
			for _, prop := range set.Properties {
				out = append(out, prop.Actions...)
			}
		}
		for _, coll := range col.Collections {
			out = append(out, coll.Actions...)
		}
	}
	return out
}
