package layout

import (
	"fmt"
	"strings"
)

// Validate checks the structural rules Build relies on: at least one row,
// spans within 0..12, row spans summing to at most 12, named tabs and
// members carrying ids.
func (g Grid) Validate() error {
	if len(g.Rows) == 0 {
		return malformed("", "grid has no rows")
	}
	for i, row := range g.Rows {
		if err := row.validate(fmt.Sprintf("row[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (r Row) validate(path string) error {
	total := 0
	for i, cols := range r.Cols {
		col := cols.Col
		colPath := fmt.Sprintf("%s.col[%d]", path, i)
		if col.Span < 0 || col.Span > MaxSpan {
			return malformed(colPath, "span %d outside 0..%d", col.Span, MaxSpan)
		}
		total += col.Span
		if err := col.validate(colPath); err != nil {
			return err
		}
	}
	if total > MaxSpan {
		return malformed(path, "column spans sum to %d, more than %d", total, MaxSpan)
	}
	return nil
}

func (c Col) validate(path string) error {
	if err := validateActions(path, c.Actions); err != nil {
		return err
	}
	for i, group := range c.TabGroups {
		groupPath := fmt.Sprintf("%s.tabGroup[%d]", path, i)
		for j, tab := range group.Tabs {
			tabPath := fmt.Sprintf("%s.tab[%d]", groupPath, j)
			if strings.TrimSpace(tab.Name) == "" {
				return malformed(tabPath, "tab has no name")
			}
			for k, row := range tab.Rows {
				if err := row.validate(fmt.Sprintf("%s.row[%d]", tabPath, k)); err != nil {
					return err
				}
			}
		}
	}
	for i, set := range c.FieldSets {
		setPath := fmt.Sprintf("%s.fieldSet[%d]", path, i)
		if err := validateActions(setPath, set.Actions); err != nil {
			return err
		}
		for j, prop := range set.Properties {
			propPath := fmt.Sprintf("%s.property[%d]", setPath, j)
			if strings.TrimSpace(prop.ID) == "" {
				return malformed(propPath, "property has no id")
			}
			if err := validateActions(propPath, prop.Actions); err != nil {
				return err
			}
		}
	}
	for i, coll := range c.Collections {
		collPath := fmt.Sprintf("%s.collection[%d]", path, i)
		if strings.TrimSpace(coll.ID) == "" {
			return malformed(collPath, "collection has no id")
		}
		if err := validateActions(collPath, coll.Actions); err != nil {
			return err
		}
	}
	return nil
}

func validateActions(path string, actions []Action) error {
	for i, action := range actions {
		if strings.TrimSpace(action.ID) == "" {
			return malformed(fmt.Sprintf("%s.action[%d]", path, i), "action has no id")
		}
	}
	return nil
}
