package ro

import (
	"encoding/json"
	"fmt"
)

// Menubars is the Causeway menu bar representation served at
// /restful/menuBars.
type Menubars struct {
	Primary   Menubar `json:"primary"`
	Secondary Menubar `json:"secondary"`
	Tertiary  Menubar `json:"tertiary"`
}

// Menubar is one of the three bars.
type Menubar struct {
	Menu []Menu `json:"menu,omitempty"`
}

// Menu is a top-level drop-down.
type Menu struct {
	Named      string        `json:"named"`
	CSSClassFa string        `json:"cssClassFa,omitempty"`
	Section    []MenuSection `json:"section,omitempty"`
}

// MenuSection groups service actions inside a menu.
type MenuSection struct {
	Named         string          `json:"named,omitempty"`
	ServiceAction []ServiceAction `json:"serviceAction,omitempty"`
}

// ServiceAction is a menu entry pointing at an action on a domain service.
type ServiceAction struct {
	ObjectType string `json:"objectType"`
	ID         string `json:"id"`
	Named      string `json:"named,omitempty"`
	CSSClassFa string `json:"cssClassFa,omitempty"`
	Link       *Link  `json:"link,omitempty"`
}

// Label returns Named, falling back to the action id.
func (a ServiceAction) Label() string {
	if a.Named != "" {
		return a.Named
	}
	return a.ID
}

// Bars returns the bars in display order.
func (m Menubars) Bars() []Menubar {
	return []Menubar{m.Primary, m.Secondary, m.Tertiary}
}

// ParseMenubars decodes a menu bar representation.
func ParseMenubars(data []byte) (Menubars, error) {
	var out Menubars
	if err := json.Unmarshal(data, &out); err != nil {
		return Menubars{}, fmt.Errorf("ro: decode menubars: %w", err)
	}
	return out, nil
}
