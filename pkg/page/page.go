// Package page assembles the kroviz screen: a navigation bar on top, a main
// area holding the icon bar and the content tabs, and a status bar at the
// bottom.
package page

import (
	"github.com/goliatone/go-kroviz/pkg/widget"
)

// Widget names of the fixed page regions.
const (
	NameRoot      = "kroviz"
	NameMain      = "main"
	NameMenuBar   = "menubar"
	NameIconBar   = "iconbar"
	NameTabs      = "tabs"
	NameStatusBar = "statusbar"
)

// Parts are the regions mounted by Build. Nil parts are replaced by empty
// regions of the right kind.
type Parts struct {
	MenuBar   *widget.Widget
	IconBar   *widget.Widget
	Tabs      *widget.Widget
	StatusBar *widget.Widget
}

// Build composes the page root. The root panel children are the menu bar,
// the main HBox (icon bar then tabs, full width) and the status bar.
func Build(parts Parts) *widget.Widget {
	menu := parts.MenuBar
	if menu == nil {
		menu = widget.NewNavbar(NameMenuBar)
	}
	icons := parts.IconBar
	if icons == nil {
		icons = widget.NewIconBar(NameIconBar)
	}
	tabs := parts.Tabs
	if tabs == nil {
		tabs = widget.NewTabPanel(NameTabs)
	}
	status := parts.StatusBar
	if status == nil {
		status = widget.NewStatusBar(NameStatusBar)
	}

	main := widget.NewHBox(NameMain)
	main.SetAttr(widget.AttrStyle, "width: 100%")
	main.AddChild(icons, tabs)

	root := widget.NewPanel(NameRoot)
	root.AddChild(menu, main, status)
	return root
}
