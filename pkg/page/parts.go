package page

import (
	"net/http"

	"github.com/goliatone/go-kroviz/pkg/ro"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

// Status levels shown in the status bar.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Shortcut is an icon bar entry.
type Shortcut struct {
	Label string
	Icon  string
	Href  string
}

// Status describes the last completed request.
type Status struct {
	Level   string
	Message string
	URL     string
}

// MenuBar builds the navigation bar from the three Causeway menu bars. Each
// menu lists its sections in order; named sections get a caption entry.
func MenuBar(bars ro.Menubars) *widget.Widget {
	nav := widget.NewNavbar(NameMenuBar)
	for idx, bar := range bars.Bars() {
		for _, menu := range bar.Menu {
			m := widget.New(widget.KindMenu, menu.Named)
			m.Label = menu.Named
			m.Icon = menu.CSSClassFa
			m.SetAttr(widget.AttrLevel, barNames[idx])
			for _, section := range menu.Section {
				if section.Named != "" {
					m.AddChild(widget.NewText("section", section.Named))
				}
				for _, action := range section.ServiceAction {
					m.AddChild(menuItem(action))
				}
			}
			nav.AddChild(m)
		}
	}
	return nav
}

var barNames = [...]string{"primary", "secondary", "tertiary"}

func menuItem(action ro.ServiceAction) *widget.Widget {
	item := widget.New(widget.KindMenuItem, action.ID)
	item.Label = action.Label()
	item.Icon = action.CSSClassFa
	if action.Link != nil {
		item.Href = action.Link.Href
		method := action.Link.Method
		if method == "" {
			method = http.MethodGet
		}
		item.SetAttr(widget.AttrMethod, method)
	}
	return item
}

// IconBar builds the vertical shortcut bar.
func IconBar(shortcuts ...Shortcut) *widget.Widget {
	bar := widget.NewIconBar(NameIconBar)
	for _, shortcut := range shortcuts {
		button := widget.New(widget.KindButton, shortcut.Label)
		button.Label = shortcut.Label
		button.Icon = shortcut.Icon
		button.Href = shortcut.Href
		bar.AddChild(button)
	}
	return bar
}

// Tabs builds the content tab panel. Contents that are not tabs are wrapped
// in one labelled after them.
func Tabs(contents ...*widget.Widget) *widget.Widget {
	panel := widget.NewTabPanel(NameTabs)
	for _, content := range contents {
		if content == nil {
			continue
		}
		if content.Kind == widget.KindTab {
			panel.AddChild(content)
			continue
		}
		tab := widget.New(widget.KindTab, content.Name)
		tab.Label = content.Label
		tab.AddChild(content)
		panel.AddChild(tab)
	}
	return panel
}

// StatusBar builds the status bar for the given status.
func StatusBar(status Status) *widget.Widget {
	bar := widget.NewStatusBar(NameStatusBar)
	level := status.Level
	if level == "" {
		level = LevelInfo
	}
	bar.SetAttr(widget.AttrLevel, level)
	if status.Message != "" {
		bar.AddChild(widget.NewText("message", status.Message))
	}
	if status.URL != "" {
		bar.AddChild(widget.NewLink(status.URL, status.URL))
	}
	return bar
}
