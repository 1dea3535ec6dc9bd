package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/ro"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

const (
	choiceBack = "<- Back"
	choiceQuit = "Quit"
)

// Choice is one followable target on a page.
type Choice struct {
	Label string
	Link  ro.Link
}

// Navigator prints pages and asks which link to follow next.
type Navigator struct {
	driver   PromptDriver
	renderer *Renderer
	out      io.Writer
	history  History
}

// NewNavigator builds a navigator that prompts through survey by default.
func NewNavigator(options ...NavigatorOption) *Navigator {
	n := &Navigator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	if n.driver == nil {
		n.driver = NewSurveyDriver()
	}
	if n.renderer == nil {
		n.renderer = New()
	}
	if n.out == nil {
		n.out = os.Stdout
	}
	return n
}

// Visit records the link of the page about to be shown.
func (n *Navigator) Visit(link ro.Link) {
	n.history.Push(link)
}

// History exposes the followed links.
func (n *Navigator) History() *History {
	return &n.history
}

// Choose prints the page and returns the link picked by the user. Picking
// back returns the previous link; picking quit returns ErrQuit.
func (n *Navigator) Choose(ctx context.Context, root *widget.Widget, opts render.RenderOptions) (ro.Link, error) {
	outline, err := n.renderer.Render(ctx, root, opts)
	if err != nil {
		return ro.Link{}, err
	}
	if _, err := n.out.Write(outline); err != nil {
		return ro.Link{}, fmt.Errorf("tui: write page: %w", err)
	}

	choices := Choices(root)
	canGoBack := n.history.Len() > 1
	if len(choices) == 0 && !canGoBack {
		return ro.Link{}, ErrNoChoices
	}

	labels := make([]string, 0, len(choices)+2)
	for _, choice := range choices {
		labels = append(labels, choice.Label)
	}
	if canGoBack {
		labels = append(labels, choiceBack)
	}
	labels = append(labels, choiceQuit)

	idx, err := n.driver.Select(ctx, SelectConfig{
		Message:  "Follow",
		Options:  labels,
		PageSize: 15,
	})
	if err != nil {
		if errors.Is(err, ErrAborted) {
			return ro.Link{}, ErrQuit
		}
		return ro.Link{}, err
	}

	switch {
	case idx >= 0 && idx < len(choices):
		return choices[idx].Link, nil
	case idx >= 0 && idx < len(labels) && labels[idx] == choiceBack:
		// The previous page is recorded again when the caller visits it.
		n.history.Pop()
		link, _ := n.history.Pop()
		return link, nil
	default:
		return ro.Link{}, ErrQuit
	}
}

// Choices collects every followable target in tree order: menu items,
// icon bar buttons, links, linked fields and collection tables.
func Choices(root *widget.Widget) []Choice {
	var out []Choice
	seen := make(map[string]struct{})
	root.Walk(func(node *widget.Widget, _ int) bool {
		href := strings.TrimSpace(node.Href)
		if href == "" {
			return true
		}
		var label string
		switch node.Kind {
		case widget.KindMenuItem, widget.KindLink, widget.KindButton:
			label = firstNonEmpty(node.Label, node.Name, href)
		case widget.KindField:
			label = firstNonEmpty(node.Label, node.Name) + ": " + node.Value
		case widget.KindTable:
			label = firstNonEmpty(node.Label, node.Name) + " (collection)"
		default:
			return true
		}
		method := node.Attr(widget.AttrMethod)
		key := method + " " + href
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		out = append(out, Choice{
			Label: label,
			Link:  ro.Link{Href: href, Method: method, Title: label},
		})
		return true
	})
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
