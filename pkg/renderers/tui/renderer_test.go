package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-kroviz/pkg/page"
	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/renderers/tui"
	"github.com/goliatone/go-kroviz/pkg/testsupport"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

func objectPage(t *testing.T) *widget.Widget {
	t.Helper()
	return page.Build(page.Parts{
		MenuBar:   page.MenuBar(testsupport.MustMenubars(t)),
		IconBar:   page.IconBar(page.Shortcut{Label: "Home", Href: "/"}),
		Tabs:      page.Tabs(page.ObjectTab(testsupport.MustObject(t), testsupport.MustGrid(t, testsupport.LayoutJSON))),
		StatusBar: page.StatusBar(page.Status{Level: page.LevelWarn, Message: "stale"}),
	})
}

func TestRenderer_Outline(t *testing.T) {
	renderer := tui.New(tui.WithStyles(tui.PlainStyles()))
	out, err := renderer.Render(testsupport.Context(), objectPage(t), render.RenderOptions{
		Title:      "kroviz",
		Errors:     map[string][]string{"name": {"Mandatory"}},
		FormErrors: []string{"Check the form"},
	})
	require.NoError(t, err)

	text := string(out)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Equal(t, "kroviz", lines[0])
	assert.Equal(t, "! Check the form", lines[1])

	assert.Contains(t, text, "Simple Objects\n  - Create\n  - List All\n")
	assert.Contains(t, text, "- Home\n")
	assert.Contains(t, text, "[Fred]\n")
	assert.Contains(t, text, "Name: Fred\n")
	assert.Contains(t, text, "Owner: Ada\n")
	assert.Contains(t, text, "Notes:  (Always disabled)\n")
	assert.Contains(t, text, "# Children")
	assert.Equal(t, "stale", lines[len(lines)-1])

	nameLine := -1
	for i, line := range lines {
		if strings.HasSuffix(line, "Name: Fred") {
			nameLine = i
		}
	}
	require.NotEqual(t, -1, nameLine)
	assert.Equal(t, "! Mandatory", strings.TrimSpace(lines[nameLine+1]))
	assert.Greater(t, indentOf(lines[nameLine+1]), indentOf(lines[nameLine]))
}

func TestRenderer_Hrefs(t *testing.T) {
	renderer := tui.New(tui.WithStyles(tui.PlainStyles()), tui.WithHrefs(true), tui.WithIndent(4))
	out, err := renderer.Render(testsupport.Context(), objectPage(t), render.RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, string(out), "Owner: Ada <http://localhost:8080/restful/objects/simple.Person/7>")
}

func TestRenderer_ListRows(t *testing.T) {
	table := widget.New(widget.KindTable, "list")
	table.Label = "Simple Objects"
	table.AddChild(
		widget.New(widget.KindRow, "").AddChild(widget.NewLink("Fred", "http://x/1")),
		widget.New(widget.KindRow, "").AddChild(widget.NewLink("Wilma", "http://x/2")),
	)

	out, err := tui.New(tui.WithStyles(tui.PlainStyles())).Render(testsupport.Context(), table, render.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "# Simple Objects\n  - Fred\n  - Wilma\n", string(out))
}

func TestRenderer_Preconditions(t *testing.T) {
	renderer := tui.New()
	assert.Equal(t, "tui", renderer.Name())
	assert.Equal(t, "text/plain; charset=utf-8", renderer.ContentType())

	_, err := renderer.Render(testsupport.Context(), nil, render.RenderOptions{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = renderer.Render(ctx, widget.NewPanel("x"), render.RenderOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
