package tui_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/renderers/tui"
	"github.com/goliatone/go-kroviz/pkg/ro"
	"github.com/goliatone/go-kroviz/pkg/testsupport"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

type stubDriver struct {
	picks   []int
	err     error
	prompts []tui.SelectConfig
}

func (s *stubDriver) Input(context.Context, tui.InputConfig) (string, error) {
	return "", nil
}

func (s *stubDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg)
	if s.err != nil {
		return 0, s.err
	}
	pick := s.picks[0]
	s.picks = s.picks[1:]
	return pick, nil
}

func (s *stubDriver) Info(context.Context, string) error {
	return nil
}

func newNavigator(driver tui.PromptDriver, out *bytes.Buffer) *tui.Navigator {
	return tui.NewNavigator(
		tui.WithPromptDriver(driver),
		tui.WithOutput(out),
		tui.WithRenderer(tui.New(tui.WithStyles(tui.PlainStyles()))),
	)
}

func TestChoices(t *testing.T) {
	choices := tui.Choices(objectPage(t))

	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, choice.Label)
	}
	assert.Equal(t, []string{"Create", "List All", "Home", "Owner: Ada", "Children (collection)"}, labels)
	assert.Equal(t, "GET", choices[1].Link.Method)
	assert.Equal(t, "http://localhost:8080/restful/objects/simple.Person/7", choices[3].Link.Href)
}

func TestNavigator_ChoosePrintsAndReturnsLink(t *testing.T) {
	driver := &stubDriver{picks: []int{3}}
	var out bytes.Buffer
	nav := newNavigator(driver, &out)
	nav.Visit(ro.Link{Href: "http://localhost:8080/restful/objects/simple.SimpleObject/1"})

	link, err := nav.Choose(testsupport.Context(), objectPage(t), render.RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/restful/objects/simple.Person/7", link.Href)
	assert.Contains(t, out.String(), "Name: Fred")
	require.Len(t, driver.prompts, 1)
	assert.Equal(t, "Quit", driver.prompts[0].Options[len(driver.prompts[0].Options)-1])
	assert.NotContains(t, driver.prompts[0].Options, "<- Back")
}

func TestNavigator_Back(t *testing.T) {
	root := widget.NewPanel("p").AddChild(widget.NewLink("Next", "http://x/next"))
	driver := &stubDriver{picks: []int{1}}
	nav := newNavigator(driver, &bytes.Buffer{})
	nav.Visit(ro.Link{Href: "http://x/home"})
	nav.Visit(ro.Link{Href: "http://x/here"})

	link, err := nav.Choose(testsupport.Context(), root, render.RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Next", "<- Back", "Quit"}, driver.prompts[0].Options)
	assert.Equal(t, "http://x/home", link.Href)
	assert.Equal(t, 0, nav.History().Len())
}

func TestNavigator_QuitAndAbort(t *testing.T) {
	root := widget.NewPanel("p").AddChild(widget.NewLink("Next", "http://x/next"))

	nav := newNavigator(&stubDriver{picks: []int{1}}, &bytes.Buffer{})
	_, err := nav.Choose(testsupport.Context(), root, render.RenderOptions{})
	assert.ErrorIs(t, err, tui.ErrQuit)

	nav = newNavigator(&stubDriver{err: tui.ErrAborted}, &bytes.Buffer{})
	_, err = nav.Choose(testsupport.Context(), root, render.RenderOptions{})
	assert.ErrorIs(t, err, tui.ErrQuit)
}

func TestNavigator_NothingToFollow(t *testing.T) {
	nav := newNavigator(&stubDriver{}, &bytes.Buffer{})
	_, err := nav.Choose(testsupport.Context(), widget.NewPanel("empty"), render.RenderOptions{})
	assert.ErrorIs(t, err, tui.ErrNoChoices)
}
