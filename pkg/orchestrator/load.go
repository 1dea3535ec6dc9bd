package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-kroviz/pkg/client"
	"github.com/goliatone/go-kroviz/pkg/layout"
	"github.com/goliatone/go-kroviz/pkg/page"
	"github.com/goliatone/go-kroviz/pkg/ro"
)

// ErrUnsupportedRepresentation is returned by Load for responses kroviz
// cannot display.
var ErrUnsupportedRepresentation = errors.New("orchestrator: unsupported representation")

// Backend is the part of the RO client Load needs. *client.Client satisfies it.
type Backend interface {
	Menubars(ctx context.Context) (ro.Menubars, error)
	Fetch(ctx context.Context, link ro.Link) (client.Response, error)
	Layout(ctx context.Context, obj ro.DomainObject) (layout.Grid, error)
	Invoke(ctx context.Context, action ro.Member) (ro.ActionResult, error)
}

var _ Backend = (*client.Client)(nil)

// Loaded is the decoded target of a followed link.
type Loaded struct {
	Content Content
	Status  page.Status
}

// Load fetches link and decodes the representation it returns. Objects bring
// their layout along, falling back to the default grid when the backend has
// none. Safe actions are invoked and their result shown.
func Load(ctx context.Context, backend Backend, link ro.Link) (Loaded, error) {
	if link.Method == "" {
		link.Method = http.MethodGet
	}
	resp, err := backend.Fetch(ctx, link)
	if err != nil {
		return Loaded{}, err
	}

	out := Loaded{Status: page.Status{
		Level:   page.LevelInfo,
		Message: fmt.Sprintf("%s %d", resp.Link.Method, resp.StatusCode),
		URL:     resp.Link.Href,
	}}

	switch resp.Repr {
	case ro.ReprObject:
		obj, err := ro.ParseObject(resp.Body)
		if err != nil {
			return Loaded{}, err
		}
		grid, err := backend.Layout(ctx, obj)
		switch {
		case errors.Is(err, client.ErrNoLayout):
		case err != nil:
			return Loaded{}, err
		default:
			out.Content.Layout = &grid
		}
		out.Content.Object = &obj
	case ro.ReprList:
		list, err := ro.ParseList(resp.Body)
		if err != nil {
			return Loaded{}, err
		}
		out.Content.List = &list
	case ro.ReprActionResult:
		result, err := ro.ParseActionResult(resp.Body)
		if err != nil {
			return Loaded{}, err
		}
		out.Content.Result = &result
	case ro.ReprAction:
		action, err := ro.ParseMember(resp.Body)
		if err != nil {
			return Loaded{}, err
		}
		result, err := backend.Invoke(ctx, action)
		if err != nil {
			return Loaded{}, err
		}
		out.Content.Result = &result
		out.Content.Title = action.Label()
	case ro.ReprMenubars, ro.ReprHomePage:
	default:
		return Loaded{}, fmt.Errorf("%w: %q", ErrUnsupportedRepresentation, resp.ContentType)
	}
	return out, nil
}
