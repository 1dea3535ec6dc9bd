package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-kroviz/pkg/layout"
	"github.com/goliatone/go-kroviz/pkg/page"
	"github.com/goliatone/go-kroviz/pkg/ro"
	"github.com/goliatone/go-kroviz/pkg/widget"
)

// Content holds decoded RO representations. Every non-nil entry becomes a
// tab, in field order: object, list, action result.
type Content struct {
	Menubars *ro.Menubars
	Object   *ro.DomainObject
	// Layout is the grid used for Object. A nil layout falls back to the
	// default grid of the object.
	Layout *layout.Grid
	List   *ro.List
	Result *ro.ActionResult
	// Title labels list and scalar tabs.
	Title string
}

// Payloads are raw RO response bodies. A payload is only decoded when the
// matching Content entry is nil.
type Payloads struct {
	Menubars     []byte
	Object       []byte
	Layout       []byte
	LayoutFormat layout.Format
	List         []byte
	Result       []byte
}

func (c Content) decode(raw Payloads) (Content, error) {
	out := c
	if out.Menubars == nil && len(raw.Menubars) > 0 {
		bars, err := ro.ParseMenubars(raw.Menubars)
		if err != nil {
			return Content{}, fmt.Errorf("orchestrator: decode menubars: %w", err)
		}
		out.Menubars = &bars
	}
	if out.Object == nil && len(raw.Object) > 0 {
		obj, err := ro.ParseObject(raw.Object)
		if err != nil {
			return Content{}, fmt.Errorf("orchestrator: decode object: %w", err)
		}
		out.Object = &obj
	}
	if out.Layout == nil && len(raw.Layout) > 0 {
		grid, err := layout.ParseFormat(raw.Layout, raw.LayoutFormat)
		if err != nil {
			return Content{}, fmt.Errorf("orchestrator: parse layout: %w", err)
		}
		out.Layout = &grid
	}
	if out.List == nil && len(raw.List) > 0 {
		list, err := ro.ParseList(raw.List)
		if err != nil {
			return Content{}, fmt.Errorf("orchestrator: decode list: %w", err)
		}
		out.List = &list
	}
	if out.Result == nil && len(raw.Result) > 0 {
		result, err := ro.ParseActionResult(raw.Result)
		if err != nil {
			return Content{}, fmt.Errorf("orchestrator: decode action result: %w", err)
		}
		out.Result = &result
	}
	return out, nil
}

func (c Content) tabs() ([]*widget.Widget, error) {
	var tabs []*widget.Widget
	if c.Object != nil {
		tabs = append(tabs, page.ObjectTab(*c.Object, c.grid()))
	}
	if c.List != nil {
		tabs = append(tabs, page.ListTab(c.Title, *c.List))
	}
	if c.Result != nil {
		tab, err := c.resultTab(*c.Result)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

func (c Content) grid() layout.Grid {
	if c.Layout == nil {
		return layout.Grid{}
	}
	return *c.Layout
}

func (c Content) resultTab(result ro.ActionResult) (*widget.Widget, error) {
	switch result.ResultType {
	case ro.ResultObject:
		obj, err := result.Object()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: decode result: %w", err)
		}
		return page.ObjectTab(obj, c.grid()), nil
	case ro.ResultList:
		list, err := result.List()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: decode result: %w", err)
		}
		return page.ListTab(c.Title, list), nil
	case ro.ResultScalar:
		scalar, err := result.Scalar()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: decode result: %w", err)
		}
		return page.ValueTab(c.title("Result"), scalar.Value), nil
	case ro.ResultVoid, "":
		return page.ValueTab(c.title("Result"), ro.NullValue()), nil
	default:
		return nil, fmt.Errorf("orchestrator: unsupported result type %q", result.ResultType)
	}
}

func (c Content) title(fallback string) string {
	if c.Title != "" {
		return c.Title
	}
	return fallback
}
