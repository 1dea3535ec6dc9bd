package render

import (
	"context"

	"github.com/goliatone/go-kroviz/pkg/widget"
)

// Renderer converts a composed widget tree into bytes (HTML, terminal text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, root *widget.Widget, options RenderOptions) ([]byte, error)
}
