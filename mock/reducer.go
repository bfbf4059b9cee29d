package mock

import (
	"context"

	"github.com/fwojciec/domsift"
)

var _ domsift.Reducer = (*Reducer)(nil)

// Reducer is a mock implementation of domsift.Reducer.
type Reducer struct {
	ReduceFn func(html string) (*domsift.Report, error)
}

func (r *Reducer) Reduce(html string) (*domsift.Report, error) {
	return r.ReduceFn(html)
}

var _ domsift.Loader = (*Loader)(nil)

// Loader is a mock implementation of domsift.Loader.
type Loader struct {
	LoadFn func(ctx context.Context, source string) (string, error)
}

func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	return l.LoadFn(ctx, source)
}

var _ domsift.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of domsift.Renderer.
type Renderer struct {
	RenderFn func(report *domsift.Report) (string, error)
}

func (r *Renderer) Render(report *domsift.Report) (string, error) {
	return r.RenderFn(report)
}
