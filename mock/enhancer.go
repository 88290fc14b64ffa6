package mock

import (
	"context"

	"github.com/fwojciec/webvision"
)

var _ webvision.Enhancer = (*Enhancer)(nil)

// Enhancer is a mock implementation of webvision.Enhancer.
type Enhancer struct {
	EnhanceFn func(ctx context.Context, description, brandName string) string
}

func (e *Enhancer) Enhance(ctx context.Context, description, brandName string) string {
	return e.EnhanceFn(ctx, description, brandName)
}
