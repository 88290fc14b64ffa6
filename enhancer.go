package webvision

import "context"

// Enhancer rewrites a raw website description into marketing copy.
//
// Enhance never fails the caller: configuration gaps, rejected model output,
// and network errors all fall back to a deterministic templated expansion of
// the brand name and description.
type Enhancer interface {
	Enhance(ctx context.Context, description, brandName string) string
}
