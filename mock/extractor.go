package mock

import "github.com/fwojciec/webvision"

var _ webvision.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webvision.Extractor.
type Extractor struct {
	ExtractFn func(html string, sourceURL string) *webvision.Metadata
}

func (e *Extractor) Extract(html string, sourceURL string) *webvision.Metadata {
	return e.ExtractFn(html, sourceURL)
}
