package mock

import (
	"context"

	"github.com/fwojciec/webvision"
)

var _ webvision.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of webvision.CatalogService.
type CatalogService struct {
	AnalyzeAndStoreFn func(ctx context.Context, url string) (*webvision.Website, error)
	FindWebsitesFn    func(ctx context.Context, filter webvision.WebsiteFilter) ([]*webvision.Website, int, error)
	FindWebsiteByIDFn func(ctx context.Context, id int) (*webvision.Website, error)
	UpdateWebsiteFn   func(ctx context.Context, id int, upd webvision.WebsiteUpdate) (*webvision.Website, error)
	DeleteWebsiteFn   func(ctx context.Context, id int) error
	StatsFn           func(ctx context.Context) *webvision.Stats
}

func (s *CatalogService) AnalyzeAndStore(ctx context.Context, url string) (*webvision.Website, error) {
	return s.AnalyzeAndStoreFn(ctx, url)
}

func (s *CatalogService) FindWebsites(ctx context.Context, filter webvision.WebsiteFilter) ([]*webvision.Website, int, error) {
	return s.FindWebsitesFn(ctx, filter)
}

func (s *CatalogService) FindWebsiteByID(ctx context.Context, id int) (*webvision.Website, error) {
	return s.FindWebsiteByIDFn(ctx, id)
}

func (s *CatalogService) UpdateWebsite(ctx context.Context, id int, upd webvision.WebsiteUpdate) (*webvision.Website, error) {
	return s.UpdateWebsiteFn(ctx, id, upd)
}

func (s *CatalogService) DeleteWebsite(ctx context.Context, id int) error {
	return s.DeleteWebsiteFn(ctx, id)
}

func (s *CatalogService) Stats(ctx context.Context) *webvision.Stats {
	return s.StatsFn(ctx)
}
