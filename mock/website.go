package mock

import (
	"context"

	"github.com/fwojciec/webvision"
)

var _ webvision.WebsiteService = (*WebsiteService)(nil)

// WebsiteService is a mock implementation of webvision.WebsiteService.
type WebsiteService struct {
	CreateWebsiteFn   func(ctx context.Context, site *webvision.Website) error
	FindWebsiteByIDFn func(ctx context.Context, id int) (*webvision.Website, error)
	FindWebsitesFn    func(ctx context.Context, filter webvision.WebsiteFilter) ([]*webvision.Website, int, error)
	UpdateWebsiteFn   func(ctx context.Context, id int, upd webvision.WebsiteUpdate) (*webvision.Website, error)
	DeleteWebsiteFn   func(ctx context.Context, id int) error
	CountWebsitesFn   func(ctx context.Context) (int, error)
}

func (s *WebsiteService) CreateWebsite(ctx context.Context, site *webvision.Website) error {
	return s.CreateWebsiteFn(ctx, site)
}

func (s *WebsiteService) FindWebsiteByID(ctx context.Context, id int) (*webvision.Website, error) {
	return s.FindWebsiteByIDFn(ctx, id)
}

func (s *WebsiteService) FindWebsites(ctx context.Context, filter webvision.WebsiteFilter) ([]*webvision.Website, int, error) {
	return s.FindWebsitesFn(ctx, filter)
}

func (s *WebsiteService) UpdateWebsite(ctx context.Context, id int, upd webvision.WebsiteUpdate) (*webvision.Website, error) {
	return s.UpdateWebsiteFn(ctx, id, upd)
}

func (s *WebsiteService) DeleteWebsite(ctx context.Context, id int) error {
	return s.DeleteWebsiteFn(ctx, id)
}

func (s *WebsiteService) CountWebsites(ctx context.Context) (int, error) {
	return s.CountWebsitesFn(ctx)
}
