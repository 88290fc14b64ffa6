// Package slog provides logging decorators for webvision services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webvision"
)

// Ensure LoggingCatalogService implements webvision.CatalogService.
var _ webvision.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with operational logging.
type LoggingCatalogService struct {
	next   webvision.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next webvision.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// AnalyzeAndStore delegates to the wrapped service and logs the analysis.
func (s *LoggingCatalogService) AnalyzeAndStore(ctx context.Context, url string) (*webvision.Website, error) {
	begin := time.Now()
	site, err := s.next.AnalyzeAndStore(ctx, url)
	if err != nil {
		s.logger.Error("website analysis failed",
			"url", url,
			"code", webvision.ErrorCode(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}
	s.logger.Info("website analyzed",
		"url", url,
		"id", site.ID,
		"brand", site.BrandName,
		"duration", time.Since(begin),
	)
	return site, nil
}

// FindWebsites delegates to the wrapped service.
func (s *LoggingCatalogService) FindWebsites(ctx context.Context, filter webvision.WebsiteFilter) ([]*webvision.Website, int, error) {
	return s.next.FindWebsites(ctx, filter)
}

// FindWebsiteByID delegates to the wrapped service.
func (s *LoggingCatalogService) FindWebsiteByID(ctx context.Context, id int) (*webvision.Website, error) {
	return s.next.FindWebsiteByID(ctx, id)
}

// UpdateWebsite delegates to the wrapped service and logs the mutation.
func (s *LoggingCatalogService) UpdateWebsite(ctx context.Context, id int, upd webvision.WebsiteUpdate) (*webvision.Website, error) {
	site, err := s.next.UpdateWebsite(ctx, id, upd)
	if err != nil {
		s.logger.Warn("website update failed", "id", id, "code", webvision.ErrorCode(err))
		return nil, err
	}
	s.logger.Info("website updated", "id", id)
	return site, nil
}

// DeleteWebsite delegates to the wrapped service and logs the mutation.
func (s *LoggingCatalogService) DeleteWebsite(ctx context.Context, id int) error {
	if err := s.next.DeleteWebsite(ctx, id); err != nil {
		s.logger.Warn("website delete failed", "id", id, "code", webvision.ErrorCode(err))
		return err
	}
	s.logger.Info("website deleted", "id", id)
	return nil
}

// Stats delegates to the wrapped service.
func (s *LoggingCatalogService) Stats(ctx context.Context) *webvision.Stats {
	return s.next.Stats(ctx)
}
