// Package catalog orchestrates website analysis: fetch, extract, enhance,
// persist. It also fronts the record store for the read, update and delete
// operations the API exposes.
package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/webvision"
)

// Ensure Service implements webvision.CatalogService at compile time.
var _ webvision.CatalogService = (*Service)(nil)

// Service implements webvision.CatalogService over injected collaborators.
type Service struct {
	Fetcher   webvision.Fetcher
	Extractor webvision.Extractor
	Enhancer  webvision.Enhancer
	Websites  webvision.WebsiteService
}

// AnalyzeAndStore fetches the page at a canonical URL, extracts and enhances
// its metadata, and persists a new record. One record per successful
// analysis; no dedup by URL.
func (s *Service) AnalyzeAndStore(ctx context.Context, pageURL string) (*webvision.Website, error) {
	html, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	meta := s.Extractor.Extract(html, pageURL)

	enhanced := s.Enhancer.Enhance(ctx, meta.Description, meta.BrandName)
	if len(enhanced) <= len(meta.Description) {
		// Safety net: the enhancer should always improve on the raw
		// text; synthesize a one-liner when it somehow didn't.
		enhanced = fmt.Sprintf("Discover %s: %s", meta.BrandName, meta.Description)
	}

	site := &webvision.Website{
		URL:           pageURL,
		BrandName:     meta.BrandName,
		Description:   meta.Description,
		AIDescription: enhanced,
		FaviconURL:    meta.FaviconURL,
		Keywords:      meta.Keywords,
		Language:      meta.Language,
		Status:        webvision.StatusActive,
	}
	if err := s.Websites.CreateWebsite(ctx, site); err != nil {
		return nil, err
	}

	return site, nil
}

// FindWebsites retrieves a page of websites plus the total count.
func (s *Service) FindWebsites(ctx context.Context, filter webvision.WebsiteFilter) ([]*webvision.Website, int, error) {
	return s.Websites.FindWebsites(ctx, filter)
}

// FindWebsiteByID retrieves a website by ID.
func (s *Service) FindWebsiteByID(ctx context.Context, id int) (*webvision.Website, error) {
	return s.Websites.FindWebsiteByID(ctx, id)
}

// UpdateWebsite applies a partial update.
func (s *Service) UpdateWebsite(ctx context.Context, id int, upd webvision.WebsiteUpdate) (*webvision.Website, error) {
	if upd.IsZero() {
		return nil, webvision.Errorf(webvision.EINVALID, "No valid fields to update")
	}
	return s.Websites.UpdateWebsite(ctx, id, upd)
}

// DeleteWebsite removes a website. Deletion is idempotent: a website that is
// already gone is not an error at this layer.
func (s *Service) DeleteWebsite(ctx context.Context, id int) error {
	err := s.Websites.DeleteWebsite(ctx, id)
	if webvision.ErrorCode(err) == webvision.ENOTFOUND {
		return nil
	}
	return err
}

// Stats summarizes the catalog. It never fails; any store error degrades to
// a zeroed stats object.
func (s *Service) Stats(ctx context.Context) *webvision.Stats {
	stats := &webvision.Stats{}

	total, err := s.Websites.CountWebsites(ctx)
	if err != nil {
		return stats
	}
	stats.TotalWebsites = total

	sites, _, err := s.Websites.FindWebsites(ctx, webvision.WebsiteFilter{Limit: 1})
	if err != nil || len(sites) == 0 {
		return stats
	}

	newest := sites[0]
	stats.MostRecent = newest.BrandName
	if stats.MostRecent == "" {
		if u, err := url.Parse(newest.URL); err == nil {
			stats.MostRecent = u.Hostname()
		}
	}
	created := newest.CreatedAt
	stats.LastAdded = &created

	return stats
}
