package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/webvision"
	"github.com/fwojciec/webvision/catalog"
	"github.com/fwojciec/webvision/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_AnalyzeAndStore(t *testing.T) {
	t.Parallel()

	t.Run("fetches, extracts, enhances and persists", func(t *testing.T) {
		t.Parallel()

		var created *webvision.Website
		svc := &catalog.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					assert.Equal(t, "https://acme.com", url)
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string, _ string) *webvision.Metadata {
					return &webvision.Metadata{
						BrandName:   "Acme",
						Description: "Widgets for everyone.",
						FaviconURL:  "https://acme.com/favicon.ico",
						Keywords:    []string{"widgets"},
						Language:    "en",
					}
				},
			},
			Enhancer: &mock.Enhancer{
				EnhanceFn: func(_ context.Context, description, brand string) string {
					return "Acme: the definitive destination for widgets, loved by everyone who needs widgets."
				},
			},
			Websites: &mock.WebsiteService{
				CreateWebsiteFn: func(_ context.Context, site *webvision.Website) error {
					site.ID = 1
					created = site
					return nil
				},
			},
		}

		site, err := svc.AnalyzeAndStore(context.Background(), "https://acme.com")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 1, site.ID)
		assert.Equal(t, "Acme", site.BrandName)
		assert.Equal(t, "Widgets for everyone.", site.Description)
		assert.Contains(t, site.AIDescription, "definitive destination")
		assert.Equal(t, webvision.StatusActive, site.Status)
		assert.Equal(t, []string{"widgets"}, site.Keywords)
	})

	t.Run("propagates fetch errors unchanged", func(t *testing.T) {
		t.Parallel()

		fetchErr := webvision.Errorf(webvision.ETIMEOUT, "website took too long to respond")
		svc := &catalog.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", fetchErr
				},
			},
		}

		_, err := svc.AnalyzeAndStore(context.Background(), "https://slow.com")

		require.Error(t, err)
		assert.Equal(t, webvision.ETIMEOUT, webvision.ErrorCode(err))
	})

	t.Run("synthesizes a one-liner when enhancement does not improve on the raw text", func(t *testing.T) {
		t.Parallel()

		svc := &catalog.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(string, string) *webvision.Metadata {
					return &webvision.Metadata{BrandName: "Acme", Description: "Widgets.", Language: "en"}
				},
			},
			Enhancer: &mock.Enhancer{
				EnhanceFn: func(context.Context, string, string) string { return "" },
			},
			Websites: &mock.WebsiteService{
				CreateWebsiteFn: func(context.Context, *webvision.Website) error { return nil },
			},
		}

		site, err := svc.AnalyzeAndStore(context.Background(), "https://acme.com")

		require.NoError(t, err)
		assert.Equal(t, "Discover Acme: Widgets.", site.AIDescription)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		svc := &catalog.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(string, string) *webvision.Metadata {
					return &webvision.Metadata{BrandName: "Acme", Description: "Widgets for everyone.", Language: "en"}
				},
			},
			Enhancer: &mock.Enhancer{
				EnhanceFn: func(context.Context, string, string) string {
					return "A very long enhanced description of Acme widgets for testing."
				},
			},
			Websites: &mock.WebsiteService{
				CreateWebsiteFn: func(context.Context, *webvision.Website) error {
					return webvision.Errorf(webvision.EINTERNAL, "insert failed")
				},
			},
		}

		_, err := svc.AnalyzeAndStore(context.Background(), "https://acme.com")

		require.Error(t, err)
		assert.Equal(t, webvision.EINTERNAL, webvision.ErrorCode(err))
	})
}

func TestService_UpdateWebsite(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty updates without touching the store", func(t *testing.T) {
		t.Parallel()

		svc := &catalog.Service{
			Websites: &mock.WebsiteService{
				UpdateWebsiteFn: func(context.Context, int, webvision.WebsiteUpdate) (*webvision.Website, error) {
					t.Fatal("store should not be called for an empty update")
					return nil, nil
				},
			},
		}

		_, err := svc.UpdateWebsite(context.Background(), 1, webvision.WebsiteUpdate{})

		require.Error(t, err)
		assert.Equal(t, webvision.EINVALID, webvision.ErrorCode(err))
	})

	t.Run("delegates non-empty updates", func(t *testing.T) {
		t.Parallel()

		brand := "Renamed"
		svc := &catalog.Service{
			Websites: &mock.WebsiteService{
				UpdateWebsiteFn: func(_ context.Context, id int, upd webvision.WebsiteUpdate) (*webvision.Website, error) {
					assert.Equal(t, 7, id)
					require.NotNil(t, upd.BrandName)
					return &webvision.Website{ID: id, BrandName: *upd.BrandName}, nil
				},
			},
		}

		site, err := svc.UpdateWebsite(context.Background(), 7, webvision.WebsiteUpdate{BrandName: &brand})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", site.BrandName)
	})
}

func TestService_DeleteWebsite(t *testing.T) {
	t.Parallel()

	t.Run("absorbs store-level not found", func(t *testing.T) {
		t.Parallel()

		svc := &catalog.Service{
			Websites: &mock.WebsiteService{
				DeleteWebsiteFn: func(context.Context, int) error {
					return webvision.Errorf(webvision.ENOTFOUND, "Website not found")
				},
			},
		}

		assert.NoError(t, svc.DeleteWebsite(context.Background(), 999))
	})

	t.Run("propagates other store errors", func(t *testing.T) {
		t.Parallel()

		svc := &catalog.Service{
			Websites: &mock.WebsiteService{
				DeleteWebsiteFn: func(context.Context, int) error {
					return webvision.Errorf(webvision.EINTERNAL, "delete failed")
				},
			},
		}

		err := svc.DeleteWebsite(context.Background(), 1)

		require.Error(t, err)
		assert.Equal(t, webvision.EINTERNAL, webvision.ErrorCode(err))
	})
}

func TestService_Stats(t *testing.T) {
	t.Parallel()

	t.Run("reports total and most recent brand", func(t *testing.T) {
		t.Parallel()

		created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		svc := &catalog.Service{
			Websites: &mock.WebsiteService{
				CountWebsitesFn: func(context.Context) (int, error) { return 4, nil },
				FindWebsitesFn: func(_ context.Context, filter webvision.WebsiteFilter) ([]*webvision.Website, int, error) {
					assert.Equal(t, 1, filter.Limit)
					return []*webvision.Website{
						{ID: 4, URL: "https://acme.com", BrandName: "Acme", CreatedAt: created},
					}, 4, nil
				},
			},
		}

		stats := svc.Stats(context.Background())

		assert.Equal(t, 4, stats.TotalWebsites)
		assert.Equal(t, "Acme", stats.MostRecent)
		require.NotNil(t, stats.LastAdded)
		assert.Equal(t, created, *stats.LastAdded)
	})

	t.Run("falls back to hostname when brand name is empty", func(t *testing.T) {
		t.Parallel()

		svc := &catalog.Service{
			Websites: &mock.WebsiteService{
				CountWebsitesFn: func(context.Context) (int, error) { return 1, nil },
				FindWebsitesFn: func(context.Context, webvision.WebsiteFilter) ([]*webvision.Website, int, error) {
					return []*webvision.Website{{ID: 1, URL: "https://acme.com/page"}}, 1, nil
				},
			},
		}

		stats := svc.Stats(context.Background())

		assert.Equal(t, "acme.com", stats.MostRecent)
	})

	t.Run("degrades to zeroed stats on store errors", func(t *testing.T) {
		t.Parallel()

		svc := &catalog.Service{
			Websites: &mock.WebsiteService{
				CountWebsitesFn: func(context.Context) (int, error) {
					return 0, webvision.Errorf(webvision.EINTERNAL, "count failed")
				},
			},
		}

		stats := svc.Stats(context.Background())

		require.NotNil(t, stats)
		assert.Zero(t, stats.TotalWebsites)
		assert.Empty(t, stats.MostRecent)
		assert.Nil(t, stats.LastAdded)
	})

	t.Run("handles an empty catalog", func(t *testing.T) {
		t.Parallel()

		svc := &catalog.Service{
			Websites: &mock.WebsiteService{
				CountWebsitesFn: func(context.Context) (int, error) { return 0, nil },
				FindWebsitesFn: func(context.Context, webvision.WebsiteFilter) ([]*webvision.Website, int, error) {
					return []*webvision.Website{}, 0, nil
				},
			},
		}

		stats := svc.Stats(context.Background())

		assert.Zero(t, stats.TotalWebsites)
		assert.Nil(t, stats.LastAdded)
	})
}
