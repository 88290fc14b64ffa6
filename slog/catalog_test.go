package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/webvision"
	"github.com/fwojciec/webvision/mock"
	wvslog "github.com/fwojciec/webvision/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingCatalogService_AnalyzeAndStore(t *testing.T) {
	t.Parallel()

	t.Run("logs successful analyses and passes the result through", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		svc := wvslog.NewLoggingCatalogService(&mock.CatalogService{
			AnalyzeAndStoreFn: func(_ context.Context, url string) (*webvision.Website, error) {
				return &webvision.Website{ID: 3, URL: url, BrandName: "Acme"}, nil
			},
		}, logger)

		site, err := svc.AnalyzeAndStore(context.Background(), "https://acme.com")

		require.NoError(t, err)
		assert.Equal(t, 3, site.ID)
		assert.Contains(t, buf.String(), "website analyzed")
		assert.Contains(t, buf.String(), "Acme")
	})

	t.Run("logs failures with the error code", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		svc := wvslog.NewLoggingCatalogService(&mock.CatalogService{
			AnalyzeAndStoreFn: func(context.Context, string) (*webvision.Website, error) {
				return nil, webvision.Errorf(webvision.ETIMEOUT, "website took too long to respond")
			},
		}, logger)

		_, err := svc.AnalyzeAndStore(context.Background(), "https://slow.com")

		require.Error(t, err)
		assert.Equal(t, webvision.ETIMEOUT, webvision.ErrorCode(err))
		assert.Contains(t, buf.String(), "website analysis failed")
		assert.Contains(t, buf.String(), webvision.ETIMEOUT)
	})
}

func TestLoggingCatalogService_Delegation(t *testing.T) {
	t.Parallel()

	logger, _ := newTestLogger()
	svc := wvslog.NewLoggingCatalogService(&mock.CatalogService{
		StatsFn: func(context.Context) *webvision.Stats {
			return &webvision.Stats{TotalWebsites: 9}
		},
		FindWebsiteByIDFn: func(_ context.Context, id int) (*webvision.Website, error) {
			return &webvision.Website{ID: id}, nil
		},
	}, logger)

	stats := svc.Stats(context.Background())
	assert.Equal(t, 9, stats.TotalWebsites)

	site, err := svc.FindWebsiteByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, site.ID)
}
