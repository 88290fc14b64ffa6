package webvision

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML document at url.
	// The context controls timeout and cancellation. Failures are typed:
	// ETIMEOUT for slow sites, EUNAVAILABLE for DNS/connection failures,
	// EFORBIDDEN when the site blocks access.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
