// Package http provides an HTTP-based implementation of webvision.Fetcher
// for retrieving pages to analyze. Fetch failures are typed so the API
// boundary can map them onto meaningful status codes.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/webvision"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// maxRedirects bounds redirect chains.
const maxRedirects = 5

// maxBodySize caps page bodies at 10 MiB. Metadata lives in <head>;
// anything past this is not worth decoding.
const maxBodySize = 10 << 20

// defaultHeaders make requests look like a desktop browser. Some sites
// serve bot-hostile or empty pages to unknown user agents.
var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// Ensure Fetcher implements webvision.Fetcher at compile time.
var _ webvision.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", webvision.Errorf(webvision.EINVALID, "invalid URL format")
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fetchError(err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return "", err
	}

	// Decode through the response charset so extraction sees correct
	// text on non-UTF-8 pages.
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", webvision.Errorf(webvision.EINTERNAL, "failed to decode response: %v", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fetchError(err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// fetchError maps a transport failure onto an application error code.
func fetchError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return webvision.Errorf(webvision.ETIMEOUT, "website took too long to respond")
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return webvision.Errorf(webvision.EUNAVAILABLE, "website not accessible")
	}

	return webvision.Errorf(webvision.EINTERNAL, "fetch failed: %v", err)
}

// statusError maps a non-success HTTP status onto an application error code.
func statusError(code int) error {
	switch {
	case code == http.StatusForbidden || code == http.StatusUnauthorized:
		return webvision.Errorf(webvision.EFORBIDDEN, "website blocked access")
	case code >= 500:
		return webvision.Errorf(webvision.EINTERNAL, "website returned HTTP %d", code)
	case code < 200 || code >= 300:
		return webvision.Errorf(webvision.EUNAVAILABLE, "website not accessible (HTTP %d)", code)
	}
	return nil
}
