package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/tabs/pkg/buildinfo"
	"github.com/matzehuels/tabs/pkg/cache"
	"github.com/matzehuels/tabs/pkg/errors"
	"github.com/matzehuels/tabs/pkg/observability"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 8 << 20
)

// Client fetches pages over HTTP, optionally through a cache.
// It is safe for concurrent use.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	ttl       time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Client. A nil backend disables caching; ttl is how
// long fetched pages stay in the cache.
func NewClient(backend cache.Cache, ttl time.Duration, opts ...Option) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		cache:     backend,
		ttl:       ttl,
		userAgent: buildinfo.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the body of the page at rawURL. Under a context from
// [cache.WithRefresh] the cached copy is skipped and replaced.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	key := cache.PageKey(rawURL)
	if !cache.Refreshing(ctx) {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "page")
			return string(data), nil
		}
		observability.Cache().OnCacheMiss(ctx, "page")
	}

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, body, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "page", len(body))
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	host, path := hostPath(req.URL)
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "GET %s", rawURL)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrCodeTransport, "GET %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "read %s", rawURL)
	}
	if len(body) > maxBodySize {
		return nil, errors.New(errors.ErrCodeTransport, "GET %s: body exceeds %s", rawURL, sizeString(maxBodySize))
	}
	return body, nil
}

func hostPath(u *url.URL) (string, string) {
	if u == nil {
		return "", ""
	}
	return u.Host, u.Path
}

func sizeString(n int) string {
	return fmt.Sprintf("%d MiB", n>>20)
}
