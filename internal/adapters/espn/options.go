package espn

import (
	"context"
	"net/http"
	"time"

	"github.com/hashmark/spotlight/internal/adapters/cache"
	"github.com/hashmark/spotlight/pkg/debuglog"
	"github.com/hashmark/spotlight/pkg/logger"
	"github.com/hashmark/spotlight/pkg/retry"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithEndpoints sets the URL builder used by the typed fetch helpers.
func WithEndpoints(e *Endpoints) Option {
	return func(c *Client) {
		if e != nil {
			c.endpoints = e
		}
	}
}

// WithResponseCache replaces the response cache.
func WithResponseCache(rc *cache.ResponseCache) Option {
	return func(c *Client) {
		if rc != nil {
			c.respCache = rc
		}
	}
}

// WithDebugLog replaces the diagnostic ring.
func WithDebugLog(d *debuglog.Log) Option {
	return func(c *Client) {
		if d != nil {
			c.debug = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithAttemptTimeout bounds each individual attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

// WithMaxAttempts caps the retry loop.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the delay schedule between attempts.
func WithBackoff(fn retry.BackoffFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.backoff = fn
		}
	}
}

// WithSleep replaces the waiting primitive, for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithAPITTL sets the cache lifetime for API responses.
func WithAPITTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.apiTTL = d
		}
	}
}

// WithPageTTL sets the cache lifetime for page-scrape responses.
func WithPageTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pageTTL = d
		}
	}
}
