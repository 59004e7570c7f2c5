package cache

import "time"

// ResponseOption applies a configuration option to the ResponseCache.
type ResponseOption func(*ResponseCache)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ResponseOption {
	return func(c *ResponseCache) {
		if now != nil {
			c.now = now
		}
	}
}

// AthleteOption applies a configuration option to the AthleteCache.
type AthleteOption func(*AthleteCache)

// WithMaxSize bounds the number of cached athlete packages.
func WithMaxSize(n int) AthleteOption {
	return func(c *AthleteCache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}
