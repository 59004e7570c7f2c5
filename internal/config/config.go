// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() with defaults; Load(ctx) layers file and env on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Default upstream endpoints. The site API serves schedules and box scores,
// the core API serves athlete profiles and season splits.
const (
	defaultSiteAPIBase = "https://site.api.espn.com/apis/site/v2/sports/football/college-football"
	defaultCoreAPIBase = "https://sports.core.api.espn.com/v2/sports/football/leagues/college-football"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// TeamID selects the team whose spotlight is built.
	TeamID int `koanf:"team_id"`

	// Season is the target season; FallbackSeasons are tried in order when
	// the target season has no completed games.
	Season          int   `koanf:"season"`
	FallbackSeasons []int `koanf:"fallback_seasons"`

	// SiteAPIBase and CoreAPIBase are the upstream ESPN API roots.
	SiteAPIBase string `koanf:"site_api_base"`
	CoreAPIBase string `koanf:"core_api_base"`

	// ProxyURL, when set, routes API requests through a same-origin relay
	// as GET <proxy>?url=<encoded upstream URL>. PageProxyURL does the same
	// for page-scrape requests and returns pre-extracted JSON.
	ProxyURL     string `koanf:"proxy_url"`
	PageProxyURL string `koanf:"page_proxy_url"`

	// TeamPageURL is the public team page scraped for embedded page data.
	// Empty disables the page-data leader source.
	TeamPageURL string `koanf:"team_page_url"`

	// Fetch client tuning.
	FetchTimeoutMS int    `koanf:"fetch_timeout_ms"`
	MaxAttempts    int    `koanf:"max_attempts"`
	BackoffBaseMS  int    `koanf:"backoff_base_ms"`
	BackoffKind    string `koanf:"backoff_kind"` // exponential or linear

	// Cache TTLs by endpoint class.
	APICacheTTLMS  int `koanf:"api_cache_ttl_ms"`
	PageCacheTTLMS int `koanf:"page_cache_ttl_ms"`

	// AthleteCacheSize bounds the per-(season,athlete) package cache.
	AthleteCacheSize int `koanf:"athlete_cache_size"`

	// Polling loop tuning.
	PollIntervalMS    int `koanf:"poll_interval_ms"`
	ErrorRetryDelayMS int `koanf:"error_retry_delay_ms"`

	// LeaderSources orders the page-data leader containers consulted when
	// the box score lacks a category.
	LeaderSources []string `koanf:"leader_sources"`

	// DebugLogCapacity bounds the diagnostic ring buffer.
	DebugLogCapacity int `koanf:"debug_log_capacity"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8090",
		TeamID:            166,
		Season:            2025,
		FallbackSeasons:   []int{2024},
		SiteAPIBase:       defaultSiteAPIBase,
		CoreAPIBase:       defaultCoreAPIBase,
		FetchTimeoutMS:    int(8 * time.Second / time.Millisecond),
		MaxAttempts:       3,
		BackoffBaseMS:     250,
		BackoffKind:       "exponential",
		APICacheTTLMS:     int(5 * time.Minute / time.Millisecond),
		PageCacheTTLMS:    int(2 * time.Minute / time.Millisecond),
		AthleteCacheSize:  256,
		PollIntervalMS:    int(2 * time.Minute / time.Millisecond),
		ErrorRetryDelayMS: int(3 * time.Second / time.Millisecond),
		LeaderSources:     []string{"leaders", "leaderboard", "self"},
		DebugLogCapacity:  250,
	}
}
