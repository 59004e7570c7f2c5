// Package espn fetches schedule, box-score, athlete and page-data documents
// from the upstream stats provider, optionally through a same-origin proxy,
// with timeout, classified retries and a TTL response cache in front.
package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashmark/spotlight/internal/adapters/cache"
	"github.com/hashmark/spotlight/internal/domain/model"
	"github.com/hashmark/spotlight/pkg/debuglog"
	"github.com/hashmark/spotlight/pkg/logger"
	"github.com/hashmark/spotlight/pkg/metrics"
	"github.com/hashmark/spotlight/pkg/retry"
)

// Default client configuration constants.
const (
	defaultAttemptTimeout = 8 * time.Second
	defaultUserAgent      = "HashmarkChronicles/1.0 (+https://hashmarkchronicles.online)"
	defaultMaxAttempts    = 3
	defaultBackoffBase    = 250 * time.Millisecond
)

// debugHeaders are the proxy diagnostics captured into fetch metadata.
var debugHeaders = []string{
	"x-espn-cache",
	"x-espn-status",
	"x-espn-duration-ms",
	"x-espn-records",
	"x-proxy-cache",
}

// Cache states reported on FetchResult.
const (
	CacheHit  = "HIT"
	CacheMiss = "MISS"
)

// FetchResult is the immutable outcome of one logical fetch.
type FetchResult struct {
	Data       json.RawMessage
	Status     int
	Duration   time.Duration
	CacheState string
	Attempts   int
	Meta       map[string]string
}

// Client performs retrying JSON fetches against the provider.
type Client struct {
	http           *http.Client
	endpoints      *Endpoints
	respCache      *cache.ResponseCache
	debug          *debuglog.Log
	log            logger.Logger
	userAgent      string
	attemptTimeout time.Duration
	apiTTL         time.Duration
	pageTTL        time.Duration

	maxAttempts int
	backoff     retry.BackoffFunc
	sleep       func(ctx context.Context, d time.Duration) error
	policy      *retry.Policy
}

// New creates a Client. An Endpoints value is required for the typed fetch
// helpers; FetchJSON alone works without one.
func New(opts ...Option) *Client {
	c := &Client{
		http:           &http.Client{},
		respCache:      cache.NewResponseCache(),
		debug:          debuglog.New(),
		userAgent:      defaultUserAgent,
		attemptTimeout: defaultAttemptTimeout,
		apiTTL:         5 * time.Minute,
		pageTTL:        2 * time.Minute,
		maxAttempts:    defaultMaxAttempts,
		backoff:        retry.Exponential(defaultBackoffBase),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named("espn")
	}
	if c.endpoints == nil {
		c.endpoints = NewEndpoints("", "", "", "")
	}

	policyOpts := []retry.Option{
		retry.WithMaxAttempts(c.maxAttempts),
		retry.WithBackoff(c.backoff),
		retry.WithRetryable(IsRetryable),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			metrics.RecordFetchRetry()
			c.log.Warn(context.Background(), "retrying after transient failure",
				logger.Int("attempt", attempt),
				logger.Duration("backoff", delay),
				logger.Error(err),
			)
		}),
	}
	if c.sleep != nil {
		policyOpts = append(policyOpts, retry.WithSleep(c.sleep))
	}
	c.policy = retry.NewPolicy(policyOpts...)

	return c
}

// DebugLog exposes the diagnostic ring the client records into.
func (c *Client) DebugLog() *debuglog.Log { return c.debug }

// ResponseCache exposes the response cache, mainly for reset operations.
func (c *Client) ResponseCache() *cache.ResponseCache { return c.respCache }

// FetchJSON GETs target (through the API proxy when configured) and returns
// its body as validated JSON. Results are served from and stored into the
// response cache under the exact request URL; errors are never cached.
func (c *Client) FetchJSON(ctx context.Context, target, label string) (*FetchResult, error) {
	return c.fetch(ctx, c.endpoints.ViaProxy(target), label, c.apiTTL, false)
}

// FetchPageJSON GETs a page-scrape target. Behind a page proxy the body is
// already the extracted embedded payload; in direct mode the HTML is fetched
// and the payload extracted locally. Cached under the page TTL.
func (c *Client) FetchPageJSON(ctx context.Context, target, label string) (*FetchResult, error) {
	if c.endpoints.HasPageProxy() {
		return c.fetch(ctx, c.endpoints.ViaPageProxy(target), label, c.pageTTL, false)
	}
	return c.fetch(ctx, target, label, c.pageTTL, true)
}

// fetch runs the retrying GET. extract switches the body treatment: false
// validates raw JSON, true runs embedded-payload extraction on HTML.
func (c *Client) fetch(ctx context.Context, requestURL, label string, ttl time.Duration, extract bool) (*FetchResult, error) {
	if entry, ok := c.respCache.Get(requestURL); ok {
		c.log.Debug(ctx, "cache hit", logger.String("url", requestURL), logger.String("label", label))
		return &FetchResult{
			Data:       entry.Payload,
			Status:     http.StatusOK,
			CacheState: CacheHit,
			Meta:       entry.Meta,
		}, nil
	}

	start := time.Now()
	attempts := 0
	var payload json.RawMessage
	var status int
	var meta map[string]string

	err := c.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		attempts = attempt
		body, st, m, err := c.attempt(ctx, requestURL)
		if err != nil {
			metrics.RecordFetchAttempt(label, outcome(err))
			return err
		}

		if extract {
			extracted, exErr := ExtractPagePayload(string(body))
			if exErr != nil {
				metrics.RecordFetchAttempt(label, "terminal")
				return exErr
			}
			body = extracted
		} else if !json.Valid(body) {
			metrics.RecordFetchAttempt(label, "terminal")
			return &ParseError{Err: fmt.Errorf("invalid JSON body"), Preview: preview(body)}
		}

		metrics.RecordFetchAttempt(label, "success")
		payload = body
		status = st
		meta = m
		return nil
	})

	duration := time.Since(start)
	metrics.RecordFetchDuration(float64(duration.Milliseconds()))

	summary := debuglog.RequestSummary{
		URL:        requestURL,
		Label:      label,
		Status:     status,
		Duration:   duration,
		CacheState: CacheMiss,
		Attempts:   attempts,
	}

	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) {
			summary.Status = ue.Status
		}
		summary.Err = err.Error()
		c.debug.SetLastRequest(summary)
		c.debug.Record(debuglog.LevelError, "fetch failed", map[string]any{
			"url":      requestURL,
			"label":    label,
			"attempts": attempts,
			"error":    err.Error(),
		})
		c.log.Error(ctx, "fetch failed",
			logger.String("url", requestURL),
			logger.String("label", label),
			logger.Int("attempts", attempts),
			logger.Duration("duration", duration),
			logger.Error(err),
		)
		return nil, err
	}

	c.respCache.Set(requestURL, payload, ttl, meta)
	c.debug.SetLastRequest(summary)
	c.log.Info(ctx, "fetch succeeded",
		logger.String("label", label),
		logger.Int("status", status),
		logger.Int("attempts", attempts),
		logger.Duration("duration", duration),
	)

	return &FetchResult{
		Data:       payload,
		Status:     status,
		Duration:   duration,
		CacheState: CacheMiss,
		Attempts:   attempts,
		Meta:       meta,
	}, nil
}

// attempt issues one GET with the per-attempt timeout and classifies the
// outcome.
func (c *Client) attempt(ctx context.Context, requestURL string) ([]byte, int, map[string]string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts, resets and DNS failures all land here.
		return nil, 0, nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, nil, &NetworkError{Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: preview(body),
		}
	}

	meta := make(map[string]string)
	for _, h := range debugHeaders {
		if v := resp.Header.Get(h); v != "" {
			meta[h] = v
		}
	}
	return body, resp.StatusCode, meta, nil
}

// FetchSchedule returns the team's schedule for a season.
func (c *Client) FetchSchedule(ctx context.Context, teamID, season int) (*Schedule, error) {
	res, err := c.FetchJSON(ctx, c.endpoints.TeamSchedule(teamID, season), "schedule")
	if err != nil {
		return nil, err
	}
	var schedule Schedule
	if err := json.Unmarshal(res.Data, &schedule); err != nil {
		return nil, &ParseError{Err: err, Preview: preview(res.Data)}
	}
	return &schedule, nil
}

// FetchSummary returns the game summary, box score included, for one event.
func (c *Client) FetchSummary(ctx context.Context, eventID string) (*Summary, error) {
	res, err := c.FetchJSON(ctx, c.endpoints.GameSummary(eventID), "summary")
	if err != nil {
		return nil, err
	}
	var summary Summary
	if err := json.Unmarshal(res.Data, &summary); err != nil {
		return nil, &ParseError{Err: err, Preview: preview(res.Data)}
	}
	return &summary, nil
}

// FetchAthleteProfile returns the core-API athlete document for a season.
func (c *Client) FetchAthleteProfile(ctx context.Context, season int, athleteID string) (*AthleteProfile, error) {
	res, err := c.FetchJSON(ctx, c.endpoints.AthleteProfile(season, athleteID), "athlete-profile")
	if err != nil {
		return nil, err
	}
	var profile AthleteProfile
	if err := json.Unmarshal(res.Data, &profile); err != nil {
		return nil, &ParseError{Err: err, Preview: preview(res.Data)}
	}
	return &profile, nil
}

// FetchSplits follows a profile's statistics $ref and normalizes the splits
// document. The ref's scheme is rewritten to https first.
func (c *Client) FetchSplits(ctx context.Context, ref string) (*model.SeasonSplits, error) {
	res, err := c.FetchJSON(ctx, c.endpoints.SplitsRef(ref), "athlete-splits")
	if err != nil {
		return nil, err
	}
	var doc SplitsDocument
	if err := json.Unmarshal(res.Data, &doc); err != nil {
		return nil, &ParseError{Err: err, Preview: preview(res.Data)}
	}
	return doc.ToModel(), nil
}

// FetchTeamPage returns the embedded page-data payload for a team page.
func (c *Client) FetchTeamPage(ctx context.Context, pageURL string) (*PagePayload, error) {
	res, err := c.FetchPageJSON(ctx, pageURL, "team-page")
	if err != nil {
		return nil, err
	}
	return ParsePagePayload(res.Data)
}

// outcome labels a failed attempt for metrics.
func outcome(err error) string {
	if IsRetryable(err) {
		return "retryable"
	}
	return "terminal"
}
