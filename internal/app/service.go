// Package service builds and publishes spotlight snapshots. It owns the
// refresh pipeline: season resolution, concurrent summary and page fetches,
// leader extraction, athlete enrichment, grading and the polling loop. It
// also implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/hashmark/spotlight/internal/adapters/cache"
	"github.com/hashmark/spotlight/internal/adapters/espn"
	"github.com/hashmark/spotlight/internal/domain/model"
	"github.com/hashmark/spotlight/pkg/debuglog"
	"github.com/hashmark/spotlight/pkg/logger"
)

// Defaults for the polling loop.
const (
	defaultPollInterval    = 2 * time.Minute
	defaultErrorRetryDelay = 3 * time.Second
	defaultTeamID          = 166
	defaultSeason          = 2025
)

// defaultLeaderSources is the page-data container priority when none is
// configured.
var defaultLeaderSources = []string{
	espn.SourceLeaders,
	espn.SourceLeaderboard,
	espn.SourceSelf,
}

// Service runs the refresh pipeline and holds the latest snapshot.
type Service struct {
	mu     sync.RWMutex
	latest *model.Snapshot

	client   *espn.Client
	athletes *cache.AthleteCache
	debug    *debuglog.Log
	log      logger.Logger

	teamID          int
	season          int
	fallbackSeasons []int
	teamPageURL     string
	leaderSources   []string

	pollInterval    time.Duration
	errorRetryDelay time.Duration

	started   bool
	startedAt time.Time
	stop      context.CancelFunc
	done      chan struct{}

	cycles       uint64
	cycleErrors  uint64
	lastCycleErr string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClient sets the upstream fetch client.
func WithClient(c *espn.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.client = c
		}
	}
}

// WithAthleteCache sets the bounded athlete package cache.
func WithAthleteCache(c *cache.AthleteCache) Option {
	return func(s *Service) {
		if c != nil {
			s.athletes = c
		}
	}
}

// WithDebugLog sets the diagnostic ring shared with the fetch client.
func WithDebugLog(d *debuglog.Log) Option {
	return func(s *Service) {
		if d != nil {
			s.debug = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTeam selects the spotlighted team.
func WithTeam(id int) Option {
	return func(s *Service) {
		if id > 0 {
			s.teamID = id
		}
	}
}

// WithSeason sets the target season.
func WithSeason(season int) Option {
	return func(s *Service) {
		if season > 0 {
			s.season = season
		}
	}
}

// WithFallbackSeasons sets the seasons tried, in order, when the target
// season has no completed games.
func WithFallbackSeasons(seasons []int) Option {
	return func(s *Service) {
		s.fallbackSeasons = seasons
	}
}

// WithTeamPageURL enables the page-data leader source. Empty disables it.
func WithTeamPageURL(u string) Option {
	return func(s *Service) {
		s.teamPageURL = u
	}
}

// WithLeaderSources orders the page-data leader containers.
func WithLeaderSources(sources []string) Option {
	return func(s *Service) {
		if len(sources) > 0 {
			s.leaderSources = sources
		}
	}
}

// WithPollInterval sets the refresh cadence.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithErrorRetryDelay sets the shortened wait after a failed cycle.
func WithErrorRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.errorRetryDelay = d
		}
	}
}

// New creates a Service with the given options.
func New(opts ...Option) *Service {
	s := &Service{
		teamID:          defaultTeamID,
		season:          defaultSeason,
		pollInterval:    defaultPollInterval,
		errorRetryDelay: defaultErrorRetryDelay,
		leaderSources:   defaultLeaderSources,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("service")
	}
	if s.client == nil {
		s.client = espn.New(espn.WithLogger(s.log.Named("espn")))
	}
	if s.athletes == nil {
		s.athletes = cache.NewAthleteCache()
	}
	if s.debug == nil {
		s.debug = s.client.DebugLog()
	}
	return s
}

// Start launches the polling loop. The first cycle runs immediately; the
// loop stops when ctx is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.startedAt = time.Now()
	loopCtx, cancel := context.WithCancel(ctx)
	s.stop = cancel
	s.mu.Unlock()

	s.log.Info(ctx, "service starting",
		logger.Int("team_id", s.teamID),
		logger.Int("season", s.season),
		logger.Duration("poll_interval", s.pollInterval),
	)

	go s.pollLoop(loopCtx)
	return nil
}

// Stop cancels the polling loop and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel := s.stop
	started := s.started
	s.mu.Unlock()

	if !started || cancel == nil {
		return
	}
	cancel()
	<-s.done
}

// Snapshot returns the latest published snapshot.
func (s *Service) Snapshot() (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, ErrNoSnapshot
	}
	return s.latest, nil
}

// DebugLog exposes the diagnostic ring for the HTTP API.
func (s *Service) DebugLog() *debuglog.Log { return s.debug }

// Stats reports service counters for the stats endpoint.
func (s *Service) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":            s.started,
		"team_id":            s.teamID,
		"target_season":      s.season,
		"refresh_cycles":     s.cycles,
		"refresh_errors":     s.cycleErrors,
		"response_cache_len": s.client.ResponseCache().Len(),
		"athlete_cache_len":  s.athletes.Len(),
		"debuglog_len":       s.debug.Len(),
	}
	if s.started {
		stats["uptime_seconds"] = int(time.Since(s.startedAt).Seconds())
	}
	if s.lastCycleErr != "" {
		stats["last_cycle_error"] = s.lastCycleErr
	}
	if s.latest != nil {
		stats["last_refresh_id"] = s.latest.RefreshID
		stats["last_refresh_at"] = s.latest.GeneratedAt
		stats["resolved_season"] = s.latest.Season.Season
	}
	return stats
}

// publish atomically swaps in a new snapshot and updates cycle counters.
func (s *Service) publish(snapshot *model.Snapshot) {
	s.mu.Lock()
	s.latest = snapshot
	s.cycles++
	s.lastCycleErr = ""
	s.mu.Unlock()
}

// recordFailure notes a failed cycle for the stats endpoint.
func (s *Service) recordFailure(err error) {
	s.mu.Lock()
	s.cycles++
	s.cycleErrors++
	s.lastCycleErr = err.Error()
	s.mu.Unlock()
}
