// Package probe runs a single refresh cycle against the live configuration
// and writes the resulting snapshot as JSON. It exercises the exact pipeline
// the polling service runs, which makes it useful for smoke-testing proxies,
// season settings and upstream shape changes from the command line.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hashmark/spotlight/internal/adapters/cache"
	"github.com/hashmark/spotlight/internal/adapters/espn"
	service "github.com/hashmark/spotlight/internal/app"
	"github.com/hashmark/spotlight/internal/config"
	"github.com/hashmark/spotlight/pkg/logger"
	"github.com/hashmark/spotlight/pkg/retry"
)

// Run executes one refresh cycle with cfg and writes the snapshot to out.
func Run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log := logger.Get().Named("probe")

	client := espn.New(
		espn.WithLogger(log.Named("espn")),
		espn.WithEndpoints(espn.NewEndpoints(cfg.SiteAPIBase, cfg.CoreAPIBase, cfg.ProxyURL, cfg.PageProxyURL)),
		espn.WithAttemptTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		espn.WithMaxAttempts(cfg.MaxAttempts),
		espn.WithBackoff(backoffFromConfig(cfg)),
		espn.WithAPITTL(time.Duration(cfg.APICacheTTLMS)*time.Millisecond),
		espn.WithPageTTL(time.Duration(cfg.PageCacheTTLMS)*time.Millisecond),
	)

	svc := service.New(
		service.WithLogger(log),
		service.WithClient(client),
		service.WithAthleteCache(cache.NewAthleteCache(cache.WithMaxSize(cfg.AthleteCacheSize))),
		service.WithTeam(cfg.TeamID),
		service.WithSeason(cfg.Season),
		service.WithFallbackSeasons(cfg.FallbackSeasons),
		service.WithTeamPageURL(cfg.TeamPageURL),
		service.WithLeaderSources(cfg.LeaderSources),
	)

	if err := svc.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	snapshot, err := svc.Snapshot()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// backoffFromConfig translates the configured backoff kind and base delay
// into a schedule.
func backoffFromConfig(cfg *config.Config) retry.BackoffFunc {
	base := time.Duration(cfg.BackoffBaseMS) * time.Millisecond
	if cfg.BackoffKind == "linear" {
		return retry.Linear(base)
	}
	return retry.Exponential(base)
}
