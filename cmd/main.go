package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hashmark/spotlight/internal/adapters/cache"
	"github.com/hashmark/spotlight/internal/adapters/espn"
	"github.com/hashmark/spotlight/internal/adapters/http/api"
	service "github.com/hashmark/spotlight/internal/app"
	"github.com/hashmark/spotlight/internal/config"
	"github.com/hashmark/spotlight/pkg/debuglog"
	"github.com/hashmark/spotlight/pkg/logger"
	"github.com/hashmark/spotlight/pkg/metrics"
	"github.com/hashmark/spotlight/pkg/retry"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	debug := debuglog.New(debuglog.WithCapacity(cfg.DebugLogCapacity))
	client := espn.New(
		espn.WithLogger(log.Named("espn")),
		espn.WithDebugLog(debug),
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
		service.WithDebugLog(debug),
		service.WithAthleteCache(cache.NewAthleteCache(cache.WithMaxSize(cfg.AthleteCacheSize))),
		service.WithTeam(cfg.TeamID),
		service.WithSeason(cfg.Season),
		service.WithFallbackSeasons(cfg.FallbackSeasons),
		service.WithTeamPageURL(cfg.TeamPageURL),
		service.WithLeaderSources(cfg.LeaderSources),
		service.WithPollInterval(time.Duration(cfg.PollIntervalMS)*time.Millisecond),
		service.WithErrorRetryDelay(time.Duration(cfg.ErrorRetryDelayMS)*time.Millisecond),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
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
