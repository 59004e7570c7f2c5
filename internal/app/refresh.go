package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hashmark/spotlight/internal/adapters/espn"
	"github.com/hashmark/spotlight/internal/domain/leader"
	"github.com/hashmark/spotlight/internal/domain/model"
	"github.com/hashmark/spotlight/pkg/debuglog"
	"github.com/hashmark/spotlight/pkg/logger"
	"github.com/hashmark/spotlight/pkg/metrics"
)

// pollLoop runs Refresh on a fixed cadence. The first cycle fires
// immediately; a failed cycle shortens the next wait to the error retry
// delay so a transient outage does not cost a full interval.
func (s *Service) pollLoop(ctx context.Context) {
	defer close(s.done)

	wait := time.Duration(0)
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info(context.Background(), "polling loop stopped")
			return
		case <-timer.C:
		}

		if err := s.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				s.log.Info(context.Background(), "polling loop stopped")
				return
			}
			wait = s.errorRetryDelay
		} else {
			wait = s.pollInterval
		}
		timer.Reset(wait)
	}
}

// Refresh runs one full pipeline cycle and publishes the resulting
// snapshot. Every cycle gets a correlation id attached to its log fields
// and debug entries.
func (s *Service) Refresh(ctx context.Context) error {
	refreshID := uuid.NewString()
	start := time.Now()

	snapshot, err := s.runCycle(ctx, refreshID)

	duration := time.Since(start)
	metrics.RecordRefreshDuration(float64(duration.Milliseconds()))

	if err != nil {
		metrics.RecordRefreshCycle("error")
		s.recordFailure(err)
		s.debug.Record(debuglog.LevelError, "refresh cycle failed", map[string]any{
			"refresh_id": refreshID,
			"error":      err.Error(),
		})
		s.log.Error(ctx, "refresh cycle failed",
			logger.String("refresh_id", refreshID),
			logger.Duration("duration", duration),
			logger.Error(err),
		)
		return err
	}

	s.publish(snapshot)
	metrics.RecordRefreshCycle("success")
	metrics.UpdateLastRefresh(float64(snapshot.GeneratedAt.Unix()))
	s.debug.Record(debuglog.LevelInfo, "refresh cycle completed", map[string]any{
		"refresh_id": refreshID,
		"season":     snapshot.Season.Season,
		"event_id":   snapshot.Game.EventID,
		"offense":    len(snapshot.Offense),
		"defense":    len(snapshot.Defense),
	})
	s.log.Info(ctx, "refresh cycle completed",
		logger.String("refresh_id", refreshID),
		logger.Int("season", snapshot.Season.Season),
		logger.String("event_id", snapshot.Game.EventID),
		logger.Int("offense_cards", len(snapshot.Offense)),
		logger.Int("defense_cards", len(snapshot.Defense)),
		logger.Duration("duration", duration),
	)
	return nil
}

// runCycle executes the pipeline: season resolution, concurrent summary and
// page fetches, box-score location, leader building and the game banner.
func (s *Service) runCycle(ctx context.Context, refreshID string) (*model.Snapshot, error) {
	game, ok := s.resolveLatestCompletedGame(ctx)
	if !ok {
		return nil, ErrNoCompletedGames
	}

	var summary *espn.Summary
	var page *espn.PagePayload

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.client.FetchSummary(gctx, game.Event.ID)
		if err != nil {
			return fmt.Errorf("fetching game summary: %w", err)
		}
		return nil
	})
	if s.teamPageURL != "" {
		g.Go(func() error {
			var err error
			page, err = s.client.FetchTeamPage(gctx, s.teamPageURL)
			if err != nil {
				return fmt.Errorf("fetching team page: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	blocks, ok := s.teamBlocks(summary)
	if !ok {
		return nil, ErrTeamNotFound
	}

	used := leader.NewExclusions()
	offense := s.buildLeaders(ctx, game.Context.Season, blocks, page, offenseConfigs, used)
	defense := s.buildLeaders(ctx, game.Context.Season, blocks, page, defenseConfigs, used)

	return &model.Snapshot{
		RefreshID:   refreshID,
		GeneratedAt: time.Now().UTC(),
		Season:      game.Context,
		Game:        s.buildBanner(game.Event, summary),
		Offense:     offense,
		Defense:     defense,
	}, nil
}

// teamBlocks locates the spotlighted team's statistic blocks in the box
// score and converts them to the domain shape.
func (s *Service) teamBlocks(summary *espn.Summary) ([]model.StatBlock, bool) {
	teamID := strconv.Itoa(s.teamID)
	for _, group := range summary.Boxscore.Players {
		if group.Team.ID != teamID {
			continue
		}
		blocks := make([]model.StatBlock, 0, len(group.Statistics))
		for _, block := range group.Statistics {
			blocks = append(blocks, block.ToModel())
		}
		return blocks, true
	}
	return nil, false
}
