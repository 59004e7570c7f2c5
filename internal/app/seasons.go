package service

import (
	"context"
	"sort"

	"github.com/hashmark/spotlight/internal/adapters/espn"
	"github.com/hashmark/spotlight/internal/domain/model"
	"github.com/hashmark/spotlight/pkg/logger"
	"github.com/hashmark/spotlight/pkg/metrics"
)

// resolvedGame pairs the settled season context with its featured event.
type resolvedGame struct {
	Context model.SeasonContext
	Event   espn.Event
}

// resolveLatestCompletedGame walks the target season then each fallback
// season, returning the most recent final game of the first season that has
// one. Seasons without completed games record reason empty; unreachable
// schedules record reason error and the walk continues. When a fallback
// season wins, the context carries the target season's recorded reason.
func (s *Service) resolveLatestCompletedGame(ctx context.Context) (resolvedGame, bool) {
	seasons := append([]int{s.season}, s.fallbackSeasons...)

	targetReason := model.FallbackNone
	targetDetail := ""

	for _, season := range seasons {
		event, reason, detail := s.latestFinalEvent(ctx, season)
		if event == nil {
			if season == s.season {
				targetReason = reason
				targetDetail = detail
			}
			s.log.Warn(ctx, "season has no usable completed game",
				logger.Int("season", season),
				logger.String("reason", string(reason)),
			)
			continue
		}

		sc := model.SeasonContext{Season: season, FallbackReason: model.FallbackNone}
		if season != s.season {
			sc.IsFallback = true
			sc.FallbackReason = targetReason
			sc.FallbackDetail = targetDetail
			metrics.RecordSeasonFallback()
		}
		return resolvedGame{Context: sc, Event: *event}, true
	}

	return resolvedGame{}, false
}

// latestFinalEvent fetches one season's schedule and picks its most recent
// final event. A nil event comes with the reason the season yielded nothing.
func (s *Service) latestFinalEvent(ctx context.Context, season int) (*espn.Event, model.FallbackReason, string) {
	schedule, err := s.client.FetchSchedule(ctx, s.teamID, season)
	if err != nil {
		return nil, model.FallbackError, err.Error()
	}

	finals := make([]espn.Event, 0, len(schedule.Events))
	for _, event := range schedule.Events {
		if event.IsFinal() {
			finals = append(finals, event)
		}
	}
	if len(finals) == 0 {
		return nil, model.FallbackEmpty, ""
	}

	sort.SliceStable(finals, func(i, j int) bool {
		return finals[i].When().Before(finals[j].When())
	})
	latest := finals[len(finals)-1]
	return &latest, model.FallbackNone, ""
}
