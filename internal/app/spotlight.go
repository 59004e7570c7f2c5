package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/hashmark/spotlight/internal/adapters/cache"
	"github.com/hashmark/spotlight/internal/adapters/espn"
	"github.com/hashmark/spotlight/internal/domain/grade"
	"github.com/hashmark/spotlight/internal/domain/leader"
	"github.com/hashmark/spotlight/internal/domain/model"
	"github.com/hashmark/spotlight/internal/domain/stats"
	"github.com/hashmark/spotlight/pkg/logger"
	"github.com/hashmark/spotlight/pkg/metrics"
)

// categoryConfig drives one spotlight card: which box-score block and column
// to rank, which season stat headlines the card, and which page-data
// category stands in when the box score lacks the block.
type categoryConfig struct {
	key          string
	label        string
	blockName    string
	columnIndex  int
	pageCategory string
	seasonStat   stats.Field
}

// offenseConfigs rank the yardage column of each offensive block.
var offenseConfigs = []categoryConfig{
	{
		key: "passing", label: "Passing Leader", blockName: "passing", columnIndex: 1,
		pageCategory: "passingYards",
		seasonStat:   stats.Field{Category: "passing", Stat: "netPassingYards", Label: "Passing Yards"},
	},
	{
		key: "rushing", label: "Rushing Leader", blockName: "rushing", columnIndex: 1,
		pageCategory: "rushingYards",
		seasonStat:   stats.Field{Category: "rushing", Stat: "rushingYards", Label: "Rushing Yards"},
	},
	{
		key: "receiving", label: "Receiving Leader", blockName: "receiving", columnIndex: 1,
		pageCategory: "receivingYards",
		seasonStat:   stats.Field{Category: "receiving", Stat: "receivingYards", Label: "Receiving Yards"},
	},
}

// defenseConfigs all read the shared defensive block at different columns.
var defenseConfigs = []categoryConfig{
	{
		key: "tackles", label: "Tackles Leader", blockName: "defensive", columnIndex: 0,
		pageCategory: "totalTackles",
		seasonStat:   stats.Field{Category: "defensive", Stat: "totalTackles", Label: "Total Tackles"},
	},
	{
		key: "sacks", label: "Sack Leader", blockName: "defensive", columnIndex: 2,
		pageCategory: "sacks",
		seasonStat:   stats.Field{Category: "defensive", Stat: "sacks", Label: "Sacks"},
	},
	{
		key: "passesDefended", label: "Pass Breakup Leader", blockName: "defensive", columnIndex: 4,
		pageCategory: "passesDefended",
		seasonStat:   stats.Field{Category: "defensive", Stat: "passesDefended", Label: "Passes Defended"},
	},
}

// buildLeaders produces the cards for one side of the ball. The exclusion
// set is shared between the offense and defense passes so no athlete holds
// two cards in one snapshot. A category without a qualifying leader is
// skipped, never an error.
func (s *Service) buildLeaders(
	ctx context.Context,
	season int,
	blocks []model.StatBlock,
	page *espn.PagePayload,
	configs []categoryConfig,
	used *leader.Exclusions,
) []model.SpotlightPlayer {
	players := make([]model.SpotlightPlayer, 0, len(configs))

	for _, cfg := range configs {
		candidate, metricLabel, ok := s.pickLeader(blocks, page, cfg, used)
		if !ok {
			s.log.Debug(ctx, "no qualifying leader", logger.String("category", cfg.key))
			continue
		}

		player, err := s.buildPlayer(ctx, season, cfg, candidate, metricLabel, blocks)
		if err != nil {
			s.log.Warn(ctx, "skipping leader after enrichment failure",
				logger.String("category", cfg.key),
				logger.String("athlete_id", candidate.Athlete.ID),
				logger.Error(err),
			)
			continue
		}

		metrics.RecordLeaderSelected()
		players = append(players, player)
	}

	return players
}

// pickLeader ranks the configured box-score column, falling back to the
// page-data leader lists when the block is absent. Returns the winning
// candidate and the label describing its last-game metric.
func (s *Service) pickLeader(
	blocks []model.StatBlock,
	page *espn.PagePayload,
	cfg categoryConfig,
	used *leader.Exclusions,
) (model.LeaderCandidate, string, bool) {
	for _, block := range blocks {
		if block.Name != cfg.blockName {
			continue
		}
		candidate, ok := leader.Extract(block, cfg.columnIndex, used)
		if !ok {
			return model.LeaderCandidate{}, "", false
		}
		label := "Stat"
		if cfg.columnIndex < len(block.Labels) && block.Labels[cfg.columnIndex] != "" {
			label = block.Labels[cfg.columnIndex]
		}
		return candidate, label, true
	}

	return s.pageLeader(page, cfg, used)
}

// pageLeader selects a candidate from the embedded page data using the
// configured source priority.
func (s *Service) pageLeader(page *espn.PagePayload, cfg categoryConfig, used *leader.Exclusions) (model.LeaderCandidate, string, bool) {
	if page == nil {
		return model.LeaderCandidate{}, "", false
	}

	categories, _, ok := page.Page.Content.Stats.TeamLeaders.ResolveLeaderCategories(s.leaderSources)
	if !ok {
		return model.LeaderCandidate{}, "", false
	}

	for _, category := range categories {
		if category.Name != cfg.pageCategory {
			continue
		}

		pick := -1
		for i, row := range category.Leaders {
			if !used.Has(row.Athlete.ID) && row.Value > 0 {
				pick = i
				break
			}
		}
		if pick < 0 {
			for i, row := range category.Leaders {
				if !used.Has(row.Athlete.ID) {
					pick = i
					break
				}
			}
		}
		if pick < 0 {
			return model.LeaderCandidate{}, "", false
		}

		row := category.Leaders[pick]
		used.Add(row.Athlete.ID)

		label := category.DisplayName
		if label == "" {
			label = cfg.seasonStat.Label
		}
		return model.LeaderCandidate{
			Athlete: model.Athlete{
				ID:          row.Athlete.ID,
				DisplayName: row.Athlete.DisplayName,
				Headshot:    row.Athlete.Headshot,
				Link:        row.Athlete.Href,
			},
			Value:   row.Value,
			Display: row.DisplayValue,
		}, label, true
	}

	return model.LeaderCandidate{}, "", false
}

// buildPlayer enriches a leader candidate into a full card: season splits,
// headline season metric with detail-row fallback, grade and both detail
// lists.
func (s *Service) buildPlayer(
	ctx context.Context,
	season int,
	cfg categoryConfig,
	candidate model.LeaderCandidate,
	metricLabel string,
	blocks []model.StatBlock,
) (model.SpotlightPlayer, error) {
	pkg, err := s.athletePackage(ctx, season, candidate.Athlete.ID)
	if err != nil {
		return model.SpotlightPlayer{}, err
	}

	seasonDetails := stats.CollectDetails(pkg.Splits, stats.SeasonDetailFields[cfg.key])

	seasonValue := 0.0
	seasonDisplay := ""
	if metric, ok := stats.Resolve(pkg.Splits, cfg.seasonStat.Category, cfg.seasonStat.Stat); ok {
		seasonValue = metric.Value
		seasonDisplay = metric.Display
	}
	if seasonDisplay == "" && len(seasonDetails) > 0 {
		seasonDisplay = seasonDetails[0].Value
		if v := stats.ParseStatValue(seasonDisplay); !math.IsNaN(v) {
			seasonValue = v
		}
	}
	if seasonDisplay == "" {
		seasonDisplay = strconv.FormatFloat(seasonValue, 'f', -1, 64)
	}

	var lastGameDetails []model.Detail
	for _, block := range blocks {
		if block.Name == cfg.blockName {
			lastGameDetails = stats.BlockDetails(block, candidate.Stats)
			break
		}
	}

	name := candidate.Athlete.DisplayName
	if name == "" {
		name = pkg.Name
	}
	headshot := candidate.Athlete.Headshot
	if headshot == "" {
		headshot = pkg.Headshot
	}
	link := candidate.Athlete.Link
	if link == "" {
		link = pkg.Link
	}
	if link == "" {
		link = fmt.Sprintf("https://www.espn.com/college-football/player/_/id/%s", candidate.Athlete.ID)
	}

	return model.SpotlightPlayer{
		ID:                  candidate.Athlete.ID,
		Name:                name,
		Headshot:            headshot,
		Role:                cfg.label,
		LastMetricLabel:     metricLabel,
		LastMetricDisplay:   candidate.Display,
		SeasonMetricLabel:   cfg.seasonStat.Label,
		SeasonMetricDisplay: seasonDisplay,
		LastGameDetails:     lastGameDetails,
		SeasonDetails:       seasonDetails,
		Grade:               grade.Compute(cfg.key, candidate.Value, seasonValue),
		Link:                link,
		LastValue:           candidate.Value,
		SeasonValue:         seasonValue,
	}, nil
}

// athletePackage returns the (season, athlete) package, fetching profile and
// splits on a cache miss. A profile without a statistics reference yields a
// package with nil splits.
func (s *Service) athletePackage(ctx context.Context, season int, athleteID string) (*cache.AthletePackage, error) {
	if pkg, ok := s.athletes.Get(season, athleteID); ok {
		return pkg, nil
	}

	profile, err := s.client.FetchAthleteProfile(ctx, season, athleteID)
	if err != nil {
		return nil, fmt.Errorf("fetching athlete %s profile: %w", athleteID, err)
	}

	pkg := &cache.AthletePackage{
		AthleteID: athleteID,
		Season:    season,
		Name:      profile.DisplayName,
		Headshot:  profile.Headshot.Href,
	}
	for _, l := range profile.Links {
		for _, rel := range l.Rel {
			if rel == "athlete" {
				pkg.Link = l.Href
			}
		}
	}

	if profile.Statistics.Ref != "" {
		splits, err := s.client.FetchSplits(ctx, profile.Statistics.Ref)
		if err != nil {
			return nil, fmt.Errorf("fetching athlete %s splits: %w", athleteID, err)
		}
		pkg.Splits = splits
	}

	s.athletes.Put(pkg)
	return pkg, nil
}

// buildBanner summarizes the featured game from the team's point of view.
func (s *Service) buildBanner(event espn.Event, summary *espn.Summary) model.GameBanner {
	banner := model.GameBanner{
		EventID: event.ID,
		Date:    event.When(),
	}
	if len(event.Competitions) == 0 {
		return banner
	}
	competition := event.Competitions[0]

	teamID := strconv.Itoa(s.teamID)
	var teamSide, opponentSide *espn.Competitor
	for i := range competition.Competitors {
		if competition.Competitors[i].Team.ID == teamID {
			teamSide = &competition.Competitors[i]
		} else if opponentSide == nil {
			opponentSide = &competition.Competitors[i]
		}
	}
	if teamSide == nil || opponentSide == nil {
		return banner
	}

	banner.Outcome = "Loss"
	if teamSide.Winner {
		banner.Outcome = "Win"
	}
	banner.TeamScore = teamSide.Score
	banner.OpponentScore = opponentSide.Score
	banner.OpponentName = opponentSide.Team.DisplayName
	banner.OpponentRank = opponentSide.Rank
	banner.Venue = competition.Venue.FullName
	banner.City = competition.Venue.Address.City
	if summary != nil {
		banner.Attendance = summary.Boxscore.Attendance
	}
	return banner
}
