package espn

import (
	"time"

	"github.com/hashmark/spotlight/internal/domain/model"
)

// Upstream payload shapes. Only the fields this service reads are declared;
// everything else in the documents is ignored.

// Schedule is the site-API team schedule response.
type Schedule struct {
	Events []Event `json:"events"`
}

// Event is one scheduled or played game.
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	Competitions []Competition `json:"competitions"`
}

// Competition carries the per-game status, competitors and venue.
type Competition struct {
	Status      Status       `json:"status"`
	Competitors []Competitor `json:"competitors"`
	Venue       Venue        `json:"venue"`
}

// Status wraps the competition state.
type Status struct {
	Type StatusType `json:"type"`
}

// StatusType names the competition state. A final game reports
// name STATUS_FINAL with completed=true.
type StatusType struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Competitor is one side of a competition.
type Competitor struct {
	HomeAway string `json:"homeAway"`
	Winner   bool   `json:"winner"`
	Score    string `json:"score"`
	Rank     int    `json:"rank,omitempty"`
	Team     Team   `json:"team"`
}

// Team identifies a program.
type Team struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

// Venue locates a game.
type Venue struct {
	FullName string `json:"fullName"`
	Address  struct {
		City string `json:"city"`
	} `json:"address"`
}

// Summary is the site-API game summary with box scores.
type Summary struct {
	Boxscore Boxscore `json:"boxscore"`
}

// Boxscore groups per-team player statistics.
type Boxscore struct {
	Attendance int           `json:"attendance"`
	Players    []PlayerGroup `json:"players"`
}

// PlayerGroup is one team's set of statistic blocks.
type PlayerGroup struct {
	Team       Team             `json:"team"`
	Statistics []StatisticBlock `json:"statistics"`
}

// StatisticBlock is a named stat table: labels[i] describes stats[i] for
// every athlete row.
type StatisticBlock struct {
	Name     string       `json:"name"`
	Labels   []string     `json:"labels"`
	Athletes []AthleteRow `json:"athletes"`
}

// AthleteRow is one athlete's display stats within a block.
type AthleteRow struct {
	Athlete AthleteRef `json:"athlete"`
	Stats   []string   `json:"stats"`
}

// AthleteRef identifies an athlete inside a box score.
type AthleteRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Headshot    struct {
		Href string `json:"href"`
	} `json:"headshot"`
	Links []Link `json:"links"`
}

// Link is an upstream hyperlink with rel tags.
type Link struct {
	Rel  []string `json:"rel"`
	Href string   `json:"href"`
}

// AthleteProfile is the core-API athlete document. Statistics, when present,
// points at the season-splits document.
type AthleteProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Headshot    struct {
		Href string `json:"href"`
	} `json:"headshot"`
	Links      []Link `json:"links"`
	Statistics struct {
		Ref string `json:"$ref"`
	} `json:"statistics"`
}

// SplitsDocument is the core-API season statistics payload.
type SplitsDocument struct {
	Splits struct {
		Categories []SplitsCategory `json:"categories"`
	} `json:"splits"`
}

// SplitsCategory groups stats by category name.
type SplitsCategory struct {
	Name  string       `json:"name"`
	Stats []SplitsStat `json:"stats"`
}

// SplitsStat is one named stat. Value may be absent.
type SplitsStat struct {
	Name         string   `json:"name"`
	Value        *float64 `json:"value"`
	DisplayValue string   `json:"displayValue"`
}

// eventDateLayouts are the formats ESPN uses for event dates.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z",
}

// When parses the event date, tolerating both upstream layouts. A date that
// fails to parse returns the zero time.
func (e Event) When() time.Time {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, e.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IsFinal reports whether the event's first competition has finished.
func (e Event) IsFinal() bool {
	if len(e.Competitions) == 0 {
		return false
	}
	return e.Competitions[0].Status.Type.Name == "STATUS_FINAL"
}

// ToModel converts a box-score statistic block to the domain shape.
func (b StatisticBlock) ToModel() model.StatBlock {
	out := model.StatBlock{
		Name:     b.Name,
		Labels:   b.Labels,
		Athletes: make([]model.AthleteLine, 0, len(b.Athletes)),
	}
	for _, row := range b.Athletes {
		out.Athletes = append(out.Athletes, model.AthleteLine{
			Athlete: model.Athlete{
				ID:          row.Athlete.ID,
				DisplayName: row.Athlete.DisplayName,
				Headshot:    row.Athlete.Headshot.Href,
				Link:        athleteLink(row.Athlete.Links),
			},
			Stats: row.Stats,
		})
	}
	return out
}

// athleteLink picks the first link tagged rel=athlete.
func athleteLink(links []Link) string {
	for _, l := range links {
		for _, rel := range l.Rel {
			if rel == "athlete" {
				return l.Href
			}
		}
	}
	return ""
}

// ToModel converts a splits document to the domain shape.
func (d SplitsDocument) ToModel() *model.SeasonSplits {
	out := &model.SeasonSplits{Categories: make([]model.StatCategory, 0, len(d.Splits.Categories))}
	for _, c := range d.Splits.Categories {
		category := model.StatCategory{
			Name:  c.Name,
			Stats: make([]model.StatValue, 0, len(c.Stats)),
		}
		for _, s := range c.Stats {
			category.Stats = append(category.Stats, model.StatValue{
				Name:         s.Name,
				Value:        s.Value,
				DisplayValue: s.DisplayValue,
			})
		}
		out.Categories = append(out.Categories, category)
	}
	return out
}
