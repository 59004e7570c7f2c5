// Package model contains domain models passed between layers.
package model

import "time"

// FallbackReason explains why a refresh used a prior season.
type FallbackReason string

// Fallback reasons.
const (
	FallbackNone  FallbackReason = "none"
	FallbackEmpty FallbackReason = "empty" // target season had no completed games
	FallbackError FallbackReason = "error" // target season schedule was unreachable
)

// SeasonContext describes which season a refresh settled on. Produced once
// per refresh cycle; immutable afterwards.
type SeasonContext struct {
	Season         int            `json:"season"`
	IsFallback     bool           `json:"isFallback"`
	FallbackReason FallbackReason `json:"fallbackReason"`
	FallbackDetail string         `json:"fallbackDetail,omitempty"`
}

// Athlete identifies a player inside a stat block.
type Athlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Headshot    string `json:"headshot,omitempty"`
	Link        string `json:"link,omitempty"`
}

// AthleteLine is one athlete's row of display stats inside a StatBlock.
// Stats[i] is described by the owning block's Labels[i].
type AthleteLine struct {
	Athlete Athlete  `json:"athlete"`
	Stats   []string `json:"stats"`
}

// StatBlock is a named group of athlete stat rows with positionally aligned
// column labels, as found in a box score.
type StatBlock struct {
	Name     string        `json:"name"`
	Labels   []string      `json:"labels"`
	Athletes []AthleteLine `json:"athletes"`
}

// LeaderCandidate is the ranking winner for one stat column. Ephemeral;
// recomputed per refresh and never persisted.
type LeaderCandidate struct {
	Athlete Athlete
	Value   float64
	Display string
	Stats   []string
}

// StatValue is a single named stat inside a season-splits category.
// Value is nil when the provider furnished only a display string.
type StatValue struct {
	Name         string   `json:"name"`
	Value        *float64 `json:"value,omitempty"`
	DisplayValue string   `json:"displayValue,omitempty"`
}

// StatCategory groups season stats by category name (passing, defensive, ...).
type StatCategory struct {
	Name  string      `json:"name"`
	Stats []StatValue `json:"stats"`
}

// SeasonSplits is an athlete's cumulative season statistics, normalized from
// the core-API splits document.
type SeasonSplits struct {
	Categories []StatCategory `json:"categories"`
}

// Metric is a resolved {value, display} pair for one stat.
type Metric struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// Detail is one labeled row in a card's breakdown list.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// GradeResult summarizes single-game and season performance.
type GradeResult struct {
	Score  int    `json:"score"`
	Letter string `json:"letter"`
}

// SpotlightPlayer is one normalized leader card, ready for rendering.
type SpotlightPlayer struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Headshot            string      `json:"headshot,omitempty"`
	Role                string      `json:"role"`
	LastMetricLabel     string      `json:"lastMetricLabel"`
	LastMetricDisplay   string      `json:"lastMetricDisplay"`
	SeasonMetricLabel   string      `json:"seasonMetricLabel"`
	SeasonMetricDisplay string      `json:"seasonMetricDisplay"`
	LastGameDetails     []Detail    `json:"lastGameDetails"`
	SeasonDetails       []Detail    `json:"seasonDetails"`
	Grade               GradeResult `json:"grade"`
	Link                string      `json:"link"`
	LastValue           float64     `json:"lastValue"`
	SeasonValue         float64     `json:"seasonValue"`
}

// GameBanner carries the headline facts about the featured game.
type GameBanner struct {
	EventID       string    `json:"eventId"`
	Date          time.Time `json:"date"`
	Outcome       string    `json:"outcome"` // Win or Loss
	TeamScore     string    `json:"teamScore"`
	OpponentScore string    `json:"opponentScore"`
	OpponentName  string    `json:"opponentName"`
	OpponentRank  int       `json:"opponentRank,omitempty"`
	Venue         string    `json:"venue,omitempty"`
	City          string    `json:"city,omitempty"`
	Attendance    int       `json:"attendance,omitempty"`
}

// Snapshot is the full normalized output of one refresh cycle. The external
// renderer consumes exactly this shape.
type Snapshot struct {
	RefreshID   string            `json:"refreshId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Season      SeasonContext     `json:"season"`
	Game        GameBanner        `json:"game"`
	Offense     []SpotlightPlayer `json:"offense"`
	Defense     []SpotlightPlayer `json:"defense"`
}
