// Package leader picks the ranking leader for one stat column of a box-score
// block, honoring a cross-category exclusion set so no athlete is spotlighted
// twice in a single refresh.
package leader

import (
	"math"
	"sort"

	"github.com/hashmark/spotlight/internal/domain/model"
	"github.com/hashmark/spotlight/internal/domain/stats"
)

// Exclusions tracks athlete ids already selected during one refresh cycle.
// An explicit instance is created per cycle and shared across categories.
type Exclusions struct {
	ids map[string]struct{}
}

// NewExclusions creates an empty exclusion set.
func NewExclusions() *Exclusions {
	return &Exclusions{ids: make(map[string]struct{})}
}

// Has reports whether id was already selected.
func (e *Exclusions) Has(id string) bool {
	_, ok := e.ids[id]
	return ok
}

// Add records id as selected.
func (e *Exclusions) Add(id string) {
	e.ids[id] = struct{}{}
}

// Len returns the number of excluded ids.
func (e *Exclusions) Len() int {
	return len(e.ids)
}

// Extract determines the leader for the given column of block. Rows whose
// column value does not parse are discarded; the rest are ranked descending.
// The highest-ranked non-excluded row with a strictly positive value wins;
// failing that, the highest-ranked non-excluded row regardless of value.
// The winner's id is added to used so later categories cannot reselect it.
func Extract(block model.StatBlock, columnIndex int, used *Exclusions) (model.LeaderCandidate, bool) {
	type row struct {
		athlete model.Athlete
		stats   []string
		value   float64
		display string
	}

	rows := make([]row, 0, len(block.Athletes))
	for _, line := range block.Athletes {
		display := "--"
		if columnIndex < len(line.Stats) {
			display = line.Stats[columnIndex]
		}
		value := stats.ParseStatValue(display)
		if math.IsNaN(value) {
			continue
		}
		rows = append(rows, row{
			athlete: line.Athlete,
			stats:   line.Stats,
			value:   value,
			display: display,
		})
	}

	// Stable sort keeps the first-listed of tied rows in front.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].value > rows[j].value
	})

	pick := -1
	for i, r := range rows {
		if !used.Has(r.athlete.ID) && r.value > 0 {
			pick = i
			break
		}
	}
	if pick < 0 {
		for i, r := range rows {
			if !used.Has(r.athlete.ID) {
				pick = i
				break
			}
		}
	}
	if pick < 0 {
		return model.LeaderCandidate{}, false
	}

	winner := rows[pick]
	used.Add(winner.athlete.ID)
	return model.LeaderCandidate{
		Athlete: winner.athlete,
		Value:   winner.value,
		Display: winner.display,
		Stats:   winner.stats,
	}, true
}
