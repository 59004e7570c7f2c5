// Package grade maps last-game and season production to a 0-100 score and a
// letter via fixed per-category benchmarks. Compute is a pure function.
package grade

import (
	"math"

	"github.com/hashmark/spotlight/internal/domain/model"
)

// Weighting between the featured game and the season body of work.
const (
	gameWeight   = 0.4
	seasonWeight = 0.6
)

// Benchmark holds the saturation points for one category.
type Benchmark struct {
	LastGameMax float64
	SeasonMax   float64
}

// benchmarks are fixed reference maxima per spotlight category. An unknown
// category falls back to {1,1}, saturating at 100% per unit value.
var benchmarks = map[string]Benchmark{
	"passing":        {LastGameMax: 400, SeasonMax: 3500},
	"rushing":        {LastGameMax: 220, SeasonMax: 1800},
	"receiving":      {LastGameMax: 200, SeasonMax: 1400},
	"tackles":        {LastGameMax: 16, SeasonMax: 130},
	"sacks":          {LastGameMax: 4, SeasonMax: 14},
	"passesDefended": {LastGameMax: 3, SeasonMax: 20},
}

// letterThresholds maps descending score cutoffs to letters.
var letterThresholds = []struct {
	min    int
	letter string
}{
	{97, "A+"}, {93, "A"}, {90, "A-"},
	{87, "B+"}, {83, "B"}, {80, "B-"},
	{77, "C+"}, {73, "C"}, {70, "C-"},
	{67, "D+"}, {63, "D"}, {60, "D-"},
}

// Compute grades lastValue and seasonValue against the category's
// benchmarks: each ratio is capped at 1, the game counts 40% and the season
// 60%, and the blended ratio is rounded to a 0-100 score.
func Compute(category string, lastValue, seasonValue float64) model.GradeResult {
	ref, ok := benchmarks[category]
	if !ok {
		ref = Benchmark{LastGameMax: 1, SeasonMax: 1}
	}

	gameRatio := cappedRatio(lastValue, ref.LastGameMax)
	seasonRatio := cappedRatio(seasonValue, ref.SeasonMax)

	score := int(math.Round((gameRatio*gameWeight + seasonRatio*seasonWeight) * 100))
	return model.GradeResult{Score: score, Letter: Letter(score)}
}

// cappedRatio divides v by max, capping at 1 and guarding a zero max.
func cappedRatio(v, max float64) float64 {
	if max == 0 {
		return 0
	}
	return math.Min(v/max, 1)
}

// Letter maps a score to its letter grade.
func Letter(score int) string {
	for _, t := range letterThresholds {
		if score >= t.min {
			return t.letter
		}
	}
	return "F"
}
