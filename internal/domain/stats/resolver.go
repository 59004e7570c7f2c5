// Package stats locates individual statistics inside normalized
// season-splits documents and coerces display strings to numbers.
//
// Lookups that miss return ok=false, never an error: an absent category or
// stat is a valid "metric unavailable" state the caller must handle.
package stats

import (
	"math"
	"strconv"
	"strings"

	"github.com/hashmark/spotlight/internal/domain/model"
)

// Field names one stat to pull into a detail list.
type Field struct {
	Category string
	Stat     string
	Label    string
}

// ParseStatValue coerces a raw display value to a float. Everything except
// digits, '.' and '-' is stripped; an empty result coerces to 0. The
// provider uses "--" for unavailable values. A stripped string that still
// fails to parse (e.g. "1-2") yields NaN so callers can discard the row.
func ParseStatValue(raw string) float64 {
	if raw == "" || raw == "--" {
		return 0
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	if stripped == "" {
		return 0
	}
	v, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Resolve finds categoryName/statName inside splits and returns the stat as
// a {value, display} pair. Missing category or stat returns ok=false.
func Resolve(splits *model.SeasonSplits, categoryName, statName string) (model.Metric, bool) {
	if splits == nil {
		return model.Metric{}, false
	}

	for _, category := range splits.Categories {
		if category.Name != categoryName {
			continue
		}
		for _, stat := range category.Stats {
			if stat.Name != statName {
				continue
			}
			return toMetric(stat), true
		}
		return model.Metric{}, false
	}
	return model.Metric{}, false
}

// toMetric prefers the provider's numeric value and falls back to parsing
// the display string.
func toMetric(stat model.StatValue) model.Metric {
	m := model.Metric{Display: stat.DisplayValue}
	if stat.Value != nil {
		m.Value = *stat.Value
	} else if v := ParseStatValue(stat.DisplayValue); !math.IsNaN(v) {
		m.Value = v
	}
	if m.Display == "" {
		m.Display = strconv.FormatFloat(m.Value, 'f', -1, 64)
	}
	return m
}

// CollectDetails resolves each configured field into a labeled detail row,
// skipping fields absent from the splits document.
func CollectDetails(splits *model.SeasonSplits, fields []Field) []model.Detail {
	if splits == nil {
		return nil
	}

	details := make([]model.Detail, 0, len(fields))
	for _, f := range fields {
		metric, ok := Resolve(splits, f.Category, f.Stat)
		if !ok {
			continue
		}
		details = append(details, model.Detail{Label: f.Label, Value: metric.Display})
	}
	return details
}

// BlockDetails pairs a stat block's labels with one athlete's stat row,
// dropping positions with empty values.
func BlockDetails(block model.StatBlock, row []string) []model.Detail {
	details := make([]model.Detail, 0, len(block.Labels))
	for i, label := range block.Labels {
		if i >= len(row) || row[i] == "" {
			continue
		}
		details = append(details, model.Detail{Label: label, Value: row[i]})
	}
	return details
}
