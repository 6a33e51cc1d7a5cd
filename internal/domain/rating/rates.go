package rating

import "github.com/okian/pele/internal/domain/model"

const minutesPerMatch = 90.0

// RateVector maps a stat to its per-90 rate.
type RateVector map[model.Stat]float64

// Per90 normalizes value to a 90-minute basis. Zero minutes yields 0.
func Per90(value, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return value / (minutes / minutesPerMatch)
}

// Rates computes per-90 rates of stats for one row, which may be a summed
// group row.
func Rates(row model.MatchRow, stats []model.Stat) RateVector {
	minutes := row.Stat(model.Minutes)
	rv := make(RateVector, len(stats))
	for _, s := range stats {
		rv[s] = Per90(row.Stat(s), minutes)
	}
	return rv
}
