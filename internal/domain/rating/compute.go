// Package rating computes the PELE player rating from match-level rows.
//
// The pipeline normalizes raw counts to per-90 rates, combines them into an
// offensive (OC) and defensive (DC) component, scales the sum by a
// population-relative minutes multiplier and optionally aggregates and
// standardizes the result. Aggregation re-runs the row pipeline on summed
// group rows so group rates are never averages of row rates.
//
// Everything here is pure and synchronous; package-level tables are
// read-only.
package rating

import (
	"fmt"

	"github.com/okian/pele/internal/domain/model"
)

// Record is the score of one entity: a single match row or a group.
type Record struct {
	PlayerID   string
	PlayerName string
	MatchID    string
	Season     string
	TeamID     string
	Position   string

	// Bucket is set by position-aware scorers only.
	Bucket Bucket
	// Minutes is the entity's playing time (summed for groups).
	Minutes float64
	// Rates holds the per-90 values of the scorer's rate stats.
	Rates RateVector

	OC        float64
	DC        float64
	BaseScore float64
	MinMult   float64
	PeleRaw   float64

	// Pele100 is meaningful only when Standardized is true.
	Pele100      float64
	Standardized bool
}

// Identity returns the value of an identity column of the record.
func (r Record) Identity(col string) string {
	switch col {
	case model.ColPlayerID:
		return r.PlayerID
	case model.ColPlayerName:
		return r.PlayerName
	case model.ColMatchID:
		return r.MatchID
	case model.ColSeason:
		return r.Season
	case model.ColTeamID:
		return r.TeamID
	case model.ColPosition:
		return r.Position
	}
	return ""
}

// Compute validates t and scores it. With the defaults it groups by
// player_id, standardizes and uses the default fixed weights.
//
// Validation happens before any scoring: a missing required column, a bad
// group column or a negative minutes value fails the whole call.
func Compute(t model.Table, opts ...Option) ([]Record, error) {
	o := newOptions(opts...)

	if err := Validate(t, o.scorer.Required()); err != nil {
		return nil, err
	}
	for _, col := range o.groupBy {
		if !model.IsIdentity(col) || !t.Has(col) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGroupColumn, col)
		}
	}

	var records []Record
	if len(o.groupBy) == 0 {
		records = scoreRows(t.Rows, o.scorer)
	} else {
		records = aggregate(t, o)
	}

	if o.standardize {
		Standardize(records)
	}
	return records, nil
}

// Validate checks that t carries every required column and that no row has
// negative minutes.
func Validate(t model.Table, required []string) error {
	for _, col := range required {
		if !t.Has(col) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	for i, r := range t.Rows {
		if r.Stat(model.Minutes) < 0 {
			return fmt.Errorf("%w: row %d (player %q)", ErrNegativeMinutes, i, r.PlayerID)
		}
	}
	return nil
}

// scoreRows runs rates, components and the minutes multiplier over rows.
// The multiplier reference is the mean minutes of exactly these rows.
func scoreRows(rows []model.MatchRow, scorer Scorer) []Record {
	minutes := make([]float64, len(rows))
	for i, r := range rows {
		minutes[i] = r.Stat(model.Minutes)
	}
	ref := meanMinutes(minutes)

	out := make([]Record, len(rows))
	for i, row := range rows {
		rates := Rates(row, scorer.RateStats())
		c := scorer.Score(row, rates)
		base := c.OC + c.DC
		mult := MinutesMultiplier(minutes[i], ref, DefaultMinutesPower)
		out[i] = Record{
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			MatchID:    row.MatchID,
			Season:     row.Season,
			TeamID:     row.TeamID,
			Position:   row.Position,
			Bucket:     c.Bucket,
			Minutes:    minutes[i],
			Rates:      rates,
			OC:         c.OC,
			DC:         c.DC,
			BaseScore:  base,
			MinMult:    mult,
			PeleRaw:    base * mult,
		}
	}
	return out
}
