package model

import "math"

// MatchRow holds one player's statistics for one match. Rows are built by an
// importer and treated as read-only afterwards.
type MatchRow struct {
	PlayerID   string
	PlayerName string
	MatchID    string
	Season     string
	TeamID     string
	Position   string

	// Stats holds raw counting and percentage values keyed by column.
	Stats map[Stat]float64
}

// Stat returns the raw value of s. Missing and NaN values read as 0.
func (r MatchRow) Stat(s Stat) float64 {
	v, ok := r.Stats[s]
	if !ok || math.IsNaN(v) {
		return 0
	}
	return v
}

// Identity returns the value of an identity column.
func (r MatchRow) Identity(col string) (string, bool) {
	switch col {
	case ColPlayerID:
		return r.PlayerID, true
	case ColPlayerName:
		return r.PlayerName, true
	case ColMatchID:
		return r.MatchID, true
	case ColSeason:
		return r.Season, true
	case ColTeamID:
		return r.TeamID, true
	case ColPosition:
		return r.Position, true
	}
	return "", false
}

// SetIdentity assigns an identity column. Unknown columns are ignored.
func (r *MatchRow) SetIdentity(col, val string) {
	switch col {
	case ColPlayerID:
		r.PlayerID = val
	case ColPlayerName:
		r.PlayerName = val
	case ColMatchID:
		r.MatchID = val
	case ColSeason:
		r.Season = val
	case ColTeamID:
		r.TeamID = val
	case ColPosition:
		r.Position = val
	}
}

// Table is an in-memory dataset of match rows together with the header the
// producer supplied. Column presence is judged against Columns, not Rows.
type Table struct {
	Columns []string
	Rows    []MatchRow
}

// Has reports whether col is part of the table header.
func (t Table) Has(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Filter returns a table with the same header and only the rows keep accepts.
func (t Table) Filter(keep func(MatchRow) bool) Table {
	out := Table{Columns: t.Columns}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}
