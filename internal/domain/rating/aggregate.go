package rating

import (
	"sort"
	"strings"

	"github.com/okian/pele/internal/domain/model"
)

// AggregateMatchID marks a synthesized group row.
const AggregateMatchID = "__aggregate__"

// Reducer picks one representative value out of a group's column values,
// given in row order. values is never empty.
type Reducer func(values []string) string

// MostFrequent returns the most frequent non-empty value. Ties go to the
// value seen first, not to the smallest value in sort order. With no
// non-empty value it returns the first value.
func MostFrequent(values []string) string {
	counts := make(map[string]int, len(values))
	top := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > top {
			top = counts[v]
		}
	}
	if top == 0 {
		return values[0]
	}
	for _, v := range values {
		if v != "" && counts[v] == top {
			return v
		}
	}
	return values[0]
}

// Constant ignores the values and returns v.
func Constant(v string) Reducer {
	return func([]string) string { return v }
}

// DefaultReducers returns the per-column reducers used for identity columns
// outside the group key.
func DefaultReducers() map[string]Reducer {
	return map[string]Reducer{
		model.ColPlayerID:   MostFrequent,
		model.ColPlayerName: MostFrequent,
		model.ColMatchID:    Constant(AggregateMatchID),
		model.ColSeason:     MostFrequent,
		model.ColTeamID:     MostFrequent,
		model.ColPosition:   MostFrequent,
	}
}

// groupKeySep joins key parts; it cannot appear in CSV-sourced identities.
const groupKeySep = "\x1f"

// GroupKey is the ordered tuple of identity values that defines a group.
type GroupKey []string

func (k GroupKey) String() string { return strings.Join(k, groupKeySep) }

type group struct {
	key  GroupKey
	rows []model.MatchRow
}

// partition splits rows by the groupBy columns, keeping first-appearance
// order of the groups and row order inside each group.
func partition(rows []model.MatchRow, groupBy []string) []*group {
	index := make(map[string]*group)
	var groups []*group
	for _, r := range rows {
		key := make(GroupKey, len(groupBy))
		for i, col := range groupBy {
			key[i], _ = r.Identity(col)
		}
		g, ok := index[key.String()]
		if !ok {
			g = &group{key: key}
			index[key.String()] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, r)
	}
	return groups
}

// SumGroups collapses t into one synthesized row per group: counting stats
// are summed, percentage stats are minutes-weighted means (a zero-minute row
// weighs 1) and identity columns outside the key are reduced.
func SumGroups(t model.Table, groupBy []string, reducers map[string]Reducer) []model.MatchRow {
	inKey := make(map[string]bool, len(groupBy))
	for _, c := range groupBy {
		inKey[c] = true
	}

	var stats []model.Stat
	for _, s := range model.KnownStats() {
		if t.Has(string(s)) {
			stats = append(stats, s)
		}
	}
	var identities []string
	for _, c := range model.IdentityColumns() {
		if t.Has(c) && !inKey[c] {
			identities = append(identities, c)
		}
	}

	groups := partition(t.Rows, groupBy)
	out := make([]model.MatchRow, 0, len(groups))
	for _, g := range groups {
		row := model.MatchRow{Stats: make(map[model.Stat]float64, len(stats))}
		for i, col := range groupBy {
			row.SetIdentity(col, g.key[i])
		}
		for _, col := range identities {
			reduce, ok := reducers[col]
			if !ok {
				reduce = MostFrequent
			}
			values := make([]string, len(g.rows))
			for i, r := range g.rows {
				values[i], _ = r.Identity(col)
			}
			row.SetIdentity(col, reduce(values))
		}
		for _, s := range stats {
			if model.IsPercentage(s) {
				row.Stats[s] = weightedMean(g.rows, s)
				continue
			}
			var sum float64
			for _, r := range g.rows {
				sum += r.Stat(s)
			}
			row.Stats[s] = sum
		}
		out = append(out, row)
	}
	return out
}

// weightedMean averages s across rows, weighting by minutes.
func weightedMean(rows []model.MatchRow, s model.Stat) float64 {
	var num, den float64
	for _, r := range rows {
		w := r.Stat(model.Minutes)
		if w == 0 {
			w = 1
		}
		num += w * r.Stat(s)
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// aggregate scores the synthesized group rows with the row pipeline and
// orders them by PeleRaw, highest first.
func aggregate(t model.Table, o *options) []Record {
	records := scoreRows(SumGroups(t, o.groupBy, o.reducers), o.scorer)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PeleRaw > records[j].PeleRaw
	})
	return records
}
