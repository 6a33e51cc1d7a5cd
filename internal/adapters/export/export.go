// Package export shapes rating records for JSON, CSV and terminal output.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
)

// Output column names besides identities and rates.
const (
	ColBucket    = "bucket"
	ColMinutes   = "minutes"
	ColOC        = "oc"
	ColDC        = "dc"
	ColBaseScore = "base_score"
	ColMinMult   = "min_mult"
	ColPeleRaw   = "pele_raw"
	ColPele100   = "pele_100"
)

// Round3 rounds v to 3 decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Fields returns the ordered output columns for recs: identities, bucket
// (position-aware scoring only), minutes, per-90 rates, components and the
// standardized score when present.
func Fields(recs []rating.Record) []string {
	cols := model.IdentityColumns()
	var withBucket, standardized bool
	rates := make(map[model.Stat]bool)
	for _, r := range recs {
		withBucket = withBucket || r.Bucket != ""
		standardized = standardized || r.Standardized
		for s := range r.Rates {
			rates[s] = true
		}
	}
	if withBucket {
		cols = append(cols, ColBucket)
	}
	cols = append(cols, ColMinutes)
	for _, s := range model.KnownStats() {
		if rates[s] {
			cols = append(cols, model.RateColumn(s))
		}
	}
	cols = append(cols, ColOC, ColDC, ColBaseScore, ColMinMult, ColPeleRaw)
	if standardized {
		cols = append(cols, ColPele100)
	}
	return cols
}

// Record flattens r into a column map with floats rounded to 3 decimals.
func Record(r rating.Record) map[string]any {
	out := make(map[string]any, len(r.Rates)+16)
	for _, col := range model.IdentityColumns() {
		out[col] = r.Identity(col)
	}
	if r.Bucket != "" {
		out[ColBucket] = string(r.Bucket)
	}
	out[ColMinutes] = Round3(r.Minutes)
	for s, v := range r.Rates {
		out[model.RateColumn(s)] = Round3(v)
	}
	out[ColOC] = Round3(r.OC)
	out[ColDC] = Round3(r.DC)
	out[ColBaseScore] = Round3(r.BaseScore)
	out[ColMinMult] = Round3(r.MinMult)
	out[ColPeleRaw] = Round3(r.PeleRaw)
	if r.Standardized {
		out[ColPele100] = Round3(r.Pele100)
	}
	return out
}

// Records flattens every record, keeping order.
func Records(recs []rating.Record) []map[string]any {
	out := make([]map[string]any, len(recs))
	for i, r := range recs {
		out[i] = Record(r)
	}
	return out
}

// Filters lists the distinct values a client can filter ratings on.
type Filters struct {
	Seasons []string `json:"seasons"`
	Teams   []string `json:"teams"`
}

// BuildFilters collects the sorted distinct non-empty seasons and teams of t.
func BuildFilters(t model.Table) Filters {
	seasons := make(map[string]bool)
	teams := make(map[string]bool)
	for _, r := range t.Rows {
		if r.Season != "" {
			seasons[r.Season] = true
		}
		if r.TeamID != "" {
			teams[r.TeamID] = true
		}
	}
	return Filters{Seasons: sortedKeys(seasons), Teams: sortedKeys(teams)}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCSV writes recs with a header from Fields.
func WriteCSV(w io.Writer, recs []rating.Record) error {
	cols := Fields(recs)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	line := make([]string, len(cols))
	for _, r := range recs {
		m := Record(r)
		for i, c := range cols {
			line[i] = format(m[c])
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// tableColumns is the compact view used for terminal output.
var tableColumns = []string{
	model.ColPlayerID, model.ColPlayerName, model.ColSeason, model.ColTeamID,
	ColMinutes, ColOC, ColDC, ColMinMult, ColPeleRaw, ColPele100,
}

// WriteTable prints a ranked, aligned summary of recs.
func WriteTable(w io.Writer, recs []rating.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "#")
	for _, c := range tableColumns {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprintln(tw)
	for i, r := range recs {
		m := Record(r)
		fmt.Fprintf(tw, "%d", i+1)
		for _, c := range tableColumns {
			fmt.Fprintf(tw, "\t%s", format(m[c]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
