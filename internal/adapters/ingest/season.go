package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/pele/internal/domain/model"
)

// seasonField lists the candidate combined-header labels of one stat.
type seasonField struct {
	stat model.Stat
	from []string
}

var seasonStats = []seasonField{
	{model.Minutes, []string{"Playing Time|Min", "Min"}},
	{model.NPGoals, []string{"Performance|G-PK", "G-PK"}},
	{model.PenaltyGoals, []string{"Performance|PK", "PK"}},
	{model.Assists, []string{"Performance|Ast", "Ast"}},
	{model.XG, []string{"Expected|xG", "xG"}},
	{model.XA, []string{"Expected|xAG", "xAG"}},
	{model.KeyPasses, []string{"KP"}},
	{model.ProgressivePasses, []string{"PrgP"}},
	{model.ProgressiveCarries, []string{"PrgC"}},
	{model.SuccessfulDribbles, []string{"Take-Ons|Succ"}},
	{model.Tackles, []string{"Tackles|Tkl"}},
	{model.Interceptions, []string{"Int"}},
	{model.Blocks, []string{"Blocks|Blocks"}},
	{model.AerialsWon, []string{"Aerial Duels|Won"}},
	{model.Shots, []string{"Standard|Sh", "Sh"}},
	{model.ShotsOnTarget, []string{"Standard|SoT", "SoT"}},
	{model.PassCompletionPct, []string{"Total|Cmp%", "Cmp%"}},
	{model.PassesIntoFinalThird, []string{"1/3"}},
	{model.ProgressiveReceives, []string{"PrgR"}},
	{model.TacklesDefThird, []string{"Tackles|Def 3rd"}},
	{model.TacklesMidThird, []string{"Tackles|Mid 3rd"}},
	{model.TacklesAttThird, []string{"Tackles|Att 3rd"}},
	{model.DribbleSuccessPct, []string{"Take-Ons|Succ%"}},
	{model.DribbleAttempts, []string{"Take-Ons|Att"}},
}

// ImportFBrefSeason converts an FBref season-aggregate table with a two-row
// header. Header cells combine as "top|bottom"; each stat takes the first
// non-empty value among its candidates. Every data row becomes one
// synthetic match "season_agg_<n>".
func ImportFBrefSeason(r io.Reader) (model.Table, error) {
	return importFBrefSeason(r, "")
}

func importFBrefSeason(r io.Reader, source string) (model.Table, error) {
	cr := newLenientReader(r)

	next := func() ([]string, error) {
		for {
			rec, err := cr.Read()
			if err != nil {
				return nil, err
			}
			if !blank(rec) {
				return normalizeAll(rec), nil
			}
		}
	}
	top, err := next()
	if errors.Is(err, io.EOF) {
		return model.Table{}, ErrEmptyInput
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %w", ErrHeader, err)
	}
	bottom, err := next()
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: second header row: %w", ErrHeader, err)
	}

	columns := combineHeaders(top, bottom)
	ix := indexLast(columns)

	t := model.Table{Columns: CanonicalColumns()}
	for idx := 0; ; idx++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("%w: %w", ErrMalformedValue, err)
		}
		if blank(rec) || sameCells(rec, top) || sameCells(rec, bottom) {
			continue
		}

		name := NormalizeText(ix.pick(rec, "Player"))
		id := ix.pick(rec, "-additional|-9999", "-additional")
		if id == "" {
			id = name
		}
		row := model.MatchRow{
			PlayerID:   id,
			PlayerName: name,
			MatchID:    sourceID(source, fmt.Sprintf("season_agg_%d", idx)),
			Season:     ix.pick(rec, "Season"),
			TeamID:     NormalizeText(ix.pick(rec, "Team", "Squad")),
			Position:   ix.pick(rec, "Pos"),
			Stats:      make(map[model.Stat]float64, len(seasonStats)+1),
		}
		for _, f := range seasonStats {
			row.Stats[f.stat] = parseLenient(ix.pick(rec, f.from...))
		}
		row.Stats[model.Turnovers] = parseLenient(ix.pick(rec, "Carries|Dis")) +
			parseLenient(ix.pick(rec, "Carries|Mis"))
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// combineHeaders joins the two header rows cell by cell. The shorter row is
// padded with empty cells.
func combineHeaders(top, bottom []string) []string {
	n := len(top)
	if len(bottom) > n {
		n = len(bottom)
	}
	out := make([]string, n)
	for i := range out {
		h1 := strings.TrimSpace(cell(top, i))
		h2 := strings.TrimSpace(cell(bottom, i))
		switch {
		case h1 != "" && h2 != "":
			out[i] = h1 + "|" + h2
		case h1 != "":
			out[i] = h1
		default:
			out[i] = h2
		}
	}
	return out
}
