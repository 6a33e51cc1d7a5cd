package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/okian/pele/internal/domain/model"
)

// pressureSuccessPrior estimates successful pressures when an export only
// carries total pressures.
const pressureSuccessPrior = 0.32

const unknownSeason = "unknown"

// identityField fills an identity column from the first candidate source
// column present in the header, or from def when none is.
type identityField struct {
	col  string
	from []string
	def  func(source string, rowNum int) string
}

// statField is the numeric counterpart of identityField. derive, when set,
// runs only if no candidate column is present.
type statField struct {
	stat   model.Stat
	from   []string
	def    float64
	derive func(ix colIndex, rec []string) (float64, bool)
}

// rowNumber is the synthesized ID of a row. A non-empty source namespaces
// it so rows from different files never share an ID.
func rowNumber(source string, n int) string { return sourceID(source, strconv.Itoa(n)) }

func constant(v string) func(string, int) string { return func(string, int) string { return v } }

func sourceID(source, id string) string {
	if source == "" {
		return id
	}
	return source + "-" + id
}

var matchLogIdentity = []identityField{
	{model.ColPlayerID, []string{"player_id"}, rowNumber},
	{model.ColPlayerName, []string{"player_name", "player", "Player"}, constant("")},
	{model.ColMatchID, []string{"match_id"}, rowNumber},
	{model.ColSeason, []string{"season", "Season"}, constant(unknownSeason)},
	{model.ColTeamID, []string{"team_id", "team", "Team", "Squad"}, constant("")},
	{model.ColPosition, []string{"Pos", "position"}, constant("")},
}

var matchLogStats = []statField{
	{stat: model.Minutes, from: []string{"minutes", "Min"}},
	{stat: model.NPGoals, from: []string{"np_goals", "G-PK", "Gls"}},
	{stat: model.PenaltyGoals, from: []string{"penalty_goals", "PK"}},
	{stat: model.Assists, from: []string{"assists", "Ast"}},
	{stat: model.XG, from: []string{"xg", "xG"}},
	{stat: model.XA, from: []string{"xa", "xA", "xAG"}},
	{stat: model.KeyPasses, from: []string{"key_passes", "KP"}},
	{stat: model.ProgressivePasses, from: []string{"progressive_passes", "PrgP"}},
	{stat: model.ProgressiveCarries, from: []string{"progressive_carries", "PrgC"}},
	{stat: model.ProgressiveReceives, from: []string{"progressive_receives", "PrgR"}},
	{stat: model.SuccessfulDribbles, from: []string{"successful_dribbles", "Succ"}},
	{stat: model.DribbleAttempts, from: []string{"dribble_attempts"}},
	{stat: model.DribbleSuccessPct, from: []string{"dribble_success_pct", "Succ%"}},
	{stat: model.Turnovers, from: []string{"turnovers"}, derive: sumOf("Dis", "Mis")},
	{stat: model.Shots, from: []string{"shots", "Sh"}},
	{stat: model.ShotsOnTarget, from: []string{"shots_on_target", "SoT"}},
	{stat: model.PassesIntoFinalThird, from: []string{"passes_into_final_third", "1/3"}},
	{stat: model.PassCompletionPct, from: []string{"pass_completion_pct", "Cmp%"}},
	{stat: model.PressuresSuccess, from: []string{"pressures_success", "SuccPress"}, derive: pressureEstimate},
	{stat: model.Tackles, from: []string{"tackles", "Tkl"}},
	{stat: model.Interceptions, from: []string{"interceptions", "Int"}},
	{stat: model.Blocks, from: []string{"blocks", "Blocks"}},
	{stat: model.AerialsWon, from: []string{"aerials_won", "AerWon"}},
	{stat: model.TacklesDefThird, from: []string{"tackles_def_third", "Def 3rd"}},
	{stat: model.TacklesMidThird, from: []string{"tackles_mid_third", "Mid 3rd"}},
	{stat: model.TacklesAttThird, from: []string{"tackles_att_third", "Att 3rd"}},
	{stat: model.TeamGoalsForOn, from: []string{"team_goals_for_on"}},
	{stat: model.TeamGoalsAgainstOn, from: []string{"team_goals_against_on"}},
	{stat: model.TeamGoalsForOff, from: []string{"team_goals_for_off"}},
	{stat: model.TeamGoalsAgainstOff, from: []string{"team_goals_against_off"}},
	{stat: model.OpponentElo, from: []string{"opponent_elo"}, def: 1500},
	{stat: model.GameStateTimeWeighted, from: []string{"game_state_time_weighted"}, def: 1.0},
}

// sumOf adds whichever of cols exist; it derives nothing if none do.
func sumOf(cols ...string) func(colIndex, []string) (float64, bool) {
	return func(ix colIndex, rec []string) (float64, bool) {
		var sum float64
		found := false
		for _, c := range cols {
			if i, ok := ix[c]; ok {
				found = true
				sum += parseLenient(cell(rec, i))
			}
		}
		return sum, found
	}
}

func pressureEstimate(ix colIndex, rec []string) (float64, bool) {
	i, ok := ix.first("pressures", "Press")
	if !ok {
		return 0, false
	}
	return math.RoundToEven(parseLenient(cell(rec, i)) * pressureSuccessPrior), true
}

// colIndex maps a header label to its position.
type colIndex map[string]int

// indexFirst keeps the first position of a repeated label.
func indexFirst(header []string) colIndex {
	ix := make(colIndex, len(header))
	for i, h := range header {
		if _, ok := ix[h]; !ok && h != "" {
			ix[h] = i
		}
	}
	return ix
}

// indexLast keeps the last position of a repeated label.
func indexLast(header []string) colIndex {
	ix := make(colIndex, len(header))
	for i, h := range header {
		if h != "" {
			ix[h] = i
		}
	}
	return ix
}

// first returns the position of the first candidate present in the header.
func (ix colIndex) first(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := ix[n]; ok {
			return i, true
		}
	}
	return 0, false
}

// pick returns the first non-empty cell among the candidates.
func (ix colIndex) pick(rec []string, names ...string) string {
	for _, n := range names {
		if i, ok := ix[n]; ok {
			if v := strings.TrimSpace(cell(rec, i)); v != "" {
				return v
			}
		}
	}
	return ""
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func newLenientReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// ImportFBref converts an FBref player match-log export. Each canonical
// column is filled from the first matching source column; numbers parse
// leniently. The result always carries the full canonical header.
func ImportFBref(r io.Reader) (model.Table, error) {
	return importFBref(r, "")
}

func importFBref(r io.Reader, source string) (model.Table, error) {
	cr := newLenientReader(r)

	var header []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return model.Table{}, ErrEmptyInput
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("%w: %w", ErrHeader, err)
		}
		if !blank(rec) {
			header = normalizeAll(rec)
			break
		}
	}
	ix := indexFirst(header)

	t := model.Table{Columns: CanonicalColumns()}
	rowNum := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("%w: %w", ErrMalformedValue, err)
		}
		if blank(rec) || sameCells(rec, header) {
			continue
		}
		rowNum++

		row := model.MatchRow{Stats: make(map[model.Stat]float64, len(matchLogStats))}
		for _, f := range matchLogIdentity {
			if i, ok := ix.first(f.from...); ok {
				row.SetIdentity(f.col, NormalizeText(cell(rec, i)))
			} else {
				row.SetIdentity(f.col, f.def(source, rowNum))
			}
		}
		for _, f := range matchLogStats {
			row.Stats[f.stat] = f.value(ix, rec)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (f statField) value(ix colIndex, rec []string) float64 {
	if i, ok := ix.first(f.from...); ok {
		return parseLenient(cell(rec, i))
	}
	if f.derive != nil {
		if v, ok := f.derive(ix, rec); ok {
			return v
		}
	}
	return f.def
}

// sameCells spots header rows repeated inside a table body.
func sameCells(rec, header []string) bool {
	if len(rec) == 0 {
		return false
	}
	for i, h := range header {
		if NormalizeText(cell(rec, i)) != h {
			return false
		}
	}
	return true
}
