package rating_test

import (
	"github.com/okian/pele/internal/domain/model"
)

// fullColumns is a header carrying every canonical column.
func fullColumns() []string {
	cols := model.IdentityColumns()
	for _, s := range model.KnownStats() {
		cols = append(cols, string(s))
	}
	return cols
}

func row(player, match, season string, stats map[model.Stat]float64) model.MatchRow {
	return model.MatchRow{
		PlayerID:   player,
		PlayerName: "Player " + player,
		MatchID:    match,
		Season:     season,
		TeamID:     "T1",
		Stats:      stats,
	}
}

func table(rows ...model.MatchRow) model.Table {
	return model.Table{Columns: fullColumns(), Rows: rows}
}

// scenarioP1 is the two-match example: a 90-minute goal and a 45-minute assist.
func scenarioP1() model.Table {
	return table(
		row("P1", "A", "2024", map[model.Stat]float64{
			model.Minutes: 90, model.NPGoals: 1, model.XG: 0.8,
		}),
		row("P1", "B", "2024", map[model.Stat]float64{
			model.Minutes: 45, model.Assists: 1, model.XA: 0.5,
		}),
	)
}

// mixedTable has several players, seasons and a zero-minute row.
func mixedTable() model.Table {
	return table(
		row("P1", "m1", "2023", map[model.Stat]float64{
			model.Minutes: 90, model.NPGoals: 1, model.XG: 0.6, model.Shots: 4, model.ShotsOnTarget: 2,
			model.PassCompletionPct: 80, model.DribbleSuccessPct: 50, model.Tackles: 1,
		}),
		row("P1", "m2", "2024", map[model.Stat]float64{
			model.Minutes: 70, model.Assists: 1, model.XA: 0.3, model.KeyPasses: 3,
			model.PassCompletionPct: 90, model.Turnovers: 2,
		}),
		row("P2", "m1", "2023", map[model.Stat]float64{
			model.Minutes: 90, model.Tackles: 4, model.Interceptions: 3, model.Blocks: 2,
			model.AerialsWon: 5, model.TacklesDefThird: 3, model.TacklesMidThird: 1,
			model.PassCompletionPct: 88,
		}),
		row("P2", "m2", "2024", map[model.Stat]float64{
			model.Minutes: 15, model.Tackles: 1, model.PassCompletionPct: 70,
		}),
		row("P3", "m2", "2024", map[model.Stat]float64{
			model.Minutes: 0, model.NPGoals: 0, model.PassCompletionPct: 60,
		}),
	)
}
