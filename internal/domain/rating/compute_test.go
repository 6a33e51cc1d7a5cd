package rating_test

import (
	"errors"
	"testing"

	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

const eps = 1e-9

func TestCompute_RowLevel(t *testing.T) {
	Convey("Given a mixed table scored at row level", t, func() {
		recs, err := rating.Compute(mixedTable(), rating.WithGroupBy(), rating.WithStandardize(true))
		So(err, ShouldBeNil)
		So(len(recs), ShouldEqual, 5)

		Convey("Then input order is preserved", func() {
			So(recs[0].MatchID, ShouldEqual, "m1")
			So(recs[0].PlayerID, ShouldEqual, "P1")
			So(recs[4].PlayerID, ShouldEqual, "P3")
		})

		Convey("Then components add up for every row", func() {
			for _, r := range recs {
				So(r.OC+r.DC, ShouldEqual, r.BaseScore)
				So(r.BaseScore*r.MinMult, ShouldAlmostEqual, r.PeleRaw, eps)
				So(r.Standardized, ShouldBeTrue)
			}
		})

		Convey("Then zero-minute rows have zero rates, multiplier and score", func() {
			zero := recs[4]
			So(zero.Rates, ShouldNotBeEmpty)
			for _, v := range zero.Rates {
				So(v, ShouldEqual, 0)
			}
			So(zero.MinMult, ShouldEqual, 0)
			So(zero.PeleRaw, ShouldEqual, 0)
		})

		Convey("Then the multiplier is relative to the population's mean minutes", func() {
			// mean minutes = (90+70+90+15+0)/5 = 53
			So(recs[0].MinMult, ShouldBeGreaterThan, 1)
			So(recs[3].MinMult, ShouldBeLessThan, 1)
			So(recs[0].MinMult, ShouldEqual, recs[2].MinMult)
		})
	})
}

func TestCompute_Validation(t *testing.T) {
	Convey("Given a table missing a required column", t, func() {
		tbl := mixedTable()
		var cols []string
		for _, c := range tbl.Columns {
			if c != string(model.ShotsOnTarget) {
				cols = append(cols, c)
			}
		}
		tbl.Columns = cols

		Convey("When computing", func() {
			recs, err := rating.Compute(tbl)

			Convey("Then it fails naming the column", func() {
				So(recs, ShouldBeNil)
				So(errors.Is(err, rating.ErrMissingColumn), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "shots_on_target")
			})
		})
	})

	Convey("Given the position scorer and a table without position", t, func() {
		tbl := mixedTable()
		var cols []string
		for _, c := range tbl.Columns {
			if c != model.ColPosition {
				cols = append(cols, c)
			}
		}
		tbl.Columns = cols

		_, err := rating.Compute(tbl, rating.WithScorer(rating.NewPositionScorer()))
		So(errors.Is(err, rating.ErrMissingColumn), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "position")
	})

	Convey("Given a negative minutes value", t, func() {
		tbl := table(row("P9", "m1", "2024", map[model.Stat]float64{model.Minutes: -5}))
		_, err := rating.Compute(tbl)
		So(errors.Is(err, rating.ErrNegativeMinutes), ShouldBeTrue)
	})

	Convey("Given a group column that is not an identity column", t, func() {
		_, err := rating.Compute(mixedTable(), rating.WithGroupBy("minutes"))
		So(errors.Is(err, rating.ErrUnknownGroupColumn), ShouldBeTrue)
	})

	Convey("Given a group column absent from the header", t, func() {
		tbl := mixedTable()
		var cols []string
		for _, c := range tbl.Columns {
			if c != model.ColSeason {
				cols = append(cols, c)
			}
		}
		tbl.Columns = cols
		_, err := rating.Compute(tbl, rating.WithGroupBy(model.ColPlayerID, model.ColSeason))
		So(errors.Is(err, rating.ErrUnknownGroupColumn), ShouldBeTrue)
	})

	Convey("Given extra columns", t, func() {
		tbl := mixedTable()
		tbl.Columns = append(tbl.Columns, "nation", "comp")
		_, err := rating.Compute(tbl)
		So(err, ShouldBeNil)
	})
}

func TestCompute_EmptyTable(t *testing.T) {
	Convey("Given a table with a header and no rows", t, func() {
		recs, err := rating.Compute(table())
		So(err, ShouldBeNil)
		So(recs, ShouldBeEmpty)
	})
}

func TestCompute_ScenarioP1(t *testing.T) {
	Convey("Given two P1 rows aggregated by player", t, func() {
		recs, err := rating.Compute(scenarioP1(), rating.WithGroupBy(model.ColPlayerID))
		So(err, ShouldBeNil)
		So(len(recs), ShouldEqual, 1)
		p1 := recs[0]

		Convey("Then rates are re-derived from summed totals", func() {
			So(p1.Minutes, ShouldEqual, 135)
			So(p1.Rates[model.NPGoals], ShouldAlmostEqual, 1/1.5, eps)
			So(p1.Rates[model.Assists], ShouldAlmostEqual, 1/1.5, eps)
			So(p1.Rates[model.XG], ShouldAlmostEqual, 0.8/1.5, eps)
			So(p1.Rates[model.XA], ShouldAlmostEqual, 0.5/1.5, eps)
		})

		Convey("Then OC uses the summed rates, not the mean of row rates", func() {
			w := rating.DefaultWeights()
			expected := w.Goals*(1/1.5) + w.Assists*(1/1.5) +
				w.XG*(0.8/1.5-1/1.5) + w.XA*(0.5/1.5-1/1.5)
			So(p1.OC, ShouldAlmostEqual, expected, eps)
			So(p1.OC, ShouldAlmostEqual, 1.1333333333, 1e-6)

			// mean of row rates: goals 0.5, assists 1.0, xg 0.4, xa 0.5
			averaged := w.Goals*0.5 + w.Assists*1.0 + w.XG*(0.4-0.5) + w.XA*(0.5-1.0)
			So(averaged, ShouldAlmostEqual, 1.15, 1e-9)
			So(p1.OC, ShouldNotAlmostEqual, averaged, 1e-3)
		})

		Convey("Then a single group is its own reference and standardizes to 50", func() {
			So(p1.DC, ShouldEqual, 0)
			So(p1.MinMult, ShouldAlmostEqual, 1, eps)
			So(p1.Pele100, ShouldEqual, 50.0)
			So(p1.MatchID, ShouldEqual, rating.AggregateMatchID)
			So(p1.PlayerName, ShouldEqual, "Player P1")
		})
	})
}

func TestCompute_GroupingByUniqueKey(t *testing.T) {
	Convey("Given a table whose match_id is unique per row", t, func() {
		tbl := table(
			row("P1", "a", "2024", map[model.Stat]float64{model.Minutes: 90, model.NPGoals: 1, model.PassCompletionPct: 83}),
			row("P2", "b", "2024", map[model.Stat]float64{model.Minutes: 30, model.Tackles: 2, model.PassCompletionPct: 71}),
			row("P3", "c", "2024", map[model.Stat]float64{model.Minutes: 0, model.PassCompletionPct: 55}),
		)

		rows, err := rating.Compute(tbl, rating.WithGroupBy(), rating.WithStandardize(false))
		So(err, ShouldBeNil)
		grouped, err := rating.Compute(tbl, rating.WithGroupBy(model.ColMatchID), rating.WithStandardize(false))
		So(err, ShouldBeNil)

		Convey("Then grouping reproduces the row-level scores", func() {
			byMatch := map[string]rating.Record{}
			for _, r := range grouped {
				byMatch[r.MatchID] = r
			}
			for _, r := range rows {
				g := byMatch[r.MatchID]
				So(g.PlayerID, ShouldEqual, r.PlayerID)
				So(g.OC, ShouldAlmostEqual, r.OC, eps)
				So(g.DC, ShouldAlmostEqual, r.DC, eps)
				So(g.MinMult, ShouldAlmostEqual, r.MinMult, eps)
				So(g.PeleRaw, ShouldAlmostEqual, r.PeleRaw, eps)
			}
		})

		Convey("Then grouped output is sorted by PeleRaw descending", func() {
			for i := 1; i < len(grouped); i++ {
				So(grouped[i-1].PeleRaw, ShouldBeGreaterThanOrEqualTo, grouped[i].PeleRaw)
			}
		})
	})
}

func TestCompute_NoCrossGroupLeakage(t *testing.T) {
	Convey("Given a mixed table grouped by player and season", t, func() {
		all, err := rating.Compute(mixedTable(), rating.WithGroupBy(model.ColPlayerID, model.ColSeason))
		So(err, ShouldBeNil)
		So(len(all), ShouldEqual, 5)

		Convey("Then summed stats of one group match scoring that group alone", func() {
			alone := mixedTable().Filter(func(r model.MatchRow) bool {
				return r.PlayerID == "P2" && r.Season == "2023"
			})
			isolated, err := rating.Compute(alone, rating.WithGroupBy(model.ColPlayerID, model.ColSeason))
			So(err, ShouldBeNil)
			So(len(isolated), ShouldEqual, 1)

			var fromAll rating.Record
			for _, r := range all {
				if r.PlayerID == "P2" && r.Season == "2023" {
					fromAll = r
				}
			}
			So(fromAll.Minutes, ShouldEqual, isolated[0].Minutes)
			So(fromAll.OC, ShouldAlmostEqual, isolated[0].OC, eps)
			So(fromAll.DC, ShouldAlmostEqual, isolated[0].DC, eps)
			for stat, v := range isolated[0].Rates {
				So(fromAll.Rates[stat], ShouldAlmostEqual, v, eps)
			}
		})
	})
}

func TestCompute_PositionScorer(t *testing.T) {
	Convey("Given a defender and a forward with identical defensive output", t, func() {
		stats := func() map[model.Stat]float64 {
			return map[model.Stat]float64{
				model.Minutes: 90, model.Tackles: 3, model.Interceptions: 2,
				model.Blocks: 1, model.AerialsWon: 4, model.PressuresSuccess: 5,
			}
		}
		cb := row("CB1", "m1", "2024", stats())
		cb.Position = "RCB"
		fw := row("FW1", "m1", "2024", stats())
		fw.Position = "ST"

		recs, err := rating.Compute(table(cb, fw),
			rating.WithGroupBy(),
			rating.WithScorer(rating.NewPositionScorer()),
		)
		So(err, ShouldBeNil)

		Convey("Then buckets are resolved per row", func() {
			So(recs[0].Bucket, ShouldEqual, rating.CenterBack)
			So(recs[1].Bucket, ShouldEqual, rating.Forward)
		})

		Convey("Then the center back earns more defensive credit", func() {
			So(recs[0].DC, ShouldBeGreaterThan, recs[1].DC)
			expected := 0.012*5*5 + 0.024*5*5 + 0.016*5*1 + 0.01*5*4
			So(recs[0].DC, ShouldAlmostEqual, expected, eps)
		})
	})

	Convey("Given a player whose most frequent position is a winger label", t, func() {
		mk := func(match, pos string) model.MatchRow {
			r := row("W1", match, "2024", map[model.Stat]float64{model.Minutes: 90, model.KeyPasses: 2})
			r.Position = pos
			return r
		}
		recs, err := rating.Compute(table(mk("1", "CAM"), mk("2", "LW"), mk("3", "CAM")),
			rating.WithScorer(rating.NewPositionScorer()))
		So(err, ShouldBeNil)
		So(recs[0].Position, ShouldEqual, "CAM")
		So(recs[0].Bucket, ShouldEqual, rating.Winger)
	})
}
