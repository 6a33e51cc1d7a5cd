package rating_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPer90(t *testing.T) {
	Convey("Given raw values and minutes", t, func() {
		So(rating.Per90(2, 90), ShouldEqual, 2)
		So(rating.Per90(1, 45), ShouldEqual, 2)
		So(rating.Per90(1, 135), ShouldAlmostEqual, 2.0/3.0, 1e-12)

		Convey("Then zero minutes never produce NaN or Inf", func() {
			v := rating.Per90(3, 0)
			So(v, ShouldEqual, 0)
			So(math.IsNaN(v), ShouldBeFalse)
		})
	})

	Convey("Given a row missing some stats", t, func() {
		r := model.MatchRow{Stats: map[model.Stat]float64{model.Minutes: 45, model.Shots: 3}}
		rv := rating.Rates(r, []model.Stat{model.Shots, model.XG})
		So(rv[model.Shots], ShouldEqual, 6)
		So(rv[model.XG], ShouldEqual, 0)
	})
}

func TestMinutesMultiplier(t *testing.T) {
	Convey("Given the minutes multiplier", t, func() {
		So(rating.MinutesMultiplier(90, 90, 2), ShouldAlmostEqual, 1, 1e-12)
		So(rating.MinutesMultiplier(0, 90, 2), ShouldEqual, 0)
		So(rating.MinutesMultiplier(90, 0, 2), ShouldEqual, 0)

		Convey("Then it grows with minutes and steepens with power", func() {
			low1 := rating.MinutesMultiplier(20, 90, 1)
			low2 := rating.MinutesMultiplier(20, 90, 2)
			So(low1, ShouldBeLessThan, 1)
			So(low2, ShouldBeLessThan, low1)
			So(rating.MinutesMultiplier(900, 90, 2), ShouldBeGreaterThan, 1)
		})

		Convey("Then it follows the log ratio formula", func() {
			want := math.Pow(math.Log1p(45)/math.Log1p(67.5), 2)
			So(rating.MinutesMultiplier(45, 67.5, rating.DefaultMinutesPower), ShouldAlmostEqual, want, 1e-12)
		})
	})
}

func TestStandardize(t *testing.T) {
	Convey("Given a population of one", t, func() {
		recs := []rating.Record{{PeleRaw: 3.7}}
		rating.Standardize(recs)
		So(recs[0].Pele100, ShouldEqual, 50.0)
		So(recs[0].Standardized, ShouldBeTrue)
	})

	Convey("Given identical values", t, func() {
		recs := []rating.Record{{PeleRaw: 0.1}, {PeleRaw: 0.1}, {PeleRaw: 0.1}}
		rating.Standardize(recs)
		for _, r := range recs {
			So(r.Pele100, ShouldEqual, 50.0)
		}
	})

	Convey("Given two distinct values", t, func() {
		recs := []rating.Record{{PeleRaw: 1}, {PeleRaw: 3}}
		rating.Standardize(recs)

		Convey("Then the population deviation is used", func() {
			// mean 2, population sigma 1
			So(recs[0].Pele100, ShouldAlmostEqual, 40, 1e-9)
			So(recs[1].Pele100, ShouldAlmostEqual, 60, 1e-9)
		})
	})

	Convey("Given an empty population", t, func() {
		So(func() { rating.Standardize(nil) }, ShouldNotPanic)
	})
}

func TestReducers(t *testing.T) {
	Convey("Given identity values of a group", t, func() {
		So(rating.MostFrequent([]string{"a", "b", "b"}), ShouldEqual, "b")
		So(rating.MostFrequent([]string{"x", "y", "z"}), ShouldEqual, "x")
		So(rating.MostFrequent([]string{"", "", "k"}), ShouldEqual, "k")
		So(rating.MostFrequent([]string{"", ""}), ShouldEqual, "")
		So(rating.MostFrequent([]string{"b", "a", "a", "b"}), ShouldEqual, "b")
		So(rating.MostFrequent([]string{"", "RW", "LW", "LW", "RW"}), ShouldEqual, "RW")
		So(rating.Constant("c")([]string{"a"}), ShouldEqual, "c")
	})
}

func TestSumGroups(t *testing.T) {
	Convey("Given rows of two players", t, func() {
		tbl := table(
			row("P1", "1", "2024", map[model.Stat]float64{model.Minutes: 90, model.Shots: 2, model.PassCompletionPct: 80}),
			row("P1", "2", "2024", map[model.Stat]float64{model.Minutes: 30, model.Shots: 1, model.PassCompletionPct: 60}),
			row("P2", "1", "2024", map[model.Stat]float64{model.Minutes: 0, model.PassCompletionPct: 50}),
			row("P2", "2", "2024", map[model.Stat]float64{model.Minutes: 0, model.PassCompletionPct: 70}),
		)
		tbl.Rows[1].PlayerName = "P. One"
		tbl.Rows[1].TeamID = "T2"

		rows := rating.SumGroups(tbl, []string{model.ColPlayerID}, rating.DefaultReducers())

		Convey("Then groups keep first-appearance order", func() {
			So(len(rows), ShouldEqual, 2)
			So(rows[0].PlayerID, ShouldEqual, "P1")
			So(rows[1].PlayerID, ShouldEqual, "P2")
		})

		Convey("Then counting stats are summed", func() {
			So(rows[0].Stat(model.Minutes), ShouldEqual, 120)
			So(rows[0].Stat(model.Shots), ShouldEqual, 3)
		})

		Convey("Then percentages are minutes-weighted", func() {
			So(rows[0].Stat(model.PassCompletionPct), ShouldAlmostEqual, 75, 1e-9)
		})

		Convey("Then zero-minute rows weigh one", func() {
			So(rows[1].Stat(model.PassCompletionPct), ShouldAlmostEqual, 60, 1e-9)
		})

		Convey("Then identities outside the key are reduced", func() {
			So(rows[0].PlayerName, ShouldEqual, "Player P1")
			So(rows[0].TeamID, ShouldEqual, "T1")
			So(rows[0].MatchID, ShouldEqual, rating.AggregateMatchID)
		})
	})

	Convey("Given a custom reducer", t, func() {
		tbl := scenarioP1()
		recs, err := rating.Compute(tbl, rating.WithReducer(model.ColTeamID, rating.Constant("MIXED")))
		So(err, ShouldBeNil)
		So(recs[0].TeamID, ShouldEqual, "MIXED")
	})
}

func TestProfiles(t *testing.T) {
	Convey("Given profiles with one preset", t, func() {
		attacking, err := rating.WeightsFrom(map[string]float64{"w_g": 2.0})
		So(err, ShouldBeNil)
		p := rating.NewProfiles(map[string]rating.Weights{"Attacking": attacking, "position": attacking})

		Convey("Then built-ins resolve", func() {
			s, err := p.Scorer("")
			So(err, ShouldBeNil)
			So(s.Name(), ShouldEqual, rating.DefaultProfile)

			s, err = p.Scorer("POSITION")
			So(err, ShouldBeNil)
			So(s.Name(), ShouldEqual, rating.PositionProfile)
		})

		Convey("Then presets resolve case-insensitively", func() {
			s, err := p.Scorer("attacking")
			So(err, ShouldBeNil)
			fixed, ok := s.(*rating.FixedScorer)
			So(ok, ShouldBeTrue)
			So(fixed.Weights().Goals, ShouldEqual, 2.0)
			So(fixed.Weights().Assists, ShouldEqual, rating.DefaultWeights().Assists)
		})

		Convey("Then unknown names fail", func() {
			_, err := p.Scorer("nope")
			So(errors.Is(err, rating.ErrUnknownWeights), ShouldBeTrue)
		})

		Convey("Then names list built-ins first", func() {
			So(p.Names(), ShouldResemble, []string{"default", "position", "attacking"})
		})
	})

	Convey("Given an unknown weight key", t, func() {
		_, err := rating.WeightsFrom(map[string]float64{"w_nope": 1})
		So(errors.Is(err, rating.ErrUnknownWeightKey), ShouldBeTrue)
		So(rating.WeightKeys(), ShouldContain, "w_tkl_att")
	})
}
