package sampledata_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
	"github.com/okian/pele/internal/sampledata"
	"github.com/okian/pele/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func small() sampledata.Config {
	return sampledata.Config{Players: 12, Teams: 4, Matches: 3, Seasons: []string{"2024"}, Seed: 7, Workers: 3}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	Convey("Given a small config", t, func() {
		cfg := small()
		tbl, err := sampledata.Generate(ctx, cfg)
		So(err, ShouldBeNil)

		Convey("Then the row count and header match", func() {
			So(len(tbl.Rows), ShouldEqual, cfg.Rows())
			So(tbl.Has(model.ColPlayerID), ShouldBeTrue)
			So(tbl.Has(string(model.TacklesAttThird)), ShouldBeTrue)
		})

		Convey("Then the output is independent of the worker count", func() {
			cfg.Workers = 1
			again, err := sampledata.Generate(ctx, cfg)
			So(err, ShouldBeNil)
			So(again.Rows, ShouldResemble, tbl.Rows)
		})

		Convey("Then every match id is shared by exactly two teams", func() {
			byMatch := map[string]map[string]bool{}
			for _, r := range tbl.Rows {
				if byMatch[r.MatchID] == nil {
					byMatch[r.MatchID] = map[string]bool{}
				}
				byMatch[r.MatchID][r.TeamID] = true
			}
			So(len(byMatch), ShouldEqual, cfg.Teams/2*cfg.Matches)
			for _, teams := range byMatch {
				So(len(teams), ShouldEqual, 2)
			}
		})

		Convey("Then the table verifies and rates", func() {
			top, err := sampledata.Verify(context.Background(), tbl, 5)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 5)
			So(top[0].PeleRaw, ShouldBeGreaterThanOrEqualTo, top[4].PeleRaw)

			_, err = rating.Compute(tbl, rating.WithScorer(rating.NewPositionScorer()))
			So(err, ShouldBeNil)
		})
	})

	Convey("Given a different seed", t, func() {
		a, _ := sampledata.Generate(ctx, small())
		cfg := small()
		cfg.Seed = 8
		b, _ := sampledata.Generate(ctx, cfg)
		So(a.Rows[0].MatchID, ShouldNotEqual, b.Rows[0].MatchID)
	})

	Convey("Given invalid configs", t, func() {
		for _, mutate := range []func(*sampledata.Config){
			func(c *sampledata.Config) { c.Players = 0 },
			func(c *sampledata.Config) { c.Teams = 1 },
			func(c *sampledata.Config) { c.Teams = 5 },
			func(c *sampledata.Config) { c.Matches = 0 },
			func(c *sampledata.Config) { c.Seasons = nil },
		} {
			cfg := small()
			mutate(&cfg)
			_, err := sampledata.Generate(ctx, cfg)
			So(errors.Is(err, sampledata.ErrInvalidConfig), ShouldBeTrue)
		}
	})

	Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := sampledata.Generate(cctx, sampledata.DefaultConfig())
		So(err, ShouldNotBeNil)
	})

	Convey("Given a duplicated row", t, func() {
		tbl, _ := sampledata.Generate(ctx, small())
		tbl.Rows = append(tbl.Rows, tbl.Rows[0])
		_, err := sampledata.Verify(context.Background(), tbl, 1)
		So(err, ShouldNotBeNil)
	})
}
