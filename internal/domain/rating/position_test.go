package rating_test

import (
	"testing"

	"github.com/okian/pele/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveBucket(t *testing.T) {
	Convey("Given position labels", t, func() {
		cases := map[string]rating.Bucket{
			"RCB":  rating.CenterBack,
			"CAM":  rating.Winger,
			"GK":   rating.Midfielder,
			"":     rating.Midfielder,
			"ST":   rating.Forward,
			"CF":   rating.Forward,
			"fw":   rating.Forward,
			"AMR":  rating.Winger,
			"LW":   rating.Winger,
			"CDM":  rating.Midfielder,
			"rwb":  rating.Fullback,
			" lb ": rating.Fullback,
			"LCB":  rating.CenterBack,
		}

		Convey("Then each maps to exactly one bucket", func() {
			for label, want := range cases {
				So(rating.ResolveBucket(label), ShouldEqual, want)
			}
		})
	})

	Convey("Given labels padded with whitespace", t, func() {
		Convey("Then they resolve like the bare label", func() {
			So(rating.ResolveBucket(" RCB "), ShouldEqual, rating.CenterBack)
			So(rating.ResolveBucket("\tcam\n"), ShouldEqual, rating.Winger)
			So(rating.ResolveBucket("  GK  "), ShouldEqual, rating.Midfielder)
		})
	})
}

func TestPositionWeight(t *testing.T) {
	Convey("Given the position weight table", t, func() {
		Convey("Then a top rating reaches the stat's ceiling", func() {
			So(rating.PositionWeight(rating.Forward, rating.PosGoals), ShouldAlmostEqual, 1.20, 1e-12)
			So(rating.PositionWeight(rating.CenterBack, rating.PosTacklesInt), ShouldAlmostEqual, 0.12, 1e-12)
		})

		Convey("Then every bucket stays within the ceiling", func() {
			keys := []rating.PositionKey{
				rating.PosGoals, rating.PosAssists, rating.PosXG, rating.PosXA,
				rating.PosKeyPasses, rating.PosProgPass, rating.PosProgCarry,
				rating.PosDribbles, rating.PosTurnovers, rating.PosPressures,
				rating.PosTacklesInt, rating.PosBlocks, rating.PosAerials,
			}
			for _, b := range rating.Buckets() {
				for _, k := range keys {
					w := rating.PositionWeight(b, k)
					So(w, ShouldBeGreaterThan, 0)
					So(w, ShouldBeLessThanOrEqualTo, 1.20)
				}
			}
		})
	})
}
