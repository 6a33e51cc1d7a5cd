package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/pele/internal/domain/dedupe"
	"github.com/okian/pele/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When a key is recorded twice", func() {
			first := d.SeenAndRecord(ctx, "k1")
			second := d.SeenAndRecord(ctx, "k1")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k2"), ShouldBeFalse)
			})
		})

		Convey("When many goroutines record the same keys", func() {
			var (
				wg    sync.WaitGroup
				mu    sync.Mutex
				fresh int
			)
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 100; i++ {
						if !d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i)) {
							mu.Lock()
							fresh++
							mu.Unlock()
						}
					}
				}()
			}
			wg.Wait()

			Convey("Then each key is new exactly once", func() {
				So(fresh, ShouldEqual, 100)
			})
		})
	})
}

func TestRows(t *testing.T) {
	Convey("Given rows with a repeated (player, match) pair", t, func() {
		rows := []model.MatchRow{
			{PlayerID: "P1", MatchID: "m1", Stats: map[model.Stat]float64{model.Minutes: 90}},
			{PlayerID: "P1", MatchID: "m2", Stats: map[model.Stat]float64{model.Minutes: 45}},
			{PlayerID: "P1", MatchID: "m1", Stats: map[model.Stat]float64{model.Minutes: 10}},
			{PlayerID: "P2", MatchID: "m1", Stats: map[model.Stat]float64{model.Minutes: 90}},
		}

		kept, dropped := dedupe.Rows(context.Background(), dedupe.NewInMemoryDeduper(), rows)

		Convey("Then the first occurrence wins and order is kept", func() {
			So(dropped, ShouldEqual, 1)
			So(len(kept), ShouldEqual, 3)
			So(kept[0].Stat(model.Minutes), ShouldEqual, 90)
			So(kept[1].MatchID, ShouldEqual, "m2")
			So(kept[2].PlayerID, ShouldEqual, "P2")
		})
	})

	Convey("Given keys whose parts would collide when concatenated", t, func() {
		a := model.MatchRow{PlayerID: "P1", MatchID: "1m"}
		b := model.MatchRow{PlayerID: "P11", MatchID: "m"}
		So(dedupe.RowKey(a), ShouldNotEqual, dedupe.RowKey(b))
	})
}
