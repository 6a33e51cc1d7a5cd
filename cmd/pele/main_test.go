package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pele/internal/adapters/ingest"
	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
)

func mkRow(id, name, match, season, team, pos string, stats map[model.Stat]float64) model.MatchRow {
	return model.MatchRow{PlayerID: id, PlayerName: name, MatchID: match, Season: season, TeamID: team, Position: pos, Stats: stats}
}

// writeInput writes five rows, one of them a repeated (player, match).
func writeInput(t *testing.T) string {
	t.Helper()
	ada := map[model.Stat]float64{model.Minutes: 90, model.NPGoals: 1, model.XG: 0.7, model.PassCompletionPct: 80}
	tbl := model.Table{
		Columns: ingest.CanonicalColumns(),
		Rows: []model.MatchRow{
			mkRow("P1", "Ada", "m1", "2024", "T1", "ST", ada),
			mkRow("P1", "Ada", "m2", "2024", "T1", "ST", ada),
			mkRow("P1", "Ada", "m2", "2024", "T1", "ST", ada),
			mkRow("P2", "Bea", "m1", "2024", "T2", "CB", map[model.Stat]float64{
				model.Minutes: 90, model.Tackles: 4, model.Interceptions: 3, model.PassCompletionPct: 90,
			}),
			mkRow("P3", "Cy", "m3", "2023", "T1", "CM", map[model.Stat]float64{
				model.Minutes: 45, model.Tackles: 2, model.PassCompletionPct: 88,
			}),
		},
	}
	path := filepath.Join(t.TempDir(), "rows.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := ingest.WriteCanonical(f, tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a canonical input file", t, func() {
		in := writeInput(t)
		var stdout, stderr bytes.Buffer

		Convey("When rating with the defaults", func() {
			err := run(ctx, []string{"-input", in}, &stdout, &stderr)

			Convey("Then a ranked table is printed", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
				So(len(lines), ShouldEqual, 4)
				So(lines[0], ShouldStartWith, "#")
				So(lines[0], ShouldContainSubstring, "pele_100")
			})
		})

		Convey("When writing JSON for one season", func() {
			err := run(ctx, []string{"-input", in, "-format", "json", "-season", "2024", "-standardize=false"}, &stdout, &stderr)
			So(err, ShouldBeNil)

			var recs []map[string]any
			So(json.Unmarshal(stdout.Bytes(), &recs), ShouldBeNil)
			So(len(recs), ShouldEqual, 2)
			_, hasPele100 := recs[0]["pele_100"]
			So(hasPele100, ShouldBeFalse)
			So(recs[0], ShouldContainKey, "np_goals_p90")
		})

		Convey("When writing CSV and filters to files", func() {
			dir := t.TempDir()
			out := filepath.Join(dir, "ratings.csv")
			filters := filepath.Join(dir, "filters.json")
			err := run(ctx, []string{"-input", in, "-format", "csv", "-group-by", "none", "-output", out, "-filters", filters}, &stdout, &stderr)
			So(err, ShouldBeNil)
			So(stdout.Len(), ShouldEqual, 0)

			raw, err := os.ReadFile(out)
			So(err, ShouldBeNil)
			So(strings.Count(strings.TrimSpace(string(raw)), "\n"), ShouldEqual, 4)

			raw, err = os.ReadFile(filters)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"2023"`)
		})

		Convey("When dedupe is off the repeated row counts twice", func() {
			err := run(ctx, []string{"-input", in, "-format", "csv", "-group-by", "none", "-dedupe=false"}, &stdout, &stderr)
			So(err, ShouldBeNil)
			So(strings.Count(strings.TrimSpace(stdout.String()), "\n"), ShouldEqual, 5)
		})

		Convey("When a preset is selected from a weights file", func() {
			wf := filepath.Join(t.TempDir(), "w.toml")
			So(os.WriteFile(wf, []byte("[presets.stopper]\nw_ti = 5.0\n"), 0o600), ShouldBeNil)
			err := run(ctx, []string{"-input", in, "-weights-file", wf, "-weights", "stopper", "-top", "1", "-format", "json"}, &stdout, &stderr)
			So(err, ShouldBeNil)
			So(stdout.String(), ShouldContainSubstring, `"player_id": "P2"`)
		})

		Convey("When the weights are unknown", func() {
			err := run(ctx, []string{"-input", in, "-weights", "nope"}, &stdout, &stderr)
			So(errors.Is(err, rating.ErrUnknownWeights), ShouldBeTrue)
		})

		Convey("When the input lacks required columns", func() {
			thin := filepath.Join(t.TempDir(), "thin.csv")
			So(os.WriteFile(thin, []byte("player_id,match_id,minutes\nP1,m1,90\n"), 0o600), ShouldBeNil)
			err := run(ctx, []string{"-input", thin}, &stdout, &stderr)
			So(errors.Is(err, rating.ErrMissingColumn), ShouldBeTrue)
		})

		Convey("When the position profile is selected", func() {
			err := run(ctx, []string{"-input", in, "-weights", "position", "-format", "csv"}, &stdout, &stderr)
			So(err, ShouldBeNil)
			So(stdout.String(), ShouldContainSubstring, "bucket")
		})
	})

	Convey("Given bad flags", t, func() {
		var stdout, stderr bytes.Buffer
		So(errors.Is(run(ctx, nil, &stdout, &stderr), errUsage), ShouldBeTrue)
		So(errors.Is(run(ctx, []string{"-input", "x.csv", "-format", "xml"}, &stdout, &stderr), errUsage), ShouldBeTrue)
		So(errors.Is(run(ctx, []string{"-input", "x.csv", "-top", "-1"}, &stdout, &stderr), errUsage), ShouldBeTrue)
	})
}
