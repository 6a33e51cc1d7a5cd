// Command pele rates players from match-level CSV files and prints or
// writes the ranking.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/pele/internal/adapters/export"
	"github.com/okian/pele/internal/adapters/ingest"
	"github.com/okian/pele/internal/config"
	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
	"github.com/okian/pele/pkg/logger"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

var errUsage = errors.New("usage")

type options struct {
	inputs      []string
	inputFormat string
	groupBy     []string
	standardize bool
	weights     string
	weightsFile string
	format      string
	output      string
	filters     string
	dedupe      bool
	season      string
	team        string
	top         int
	logLevel    string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("pele", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		input    = fs.String("input", "", "comma-separated input CSV files (required)")
		inFormat = fs.String("input-format", ingest.FormatCanonical, "input format: canonical, fbref or fbref-season")
		groupBy  = fs.String("group-by", model.ColPlayerID, `comma-separated group columns, or "none" for one row per match`)
		o        = &options{}
	)
	fs.BoolVar(&o.standardize, "standardize", true, "add the 0-100 pele_100 column")
	fs.StringVar(&o.weights, "weights", rating.DefaultProfile, "weight profile: default, position or a preset name")
	fs.StringVar(&o.weightsFile, "weights-file", "", "TOML file of weight presets")
	fs.StringVar(&o.format, "format", formatTable, "output format: table, json or csv")
	fs.StringVar(&o.output, "output", "", "output file (default stdout)")
	fs.StringVar(&o.filters, "filters", "", "also write the seasons/teams filter lists as JSON to this file")
	fs.BoolVar(&o.dedupe, "dedupe", true, "drop repeated (player_id, match_id) rows")
	fs.StringVar(&o.season, "season", "", "only rate rows of this season; scoring and pele_100 use the filtered rows")
	fs.StringVar(&o.team, "team", "", "only rate rows of this team; scoring and pele_100 use the filtered rows")
	fs.IntVar(&o.top, "top", 0, "print only the first N entries (0 = all)")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	for _, p := range strings.Split(*input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			o.inputs = append(o.inputs, p)
		}
	}
	if len(o.inputs) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("%w: -input is required", errUsage)
	}
	switch o.format {
	case formatTable, formatJSON, formatCSV:
	default:
		return nil, fmt.Errorf("%w: unknown -format %q", errUsage, o.format)
	}
	if o.top < 0 {
		return nil, fmt.Errorf("%w: -top must be >= 0", errUsage)
	}
	o.inputFormat = *inFormat
	o.groupBy = config.ParseGroupBy(*groupBy)
	return o, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "pele:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		return err
	}
	if err := logger.SetLevelString(o.logLevel); err != nil {
		return err
	}
	log := logger.Get()

	var presets map[string]rating.Weights
	if o.weightsFile != "" {
		if presets, err = config.LoadWeightPresets(o.weightsFile); err != nil {
			return err
		}
	}
	scorer, err := rating.NewProfiles(presets).Scorer(o.weights)
	if err != nil {
		return err
	}

	res, err := ingest.LoadFiles(ctx, o.inputs, ingest.WithFormat(o.inputFormat), ingest.WithDedupe(o.dedupe))
	if err != nil {
		return err
	}
	log.Info(ctx, "loaded input",
		logger.Int("files", res.Files),
		logger.Int("rows", len(res.Table.Rows)),
		logger.Int("duplicates", res.Duplicates))

	t := res.Table
	if o.season != "" || o.team != "" {
		t = t.Filter(func(r model.MatchRow) bool {
			return (o.season == "" || r.Season == o.season) && (o.team == "" || r.TeamID == o.team)
		})
	}

	recs, err := rating.Compute(t,
		rating.WithGroupBy(o.groupBy...),
		rating.WithStandardize(o.standardize),
		rating.WithScorer(scorer),
	)
	if err != nil {
		return err
	}
	if o.top > 0 && o.top < len(recs) {
		recs = recs[:o.top]
	}

	if o.filters != "" {
		if err := writeFile(o.filters, func(w io.Writer) error {
			return export.WriteJSON(w, export.BuildFilters(res.Table))
		}); err != nil {
			return err
		}
	}

	write := func(w io.Writer) error {
		switch o.format {
		case formatJSON:
			return export.WriteJSON(w, export.Records(recs))
		case formatCSV:
			return export.WriteCSV(w, recs)
		}
		return export.WriteTable(w, recs)
	}
	if o.output == "" {
		return write(stdout)
	}
	if err := writeFile(o.output, write); err != nil {
		return err
	}
	log.Info(ctx, "wrote ratings", logger.String("path", o.output), logger.Int("entries", len(recs)))
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
