// Command pele-sample writes a synthetic league as a canonical CSV.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/okian/pele/internal/adapters/export"
	"github.com/okian/pele/internal/adapters/ingest"
	"github.com/okian/pele/internal/sampledata"
	"github.com/okian/pele/pkg/logger"
)

const defaultTimeout = 5 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "pele-sample:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	def := sampledata.DefaultConfig()
	fs := flag.NewFlagSet("pele-sample", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		players = fs.Int("players", def.Players, "players per team")
		teams   = fs.Int("teams", def.Teams, "number of teams (even)")
		matches = fs.Int("matches", def.Matches, "matches per team and season")
		seasons = fs.String("seasons", strings.Join(def.Seasons, ","), "comma-separated season labels")
		seed    = fs.Uint64("seed", def.Seed, "random seed")
		workers = fs.Int("workers", runtime.NumCPU(), "concurrent generators")
		output  = fs.String("output", "", "output CSV file (default stdout)")
		top     = fs.Int("verify", 0, "verify the dataset and print the N best players to stderr")
		verbose = fs.Bool("verbose", false, "log progress")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := "warn"
	if *verbose {
		level = "info"
	}
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		return err
	}
	_ = logger.SetLevelString(level)

	cfg := sampledata.Config{
		Players: *players,
		Teams:   *teams,
		Matches: *matches,
		Seed:    *seed,
		Workers: *workers,
	}
	for _, s := range strings.Split(*seasons, ",") {
		if s = strings.TrimSpace(s); s != "" {
			cfg.Seasons = append(cfg.Seasons, s)
		}
	}

	t, err := sampledata.Generate(ctx, cfg)
	if err != nil {
		return err
	}

	if *top > 0 {
		best, err := sampledata.Verify(ctx, t, *top)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if err := export.WriteTable(stderr, best); err != nil {
			return err
		}
	}

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	return ingest.WriteCanonical(out, t)
}
