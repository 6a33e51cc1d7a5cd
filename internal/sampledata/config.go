// Package sampledata generates synthetic match-level datasets in the
// canonical schema, for demos and load testing of the rating service.
package sampledata

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidConfig is returned when a Config cannot produce a dataset.
var ErrInvalidConfig = errors.New("invalid sample config")

// Config holds generation parameters.
type Config struct {
	Players int      // players per team
	Teams   int      // number of teams, even
	Matches int      // matches per season and team
	Seasons []string // season labels
	Seed    uint64   // same seed, same dataset
	Workers int      // concurrent generators
}

// DefaultConfig returns a small two-season league.
func DefaultConfig() Config {
	return Config{
		Players: 18,
		Teams:   8,
		Matches: 14,
		Seasons: []string{"2023-2024", "2024-2025"},
		Seed:    1,
		Workers: runtime.NumCPU(),
	}
}

// Validate checks that every size is usable.
func (c Config) Validate() error {
	switch {
	case c.Players < 1:
		return fmt.Errorf("%w: players must be >= 1", ErrInvalidConfig)
	case c.Teams < 2 || c.Teams%2 != 0:
		return fmt.Errorf("%w: teams must be an even number >= 2", ErrInvalidConfig)
	case c.Matches < 1:
		return fmt.Errorf("%w: matches must be >= 1", ErrInvalidConfig)
	case len(c.Seasons) == 0:
		return fmt.Errorf("%w: at least one season", ErrInvalidConfig)
	}
	return nil
}

// Rows returns the number of rows Generate will produce.
func (c Config) Rows() int {
	return c.Players * c.Teams * c.Matches * len(c.Seasons)
}
