// Package repository holds ranked rating results and caches them by query.
package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/pele/internal/adapters/export"
	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
	"github.com/okian/pele/internal/domain/types"
)

// Store provides read access to one ranked result.
type Store interface {
	// Rank returns the best-ranked entry of a player.
	// Returns ErrNotFound if the player is not part of the result.
	Rank(ctx context.Context, playerID string) (types.Entry, error)

	// Entries returns every entry of a player, best first.
	Entries(ctx context.Context, playerID string) []types.Entry

	// TopN returns the top-N entries ordered by score desc.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// Filter returns the entries keep accepts, in rank order.
	Filter(keep func(types.Entry) bool) []types.Entry

	// Count returns the number of ranked entries.
	Count(ctx context.Context) int
}

// Snapshot is an immutable ranking. It is safe for concurrent readers.
type Snapshot struct {
	entries  []types.Entry
	byPlayer map[string][]int
}

var _ Store = (*Snapshot)(nil)

// NewSnapshot ranks recs by PeleRaw, highest first. Equal scores keep their
// input order. Ranks are 1-based and sequential.
func NewSnapshot(recs []rating.Record) *Snapshot {
	order := make([]int, len(recs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return recs[order[a]].PeleRaw > recs[order[b]].PeleRaw
	})

	s := &Snapshot{
		entries:  make([]types.Entry, len(recs)),
		byPlayer: make(map[string][]int),
	}
	for pos, i := range order {
		s.entries[pos] = toEntry(pos+1, recs[i])
		s.byPlayer[recs[i].PlayerID] = append(s.byPlayer[recs[i].PlayerID], pos)
	}
	return s
}

func toEntry(rank int, r rating.Record) types.Entry {
	e := types.Entry{
		Rank:       rank,
		PlayerID:   r.PlayerID,
		PlayerName: r.PlayerName,
		MatchID:    r.MatchID,
		Season:     r.Season,
		TeamID:     r.TeamID,
		Position:   r.Position,
		Bucket:     string(r.Bucket),
		Minutes:    export.Round3(r.Minutes),
		OC:         export.Round3(r.OC),
		DC:         export.Round3(r.DC),
		BaseScore:  export.Round3(r.BaseScore),
		MinMult:    export.Round3(r.MinMult),
		PeleRaw:    export.Round3(r.PeleRaw),
		Rates:      make(map[string]float64, len(r.Rates)),
	}
	if r.Standardized {
		v := export.Round3(r.Pele100)
		e.Pele100 = &v
	}
	for s, v := range r.Rates {
		e.Rates[model.RateColumn(s)] = export.Round3(v)
	}
	return e
}

func (s *Snapshot) Rank(ctx context.Context, playerID string) (types.Entry, error) {
	idx, ok := s.byPlayer[playerID]
	if !ok {
		return types.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, playerID)
	}
	return s.entries[idx[0]], nil
}

func (s *Snapshot) Entries(ctx context.Context, playerID string) []types.Entry {
	idx := s.byPlayer[playerID]
	out := make([]types.Entry, len(idx))
	for i, p := range idx {
		out[i] = s.entries[p]
	}
	return out
}

func (s *Snapshot) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	if n == 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]types.Entry, n)
	copy(out, s.entries[:n])
	return out, nil
}

// Filter returns the entries keep accepts, in rank order. Ranks are those of
// the full snapshot.
func (s *Snapshot) Filter(keep func(types.Entry) bool) []types.Entry {
	var out []types.Entry
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Snapshot) Count(ctx context.Context) int { return len(s.entries) }
