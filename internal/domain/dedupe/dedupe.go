// Package dedupe drops repeated (player_id, match_id) observations.
package dedupe

import (
	"context"
	"sync"

	"github.com/okian/pele/internal/domain/model"
)

// keySep cannot appear in CSV-sourced identities.
const keySep = "\x1f"

// Deduper records seen row keys.
type Deduper interface {
	// SeenAndRecord reports whether key was seen before and records it if not.
	SeenAndRecord(ctx context.Context, key string) bool
}

type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an unbounded deduper. A dataset load must
// remember every key it has seen, so nothing is ever evicted.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// RowKey identifies one player's appearance in one match.
func RowKey(r model.MatchRow) string {
	return r.PlayerID + keySep + r.MatchID
}

// Rows keeps the first occurrence of every (player_id, match_id) pair, in
// input order, and returns how many rows were dropped.
func Rows(ctx context.Context, d Deduper, rows []model.MatchRow) ([]model.MatchRow, int) {
	kept := make([]model.MatchRow, 0, len(rows))
	for _, r := range rows {
		if d.SeenAndRecord(ctx, RowKey(r)) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(rows) - len(kept)
}
