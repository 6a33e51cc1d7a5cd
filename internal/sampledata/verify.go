package sampledata

import (
	"context"
	"fmt"

	"github.com/okian/pele/internal/domain/dedupe"
	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
)

// Verify checks a generated table for the invariants the rating pipeline
// relies on and returns the n best players under the default profile.
func Verify(ctx context.Context, t model.Table, n int) ([]rating.Record, error) {
	seen := dedupe.NewInMemoryDeduper()
	for i, r := range t.Rows {
		if seen.SeenAndRecord(ctx, dedupe.RowKey(r)) {
			return nil, fmt.Errorf("row %d: duplicate (%s, %s)", i, r.PlayerID, r.MatchID)
		}
		if m := r.Stat(model.Minutes); m < 0 || m > 90 {
			return nil, fmt.Errorf("row %d: minutes %v out of range", i, m)
		}
		if r.Stat(model.ShotsOnTarget) > r.Stat(model.Shots) {
			return nil, fmt.Errorf("row %d: more shots on target than shots", i)
		}
	}

	recs, err := rating.Compute(t)
	if err != nil {
		return nil, err
	}
	if n > 0 && n < len(recs) {
		recs = recs[:n]
	}
	return recs, nil
}
