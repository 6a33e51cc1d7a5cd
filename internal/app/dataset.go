package service

import (
	"sort"
	"time"

	"github.com/okian/pele/internal/adapters/export"
	"github.com/okian/pele/internal/adapters/ingest"
	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
	"github.com/okian/pele/internal/domain/types"
)

// dataset is an immutable loaded table plus its derived indexes. A reload
// builds a new one and swaps the pointer.
type dataset struct {
	runID    string
	loadedAt time.Time
	load     ingest.LoadResult
	table    model.Table
	players  []types.Player
	byID     map[string]int
	filters  export.Filters
}

type playerAcc struct {
	names     []string
	teams     map[string]bool
	seasons   map[string]bool
	positions map[string]bool
	matches   int
	minutes   float64
}

func newDataset(runID string, res ingest.LoadResult) *dataset {
	d := &dataset{
		runID:    runID,
		loadedAt: time.Now(),
		load:     res,
		table:    res.Table,
		byID:     make(map[string]int),
		filters:  export.BuildFilters(res.Table),
	}

	var order []string
	acc := make(map[string]*playerAcc)
	for _, r := range res.Table.Rows {
		a, ok := acc[r.PlayerID]
		if !ok {
			a = &playerAcc{teams: map[string]bool{}, seasons: map[string]bool{}, positions: map[string]bool{}}
			acc[r.PlayerID] = a
			order = append(order, r.PlayerID)
		}
		a.names = append(a.names, r.PlayerName)
		add(a.teams, r.TeamID)
		add(a.seasons, r.Season)
		add(a.positions, r.Position)
		a.matches++
		a.minutes += r.Stat(model.Minutes)
	}

	d.players = make([]types.Player, 0, len(order))
	for _, id := range order {
		a := acc[id]
		d.players = append(d.players, types.Player{
			PlayerID:   id,
			PlayerName: rating.MostFrequent(a.names),
			Teams:      keys(a.teams),
			Seasons:    keys(a.seasons),
			Positions:  keys(a.positions),
			Matches:    a.matches,
			Minutes:    export.Round3(a.minutes),
		})
	}
	sort.SliceStable(d.players, func(i, j int) bool {
		return d.players[i].PlayerName < d.players[j].PlayerName
	})
	for i, p := range d.players {
		d.byID[p.PlayerID] = i
	}
	return d
}

func add(set map[string]bool, v string) {
	if v != "" {
		set[v] = true
	}
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// playerSource implements fuzzy.Source over player names.
type playerSource []types.Player

func (p playerSource) Len() int { return len(p) }

func (p playerSource) String(i int) string { return p[i].PlayerName }
