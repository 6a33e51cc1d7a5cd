// Package types contains the response shapes shared by the service and its
// HTTP API.
package types

import "time"

// Entry is one ranked rating: a player, a player-season or a single match
// depending on the grouping that produced it.
type Entry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
	MatchID    string `json:"match_id,omitempty"`
	Season     string `json:"season,omitempty"`
	TeamID     string `json:"team_id,omitempty"`
	Position   string `json:"position,omitempty"`
	Bucket     string `json:"bucket,omitempty"`

	Minutes   float64 `json:"minutes"`
	OC        float64 `json:"oc"`
	DC        float64 `json:"dc"`
	BaseScore float64 `json:"base_score"`
	MinMult   float64 `json:"min_mult"`
	PeleRaw   float64 `json:"pele_raw"`
	// Pele100 is absent when the result was not standardized.
	Pele100 *float64 `json:"pele_100,omitempty"`

	// Rates maps "<stat>_p90" to the per-90 value.
	Rates map[string]float64 `json:"rates"`
}

// Score is the value an entry is ranked by.
func (e Entry) Score() float64 {
	if e.Pele100 != nil {
		return *e.Pele100
	}
	return e.PeleRaw
}

// Player summarizes one player's rows in the loaded dataset.
type Player struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Teams      []string `json:"teams"`
	Seasons    []string `json:"seasons"`
	Positions  []string `json:"positions"`
	Matches    int      `json:"matches"`
	Minutes    float64  `json:"minutes"`
}

// PlayerRatings is a player together with their per-season ratings.
type PlayerRatings struct {
	Player
	// Overall is the player's entry in the all-players ranking, out of Ranked.
	Overall *Entry  `json:"overall,omitempty"`
	Ranked  int     `json:"ranked"`
	Ratings []Entry `json:"ratings"`
}

// Match is one fuzzy search hit.
type Match struct {
	Player
	Score int `json:"score"`
}

// Stats describes the loaded dataset.
type Stats struct {
	RunID      string    `json:"run_id"`
	LoadedAt   time.Time `json:"loaded_at"`
	Files      int       `json:"files"`
	Rows       int       `json:"rows"`
	RowsRead   int       `json:"rows_read"`
	Duplicates int       `json:"duplicates"`
	Players    int       `json:"players"`
	Columns    []string  `json:"columns"`
	Profiles   []string  `json:"profiles"`
	CacheSize  int       `json:"cache_entries"`
}
