// Package model contains the canonical match-row schema shared by the rating
// pipeline and its import/export adapters.
package model

// Stat names a numeric column of the canonical schema.
type Stat string

// Playing time.
const (
	Minutes Stat = "minutes"
)

// Attacking stats.
const (
	NPGoals               Stat = "np_goals"
	PenaltyGoals          Stat = "penalty_goals"
	Assists               Stat = "assists"
	XG                    Stat = "xg"
	XA                    Stat = "xa"
	KeyPasses             Stat = "key_passes"
	ProgressivePasses     Stat = "progressive_passes"
	ProgressiveCarries    Stat = "progressive_carries"
	ProgressiveReceives   Stat = "progressive_receives"
	SuccessfulDribbles    Stat = "successful_dribbles"
	DribbleAttempts       Stat = "dribble_attempts"
	Turnovers             Stat = "turnovers"
	Shots                 Stat = "shots"
	ShotsOnTarget         Stat = "shots_on_target"
	PassesIntoFinalThird  Stat = "passes_into_final_third"
	PassCompletionPct     Stat = "pass_completion_pct"
	DribbleSuccessPct     Stat = "dribble_success_pct"
	PressuresSuccess      Stat = "pressures_success"
	TeamGoalsForOn        Stat = "team_goals_for_on"
	TeamGoalsAgainstOn    Stat = "team_goals_against_on"
	TeamGoalsForOff       Stat = "team_goals_for_off"
	TeamGoalsAgainstOff   Stat = "team_goals_against_off"
	OpponentElo           Stat = "opponent_elo"
	GameStateTimeWeighted Stat = "game_state_time_weighted"
)

// Defensive stats.
const (
	Tackles         Stat = "tackles"
	Interceptions   Stat = "interceptions"
	Blocks          Stat = "blocks"
	AerialsWon      Stat = "aerials_won"
	TacklesDefThird Stat = "tackles_def_third"
	TacklesMidThird Stat = "tackles_mid_third"
	TacklesAttThird Stat = "tackles_att_third"
)

// Identity columns.
const (
	ColPlayerID   = "player_id"
	ColPlayerName = "player_name"
	ColMatchID    = "match_id"
	ColSeason     = "season"
	ColTeamID     = "team_id"
	ColPosition   = "position"
)

// RateSuffix is appended to a stat name to form its per-90 output column.
const RateSuffix = "_p90"

var identityColumns = []string{ColPlayerID, ColPlayerName, ColMatchID, ColSeason, ColTeamID, ColPosition}

// percentage stats are already on a 0-100 scale and are never summed.
var percentageStats = map[Stat]bool{
	PassCompletionPct: true,
	DribbleSuccessPct: true,
}

var knownStats = []Stat{
	Minutes,
	NPGoals, PenaltyGoals, Assists, XG, XA, KeyPasses,
	ProgressivePasses, ProgressiveCarries, ProgressiveReceives,
	SuccessfulDribbles, DribbleAttempts, Turnovers,
	Shots, ShotsOnTarget, PassesIntoFinalThird,
	PassCompletionPct, DribbleSuccessPct, PressuresSuccess,
	Tackles, Interceptions, Blocks, AerialsWon,
	TacklesDefThird, TacklesMidThird, TacklesAttThird,
	TeamGoalsForOn, TeamGoalsAgainstOn, TeamGoalsForOff, TeamGoalsAgainstOff,
	OpponentElo, GameStateTimeWeighted,
}

// IdentityColumns returns the identity column names in canonical order.
func IdentityColumns() []string {
	out := make([]string, len(identityColumns))
	copy(out, identityColumns)
	return out
}

// IsIdentity reports whether col is an identity (string) column.
func IsIdentity(col string) bool {
	for _, c := range identityColumns {
		if c == col {
			return true
		}
	}
	return false
}

// KnownStats returns every numeric column of the canonical schema.
func KnownStats() []Stat {
	out := make([]Stat, len(knownStats))
	copy(out, knownStats)
	return out
}

// IsPercentage reports whether s is a 0-100 percentage stat.
func IsPercentage(s Stat) bool { return percentageStats[s] }

// RateColumn returns the per-90 output column name for s.
func RateColumn(s Stat) string { return string(s) + RateSuffix }
