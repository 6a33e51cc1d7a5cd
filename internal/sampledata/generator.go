package sampledata

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/pele/internal/adapters/ingest"
	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/pkg/logger"
)

// matchNamespace derives stable match IDs from (seed, season, team, round).
var matchNamespace = uuid.MustParse("6f1c1c52-8d0b-4c5e-9a3e-3f1f5d2b7a10")

// Squad positions, cycled through each team.
var positions = []string{"GK", "RB", "CB", "CB", "LB", "DM", "CM", "CM", "CAM", "RW", "LW", "ST"}

// Performance tiers scale every rate of a player.
const (
	tierElite   = 1.6
	tierHigh    = 1.25
	tierAverage = 1.0
	tierLow     = 0.7
)

// role holds per-90 means for a position family.
type role struct {
	goals, xg, assists, keyPasses, shots float64
	progPasses, progCarries, dribbles    float64
	tackles, interceptions, blocks       float64
	aerials, passPct                     float64
}

var roles = map[string]role{
	"GK":  {passPct: 70, aerials: 0.5},
	"DEF": {goals: 0.04, xg: 0.05, assists: 0.05, keyPasses: 0.4, shots: 0.4, progPasses: 4, progCarries: 1.5, dribbles: 0.3, tackles: 2.2, interceptions: 1.6, blocks: 1.2, aerials: 2.5, passPct: 85},
	"MID": {goals: 0.12, xg: 0.13, assists: 0.15, keyPasses: 1.4, shots: 1.2, progPasses: 6, progCarries: 2.5, dribbles: 1.0, tackles: 2.0, interceptions: 1.1, blocks: 0.6, aerials: 0.8, passPct: 86},
	"ATT": {goals: 0.38, xg: 0.36, assists: 0.2, keyPasses: 1.6, shots: 3.0, progPasses: 2.5, progCarries: 3.5, dribbles: 2.2, tackles: 0.8, interceptions: 0.3, blocks: 0.2, aerials: 1.0, passPct: 76},
}

func family(pos string) string {
	switch pos {
	case "GK":
		return "GK"
	case "RB", "CB", "LB":
		return "DEF"
	case "DM", "CM", "CAM":
		return "MID"
	}
	return "ATT"
}

type squadResult struct {
	team int
	rows []model.MatchRow
	err  error
}

// Generate builds a dataset for cfg. Each team is generated by one worker
// from its own seeded source, so the output does not depend on Workers.
func Generate(ctx context.Context, cfg Config) (model.Table, error) {
	if err := cfg.Validate(); err != nil {
		return model.Table{}, err
	}
	logger.Get().Info(ctx, "generating sample dataset",
		logger.Int("teams", cfg.Teams),
		logger.Int("players", cfg.Players),
		logger.Int("matches", cfg.Matches),
		logger.Strings("seasons", cfg.Seasons),
	)

	teams := make(chan int)
	results := make(chan squadResult, cfg.Teams)
	workers := max(1, min(cfg.Workers, cfg.Teams))
	for w := 0; w < workers; w++ {
		go func() {
			for team := range teams {
				rows, err := generateTeam(ctx, cfg, team)
				results <- squadResult{team: team, rows: rows, err: err}
			}
		}()
	}
	go func() {
		defer close(teams)
		for t := 0; t < cfg.Teams; t++ {
			select {
			case teams <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	byTeam := make([][]model.MatchRow, cfg.Teams)
	for i := 0; i < cfg.Teams; i++ {
		select {
		case <-ctx.Done():
			return model.Table{}, fmt.Errorf("sample generation cancelled: %w", ctx.Err())
		case res := <-results:
			if res.err != nil {
				return model.Table{}, fmt.Errorf("team %d: %w", res.team, res.err)
			}
			byTeam[res.team] = res.rows
		}
	}

	out := model.Table{Columns: ingest.CanonicalColumns()}
	out.Rows = make([]model.MatchRow, 0, cfg.Rows())
	for _, rows := range byTeam {
		out.Rows = append(out.Rows, rows...)
	}
	logger.Get().Info(ctx, "generated sample dataset", logger.Int("rows", len(out.Rows)))
	return out, nil
}

func teamID(t int) string { return "T" + strconv.Itoa(t+1) }

func generateTeam(ctx context.Context, cfg Config, team int) ([]model.MatchRow, error) {
	r := rand.New(rand.NewPCG(cfg.Seed, uint64(team)))

	type player struct {
		id, name, pos string
		tier          float64
	}
	squad := make([]player, cfg.Players)
	for i := range squad {
		squad[i] = player{
			id:   fmt.Sprintf("%s-P%02d", teamID(team), i+1),
			name: fmt.Sprintf("%s %s", firstNames[r.IntN(len(firstNames))], lastNames[r.IntN(len(lastNames))]),
			pos:  positions[i%len(positions)],
			tier: pickTier(r),
		}
	}

	rows := make([]model.MatchRow, 0, cfg.Players*cfg.Matches*len(cfg.Seasons))
	for _, season := range cfg.Seasons {
		for round := 0; round < cfg.Matches; round++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			opp := opponent(team, round, cfg.Teams)
			matchID := matchUUID(cfg.Seed, season, min(team, opp), max(team, opp), round).String()
			elo := 1350 + 300*r.Float64()
			for i, p := range squad {
				rows = append(rows, model.MatchRow{
					PlayerID:   p.id,
					PlayerName: p.name,
					MatchID:    matchID,
					Season:     season,
					TeamID:     teamID(team),
					Position:   p.pos,
					Stats:      matchStats(r, p.pos, p.tier, i < 11, elo),
				})
			}
		}
	}
	return rows, nil
}

// opponent pairs teams with the circle method, so every round is a full
// set of fixtures. n must be even.
func opponent(team, round, n int) int {
	m := n - 1
	r := round % m
	if team == m {
		for i := 0; i < m; i++ {
			if (2*i)%m == r {
				return i
			}
		}
	}
	o := ((r-team)%m + m) % m
	if o == team {
		return m
	}
	return o
}

func matchUUID(seed uint64, season string, a, b, round int) uuid.UUID {
	key := fmt.Sprintf("%d|%s|%d|%d|%d", seed, season, a, b, round)
	return uuid.NewSHA1(matchNamespace, []byte(key))
}

func pickTier(r *rand.Rand) float64 {
	switch x := r.Float64(); {
	case x < 0.08:
		return tierElite
	case x < 0.3:
		return tierHigh
	case x < 0.8:
		return tierAverage
	}
	return tierLow
}

// minutesPlayed gives starters most of the match and the bench a cameo or
// nothing.
func minutesPlayed(r *rand.Rand, starter bool) float64 {
	if starter {
		if r.Float64() < 0.75 {
			return 90
		}
		return float64(55 + r.IntN(35))
	}
	if r.Float64() < 0.5 {
		return 0
	}
	return float64(1 + r.IntN(30))
}

func matchStats(r *rand.Rand, pos string, tier float64, starter bool, elo float64) map[model.Stat]float64 {
	m := minutesPlayed(r, starter)
	ro := roles[family(pos)]
	share := m / 90 * tier

	count := func(per90 float64) float64 { return float64(poisson(r, per90*share)) }
	noisy := func(per90 float64) float64 { return math.Round(per90*share*(0.5+r.Float64())*100) / 100 }

	goals := count(ro.goals)
	assists := count(ro.assists)
	shots := math.Max(count(ro.shots), goals)
	drAtt := count(ro.dribbles * 1.8)
	drWon := math.Min(drAtt, count(ro.dribbles))
	tackles := count(ro.tackles)
	pressures := count(ro.tackles * 6)

	s := map[model.Stat]float64{
		model.Minutes:               m,
		model.NPGoals:               goals,
		model.PenaltyGoals:          0,
		model.Assists:               assists,
		model.XG:                    noisy(ro.xg),
		model.XA:                    noisy(ro.assists),
		model.KeyPasses:             count(ro.keyPasses),
		model.ProgressivePasses:     count(ro.progPasses),
		model.ProgressiveCarries:    count(ro.progCarries),
		model.ProgressiveReceives:   count(ro.progCarries * 1.2),
		model.SuccessfulDribbles:    drWon,
		model.DribbleAttempts:       drAtt,
		model.Turnovers:             count(1.5 + ro.dribbles),
		model.Shots:                 shots,
		model.ShotsOnTarget:         math.Min(shots, math.Max(goals, count(ro.shots*0.4))),
		model.PassesIntoFinalThird:  count(ro.progPasses * 0.6),
		model.PassCompletionPct:     0,
		model.DribbleSuccessPct:     0,
		model.PressuresSuccess:      math.Round(pressures * 0.32),
		model.Tackles:               tackles,
		model.Interceptions:         count(ro.interceptions),
		model.Blocks:                count(ro.blocks),
		model.AerialsWon:            count(ro.aerials),
		model.TeamGoalsForOn:        count(1.4),
		model.TeamGoalsAgainstOn:    count(1.3),
		model.TeamGoalsForOff:       0,
		model.TeamGoalsAgainstOff:   0,
		model.OpponentElo:           math.Round(elo),
		model.GameStateTimeWeighted: 1.0,
	}
	if m > 0 {
		s[model.PassCompletionPct] = math.Round(math.Min(99, ro.passPct*(0.9+0.1*tier)+r.NormFloat64()*4)*10) / 10
		if drAtt > 0 {
			s[model.DribbleSuccessPct] = math.Round(drWon/drAtt*1000) / 10
		}
	}
	s[model.TacklesDefThird] = math.Round(tackles * 0.4)
	s[model.TacklesMidThird] = math.Floor(tackles * 0.45)
	s[model.TacklesAttThird] = math.Max(0, tackles-s[model.TacklesDefThird]-s[model.TacklesMidThird])
	return s
}

// poisson draws from a Poisson distribution with the given mean (Knuth).
func poisson(r *rand.Rand, mean float64) int {
	if mean <= 0 {
		return 0
	}
	l := math.Exp(-mean)
	k, p := 0, 1.0
	for {
		p *= r.Float64()
		if p <= l {
			return k
		}
		k++
	}
}
