package rating

import (
	"github.com/okian/pele/internal/domain/model"
)

// Components is the weighted breakdown of one entity's rates.
type Components struct {
	OC     float64
	DC     float64
	Bucket Bucket // empty unless the scorer is position aware
}

// Scorer turns a rate vector into offensive and defensive components.
type Scorer interface {
	// Name identifies the weight profile, e.g. "default" or "position".
	Name() string
	// Required lists the columns a table must supply.
	Required() []string
	// RateStats lists the stats normalized to per-90 for this scorer.
	RateStats() []model.Stat
	// Score combines rates (and the row's percentage stats) into components.
	Score(row model.MatchRow, rates RateVector) Components
}

// FixedScorer applies one flat weight set to every row.
type FixedScorer struct {
	name    string
	weights Weights
}

// NewFixedScorer returns a FixedScorer for w under the given profile name.
func NewFixedScorer(name string, w Weights) *FixedScorer {
	if name == "" {
		name = DefaultProfile
	}
	return &FixedScorer{name: name, weights: w}
}

var fixedRequired = []string{
	model.ColPlayerID,
	model.ColMatchID,
	string(model.Minutes),
	string(model.NPGoals),
	string(model.PenaltyGoals),
	string(model.Assists),
	string(model.XG),
	string(model.XA),
	string(model.KeyPasses),
	string(model.ProgressivePasses),
	string(model.ProgressiveCarries),
	string(model.SuccessfulDribbles),
	string(model.Turnovers),
	string(model.Tackles),
	string(model.Interceptions),
	string(model.Blocks),
	string(model.AerialsWon),
	string(model.Shots),
	string(model.ShotsOnTarget),
	string(model.PassCompletionPct),
	string(model.PassesIntoFinalThird),
	string(model.ProgressiveReceives),
	string(model.TacklesDefThird),
	string(model.TacklesMidThird),
	string(model.TacklesAttThird),
	string(model.DribbleSuccessPct),
}

var fixedRates = []model.Stat{
	model.NPGoals, model.PenaltyGoals, model.Assists, model.XG, model.XA,
	model.KeyPasses, model.ProgressivePasses, model.ProgressiveCarries,
	model.SuccessfulDribbles, model.Turnovers,
	model.Tackles, model.Interceptions, model.Blocks, model.AerialsWon,
	model.Shots, model.ShotsOnTarget, model.PassesIntoFinalThird, model.ProgressiveReceives,
	model.TacklesDefThird, model.TacklesMidThird, model.TacklesAttThird,
}

func (s *FixedScorer) Name() string { return s.name }

func (s *FixedScorer) Required() []string { return fixedRequired }

func (s *FixedScorer) RateStats() []model.Stat { return fixedRates }

// Weights returns a copy of the scorer's coefficients.
func (s *FixedScorer) Weights() Weights { return s.weights }

func (s *FixedScorer) Score(row model.MatchRow, r RateVector) Components {
	w := s.weights
	passPct := row.Stat(model.PassCompletionPct) / 100
	dribPct := row.Stat(model.DribbleSuccessPct) / 100

	oc := w.Goals*r[model.NPGoals] +
		w.PenaltyGoals*r[model.PenaltyGoals] +
		w.Assists*r[model.Assists] +
		w.XG*(r[model.XG]-r[model.NPGoals]) +
		w.XA*(r[model.XA]-r[model.Assists]) +
		w.KeyPasses*r[model.KeyPasses] +
		w.Progression*(r[model.ProgressivePasses]+carryDiscount*r[model.ProgressiveCarries]) +
		w.Dribbles*r[model.SuccessfulDribbles] -
		w.Turnovers*r[model.Turnovers] +
		w.Shots*r[model.Shots] +
		w.ShotsOnTgt*r[model.ShotsOnTarget] +
		w.PassPct*passPct +
		w.FinalThird*r[model.PassesIntoFinalThird] +
		w.ProgReceives*r[model.ProgressiveReceives] +
		w.Dribbles*dribPct

	dc := w.TacklesInts*(r[model.Tackles]+r[model.Interceptions]) +
		w.Blocks*r[model.Blocks] +
		w.Aerials*r[model.AerialsWon] +
		w.TklDefThird*r[model.TacklesDefThird] +
		w.TklMidThird*r[model.TacklesMidThird] +
		w.TklAttThird*r[model.TacklesAttThird]

	return Components{OC: oc, DC: dc}
}

// PositionScorer weights each stat by the row's position bucket.
type PositionScorer struct{}

// NewPositionScorer returns the position-weighted scorer.
func NewPositionScorer() *PositionScorer { return &PositionScorer{} }

var positionRequired = []string{
	model.ColPlayerID,
	model.ColMatchID,
	string(model.Minutes),
	model.ColPosition,
	string(model.NPGoals),
	string(model.Assists),
	string(model.XG),
	string(model.XA),
	string(model.KeyPasses),
	string(model.ProgressivePasses),
	string(model.ProgressiveCarries),
	string(model.SuccessfulDribbles),
	string(model.Turnovers),
	string(model.PressuresSuccess),
	string(model.Tackles),
	string(model.Interceptions),
	string(model.Blocks),
	string(model.AerialsWon),
}

var positionRates = []model.Stat{
	model.NPGoals, model.Assists, model.XG, model.XA, model.KeyPasses,
	model.ProgressivePasses, model.ProgressiveCarries, model.SuccessfulDribbles,
	model.Turnovers, model.PressuresSuccess,
	model.Tackles, model.Interceptions, model.Blocks, model.AerialsWon,
}

func (s *PositionScorer) Name() string { return PositionProfile }

func (s *PositionScorer) Required() []string { return positionRequired }

func (s *PositionScorer) RateStats() []model.Stat { return positionRates }

func (s *PositionScorer) Score(row model.MatchRow, r RateVector) Components {
	b := ResolveBucket(row.Position)
	w := func(k PositionKey) float64 { return PositionWeight(b, k) }

	oc := w(PosGoals)*r[model.NPGoals] +
		w(PosAssists)*r[model.Assists] +
		w(PosXG)*(r[model.XG]-r[model.NPGoals]) +
		w(PosXA)*(r[model.XA]-r[model.Assists]) +
		w(PosKeyPasses)*r[model.KeyPasses] +
		w(PosProgPass)*r[model.ProgressivePasses] +
		w(PosProgCarry)*r[model.ProgressiveCarries] +
		w(PosDribbles)*r[model.SuccessfulDribbles] -
		w(PosTurnovers)*r[model.Turnovers]

	dc := w(PosPressures)*r[model.PressuresSuccess] +
		w(PosTacklesInt)*(r[model.Tackles]+r[model.Interceptions]) +
		w(PosBlocks)*r[model.Blocks] +
		w(PosAerials)*r[model.AerialsWon]

	return Components{OC: oc, DC: dc, Bucket: b}
}
