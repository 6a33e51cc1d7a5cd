package rating

import (
	"fmt"
	"sort"
)

// Weights is the flat coefficient set used by FixedScorer.
type Weights struct {
	// Offense
	Goals        float64 // non-penalty goals
	PenaltyGoals float64
	Assists      float64
	XG           float64 // xG residual
	XA           float64 // xA residual
	KeyPasses    float64
	Progression  float64 // progressive passes plus discounted carries
	Dribbles     float64 // successful dribbles and dribble success %
	Turnovers    float64 // subtracted
	Shots        float64
	ShotsOnTgt   float64
	PassPct      float64
	FinalThird   float64
	ProgReceives float64

	// Defense
	TacklesInts float64
	Blocks      float64
	Aerials     float64
	TklDefThird float64
	TklMidThird float64
	TklAttThird float64
}

// carryDiscount scales progressive carries relative to progressive passes.
const carryDiscount = 0.7

// DefaultWeights returns the default coefficient set.
func DefaultWeights() Weights {
	return Weights{
		Goals:        1.20,
		PenaltyGoals: 0.30,
		Assists:      0.80,
		XG:           0.50,
		XA:           0.40,
		KeyPasses:    0.20,
		Progression:  0.08,
		Dribbles:     0.06,
		Turnovers:    0.10,
		Shots:        0.03,
		ShotsOnTgt:   0.05,
		PassPct:      0.02,
		FinalThird:   0.04,
		ProgReceives: 0.05,
		TacklesInts:  0.12,
		Blocks:       0.08,
		Aerials:      0.05,
		TklDefThird:  0.04,
		TklMidThird:  0.02,
		TklAttThird:  0.01,
	}
}

// fields maps the external coefficient keys onto the struct.
func (w *Weights) fields() map[string]*float64 {
	return map[string]*float64{
		"w_g":           &w.Goals,
		"w_pk":          &w.PenaltyGoals,
		"w_a":           &w.Assists,
		"w_xg":          &w.XG,
		"w_xa":          &w.XA,
		"w_kp":          &w.KeyPasses,
		"w_prog":        &w.Progression,
		"w_drib":        &w.Dribbles,
		"w_to":          &w.Turnovers,
		"w_shot":        &w.Shots,
		"w_sot":         &w.ShotsOnTgt,
		"w_pass_pct":    &w.PassPct,
		"w_final_third": &w.FinalThird,
		"w_prog_rec":    &w.ProgReceives,
		"w_ti":          &w.TacklesInts,
		"w_blk":         &w.Blocks,
		"w_air":         &w.Aerials,
		"w_tkl_def":     &w.TklDefThird,
		"w_tkl_mid":     &w.TklMidThird,
		"w_tkl_att":     &w.TklAttThird,
	}
}

// Set assigns the coefficient named key, e.g. "w_g".
func (w *Weights) Set(key string, v float64) error {
	p, ok := w.fields()[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWeightKey, key)
	}
	*p = v
	return nil
}

// WeightKeys returns the accepted coefficient keys in sorted order.
func WeightKeys() []string {
	var w Weights
	keys := make([]string, 0, len(w.fields()))
	for k := range w.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WeightsFrom starts from the defaults and applies overrides.
func WeightsFrom(overrides map[string]float64) (Weights, error) {
	w := DefaultWeights()
	for k, v := range overrides {
		if err := w.Set(k, v); err != nil {
			return Weights{}, err
		}
	}
	return w, nil
}
