package rating

import "strings"

// Bucket is a coarse role category used to pick position weights.
type Bucket string

// Position buckets.
const (
	Forward    Bucket = "FW"
	Winger     Bucket = "WG"
	Midfielder Bucket = "MF"
	Fullback   Bucket = "FB"
	CenterBack Bucket = "CB"
)

// PositionKey names a stat slot in the position weight table.
type PositionKey string

// Position table slots.
const (
	PosGoals      PositionKey = "goals"
	PosAssists    PositionKey = "assists"
	PosXG         PositionKey = "xg"
	PosXA         PositionKey = "xa"
	PosKeyPasses  PositionKey = "key_passes"
	PosProgPass   PositionKey = "prog_pass"
	PosProgCarry  PositionKey = "prog_carry"
	PosDribbles   PositionKey = "dribbles"
	PosTurnovers  PositionKey = "turnovers"
	PosPressures  PositionKey = "pressures"
	PosTacklesInt PositionKey = "tackles_int"
	PosBlocks     PositionKey = "blocks"
	PosAerials    PositionKey = "aerials"
)

// positionTable holds role importance on a 1-5 scale.
var positionTable = map[Bucket]map[PositionKey]float64{
	Forward: {
		PosGoals: 5, PosAssists: 3, PosXG: 5, PosXA: 3, PosKeyPasses: 3,
		PosProgPass: 1, PosProgCarry: 4, PosDribbles: 4, PosTurnovers: 3,
		PosPressures: 3, PosTacklesInt: 1, PosBlocks: 1, PosAerials: 3,
	},
	Winger: {
		PosGoals: 4, PosAssists: 5, PosXG: 4, PosXA: 5, PosKeyPasses: 5,
		PosProgPass: 3, PosProgCarry: 5, PosDribbles: 5, PosTurnovers: 5,
		PosPressures: 3, PosTacklesInt: 1, PosBlocks: 1, PosAerials: 1,
	},
	Midfielder: {
		PosGoals: 3, PosAssists: 4, PosXG: 3, PosXA: 4, PosKeyPasses: 4,
		PosProgPass: 5, PosProgCarry: 3, PosDribbles: 3, PosTurnovers: 5,
		PosPressures: 4, PosTacklesInt: 4, PosBlocks: 3, PosAerials: 3,
	},
	Fullback: {
		PosGoals: 1, PosAssists: 4, PosXG: 1, PosXA: 4, PosKeyPasses: 4,
		PosProgPass: 5, PosProgCarry: 4, PosDribbles: 4, PosTurnovers: 5,
		PosPressures: 4, PosTacklesInt: 5, PosBlocks: 3, PosAerials: 3,
	},
	CenterBack: {
		PosGoals: 1, PosAssists: 1, PosXG: 1, PosXA: 1, PosKeyPasses: 1,
		PosProgPass: 3, PosProgCarry: 1, PosDribbles: 1, PosTurnovers: 3,
		PosPressures: 5, PosTacklesInt: 5, PosBlocks: 5, PosAerials: 5,
	},
}

// baseMagnitudes scale the 1-5 table so that a 5 hits each stat's ceiling
// (goals: 5 * 0.24 = 1.20).
var baseMagnitudes = map[PositionKey]float64{
	PosGoals:      0.24,
	PosAssists:    0.20,
	PosXG:         0.10,
	PosXA:         0.08,
	PosKeyPasses:  0.04,
	PosProgPass:   0.016,
	PosProgCarry:  0.012,
	PosDribbles:   0.012,
	PosTurnovers:  0.02,
	PosPressures:  0.012,
	PosTacklesInt: 0.024,
	PosBlocks:     0.016,
	PosAerials:    0.01,
}

// bucketRules are evaluated in order; the first match wins.
var bucketRules = []struct {
	bucket   Bucket
	prefixes []string
	exact    []string
}{
	{bucket: Forward, prefixes: []string{"ST", "CF"}, exact: []string{"FW"}},
	{bucket: Winger, prefixes: []string{"AM"}, exact: []string{"LW", "RW", "CAM"}},
	{bucket: Midfielder, exact: []string{"CM", "DM", "CDM", "LCM", "RCM"}},
	{bucket: Fullback, exact: []string{"LB", "RB", "LWB", "RWB", "WB", "FB"}},
	{bucket: CenterBack, exact: []string{"CB", "RCB", "LCB"}},
}

// Buckets returns all position buckets.
func Buckets() []Bucket {
	return []Bucket{Forward, Winger, Midfielder, Fullback, CenterBack}
}

// ResolveBucket maps a free-form position label to a bucket. The label is
// trimmed and upper-cased before matching, so " rcb " is a centre back.
// Unknown and empty labels resolve to Midfielder.
func ResolveBucket(label string) Bucket {
	p := strings.ToUpper(strings.TrimSpace(label))
	for _, rule := range bucketRules {
		for _, pre := range rule.prefixes {
			if strings.HasPrefix(p, pre) {
				return rule.bucket
			}
		}
		for _, ex := range rule.exact {
			if p == ex {
				return rule.bucket
			}
		}
	}
	return Midfielder
}

// PositionWeight returns the effective coefficient of key for bucket b.
func PositionWeight(b Bucket, key PositionKey) float64 {
	row, ok := positionTable[b]
	if !ok {
		row = positionTable[Midfielder]
	}
	return baseMagnitudes[key] * row[key]
}
