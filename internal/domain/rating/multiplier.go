package rating

import "math"

// DefaultMinutesPower is the steepness exponent of the minutes multiplier.
const DefaultMinutesPower = 2.0

// MinutesMultiplier scales a score by playing time relative to reference,
// the mean minutes of the scored population:
//
//	(log1p(minutes) / log1p(reference)) ^ power
//
// Zero minutes, or a zero reference, yields 0.
func MinutesMultiplier(minutes, reference, power float64) float64 {
	if minutes <= 0 || reference <= 0 {
		return 0
	}
	return math.Pow(math.Log1p(minutes)/math.Log1p(reference), power)
}

// meanMinutes is the reference for one population.
func meanMinutes(minutes []float64) float64 {
	if len(minutes) == 0 {
		return 0
	}
	var sum float64
	for _, m := range minutes {
		sum += m
	}
	return sum / float64(len(minutes))
}
