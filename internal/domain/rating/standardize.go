package rating

import "math"

const (
	displayMean  = 50.0
	displayScale = 10.0
)

// Standardize sets Pele100 = 50 + 10*z(PeleRaw) over records, using the
// population standard deviation. A zero or undefined deviation maps every
// record to exactly 50. The population is records itself, so the grouping
// that produced them decides who a record is compared against.
func Standardize(records []Record) {
	if len(records) == 0 {
		return
	}
	n := float64(len(records))
	var sum float64
	constant := true
	for _, r := range records {
		sum += r.PeleRaw
		if r.PeleRaw != records[0].PeleRaw {
			constant = false
		}
	}
	mu := sum / n

	var ss float64
	for _, r := range records {
		d := r.PeleRaw - mu
		ss += d * d
	}
	sigma := math.Sqrt(ss / n)
	// mu can carry rounding error, so identical inputs are checked directly.
	if constant {
		sigma = 0
	}

	for i := range records {
		z := 0.0
		if sigma != 0 && !math.IsNaN(sigma) && !math.IsInf(sigma, 0) {
			z = (records[i].PeleRaw - mu) / sigma
		}
		records[i].Pele100 = displayMean + displayScale*z
		records[i].Standardized = true
	}
}
