package fitting

import (
	"gonum.org/v1/gonum/floats"
)

// Percentages converts a coefficient vector to percentage contributions,
// 100*c_i/sum(c). When the sum is zero or negative every entry is 0: this
// is the defined fallback for a degenerate all-zero observed signal, not an
// error. Negative individual coefficients are passed through unchanged; the
// unconstrained solve is allowed to produce them.
func Percentages(coefficients []float64) []float64 {
	out := make([]float64, len(coefficients))
	sum := floats.Sum(coefficients)
	if sum <= 0 {
		return out
	}
	for i, c := range coefficients {
		out[i] = 100 * c / sum
	}
	return out
}
