package spectral

import (
	"gonum.org/v1/gonum/floats"
)

// FreqAxis returns n frequencies linearly spaced from -bw/2 to bw/2, both
// endpoints included, matching the centering convention of Shift. The axis
// depends only on (n, bw) and may be computed once per acquisition.
func FreqAxis(n int, bw float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{-bw / 2}
	}
	axis := make([]float64, n)
	floats.Span(axis, -bw/2, bw/2)
	return axis
}
