package quantify

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/integrate"

	"github.com/mbbslab/mrsfit/algorithms/signal"
)

// AreaFractions estimates per-component concentration fractions by
// trapezoidal integration of magnitude spectra: 100*area_i/total_area. It
// is an algebra-free cross-check on the least-squares fit; the two
// partition spectral leakage differently and are reported side by side,
// never reconciled. A zero or negative total area yields all-zero
// fractions.
func AreaFractions(totalSpectrum []float64, componentSpectra [][]float64, freqAxis []float64) (float64, []float64, error) {
	if len(totalSpectrum) != len(freqAxis) {
		return 0, nil, fmt.Errorf("%w: spectrum length %d does not match axis length %d",
			ErrInvalidArgument, len(totalSpectrum), len(freqAxis))
	}
	for i, spec := range componentSpectra {
		if len(spec) != len(freqAxis) {
			return 0, nil, fmt.Errorf("%w: component spectrum %d has length %d, axis has %d",
				ErrInvalidArgument, i, len(spec), len(freqAxis))
		}
	}

	total := trapezoid(freqAxis, totalSpectrum)
	fractions := make([]float64, len(componentSpectra))
	if total <= 0 {
		return total, fractions, nil
	}
	for i, spec := range componentSpectra {
		fractions[i] = 100 * trapezoid(freqAxis, spec) / total
	}
	return total, fractions, nil
}

func trapezoid(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return integrate.Trapezoidal(x, y)
}

// AmplitudeFractions estimates per-component fractions from the initial FID
// amplitude, using concentration ∝ |S(0)|. It returns the total initial
// amplitude and one percentage per component, all zero when the total
// amplitude is zero.
func AmplitudeFractions(mol *Molecule) (float64, []float64) {
	total := signal.InitialAmplitude(mol.TotalSignal())
	fractions := make([]float64, len(mol.Components))
	if total <= 0 {
		return total, fractions
	}
	for i, c := range mol.Components {
		if len(c.Signal) > 0 {
			fractions[i] = 100 * cmplx.Abs(c.Signal[0]) / total
		}
	}
	return total, fractions
}
