package signal

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mbbslab/mrsfit/algorithms/common"
)

// Line is a single resonance line: a frequency offset from the reference
// frequency (Hz) and its relative amplitude.
type Line struct {
	Frequency float64 `json:"frequency"`
	Amplitude float64 `json:"amplitude"`
}

// Multiplet is an ordered set of resonance lines belonging to one
// chemically distinct proton group (singlet, doublet, quartet, ...).
type Multiplet struct {
	Lines []Line `json:"lines"`
}

// NewMultiplet expands a center frequency, a relative intensity pattern and
// a J-coupling constant into explicit lines. Line i sits at
// center + (i - (n-1)/2) * j, so the pattern is symmetric about the center:
// a doublet with J=7 splits into center±3.5 Hz, a 1:3:3:1 quartet into
// center±0.5J and center±1.5J.
func NewMultiplet(center float64, pattern []float64, j float64) Multiplet {
	n := len(pattern)
	lines := make([]Line, n)
	for i, a := range pattern {
		offset := (float64(i) - float64(n-1)/2) * j
		lines[i] = Line{Frequency: center + offset, Amplitude: a}
	}
	return Multiplet{Lines: lines}
}

// Frequencies returns the line frequencies in pattern order.
func (m Multiplet) Frequencies() []float64 {
	freqs := make([]float64, len(m.Lines))
	for i, line := range m.Lines {
		freqs[i] = line.Frequency
	}
	return freqs
}

// Amplitudes returns the line amplitudes in pattern order.
func (m Multiplet) Amplitudes() []float64 {
	amps := make([]float64, len(m.Lines))
	for i, line := range m.Lines {
		amps[i] = line.Amplitude
	}
	return amps
}

// Signal synthesizes the multiplet's FID over the time axis t with T2 decay.
func (m Multiplet) Signal(t []float64, t2 float64) ([]complex128, error) {
	return GenerateComponent(m.Frequencies(), m.Amplitudes(), t, t2)
}

// TimeAxis returns the n sample instants t_k = k/bw for a bandwidth of bw Hz.
func TimeAxis(n int, bw float64) []float64 {
	t := make([]float64, n)
	for k := range t {
		t[k] = float64(k) / bw
	}
	return t
}

// GenerateComponent synthesizes the complex time-domain signal of one
// spectral component: the sum of amplitudes[i]*exp(i*2π*frequencies[i]*t_k)
// over all lines, multiplied pointwise by the decay envelope exp(-t_k/t2).
//
// frequencies and amplitudes must have equal non-zero length and t2 must be
// positive. The output has the same length as t and is fully determined by
// the inputs.
func GenerateComponent(frequencies, amplitudes []float64, t []float64, t2 float64) ([]complex128, error) {
	if len(frequencies) == 0 {
		return nil, fmt.Errorf("%w: no lines given", common.ErrInvalidArgument)
	}
	if len(frequencies) != len(amplitudes) {
		return nil, fmt.Errorf("%w: %d frequencies but %d amplitudes",
			common.ErrInvalidArgument, len(frequencies), len(amplitudes))
	}
	if t2 <= 0 {
		return nil, fmt.Errorf("%w: T2 must be positive, got %v", common.ErrInvalidArgument, t2)
	}

	sig := make([]complex128, len(t))
	for k, tk := range t {
		var sum complex128
		for i, f := range frequencies {
			sum += complex(amplitudes[i], 0) * cmplx.Exp(complex(0, 2*math.Pi*f*tk))
		}
		sig[k] = sum * complex(math.Exp(-tk/t2), 0)
	}
	return sig, nil
}

// Scale multiplies a signal by a real factor, returning a new slice.
func Scale(sig []complex128, factor float64) []complex128 {
	out := make([]complex128, len(sig))
	for i, v := range sig {
		out[i] = v * complex(factor, 0)
	}
	return out
}

// InitialAmplitude returns |S(0)|, the magnitude of the first sample. The
// initial FID amplitude is proportional to the number of contributing
// nuclei, which makes it a direct concentration readout.
func InitialAmplitude(sig []complex128) float64 {
	if len(sig) == 0 {
		return 0
	}
	return cmplx.Abs(sig[0])
}
