package spectral

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/dsputils"

	"github.com/mbbslab/mrsfit/algorithms/common"
)

// ComplexSpectrum zero-pads sig on the right to targetLength, applies the
// DFT and centers the zero-frequency bin. Stateless: identical inputs yield
// identical outputs.
func ComplexSpectrum(sig []complex128, targetLength int) ([]complex128, error) {
	if targetLength < len(sig) {
		return nil, fmt.Errorf("%w: target length %d shorter than signal length %d",
			common.ErrInvalidArgument, targetLength, len(sig))
	}
	if targetLength == 0 {
		return []complex128{}, nil
	}
	padded := dsputils.ZeroPad(sig, targetLength)
	return Shift(FFT(padded)), nil
}

// ToSpectrum is ComplexSpectrum followed by the pointwise magnitude. The
// result pairs index-for-index with FreqAxis(targetLength, bw).
func ToSpectrum(sig []complex128, targetLength int) ([]float64, error) {
	spec, err := ComplexSpectrum(sig, targetLength)
	if err != nil {
		return nil, err
	}
	mag := make([]float64, len(spec))
	for i, v := range spec {
		mag[i] = cmplx.Abs(v)
	}
	return mag, nil
}

// FromSpectrum inverts ComplexSpectrum: inverse centering shift, then the
// inverse DFT. It returns the zero-padded time signal.
func FromSpectrum(spec []complex128) []complex128 {
	return IFFT(InverseShift(spec))
}
