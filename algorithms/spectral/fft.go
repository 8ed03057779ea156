package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the discrete Fourier transform of a complex time-domain
// signal using mjibson/go-dsp, which handles non-power-of-2 lengths.
func FFT(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFT(x)
}

// IFFT computes the inverse discrete Fourier transform.
func IFFT(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.IFFT(x)
}
