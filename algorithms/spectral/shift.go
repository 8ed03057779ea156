package spectral

// Shift rotates a spectrum so the zero-frequency bin sits at the center,
// the usual fftshift convention. For odd lengths the extra bin lands on the
// negative-frequency side, matching InverseShift.
func Shift(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	half := (n + 1) / 2
	copy(out, x[half:])
	copy(out[n-half:], x[:half])
	return out
}

// InverseShift undoes Shift, restoring natural DFT bin order.
func InverseShift(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	half := n / 2
	copy(out, x[half:])
	copy(out[n-half:], x[:half])
	return out
}
