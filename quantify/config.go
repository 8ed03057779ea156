package quantify

import (
	"fmt"

	"github.com/mbbslab/mrsfit/algorithms/signal"
	"github.com/mbbslab/mrsfit/algorithms/spectral"
)

// Config holds the acquisition parameters shared by every stage of the
// pipeline. It is passed explicitly; nothing in the library reads
// process-wide state.
type Config struct {
	// Bandwidth is the sampling bandwidth in Hz.
	Bandwidth float64 `json:"bandwidth"`
	// Samples is the number of time-domain samples, which also fixes the
	// transform length.
	Samples int `json:"samples"`
	// T2 is the spin-spin relaxation time in seconds driving the
	// exponential decay envelope.
	T2 float64 `json:"t2"`
}

// DefaultConfig returns the conventional acquisition parameters used by the
// built-in molecule models.
func DefaultConfig() Config {
	return Config{
		Bandwidth: 2000,
		Samples:   2048,
		T2:        0.25,
	}
}

// Validate checks the physical parameters, returning ErrInvalidArgument for
// any non-positive value.
func (c Config) Validate() error {
	if c.Bandwidth <= 0 {
		return fmt.Errorf("%w: bandwidth must be positive, got %v", ErrInvalidArgument, c.Bandwidth)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidArgument, c.Samples)
	}
	if c.T2 <= 0 {
		return fmt.Errorf("%w: T2 must be positive, got %v", ErrInvalidArgument, c.T2)
	}
	return nil
}

// TimeAxis returns the sample instants t_k = k/Bandwidth.
func (c Config) TimeAxis() []float64 {
	return signal.TimeAxis(c.Samples, c.Bandwidth)
}

// FreqAxis returns the centered frequency axis spanning [-BW/2, BW/2].
func (c Config) FreqAxis() []float64 {
	return spectral.FreqAxis(c.Samples, c.Bandwidth)
}
