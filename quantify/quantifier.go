package quantify

import (
	"fmt"
	"math/cmplx"

	"github.com/mbbslab/mrsfit/algorithms/spectral"
	"github.com/mbbslab/mrsfit/logging"
)

// Quantifier runs the full pipeline for one acquisition: it owns the
// molecule set, the precomputed axes and the basis, and produces one Frame
// per reveal prefix. It holds no mutable state between calls, so the same
// prefix always yields the same Frame and frames may be computed in any
// order.
type Quantifier struct {
	cfg       Config
	domain    Domain
	molecules []*Molecule
	basis     *Basis
	composite []complex128
	timeAxis  []float64
	freqAxis  []float64
	logger    logging.Logger
}

// NewQuantifier builds a quantifier over the built-in molecule models
// selected by kinds, fitting in the given domain.
func NewQuantifier(cfg Config, kinds []MoleculeKind, domain Domain) (*Quantifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	molecules := make([]*Molecule, len(kinds))
	for i, kind := range kinds {
		mol, err := BuildMolecule(cfg, kind)
		if err != nil {
			return nil, err
		}
		molecules[i] = mol
	}
	return NewQuantifierForMolecules(cfg, molecules, domain)
}

// NewQuantifierForMolecules builds a quantifier over an explicit molecule
// list. The observed composite is the sum of all molecule signals.
func NewQuantifierForMolecules(cfg Config, molecules []*Molecule, domain Domain) (*Quantifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(molecules) == 0 {
		return nil, fmt.Errorf("%w: no molecules given", ErrInvalidArgument)
	}

	basis, err := BuildBasis(molecules, domain, cfg.Samples)
	if err != nil {
		return nil, err
	}

	composite := make([]complex128, cfg.Samples)
	for _, mol := range molecules {
		for i, v := range mol.TotalSignal() {
			composite[i] += v
		}
	}

	return &Quantifier{
		cfg:       cfg,
		domain:    domain,
		molecules: molecules,
		basis:     basis,
		composite: composite,
		timeAxis:  cfg.TimeAxis(),
		freqAxis:  cfg.FreqAxis(),
		logger: logging.WithFields(logging.Fields{
			"component": "quantifier",
			"molecules": len(molecules),
			"domain":    domain.String(),
		}),
	}, nil
}

// Names returns the molecule names in basis column order.
func (q *Quantifier) Names() []string {
	out := make([]string, len(q.basis.Names))
	copy(out, q.basis.Names)
	return out
}

// Basis exposes the basis the quantifier fits against.
func (q *Quantifier) Basis() *Basis {
	return q.basis
}

// Frame is everything the renderer needs for one reveal step.
type Frame struct {
	// Prefix is the number of acquired samples this frame represents.
	Prefix int `json:"prefix"`
	// Time and Signal are the acquired portion of the time axis and the
	// composite FID, both of length Prefix.
	Time   []float64    `json:"time"`
	Signal []complex128 `json:"-"`
	// Spectrum is the centered magnitude spectrum of the zero-padded
	// acquired signal; FreqAxis pairs with it index-for-index.
	Spectrum []float64 `json:"spectrum"`
	FreqAxis []float64 `json:"freq_axis"`
	// Fit holds the least-squares estimates against the quantifier's basis.
	Fit *FitResult `json:"fit"`
	// Names, TotalArea and AreaFractions are the independent area-based
	// readout; AreaFractions[i] belongs to Names[i].
	Names         []string  `json:"names"`
	TotalArea     float64   `json:"total_area"`
	AreaFractions []float64 `json:"area_fractions"`
	// SignalPower is the summed squared magnitude of the acquired samples.
	SignalPower float64 `json:"signal_power"`
}

// Snapshot computes the frame for a reveal prefix, 0 <= prefix <= Samples.
// An empty prefix is not an error: it yields a zero spectrum, zero areas
// and all-zero percentages so progressive acquisition can start from
// nothing.
func (q *Quantifier) Snapshot(prefix int) (*Frame, error) {
	if prefix < 0 || prefix > q.cfg.Samples {
		return nil, fmt.Errorf("%w: prefix %d outside [0, %d]", ErrInvalidArgument, prefix, q.cfg.Samples)
	}

	acquired := q.composite[:prefix]
	spectrum, err := spectral.ToSpectrum(acquired, q.cfg.Samples)
	if err != nil {
		return nil, err
	}

	var fit *FitResult
	switch q.domain {
	case DomainFrequency:
		fit, err = q.basis.Fit(spectrum)
	case DomainTime:
		padded := make([]complex128, q.cfg.Samples)
		copy(padded, acquired)
		fit, err = q.basis.FitComplex(padded)
	default:
		err = fmt.Errorf("%w: unknown basis domain %d", ErrInvalidArgument, q.domain)
	}
	if err != nil {
		return nil, err
	}

	componentSpectra := make([][]float64, len(q.molecules))
	for i, mol := range q.molecules {
		total := mol.TotalSignal()
		spec, err := spectral.ToSpectrum(total[:prefix], q.cfg.Samples)
		if err != nil {
			return nil, err
		}
		componentSpectra[i] = spec
	}
	totalArea, fractions, err := AreaFractions(spectrum, componentSpectra, q.freqAxis)
	if err != nil {
		return nil, err
	}

	power := 0.0
	for _, v := range acquired {
		power += cmplx.Abs(v) * cmplx.Abs(v)
	}

	frame := &Frame{
		Prefix:        prefix,
		Time:          append([]float64(nil), q.timeAxis[:prefix]...),
		Signal:        append([]complex128(nil), acquired...),
		Spectrum:      spectrum,
		FreqAxis:      append([]float64(nil), q.freqAxis...),
		Fit:           fit,
		Names:         q.Names(),
		TotalArea:     totalArea,
		AreaFractions: fractions,
		SignalPower:   power,
	}

	q.logger.Debug("snapshot computed", logging.Fields{
		"prefix":     prefix,
		"total_area": totalArea,
		"rank":       fit.Rank,
	})

	return frame, nil
}
