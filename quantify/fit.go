package quantify

import (
	"fmt"

	"github.com/mbbslab/mrsfit/algorithms/fitting"
	"github.com/mbbslab/mrsfit/logging"
)

// ComponentEstimate pairs one molecule with its fitted coefficient and its
// percentage contribution to the observed signal.
type ComponentEstimate struct {
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
	Percent     float64 `json:"percent"`
}

// FitResult is the outcome of a basis-set fit. Estimates keeps the basis
// column order; ByName gives order-independent access so reports never rely
// on positional alignment.
type FitResult struct {
	Estimates []ComponentEstimate `json:"estimates"`
	// Rank is the effective numerical rank of the basis matrix.
	Rank int `json:"rank"`
	// RankDeficient marks an under-determined fit, expected for small
	// reveal prefixes. The minimum-norm solution is still reported.
	RankDeficient bool `json:"rank_deficient"`
	// Residual is the norm of the reconstruction error.
	Residual float64 `json:"residual"`

	byName map[string]int
}

// ByName returns the estimate for a molecule name.
func (r *FitResult) ByName(name string) (ComponentEstimate, bool) {
	i, ok := r.byName[name]
	if !ok {
		return ComponentEstimate{}, false
	}
	return r.Estimates[i], true
}

// Coefficients returns the raw coefficients in basis column order.
func (r *FitResult) Coefficients() []float64 {
	out := make([]float64, len(r.Estimates))
	for i, e := range r.Estimates {
		out[i] = e.Coefficient
	}
	return out
}

// Percents returns the percentage contributions in basis column order.
func (r *FitResult) Percents() []float64 {
	out := make([]float64, len(r.Estimates))
	for i, e := range r.Estimates {
		out[i] = e.Percent
	}
	return out
}

// Fit solves for the coefficients that best reproduce an observed magnitude
// spectrum as a weighted sum of the basis columns. The basis must be a
// frequency-domain basis and observed must have Length entries. The solve is
// unconstrained ordinary least squares: negative coefficients are reported
// as-is.
func (b *Basis) Fit(observed []float64) (*FitResult, error) {
	if b.Domain != DomainFrequency {
		return nil, fmt.Errorf("%w: Fit requires a frequency-domain basis, got %s", ErrInvalidArgument, b.Domain)
	}
	res, err := fitting.LeastSquares(b.matrix, observed)
	if err != nil {
		return nil, err
	}
	return b.newFitResult(res), nil
}

// FitComplex solves the same least-squares problem over the complex field
// for a time-domain basis and an observed complex FID.
func (b *Basis) FitComplex(observed []complex128) (*FitResult, error) {
	if b.Domain != DomainTime {
		return nil, fmt.Errorf("%w: FitComplex requires a time-domain basis, got %s", ErrInvalidArgument, b.Domain)
	}
	res, err := fitting.ComplexLeastSquares(b.columns, observed)
	if err != nil {
		return nil, err
	}
	return b.newFitResult(res), nil
}

func (b *Basis) newFitResult(res *fitting.Result) *FitResult {
	if res.RankDeficient {
		logging.Warn("rank-deficient basis fit, reporting minimum-norm solution", logging.Fields{
			"rank":    res.Rank,
			"columns": len(b.Names),
			"domain":  b.Domain.String(),
		})
	}

	percents := fitting.Percentages(res.Coefficients)
	out := &FitResult{
		Estimates:     make([]ComponentEstimate, len(b.Names)),
		Rank:          res.Rank,
		RankDeficient: res.RankDeficient,
		Residual:      res.Residual,
		byName:        make(map[string]int, len(b.Names)),
	}
	for i, name := range b.Names {
		out.Estimates[i] = ComponentEstimate{
			Name:        name,
			Coefficient: res.Coefficients[i],
			Percent:     percents[i],
		}
		out.byName[name] = i
	}
	return out
}
