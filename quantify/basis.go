package quantify

import (
	"fmt"

	"github.com/mjibson/go-dsp/dsputils"
	"gonum.org/v1/gonum/mat"

	"github.com/mbbslab/mrsfit/algorithms/spectral"
)

// Domain selects which representation the basis columns use.
type Domain int

const (
	// DomainTime fits the raw complex FIDs.
	DomainTime Domain = iota
	// DomainFrequency fits the centered magnitude spectra.
	DomainFrequency
)

func (d Domain) String() string {
	switch d {
	case DomainTime:
		return "time"
	case DomainFrequency:
		return "frequency"
	default:
		return "unknown"
	}
}

// Basis is a set of basis vectors with one column per molecule. Column i
// always corresponds to Names[i]; the ordering is preserved end-to-end so
// fitted coefficients stay aligned with their molecules.
type Basis struct {
	Names  []string
	Domain Domain
	Length int

	// exactly one of the two is populated, per Domain
	columns [][]complex128
	matrix  *mat.Dense
}

// BuildBasis stacks each molecule's representation into a basis. For
// DomainTime columns are the total time-domain signals truncated or
// zero-padded to targetLength; for DomainFrequency they are the centered
// magnitude spectra of length targetLength.
func BuildBasis(molecules []*Molecule, domain Domain, targetLength int) (*Basis, error) {
	if len(molecules) == 0 {
		return nil, fmt.Errorf("%w: no molecules given", ErrInvalidArgument)
	}
	if targetLength <= 0 {
		return nil, fmt.Errorf("%w: target length must be positive, got %d", ErrInvalidArgument, targetLength)
	}

	b := &Basis{
		Names:  make([]string, len(molecules)),
		Domain: domain,
		Length: targetLength,
	}
	for i, mol := range molecules {
		b.Names[i] = mol.Name
	}

	switch domain {
	case DomainTime:
		b.columns = make([][]complex128, len(molecules))
		for i, mol := range molecules {
			total := mol.TotalSignal()
			if len(total) > targetLength {
				total = total[:targetLength]
			}
			b.columns[i] = dsputils.ZeroPad(total, targetLength)
		}
	case DomainFrequency:
		b.matrix = mat.NewDense(targetLength, len(molecules), nil)
		for i, mol := range molecules {
			total := mol.TotalSignal()
			if len(total) > targetLength {
				total = total[:targetLength]
			}
			mag, err := spectral.ToSpectrum(total, targetLength)
			if err != nil {
				return nil, err
			}
			b.matrix.SetCol(i, mag)
		}
	default:
		return nil, fmt.Errorf("%w: unknown basis domain %d", ErrInvalidArgument, domain)
	}

	return b, nil
}

// ComponentBasis builds a basis from the individual components of a single
// molecule, one column per component in component order.
func ComponentBasis(mol *Molecule, domain Domain, targetLength int) (*Basis, error) {
	return BuildBasis(ComponentMolecules(mol), domain, targetLength)
}

// Matrix exposes the real basis matrix of a frequency-domain basis, nil for
// a time-domain basis.
func (b *Basis) Matrix() *mat.Dense {
	return b.matrix
}

// Columns exposes the complex columns of a time-domain basis, nil for a
// frequency-domain basis.
func (b *Basis) Columns() [][]complex128 {
	return b.columns
}
