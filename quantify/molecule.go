package quantify

import (
	"fmt"
	"math/cmplx"

	"github.com/mbbslab/mrsfit/algorithms/signal"
)

// Component is one named multiplet signal of a molecule. Names are unique
// within a molecule and key the fitted coefficients in reports.
type Component struct {
	Name   string       `json:"name"`
	Signal []complex128 `json:"-"`
}

// Molecule is an ordered list of named component signals. Its total FID is
// the elementwise sum of the components.
type Molecule struct {
	Name string `json:"name"`
	// Concentration is the reference concentration for molecules from
	// NamedLibrary, in arbitrary units. Zero for the kind-based models.
	Concentration float64     `json:"concentration,omitempty"`
	Components    []Component `json:"components"`
}

// TotalSignal returns the elementwise sum of all component signals.
func (m *Molecule) TotalSignal() []complex128 {
	if len(m.Components) == 0 {
		return []complex128{}
	}
	total := make([]complex128, len(m.Components[0].Signal))
	for _, c := range m.Components {
		for i, v := range c.Signal {
			total[i] += v
		}
	}
	return total
}

// NormalizedTotal returns the total signal scaled to unit peak magnitude,
// the form used as a basis function so concentrations read directly as
// scaling factors.
func (m *Molecule) NormalizedTotal() []complex128 {
	total := m.TotalSignal()
	peak := 0.0
	for _, v := range total {
		if a := cmplx.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return total
	}
	return signal.Scale(total, 1/peak)
}

// Labels returns the component names in component order.
func (m *Molecule) Labels() []string {
	labels := make([]string, len(m.Components))
	for i, c := range m.Components {
		labels[i] = c.Name
	}
	return labels
}

// MoleculeKind selects one of the built-in molecule models.
type MoleculeKind int

// defaultJ is the J-coupling in Hz used by all built-in models.
const defaultJ = 7.0

// BuildMolecule returns the built-in molecule for kind. Kinds are
// cumulative: kind 1 is a singlet at 80 Hz, kind 2 adds a doublet at
// 200±J/2 Hz, kind 3 adds a 1:3:3:1 quartet about 320 Hz. The same kind
// always yields the same components and labels.
func BuildMolecule(cfg Config, kind MoleculeKind) (*Molecule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if kind < 1 || kind > 3 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMoleculeKind, kind)
	}

	t := cfg.TimeAxis()
	mol := &Molecule{Name: fmt.Sprintf("kind-%d", kind)}

	add := func(name string, m signal.Multiplet) error {
		sig, err := m.Signal(t, cfg.T2)
		if err != nil {
			return err
		}
		mol.Components = append(mol.Components, Component{Name: name, Signal: sig})
		return nil
	}

	if err := add("Singlet", signal.NewMultiplet(80, []float64{1}, defaultJ)); err != nil {
		return nil, err
	}
	if kind >= 2 {
		if err := add("Doublet", signal.NewMultiplet(200, []float64{1, 1}, defaultJ)); err != nil {
			return nil, err
		}
	}
	if kind >= 3 {
		if err := add("Multiplet", signal.NewMultiplet(320, []float64{1, 3, 3, 1}, defaultJ)); err != nil {
			return nil, err
		}
	}
	return mol, nil
}

// NamedLibrary returns the four demo metabolites A-D with their reference
// concentrations: A a singlet at 80 Hz, B a singlet at 140 Hz plus a
// doublet at 200 Hz, C a 1:2:1 triplet at 260 Hz, D a 1:3:3:1 quartet at
// 320 Hz.
func NamedLibrary(cfg Config) ([]*Molecule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := cfg.TimeAxis()

	build := func(name string, conc float64, multiplets map[string]signal.Multiplet, order []string) (*Molecule, error) {
		mol := &Molecule{Name: name, Concentration: conc}
		for _, label := range order {
			sig, err := multiplets[label].Signal(t, cfg.T2)
			if err != nil {
				return nil, err
			}
			mol.Components = append(mol.Components, Component{Name: label, Signal: sig})
		}
		return mol, nil
	}

	a, err := build("A", 5, map[string]signal.Multiplet{
		"Singlet": signal.NewMultiplet(80, []float64{1}, defaultJ),
	}, []string{"Singlet"})
	if err != nil {
		return nil, err
	}
	b, err := build("B", 10, map[string]signal.Multiplet{
		"Singlet": signal.NewMultiplet(140, []float64{1}, defaultJ),
		"Doublet": signal.NewMultiplet(200, []float64{1, 1}, defaultJ),
	}, []string{"Singlet", "Doublet"})
	if err != nil {
		return nil, err
	}
	c, err := build("C", 3, map[string]signal.Multiplet{
		"Triplet": signal.NewMultiplet(260, []float64{1, 2, 1}, defaultJ),
	}, []string{"Triplet"})
	if err != nil {
		return nil, err
	}
	d, err := build("D", 12, map[string]signal.Multiplet{
		"Multiplet": signal.NewMultiplet(320, []float64{1, 3, 3, 1}, defaultJ),
	}, []string{"Multiplet"})
	if err != nil {
		return nil, err
	}

	return []*Molecule{a, b, c, d}, nil
}

// ComponentMolecules splits a molecule into one single-component molecule
// per component, preserving order. Fitting against these columns recovers
// per-component rather than per-molecule weights.
func ComponentMolecules(mol *Molecule) []*Molecule {
	out := make([]*Molecule, len(mol.Components))
	for i, c := range mol.Components {
		out[i] = &Molecule{Name: c.Name, Components: []Component{c}}
	}
	return out
}
