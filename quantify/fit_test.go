package quantify

import (
	"errors"
	"math"
	"testing"

	"github.com/mbbslab/mrsfit/algorithms/spectral"
)

// Time-domain fitting is exactly linear: a composite built as a weighted
// sum of molecule FIDs must give back the weights.
func TestFitComplexRecoversConcentrations(t *testing.T) {
	cfg := Config{Bandwidth: 2000, Samples: 1024, T2: 0.18}
	mols, err := NamedLibrary(cfg)
	if err != nil {
		t.Fatal(err)
	}

	basis, err := BuildBasis(mols, DomainTime, cfg.Samples)
	if err != nil {
		t.Fatal(err)
	}

	observed := make([]complex128, cfg.Samples)
	for _, mol := range mols {
		for i, v := range mol.TotalSignal() {
			observed[i] += complex(mol.Concentration, 0) * v
		}
	}

	res, err := basis.FitComplex(observed)
	if err != nil {
		t.Fatal(err)
	}
	if res.RankDeficient {
		t.Error("distinct molecules flagged rank deficient")
	}
	for _, mol := range mols {
		est, ok := res.ByName(mol.Name)
		if !ok {
			t.Fatalf("no estimate for %q", mol.Name)
		}
		if math.Abs(est.Coefficient-mol.Concentration) > 1e-6 {
			t.Errorf("%q coefficient = %v, want %v", mol.Name, est.Coefficient, mol.Concentration)
		}
	}

	// reconstruction identity: basis * coefficients ≈ observed
	recon := make([]complex128, cfg.Samples)
	for j, col := range basis.Columns() {
		c := complex(res.Estimates[j].Coefficient, 0)
		for i, v := range col {
			recon[i] += c * v
		}
	}
	var num, den float64
	for i := range observed {
		d := recon[i] - observed[i]
		num += real(d)*real(d) + imag(d)*imag(d)
		den += real(observed[i])*real(observed[i]) + imag(observed[i])*imag(observed[i])
	}
	if relErr := math.Sqrt(num / den); relErr > 1e-6 {
		t.Errorf("reconstruction relative error = %v, want < 1e-6", relErr)
	}
}

func TestFitRecoversSyntheticSpectrum(t *testing.T) {
	cfg := Config{Bandwidth: 2000, Samples: 512, T2: 0.2}
	mols, err := NamedLibrary(cfg)
	if err != nil {
		t.Fatal(err)
	}

	basis, err := BuildBasis(mols, DomainFrequency, cfg.Samples)
	if err != nil {
		t.Fatal(err)
	}

	// observed constructed directly from the basis columns so the solve
	// is exact regardless of spectral leakage
	weights := []float64{5, 10, 3, 12}
	observed := make([]float64, cfg.Samples)
	m := basis.Matrix()
	for i := range observed {
		for j, w := range weights {
			observed[i] += w * m.At(i, j)
		}
	}

	res, err := basis.Fit(observed)
	if err != nil {
		t.Fatal(err)
	}
	for j, w := range weights {
		if math.Abs(res.Estimates[j].Coefficient-w) > 1e-8 {
			t.Errorf("coefficient %d = %v, want %v", j, res.Estimates[j].Coefficient, w)
		}
	}

	sum := 0.0
	for _, e := range res.Estimates {
		sum += e.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentage sum = %v, want 100", sum)
	}
}

// Full-signal scenario: observe the kind-2 composite (singlet at 80 Hz plus
// doublet at 200±3.5 Hz) and fit against the three kind-3 components. The
// absent quartet gets ~0% and the present components split the weight per
// their line amplitudes.
func TestFitScenarioKind2AgainstComponentBasis(t *testing.T) {
	cfg := DefaultConfig()

	mol3, err := BuildMolecule(cfg, 3)
	if err != nil {
		t.Fatal(err)
	}
	basis, err := ComponentBasis(mol3, DomainFrequency, cfg.Samples)
	if err != nil {
		t.Fatal(err)
	}

	mol2, err := BuildMolecule(cfg, 2)
	if err != nil {
		t.Fatal(err)
	}
	observed, err := spectral.ToSpectrum(mol2.TotalSignal(), cfg.Samples)
	if err != nil {
		t.Fatal(err)
	}

	res, err := basis.Fit(observed)
	if err != nil {
		t.Fatal(err)
	}

	quartet, ok := res.ByName("Multiplet")
	if !ok {
		t.Fatal("no estimate for Multiplet")
	}
	if math.Abs(quartet.Percent) > 1 {
		t.Errorf("absent quartet percent = %v, want ~0", quartet.Percent)
	}
	if math.Abs(quartet.Coefficient) > 0.02 {
		t.Errorf("absent quartet coefficient = %v, want ~0", quartet.Coefficient)
	}

	singlet, _ := res.ByName("Singlet")
	doublet, _ := res.ByName("Doublet")
	if math.Abs(singlet.Coefficient-1) > 0.05 {
		t.Errorf("singlet coefficient = %v, want ~1", singlet.Coefficient)
	}
	if math.Abs(doublet.Coefficient-1) > 0.05 {
		t.Errorf("doublet coefficient = %v, want ~1", doublet.Coefficient)
	}
	if math.Abs(singlet.Percent-doublet.Percent) > 5 {
		t.Errorf("singlet %v%% vs doublet %v%%, want a roughly even split",
			singlet.Percent, doublet.Percent)
	}
}

func TestFitDomainMismatch(t *testing.T) {
	cfg := Config{Bandwidth: 2000, Samples: 128, T2: 0.25}
	mol, err := BuildMolecule(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}

	freqBasis, err := ComponentBasis(mol, DomainFrequency, cfg.Samples)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := freqBasis.FitComplex(make([]complex128, cfg.Samples)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FitComplex on frequency basis: got %v, want ErrInvalidArgument", err)
	}

	timeBasis, err := ComponentBasis(mol, DomainTime, cfg.Samples)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := timeBasis.Fit(make([]float64, cfg.Samples)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Fit on time basis: got %v, want ErrInvalidArgument", err)
	}
}

func TestBuildBasisInvalidArguments(t *testing.T) {
	cfg := Config{Bandwidth: 2000, Samples: 64, T2: 0.25}
	mol, err := BuildMolecule(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := BuildBasis(nil, DomainFrequency, 64); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty molecules: got %v, want ErrInvalidArgument", err)
	}
	if _, err := BuildBasis([]*Molecule{mol}, DomainFrequency, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero target length: got %v, want ErrInvalidArgument", err)
	}
}

func TestBuildBasisColumnOrder(t *testing.T) {
	cfg := Config{Bandwidth: 2000, Samples: 128, T2: 0.25}
	mols, err := NamedLibrary(cfg)
	if err != nil {
		t.Fatal(err)
	}
	basis, err := BuildBasis(mols, DomainTime, cfg.Samples)
	if err != nil {
		t.Fatal(err)
	}
	for i, mol := range mols {
		if basis.Names[i] != mol.Name {
			t.Errorf("column %d named %q, want %q", i, basis.Names[i], mol.Name)
		}
	}
}
