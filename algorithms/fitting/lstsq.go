package fitting

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mbbslab/mrsfit/algorithms/common"
)

// singular values below maxValue*max(rows,cols)*eps are treated as zero
const eps = 2.220446049250313e-16

// Result holds the outcome of a least-squares solve.
type Result struct {
	// Coefficients has one entry per basis column, in column order.
	Coefficients []float64 `json:"coefficients"`
	// Rank is the effective numerical rank of the basis matrix.
	Rank int `json:"rank"`
	// RankDeficient is set when the system cannot uniquely determine the
	// coefficients (rank below column count, including the under-determined
	// case of fewer rows than columns). The minimum-norm solution is still
	// returned.
	RankDeficient bool `json:"rank_deficient"`
	// Residual is the Euclidean norm of basis*coefficients - observed.
	Residual float64 `json:"residual"`
}

// LeastSquares solves minimize ‖basis·x − observed‖₂ for x via the singular
// value decomposition. The SVD keeps the solve stable when basis columns are
// near-collinear, as with overlapping multiplets. Rank deficiency is not an
// error: the minimum-norm solution is returned with Result.RankDeficient set
// so callers can flag it.
func LeastSquares(basis mat.Matrix, observed []float64) (*Result, error) {
	rows, cols := basis.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: empty basis matrix", common.ErrInvalidArgument)
	}
	if len(observed) != rows {
		return nil, fmt.Errorf("%w: observed length %d does not match basis rows %d",
			common.ErrInvalidArgument, len(observed), rows)
	}

	var svd mat.SVD
	if !svd.Factorize(basis, mat.SVDThin) {
		return nil, fmt.Errorf("svd factorization did not converge")
	}

	values := svd.Values(nil)
	tol := float64(max(rows, cols)) * values[0] * eps
	rank := 0
	for _, s := range values {
		if s > tol {
			rank++
		}
	}

	coeffs := make([]float64, cols)
	if rank > 0 {
		b := mat.NewDense(rows, 1, observed)
		var x mat.Dense
		svd.SolveTo(&x, b, rank)
		mat.Col(coeffs, 0, &x)
	}

	return &Result{
		Coefficients:  coeffs,
		Rank:          rank,
		RankDeficient: rank < cols,
		Residual:      residualNorm(basis, coeffs, observed),
	}, nil
}

// ComplexLeastSquares performs the same solve over the complex field for a
// set of complex basis columns, constraining the coefficients to be real.
// The real vector minimizing the complex residual also minimizes the
// stacked real system [Re(B); Im(B)]·x = [Re(y); Im(y)], so the solve
// reduces to LeastSquares.
func ComplexLeastSquares(columns [][]complex128, observed []complex128) (*Result, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no basis columns", common.ErrInvalidArgument)
	}
	rows := len(observed)
	for j, col := range columns {
		if len(col) != rows {
			return nil, fmt.Errorf("%w: column %d has length %d, observed has %d",
				common.ErrInvalidArgument, j, len(col), rows)
		}
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: empty observed vector", common.ErrInvalidArgument)
	}

	stacked := mat.NewDense(2*rows, len(columns), nil)
	for j, col := range columns {
		for i, v := range col {
			stacked.Set(i, j, real(v))
			stacked.Set(rows+i, j, imag(v))
		}
	}
	obs := make([]float64, 2*rows)
	for i, v := range observed {
		obs[i] = real(v)
		obs[rows+i] = imag(v)
	}

	return LeastSquares(stacked, obs)
}

func residualNorm(basis mat.Matrix, coeffs, observed []float64) float64 {
	rows, _ := basis.Dims()
	var recon mat.VecDense
	recon.MulVec(basis, mat.NewVecDense(len(coeffs), coeffs))
	diff := mat.NewVecDense(rows, nil)
	diff.SubVec(&recon, mat.NewVecDense(rows, observed))
	return mat.Norm(diff, 2)
}
