package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Dense is the serial gonum backend
type Dense struct{}

func NewDense() *Dense { return &Dense{} }

func (d *Dense) Name() string { return "dense" }

func (d *Dense) Mul(a, b mat.Matrix) (R *mat.Dense) {
	if dg, ok := a.(*mat.DiagDense); ok {
		nr, _ := b.Dims()
		R = newScaledRows(dg, b)
		scaleRows(R, dg, b, 0, nr)
		return
	}
	R = &mat.Dense{}
	R.Mul(a, b)
	return
}

func (d *Dense) MulVec(a mat.Matrix, x []float64) []float64 {
	var y mat.VecDense
	y.MulVec(a, mat.NewVecDense(len(x), x))
	return y.RawVector().Data
}

func (d *Dense) Transpose(a mat.Matrix) *mat.Dense {
	return mat.DenseCopyOf(a.T())
}

func (d *Dense) Kron(a, b mat.Matrix) (R *mat.Dense) {
	R = &mat.Dense{}
	R.Kronecker(a, b)
	return
}

func (d *Dense) Diag(v []float64) *mat.DiagDense {
	return newDiag(v)
}

func (d *Dense) Solve(a *mat.Dense, b []float64) ([]float64, error) {
	return luSolve(a, b)
}

func (d *Dense) Norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

func newDiag(v []float64) *mat.DiagDense {
	data := make([]float64, len(v))
	copy(data, v)
	return mat.NewDiagDense(len(v), data)
}

func newScaledRows(dg *mat.DiagDense, b mat.Matrix) *mat.Dense {
	var (
		n      = dg.Diag()
		nr, nc = b.Dims()
	)
	if n != nr {
		panic(fmt.Errorf("%w: diag is %d, matrix has %d rows", mat.ErrShape, n, nr))
	}
	return mat.NewDense(nr, nc, nil)
}

// scaleRows writes rows [i1,i2) of diag(dg)*b into R
func scaleRows(R *mat.Dense, dg *mat.DiagDense, b mat.Matrix, i1, i2 int) {
	var (
		_, nc = b.Dims()
	)
	bd, isDense := b.(*mat.Dense)
	for i := i1; i < i2; i++ {
		s := dg.At(i, i)
		row := R.RawRowView(i)
		if isDense {
			floats.ScaleTo(row, s, bd.RawRowView(i))
			continue
		}
		for j := 0; j < nc; j++ {
			row[j] = s * b.At(i, j)
		}
	}
}

// luSolve factors a copy of A with partial pivoting and rejects exactly singular
// or numerically singular systems using the LAPACK reciprocal condition estimate.
func luSolve(A *mat.Dense, b []float64) (x []float64, err error) {
	var (
		n, nc = A.Dims()
	)
	if n != nc || len(b) != n {
		panic(fmt.Errorf("%w: A is %dx%d, len(b) = %d", mat.ErrShape, n, nc, len(b)))
	}
	lu := mat.DenseCopyOf(A)
	raw := lu.RawMatrix()
	work := make([]float64, 4*n)
	anorm := lapack64.Lange(lapack.MaxColumnSum, raw, work)
	ipiv := make([]int, n)
	if ok := lapack64.Getrf(raw, ipiv); !ok {
		err = &SingularError{Cond: math.Inf(1)}
		return
	}
	rcond := lapack64.Gecon(lapack.MaxColumnSum, raw, anorm, work, make([]int, n))
	if cond := 1 / rcond; rcond == 0 || cond > mat.ConditionTolerance {
		err = &SingularError{Cond: cond}
		return
	}
	x = make([]float64, n)
	copy(x, b)
	lapack64.Getrs(blas.NoTrans, raw, blas64.General{Rows: n, Cols: 1, Stride: 1, Data: x}, ipiv)
	return
}
