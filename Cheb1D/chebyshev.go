package Cheb1D

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gosoliton/utils"
)

var (
	ErrInvalidSize   = errors.New("Cheb1D: collocation size must be at least 2")
	ErrInvalidLength = errors.New("Cheb1D: interval length must be positive and finite")
)

func checkArgs(n int, l float64) (err error) {
	switch {
	case n < 2:
		err = fmt.Errorf("%w: n = %d", ErrInvalidSize, n)
	case !(l > 0) || math.IsInf(l, 0):
		err = fmt.Errorf("%w: l = %v", ErrInvalidLength, l)
	}
	return
}

// Points returns the n Chebyshev-Gauss-Lobatto points cos(pi*k/(n-1)), ordered
// from +1 down to -1. Both endpoints are exact.
func Points(n int) (y []float64) {
	y = make([]float64, n)
	if n == 1 {
		y[0] = 1
		return
	}
	for k := range y {
		y[k] = math.Cos(math.Pi * float64(k) / float64(n-1))
	}
	return
}

/*
DiffMatrix returns the Chebyshev collocation derivative matrix for n points on
an interval of length l:

	D[i,j] = (2/l) * (c_i/c_j) * (-1)^(i+j) / (y_i - y_j),  i != j
	D[i,i] = -sum_{j != i} D[i,j]

with c = 2 at both endpoints and 1 elsewhere. The diagonal is the negative row
sum so that the derivative of a constant vanishes.
*/
func DiffMatrix(n int, l float64) (D *mat.Dense, err error) {
	if err = checkArgs(n, l); err != nil {
		return
	}
	var (
		y     = Points(n)
		c     = utils.ConstArray(n, 1)
		scale = 2. / l
	)
	c[0], c[n-1] = 2, 2
	D = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		row := D.RawRowView(i)
		var sum float64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			row[j] = scale * (c[i] / c[j]) * utils.AltSign(i+j) / (y[i] - y[j])
			sum += row[j]
		}
		row[i] = -sum
	}
	return
}
