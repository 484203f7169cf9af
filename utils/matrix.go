package utils

import (
	"gonum.org/v1/gonum/mat"
)

func NewIdentity(N int) (I *mat.Dense) {
	I = mat.NewDense(N, N, nil)
	for i := 0; i < N; i++ {
		I.Set(i, i, 1)
	}
	return
}

// RowSums returns the sum of each row of M
func RowSums(M mat.Matrix) (s []float64) {
	var (
		nr, nc = M.Dims()
	)
	s = make([]float64, nr)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			s[i] += M.At(i, j)
		}
	}
	return
}
