package Cheb1D

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gosoliton/utils"
)

// FourierPoints returns n equispaced points l*k/n on the periodic interval [0, l)
func FourierPoints(n int, l float64) (x []float64) {
	x = make([]float64, n)
	for k := range x {
		x[k] = l * float64(k) / float64(n)
	}
	return
}

// FourierMatrix is the periodic spectral derivative matrix on FourierPoints.
// Even n uses the cotangent kernel, odd n the cosecant kernel. The diagonal is zero.
func FourierMatrix(n int, l float64) (D *mat.Dense, err error) {
	if err = checkArgs(n, l); err != nil {
		return
	}
	var (
		scale = math.Pi / l
	)
	D = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			arg := math.Pi * float64(i-j) / float64(n)
			if n%2 == 0 {
				D.Set(i, j, scale*utils.AltSign(i-j)/math.Tan(arg))
			} else {
				D.Set(i, j, scale*utils.AltSign(i-j)/math.Sin(arg))
			}
		}
	}
	return
}
