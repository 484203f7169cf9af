package utils

import (
	"fmt"
	"math"

)

// VecFind returns the positions in v where (v[i] op target) holds, optionally on |v[i]|
func VecFind(v []float64, op EvalOp, target float64, abs bool) (I Index) {
	for i, val := range v {
		if abs {
			val = math.Abs(val)
		}
		if op.Compare(val, target) {
			I = append(I, i)
		}
	}
	return
}

func VecConcat(v1, v2 []float64) (r []float64) {
	r = make([]float64, len(v1)+len(v2))
	copy(r, v1)
	copy(r[len(v1):], v2)
	return
}

// VecSplit cuts v into two halves of equal length, copying the data
func VecSplit(v []float64) (v1, v2 []float64) {
	if len(v)%2 != 0 {
		panic(fmt.Errorf("unable to split vector of odd length %d", len(v)))
	}
	var (
		n = len(v) / 2
	)
	v1, v2 = make([]float64, n), make([]float64, n)
	copy(v1, v[:n])
	copy(v2, v[n:])
	return
}

// VecApply2 returns f(a[i], b[i]) elementwise
func VecApply2(a, b []float64, f func(x, y float64) float64) (r []float64) {
	if len(a) != len(b) {
		panic(fmt.Errorf("length mismatch: %d vs %d", len(a), len(b)))
	}
	r = make([]float64, len(a))
	for i := range a {
		r[i] = f(a[i], b[i])
	}
	return
}

func VecApply(a []float64, f func(x float64) float64) (r []float64) {
	r = make([]float64, len(a))
	for i, val := range a {
		r[i] = f(val)
	}
	return
}
