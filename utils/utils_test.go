package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestIndex(t *testing.T) {
	I := Index{4, 1, 7}
	assert.Equal(t, Index{14, 11, 17}, I.Add(10))
	assert.True(t, I.Contains(7))
	assert.False(t, I.Contains(2))
	assert.Equal(t, Index{0, 1, 2, 4, 7, 9}, Union(I, Index{9, 0, 4}, nil, Index{2, 1}))
	assert.Nil(t, Union())
	assert.Len(t, NewIndex(3), 3)
	assert.NoError(t, I.CheckBounds(8))
	assert.Error(t, I.CheckBounds(7))
}

func TestVecFind(t *testing.T) {
	v := []float64{1, -2, 0, 2, 0.5}
	assert.Equal(t, Index{2}, VecFind(v, Equal, 0, false))
	assert.Equal(t, Index{1, 3}, VecFind(v, Equal, 2, true))
	assert.Equal(t, Index{3}, VecFind(v, Equal, 2, false))
	assert.Equal(t, Index{1, 2, 4}, VecFind(v, Less, 1, false))
	assert.Equal(t, Index{0, 1, 3}, VecFind(v, GreaterOrEqual, 1, true))
	assert.Equal(t, Index{0, 2, 4}, VecFind(v, LessOrEqual, 1, true))
	assert.Equal(t, Index{3}, VecFind(v, Greater, 1, false))
	assert.Nil(t, VecFind(v, Equal, 3, true))
}

func TestVecOps(t *testing.T) {
	v := VecConcat([]float64{1, 2}, []float64{3, 4})
	assert.Equal(t, []float64{1, 2, 3, 4}, v)
	a, b := VecSplit(v)
	a[0] = 10
	assert.Equal(t, []float64{10, 2}, a)
	assert.Equal(t, []float64{3, 4}, b)
	assert.Equal(t, 1., v[0])
	assert.Panics(t, func() { VecSplit([]float64{1, 2, 3}) })
	assert.Equal(t, []float64{3, 8}, VecApply2([]float64{1, 2}, []float64{3, 4}, func(x, y float64) float64 { return x * y }))
	assert.Panics(t, func() { VecApply2([]float64{1}, nil, nil) })
	assert.Equal(t, []float64{1, 4}, VecApply([]float64{1, 2}, func(x float64) float64 { return x * x }))
}

func TestMath(t *testing.T) {
	for p := -10; p <= 10; p++ {
		assert.InDelta(t, math.Pow(1.3, float64(p)), POW(1.3, p), 1.e-12, "p = %d", p)
		assert.Equal(t, math.Pow(-1, float64(p)), AltSign(p))
	}
	assert.Equal(t, []float64{2, 2, 2}, ConstArray(3, 2))
}

func TestMatrixHelpers(t *testing.T) {
	I := NewIdentity(3)
	assert.Equal(t, []float64{1, 1, 1}, RowSums(I))
	M := mat.NewDense(2, 3, []float64{1, 2, 3, -1, 0, 4})
	assert.Equal(t, []float64{6, 3}, RowSums(M))
	assert.Equal(t, []float64{6, 3}, RowSums(M.T().T()))
}

func TestIsNan(t *testing.T) {
	assert.False(t, IsNan([]float64{1, 2}))
	assert.True(t, IsNan([]float64{1, math.Inf(-1)}))
	assert.True(t, IsNan(math.NaN()))
	assert.True(t, IsNan(mat.NewVecDense(2, []float64{0, math.NaN()})))
	assert.False(t, IsNan(mat.NewDense(1, 1, []float64{3})))
	assert.False(t, IsNan("not numeric"))
	assert.Contains(t, GetMemUsage(), "Alloc = ")
}

func TestBCType(t *testing.T) {
	assert.Equal(t, "Dirichlet", BCDirichlet.String())
	assert.Equal(t, "Neumann", BCNeumann.String())
	assert.Equal(t, "Robin", BCRobin.String())
	assert.Equal(t, "None", BCNone.String())
	assert.Equal(t, "Unknown", BCType(42).String())
}
