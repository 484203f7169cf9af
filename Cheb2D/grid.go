package Cheb2D

import (
	"fmt"

	"github.com/notargets/gosoliton/Cheb1D"
	"github.com/notargets/gosoliton/utils"
)

/*
Grid is the tensor product of a Chebyshev z line and a Chebyshev x line.

	z[i] = (y_i + 1)/2,  i = 0..Nz-1   (z[0] = 1, z[Nz-1] = 0)
	x[j] = (Lx/2) y_j,   j = 0..Nx-1   (x[0] = Lx/2, x[Nx-1] = -Lx/2)

Fields are flattened with z as the slow index and x as the fast index:

	p = i*Nx + j,  Z[p] = z[i],  X[p] = x[j]

The Kronecker ordering in NewOperators depends on this convention.
*/
type Grid struct {
	Nz, Nx int
	Lz, Lx float64
	Zc, Xc []float64 // 1D coordinates
	Z, X   []float64 // Flattened coordinates, length Nz*Nx
}

func NewGrid(nz, nx int, lz, lx float64) (g *Grid, err error) {
	if nz < 2 || nx < 2 {
		err = fmt.Errorf("%w: Nz = %d, Nx = %d", Cheb1D.ErrInvalidSize, nz, nx)
		return
	}
	if !(lz > 0) || !(lx > 0) {
		err = fmt.Errorf("%w: Lz = %v, Lx = %v", Cheb1D.ErrInvalidLength, lz, lx)
		return
	}
	g = &Grid{
		Nz: nz, Nx: nx,
		Lz: lz, Lx: lx,
		Zc: utils.VecApply(Cheb1D.Points(nz), func(y float64) float64 { return (y + 1.) / 2. }),
		Xc: utils.VecApply(Cheb1D.Points(nx), func(y float64) float64 { return (lx / 2.) * y }),
	}
	g.Z, g.X = make([]float64, g.N()), make([]float64, g.N())
	for i := 0; i < nz; i++ {
		for j := 0; j < nx; j++ {
			p := g.Index(i, j)
			g.Z[p], g.X[p] = g.Zc[i], g.Xc[j]
		}
	}
	return
}

func (g *Grid) N() int { return g.Nz * g.Nx }

// Index returns the flat position of z point i and x point j
func (g *Grid) Index(i, j int) int { return i*g.Nx + j }

func (g *Grid) IJ(p int) (i, j int) {
	i = p / g.Nx
	j = p - i*g.Nx
	return
}

// Reshape returns f as Nz rows of Nx values, sharing storage with f
func (g *Grid) Reshape(f []float64) (F [][]float64) {
	if len(f) != g.N() {
		panic(fmt.Errorf("unable to reshape field of length %d onto %dx%d grid", len(f), g.Nz, g.Nx))
	}
	F = make([][]float64, g.Nz)
	for i := range F {
		F[i] = f[i*g.Nx : (i+1)*g.Nx]
	}
	return
}

// Column returns the z profile of f at x point j
func (g *Grid) Column(f []float64, j int) (c []float64) {
	c = make([]float64, g.Nz)
	for i := range c {
		c[i] = f[g.Index(i, j)]
	}
	return
}
