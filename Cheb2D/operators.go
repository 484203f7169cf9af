package Cheb2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gosoliton/Cheb1D"
	"github.com/notargets/gosoliton/linalg"
	"github.com/notargets/gosoliton/utils"
)

// Operators holds the 2D derivative operators acting on flattened fields
type Operators struct {
	Dz1, Dx1         *mat.Dense // 1D Chebyshev matrices
	Dz, Dx, Dzz, Dxx *mat.Dense
}

/*
NewOperators extends the 1D matrices to the flattened grid:

	Dz  = dz (x) Ix      Dx  = Iz (x) dx
	Dzz = dz^2 (x) Ix    Dxx = Iz (x) dx^2

z is the slow index of the flattening, so z operators sit on the left of the product.
*/
func NewOperators(be linalg.Backend, dz, dx *mat.Dense) (op *Operators) {
	var (
		nz, _ = dz.Dims()
		nx, _ = dx.Dims()
		Iz    = utils.NewIdentity(nz)
		Ix    = utils.NewIdentity(nx)
	)
	op = &Operators{
		Dz1: dz,
		Dx1: dx,
		Dz:  be.Kron(dz, Ix),
		Dx:  be.Kron(Iz, dx),
		Dzz: be.Kron(be.Mul(dz, dz), Ix),
		Dxx: be.Kron(Iz, be.Mul(dx, dx)),
	}
	return
}

// Discretize builds the grid and its operators in one call
func Discretize(be linalg.Backend, nz, nx int, lz, lx float64) (g *Grid, op *Operators, err error) {
	var (
		dz, dx *mat.Dense
	)
	if g, err = NewGrid(nz, nx, lz, lx); err != nil {
		return
	}
	if dz, err = Cheb1D.DiffMatrix(nz, lz); err != nil {
		return
	}
	if dx, err = Cheb1D.DiffMatrix(nx, lx); err != nil {
		return
	}
	op = NewOperators(be, dz, dx)
	return
}
