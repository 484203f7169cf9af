/*
Package Soliton2D computes the stationary two field profile (psi, phi) of

	-phi^2 psi + fz (Z psi - psi_xx - fzp psi_z - fz psi_zz) = 0
	2 phi psi^2 - phi_xx - fz phi_zz = 0

with fz = 1 - Z^3 and fzp = -3 Z^2, on z in [0,1], x in [-Lx/2, Lx/2], using
Chebyshev collocation and Newton-Raphson iteration.
*/
package Soliton2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gosoliton/Cheb2D"
	"github.com/notargets/gosoliton/linalg"
	"github.com/notargets/gosoliton/utils"
)

// Problem is the fixed discretization of one Config. It is not modified by a solve.
type Problem struct {
	Config  Config
	Backend linalg.Backend
	Grid    *Cheb2D.Grid
	Ops     *Cheb2D.Operators
	Bounds  Cheb2D.BoundarySets
	BCs     *BoundaryConditions
	Fz, Fzp []float64
	// Constant linear parts of the psi and phi equations:
	//   L11 = -(fz Dxx + fz^2 Dzz + fz fzp Dz),  L22 = -(Dxx + fz Dzz)
	L11, L22 *mat.Dense
	fzZ      []float64
}

func NewProblem(cfg Config, be linalg.Backend) (p *Problem, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	if be == nil {
		be = linalg.NewDense()
	}
	p = &Problem{
		Config:  cfg,
		Backend: be,
	}
	if p.Grid, p.Ops, err = Cheb2D.Discretize(be, cfg.Nz, cfg.Nx, cfg.Lz, cfg.Lx); err != nil {
		err = fmt.Errorf("unable to discretize: %w", err)
		return
	}
	var (
		Z   = p.Grid.Z
		op  = p.Ops
		fz2 []float64
	)
	p.Fz = utils.VecApply(Z, func(z float64) float64 { return 1. - utils.POW(z, 3) })
	p.Fzp = utils.VecApply(Z, func(z float64) float64 { return -3. * utils.POW(z, 2) })
	fz2 = utils.VecApply(p.Fz, func(f float64) float64 { return f * f })
	p.fzZ = utils.VecApply2(p.Fz, Z, func(f, z float64) float64 { return f * z })

	p.L11 = &mat.Dense{}
	p.L11.Add(be.Mul(be.Diag(p.Fz), op.Dxx), be.Mul(be.Diag(fz2), op.Dzz))
	p.L11.Add(p.L11, be.Mul(be.Diag(utils.VecApply2(p.Fz, p.Fzp, mul)), op.Dz))
	p.L11.Scale(-1, p.L11)

	p.L22 = &mat.Dense{}
	p.L22.Add(op.Dxx, be.Mul(be.Diag(p.Fz), op.Dzz))
	p.L22.Scale(-1, p.L22)

	p.Bounds = Cheb2D.Classify(p.Grid)
	p.BCs = NewBoundaryConditions(p.Grid, p.Bounds, op, p.Fzp, cfg.Mu)
	return
}

func mul(a, b float64) float64 { return a * b }

// Seed returns the initial state psi = 4 Z tanh(X), phi = mu (1 - Z)
func (p *Problem) Seed() (state []float64) {
	var (
		g = p.Grid
		N = g.N()
	)
	state = make([]float64, 2*N)
	for i := 0; i < N; i++ {
		state[i] = 4. * g.Z[i] * math.Tanh(g.X[i])
		state[N+i] = p.Config.Mu * (1. - g.Z[i])
	}
	return
}

// Residual evaluates the discrete equations at state, boundary rows carry the boundary laws
func (p *Problem) Residual(state []float64) (F []float64) {
	p.checkState(state)
	var (
		N        = p.Grid.N()
		psi, phi = state[:N], state[N:]
		be       = p.Backend
		L11psi   = be.MulVec(p.L11, psi)
		L22phi   = be.MulVec(p.L22, phi)
	)
	F = make([]float64, 2*N)
	for i := 0; i < N; i++ {
		F[i] = -phi[i]*phi[i]*psi[i] + p.fzZ[i]*psi[i] + L11psi[i]
		F[N+i] = 2.*phi[i]*psi[i]*psi[i] + L22phi[i]
	}
	r := p.BCs.Residuals(state)
	for d, c := range p.BCs.Conditions {
		F[c.Row] = r[d]
	}
	return
}

/*
Assemble returns the Newton system A*sol = b at state, with A the Jacobian of
Residual and b = -Residual(state):

	A11 = L11 + diag(Z fz - phi^2)    A12 = diag(-2 phi psi)
	A21 = diag(4 psi phi)             A22 = L22 + diag(2 psi^2)

Boundary rows are replaced whole, which leaves A12 and A21 empty on the border.
*/
func (p *Problem) Assemble(state []float64) (A *mat.Dense, b []float64) {
	p.checkState(state)
	var (
		N        = p.Grid.N()
		psi, phi = state[:N], state[N:]
		be       = p.Backend
		L11psi   = be.MulVec(p.L11, psi)
		L22phi   = be.MulVec(p.L22, phi)
	)
	A = mat.NewDense(2*N, 2*N, nil)
	A.Slice(0, N, 0, N).(*mat.Dense).Copy(p.L11)
	A.Slice(N, 2*N, N, 2*N).(*mat.Dense).Copy(p.L22)
	b = make([]float64, 2*N)
	for i := 0; i < N; i++ {
		ps, ph := psi[i], phi[i]
		b[i] = -(-ph*ph*ps + p.fzZ[i]*ps + L11psi[i])
		b[N+i] = -(2.*ph*ps*ps + L22phi[i])
		A.Set(i, i, A.At(i, i)+p.fzZ[i]-ph*ph)
		A.Set(i, N+i, -2.*ph*ps)
		A.Set(N+i, i, 4.*ps*ph)
		A.Set(N+i, N+i, A.At(N+i, N+i)+2.*ps*ps)
	}
	p.BCs.Apply(A, b, state)
	return
}

func (p *Problem) checkState(state []float64) {
	if len(state) != 2*p.Grid.N() {
		panic(fmt.Errorf("state has length %d, expected %d", len(state), 2*p.Grid.N()))
	}
}
