package Soliton2D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gosoliton/Cheb2D"
	"github.com/notargets/gosoliton/linalg"
)

// halfConfig is the default problem on a grid of half the resolution
func halfConfig() (cfg Config) {
	cfg = DefaultConfig()
	cfg.Nz, cfg.Nx = 15, 30
	return
}

func checkBoundaries(t *testing.T, r *Result, mu, tol float64) {
	var (
		g  = r.Grid
		bs = Cheb2D.Classify(g)
		be = linalg.NewDense()
		o  = mustOperators(t, g)
	)
	require.NotEmpty(t, bs.ZLower)
	for _, p := range bs.ZLower {
		assert.InDelta(t, 0., r.Psi[p], 1.e-10)
		assert.InDelta(t, mu, r.Phi[p], 1.e-10)
	}
	var (
		dxPsi = be.MulVec(o.Dx, r.Psi)
		dxPhi = be.MulVec(o.Dx, r.Phi)
	)
	for _, p := range bs.XBound {
		assert.InDelta(t, 0., dxPsi[p], tol)
		assert.InDelta(t, 0., dxPhi[p], tol)
	}
}

func mustOperators(t *testing.T, g *Cheb2D.Grid) *Cheb2D.Operators {
	_, op, err := Cheb2D.Discretize(linalg.NewDense(), g.Nz, g.Nx, g.Lz, g.Lx)
	require.NoError(t, err)
	return op
}

func TestTerminalState(t *testing.T) {
	assert.Equal(t, "CONVERGED", Converged.String())
	assert.Equal(t, "MAX_ITERS_REACHED", MaxItersReached.String())
	assert.Equal(t, "ITERATING", Iterating.String())
	b, err := Converged.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "CONVERGED", string(b))
}

func TestSolveHalfGrid(t *testing.T) {
	var (
		cfg     = halfConfig()
		records []IterationRecord
	)
	r, err := Solve(cfg, WithObserver(func(rec IterationRecord) {
		records = append(records, rec)
	}))
	require.NoError(t, err)
	require.Equal(t, Converged, r.State)
	assert.LessOrEqual(t, r.Iterations, cfg.KMax)
	assert.Len(t, r.History, r.Iterations)
	assert.Equal(t, r.History, records)
	assert.Less(t, r.History[r.Iterations-1].UpdateNorm, cfg.Eps)
	for k, rec := range r.History {
		assert.Equal(t, k+1, rec.Iteration)
	}
	require.Len(t, r.Psi, cfg.N())
	require.Len(t, r.Phi, cfg.N())
	checkBoundaries(t, r, cfg.Mu, 1.e-8)

	var (
		g    = r.Grid
		psi  = g.Reshape(r.Psi)
		amax = floats.Max(absAll(r.Psi))
	)
	require.Greater(t, amax, 0.)
	// psi is odd in x
	for i := 0; i < g.Nz; i++ {
		for j := 0; j < g.Nx; j++ {
			assert.InDelta(t, 0., psi[i][j]+psi[i][g.Nx-1-j], 1.e-6*amax)
		}
	}
	// The x averaged phi grows from 0 at z = 1 to mu at z = 0
	var (
		phi  = g.Reshape(r.Phi)
		prev = math.Inf(-1)
	)
	for i := 0; i < g.Nz; i++ {
		mean := floats.Sum(phi[i]) / float64(g.Nx)
		assert.GreaterOrEqual(t, mean, prev-1.e-6*cfg.Mu, "z = %g", g.Zc[i])
		prev = mean
	}
	assert.InDelta(t, 0., floats.Sum(phi[0])/float64(g.Nx), 1.e-10)
	assert.InDelta(t, cfg.Mu, prev, 1.e-10)
}

func absAll(v []float64) (r []float64) {
	r = make([]float64, len(v))
	for i, x := range v {
		r[i] = math.Abs(x)
	}
	return
}

// Once the updates are small the next one is bounded by C times the square of the current
func TestQuadraticConvergence(t *testing.T) {
	var (
		cfg = halfConfig()
	)
	cfg.Eps = 1.e-12
	cfg.KMax = 20
	r, err := Solve(cfg)
	require.NoError(t, err)
	var (
		C     = 1.e4
		floor = 1.e-6
		h     = r.History
	)
	for k := 0; k+1 < len(h); k++ {
		cur, next := h[k].UpdateNorm, h[k+1].UpdateNorm
		if cur > 1.e-2 || next < floor {
			continue
		}
		assert.LessOrEqual(t, next, C*cur*cur, "iteration %d: %g -> %g", k+1, cur, next)
	}
}

func TestMaxItersReached(t *testing.T) {
	cfg := smallConfig(8, 10)
	cfg.KMax = 1
	r, err := Solve(cfg)
	require.NoError(t, err)
	assert.Equal(t, MaxItersReached, r.State)
	assert.Equal(t, 1, r.Iterations)
	assert.Len(t, r.History, 1)
	assert.Greater(t, r.History[0].UpdateNorm, cfg.Eps)
}

func TestWithSeed(t *testing.T) {
	cfg := smallConfig(8, 10)
	_, err := Solve(cfg, WithSeed(make([]float64, 3), make([]float64, 3)))
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "seed", ce.Field)

	// Starting from the converged state the first update is already below tolerance
	cfg = halfConfig()
	r, err := Solve(cfg)
	require.NoError(t, err)
	require.Equal(t, Converged, r.State)
	r2, err := Solve(cfg, WithSeed(r.Psi, r.Phi))
	require.NoError(t, err)
	assert.Equal(t, Converged, r2.State)
	assert.Equal(t, 1, r2.Iterations)
}

func TestBackendsAgree(t *testing.T) {
	cfg := halfConfig()
	rd, err := Solve(cfg, WithBackend(linalg.NewDense()))
	require.NoError(t, err)
	rp, err := Solve(cfg, WithBackend(linalg.NewParallel(3)))
	require.NoError(t, err)
	assert.Equal(t, rd.State, rp.State)
	assert.True(t, floats.EqualApprox(rd.Psi, rp.Psi, 1.e-8))
	assert.True(t, floats.EqualApprox(rd.Phi, rp.Phi, 1.e-8))
}

type singularBackend struct {
	*linalg.Dense
	calls int
}

func (s *singularBackend) Solve(a *mat.Dense, b []float64) ([]float64, error) {
	s.calls++
	return nil, &linalg.SingularError{Cond: math.Inf(1)}
}

func TestSingularJacobian(t *testing.T) {
	be := &singularBackend{Dense: linalg.NewDense()}
	r, err := Solve(smallConfig(6, 8), WithBackend(be))
	assert.Nil(t, r)
	require.Error(t, err)
	assert.Equal(t, 1, be.calls)
	assert.True(t, errors.Is(err, ErrSingularJacobian))
	assert.True(t, errors.Is(err, linalg.ErrSingular))
	var se *SingularJacobianError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Iteration)
}

type nanBackend struct {
	*linalg.Dense
}

func (nanBackend) Solve(a *mat.Dense, b []float64) (x []float64, err error) {
	x = make([]float64, len(b))
	x[len(x)/2] = math.NaN()
	return
}

func TestDiverged(t *testing.T) {
	r, err := Solve(smallConfig(6, 8), WithBackend(nanBackend{linalg.NewDense()}))
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrDiverged))
	assert.False(t, errors.Is(err, ErrSingularJacobian))
}

// A zero row makes the system exactly singular
func TestSingularFromSolver(t *testing.T) {
	p, err := NewProblem(smallConfig(5, 6), linalg.NewDense())
	require.NoError(t, err)
	A, b := p.Assemble(p.Seed())
	for j := 0; j < A.RawMatrix().Cols; j++ {
		A.Set(0, j, 0)
	}
	_, err = p.Backend.Solve(A, b)
	assert.True(t, errors.Is(err, linalg.ErrSingular))
}

func TestSolveFullSize(t *testing.T) {
	if testing.Short() {
		t.Skip("full resolution solve")
	}
	cfg := DefaultConfig()
	r, err := Solve(cfg, WithBackend(linalg.NewParallel(0)))
	require.NoError(t, err)
	require.Equal(t, Converged, r.State)
	assert.LessOrEqual(t, r.Iterations, 10)
	checkBoundaries(t, r, cfg.Mu, 1.e-7)
}
