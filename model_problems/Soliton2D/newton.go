package Soliton2D

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gosoliton/Cheb2D"
	"github.com/notargets/gosoliton/linalg"
	"github.com/notargets/gosoliton/utils"
)

type TerminalState uint8

const (
	Iterating TerminalState = iota
	Converged
	MaxItersReached
)

func (s TerminalState) String() string {
	switch s {
	case Iterating:
		return "ITERATING"
	case Converged:
		return "CONVERGED"
	case MaxItersReached:
		return "MAX_ITERS_REACHED"
	}
	return "UNKNOWN"
}

func (s TerminalState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

type IterationRecord struct {
	Iteration    int     `json:"iteration"`
	UpdateNorm   float64 `json:"update_norm"`   // |sol|
	ResidualNorm float64 `json:"residual_norm"` // |b| at the start of the iteration
}

type Result struct {
	Psi, Phi   []float64
	Iterations int
	State      TerminalState
	History    []IterationRecord
	Grid       *Cheb2D.Grid
}

type options struct {
	backend  linalg.Backend
	observer func(IterationRecord)
	seed     []float64
}

type Option func(*options)

func WithBackend(be linalg.Backend) Option {
	return func(o *options) { o.backend = be }
}

// WithObserver is called after every completed iteration
func WithObserver(f func(IterationRecord)) Option {
	return func(o *options) { o.observer = f }
}

// WithSeed replaces the closed form initial profile
func WithSeed(psi, phi []float64) Option {
	return func(o *options) { o.seed = utils.VecConcat(psi, phi) }
}

// Solve discretizes cfg and runs Newton iterations from the seed profile.
// Exhausting KMax is reported in Result.State, it is not an error.
func Solve(cfg Config, opts ...Option) (r *Result, err error) {
	var (
		o = options{}
		p *Problem
	)
	for _, opt := range opts {
		opt(&o)
	}
	if p, err = NewProblem(cfg, o.backend); err != nil {
		return
	}
	return p.Newton(o.seed, o.observer)
}

// Newton iterates from seed (the closed form profile when nil). The state is
// owned by this call and is handed to the Result on return.
func (p *Problem) Newton(seed []float64, observer func(IterationRecord)) (r *Result, err error) {
	var (
		N     = p.Grid.N()
		be    = p.Backend
		state []float64
		k     int
	)
	if seed == nil {
		state = p.Seed()
	} else {
		if len(seed) != 2*N {
			err = &ConfigurationError{Field: "seed", Value: len(seed), Reason: fmt.Sprintf("length must be %d", 2*N)}
			return
		}
		state = append([]float64{}, seed...)
	}
	r = &Result{
		State: Iterating,
		Grid:  p.Grid,
	}
	for r.State == Iterating {
		A, b := p.Assemble(state)
		sol, serr := be.Solve(A, b)
		if serr != nil {
			return nil, &SingularJacobianError{Iteration: k + 1, Err: serr}
		}
		if utils.IsNan(sol) {
			return nil, fmt.Errorf("%w at iteration %d", ErrDiverged, k+1)
		}
		rec := IterationRecord{
			Iteration:    k + 1,
			UpdateNorm:   be.Norm(sol),
			ResidualNorm: be.Norm(b),
		}
		floats.Add(state, sol)
		k++
		r.History = append(r.History, rec)
		if observer != nil {
			observer(rec)
		}
		switch {
		case rec.UpdateNorm < p.Config.Eps:
			r.State = Converged
		case k >= p.Config.KMax:
			r.State = MaxItersReached
		}
	}
	r.Iterations = k
	r.Psi, r.Phi = utils.VecSplit(state)
	return
}
