// Package linalg provides the dense linear algebra capabilities the solver needs
// behind a single Backend interface, so that the threading or the BLAS/LAPACK
// implementation can be swapped without touching the numerical algorithm.
package linalg

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSingular is returned by Solve when the system matrix is singular or too
	// ill-conditioned to produce a trustworthy solution.
	ErrSingular = errors.New("linalg: matrix is singular")

	ErrUnknownBackend = errors.New("linalg: unknown backend")
)

type Backend interface {
	Name() string
	// Mul returns a*b. A *mat.DiagDense left operand is applied as a row scaling.
	Mul(a, b mat.Matrix) *mat.Dense
	MulVec(a mat.Matrix, x []float64) []float64
	Transpose(a mat.Matrix) *mat.Dense
	// Kron returns the Kronecker product a (x) b, row-major ordered:
	// element (i*rb+k, j*cb+l) = a(i,j)*b(k,l)
	Kron(a, b mat.Matrix) *mat.Dense
	Diag(v []float64) *mat.DiagDense
	// Solve returns x with a*x = b, or an error wrapping ErrSingular.
	Solve(a *mat.Dense, b []float64) ([]float64, error)
	Norm(v []float64) float64
}

var backends = map[string]func() Backend{
	"dense":    func() Backend { return NewDense() },
	"parallel": func() Backend { return NewParallel(0) },
}

// New returns a backend by name
func New(name string) (Backend, error) {
	if f, ok := backends[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("%w: %q, available: %v", ErrUnknownBackend, name, Names())
}

func Names() (names []string) {
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// SingularError carries the estimated condition number of a rejected system
type SingularError struct {
	Cond float64
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("%v (condition number %g)", ErrSingular, e.Cond)
}

func (e *SingularError) Unwrap() error { return ErrSingular }
