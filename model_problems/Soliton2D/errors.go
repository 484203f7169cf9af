package Soliton2D

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration    = errors.New("soliton: invalid configuration")
	ErrSingularJacobian = errors.New("soliton: singular Jacobian")
	ErrDiverged         = errors.New("soliton: Newton update is not finite")
)

// ConfigurationError is detected before any work is done
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s = %v, %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// SingularJacobianError aborts a solve, no partial result is returned with it
type SingularJacobianError struct {
	Iteration int
	Err       error // from the linear solver
}

func (e *SingularJacobianError) Error() string {
	return fmt.Sprintf("%v at iteration %d: %v", ErrSingularJacobian, e.Iteration, e.Err)
}

func (e *SingularJacobianError) Unwrap() []error { return []error{ErrSingularJacobian, e.Err} }
