package Soliton2D

import (
	"errors"
	"fmt"
	"math"
)

// Config is the immutable input of a solve
type Config struct {
	Mu   float64 // Dirichlet value of phi on z = 0
	Eps  float64 // Convergence tolerance on the Newton update norm
	KMax int     // Iteration budget
	Lz   float64
	Lx   float64
	Nz   int
	Nx   int
}

func DefaultConfig() Config {
	return Config{
		Mu:   5,
		Eps:  1.e-6,
		KMax: 10,
		Lz:   1,
		Lx:   24,
		Nz:   30,
		Nx:   60,
	}
}

func (c Config) N() int { return c.Nz * c.Nx }

func (c Config) String() string {
	return fmt.Sprintf("mu = %g, eps = %g, kmax = %d, Lz = %g, Lx = %g, Nz = %d, Nx = %d",
		c.Mu, c.Eps, c.KMax, c.Lz, c.Lx, c.Nz, c.Nx)
}

// Validate returns every problem found, each one a *ConfigurationError
func (c Config) Validate() error {
	var (
		errs []error
	)
	check := func(bad bool, field string, value any, reason string) {
		if bad {
			errs = append(errs, &ConfigurationError{Field: field, Value: value, Reason: reason})
		}
	}
	finitePositive := func(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
	check(c.Nz < 2, "Nz", c.Nz, "need at least 2 collocation points")
	check(c.Nx < 2, "Nx", c.Nx, "need at least 2 collocation points")
	check(!finitePositive(c.Lz), "Lz", c.Lz, "interval length must be positive")
	check(!finitePositive(c.Lx), "Lx", c.Lx, "interval length must be positive")
	check(!finitePositive(c.Eps), "Eps", c.Eps, "tolerance must be positive")
	check(c.KMax < 1, "KMax", c.KMax, "iteration budget must be at least 1")
	check(math.IsNaN(c.Mu) || math.IsInf(c.Mu, 0), "Mu", c.Mu, "must be finite")
	return errors.Join(errs...)
}
