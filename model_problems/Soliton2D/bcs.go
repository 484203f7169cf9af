package Soliton2D

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gosoliton/Cheb2D"
	"github.com/notargets/gosoliton/utils"
)

type Field uint8

const (
	Psi Field = iota
	Phi
)

func (f Field) String() string {
	switch f {
	case Psi:
		return "psi"
	case Phi:
		return "phi"
	}
	return "unknown"
}

// Condition replaces one row of the Newton system with a linear boundary law:
//
//	coeffs . state = Target
//
// The coefficients are stored in row Index of BoundaryConditions.Coeffs.
type Condition struct {
	Kind   utils.BCType
	Side   string // "z-upper", "z-lower" or "x-boundary"
	Field  Field
	Node   int // Flat grid index
	Row    int // Row of the 2N system
	Index  int // Row of the coefficient matrix
	Target float64
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s[%d] on %s = %g", c.Kind, c.Field, c.Node, c.Side, c.Target)
}

type BoundaryConditions struct {
	Conditions []Condition
	Coeffs     *sparse.CSR // len(Conditions) x 2N
	N          int
}

type pendingCondition struct {
	Condition
	coeffs map[int]float64
}

/*
NewBoundaryConditions builds the boundary laws of the soliton problem, in order:

	z-upper:    psi: fzp*Dz + Dxx - I = 0     phi: I = 0
	z-lower:    psi: I = 0                    phi: I = mu
	x-boundary: psi: Dx = 0                   phi: Dx = 0

A later law on the same row replaces an earlier one, so the x-boundary symmetry
law holds on the corners.
*/
func NewBoundaryConditions(g *Cheb2D.Grid, bs Cheb2D.BoundarySets, op *Cheb2D.Operators, fzp []float64, mu float64) (bc *BoundaryConditions) {
	var (
		N       = g.N()
		pending []pendingCondition
		byRow   = make(map[int]int)
	)
	add := func(kind utils.BCType, side string, f Field, node int, target float64, coeffs map[int]float64) {
		row := node
		if f == Phi {
			row += N
		}
		pc := pendingCondition{
			Condition: Condition{Kind: kind, Side: side, Field: f, Node: node, Row: row, Target: target},
			coeffs:    coeffs,
		}
		if k, ok := byRow[row]; ok {
			pending[k] = pc
			return
		}
		byRow[row] = len(pending)
		pending = append(pending, pc)
	}
	identity := func(col int) map[int]float64 {
		return map[int]float64{col: 1}
	}
	for _, p := range bs.ZUpper {
		c := make(map[int]float64)
		accumulateRow(c, op.Dz, p, fzp[p], 0)
		accumulateRow(c, op.Dxx, p, 1, 0)
		c[p] -= 1
		add(utils.BCRobin, "z-upper", Psi, p, 0, c)
		add(utils.BCDirichlet, "z-upper", Phi, p, 0, identity(N+p))
	}
	for _, p := range bs.ZLower {
		add(utils.BCDirichlet, "z-lower", Psi, p, 0, identity(p))
		add(utils.BCDirichlet, "z-lower", Phi, p, mu, identity(N+p))
	}
	for _, p := range bs.XBound {
		c := make(map[int]float64)
		accumulateRow(c, op.Dx, p, 1, 0)
		add(utils.BCNeumann, "x-boundary", Psi, p, 0, c)
		c = make(map[int]float64)
		accumulateRow(c, op.Dx, p, 1, N)
		add(utils.BCNeumann, "x-boundary", Phi, p, 0, c)
	}

	bc = &BoundaryConditions{N: N}
	dok := sparse.NewDOK(len(pending), 2*N)
	for d, pc := range pending {
		pc.Index = d
		bc.Conditions = append(bc.Conditions, pc.Condition)
		cols := make([]int, 0, len(pc.coeffs))
		for j, v := range pc.coeffs {
			if v != 0 {
				cols = append(cols, j)
			}
		}
		sort.Ints(cols)
		for _, j := range cols {
			dok.Set(d, j, pc.coeffs[j])
		}
	}
	bc.Coeffs = dok.ToCSR()
	return
}

// accumulateRow adds scale*M[i,:] into c, shifting columns by offset
func accumulateRow(c map[int]float64, M *mat.Dense, i int, scale float64, offset int) {
	if scale == 0 {
		return
	}
	for j, v := range M.RawRowView(i) {
		if v != 0 {
			c[j+offset] += scale * v
		}
	}
}

// Rows returns the system rows carrying a boundary law, sorted
func (bc *BoundaryConditions) Rows() (I utils.Index) {
	I = utils.NewIndex(len(bc.Conditions))
	for d, c := range bc.Conditions {
		I[d] = c.Row
	}
	sort.Ints(I)
	return
}

// Coefficients returns the nonzero coefficients of condition d keyed by state column
func (bc *BoundaryConditions) Coefficients(d int) (c map[int]float64) {
	c = make(map[int]float64)
	bc.Coeffs.DoRowNonZero(d, func(_, j int, v float64) {
		c[j] = v
	})
	return
}

// Residuals evaluates coeffs . state - Target for every condition, indexed like Conditions
func (bc *BoundaryConditions) Residuals(state []float64) (r []float64) {
	r = make([]float64, len(bc.Conditions))
	for d, c := range bc.Conditions {
		r[d] = -c.Target
	}
	bc.Coeffs.DoNonZero(func(d, j int, v float64) {
		r[d] += v * state[j]
	})
	return
}

// Apply overwrites the boundary rows of the Jacobian A with the law coefficients
// and the matching entries of the right hand side b = -residual.
func (bc *BoundaryConditions) Apply(A *mat.Dense, b, state []float64) {
	for _, c := range bc.Conditions {
		row := A.RawRowView(c.Row)
		for j := range row {
			row[j] = 0
		}
		b[c.Row] = c.Target
	}
	bc.Coeffs.DoNonZero(func(d, j int, v float64) {
		row := bc.Conditions[d].Row
		A.Set(row, j, v)
		b[row] -= v * state[j]
	})
}
