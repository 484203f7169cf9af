package Cheb2D

import (
	"github.com/notargets/gosoliton/utils"
)

// BoundarySets lists flat grid indices lying on each side of the domain
type BoundarySets struct {
	ZLower utils.Index // Z == 0
	ZUpper utils.Index // Z == 1
	XBound utils.Index // |X| == Lx/2
	Border utils.Index // Sorted union of the three
}

// Classify uses exact comparisons, the grid construction places the extreme
// coordinates exactly on the domain bounds.
func Classify(g *Grid) (bs BoundarySets) {
	bs.ZLower = utils.VecFind(g.Z, utils.Equal, 0, false)
	bs.ZUpper = utils.VecFind(g.Z, utils.Equal, 1, false)
	bs.XBound = utils.VecFind(g.X, utils.Equal, g.Lx/2., true)
	bs.Border = utils.Union(bs.ZLower, bs.ZUpper, bs.XBound)
	return
}

// Interior returns the indices of [0,N) not in Border
func (bs BoundarySets) Interior(N int) (I utils.Index) {
	var (
		onBorder = make([]bool, N)
	)
	for _, p := range bs.Border {
		onBorder[p] = true
	}
	for p, b := range onBorder {
		if !b {
			I = append(I, p)
		}
	}
	return
}
