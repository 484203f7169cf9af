package linalg

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Parallel splits row work across goroutines, each output row is owned by one goroutine
type Parallel struct {
	Dense
	workers int
	minRows int
}

// NewParallel returns a threaded backend, workers <= 0 selects runtime.NumCPU()
func NewParallel(workers int) *Parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Parallel{
		workers: workers,
		minRows: 64,
	}
}

func (p *Parallel) Name() string { return "parallel" }

func (p *Parallel) Workers() int { return p.workers }

func (p *Parallel) Mul(a, b mat.Matrix) (R *mat.Dense) {
	if dg, ok := a.(*mat.DiagDense); ok {
		nr, _ := b.Dims()
		R = newScaledRows(dg, b)
		p.forChunks(nr, func(i1, i2 int) {
			scaleRows(R, dg, b, i1, i2)
		})
		return
	}
	var (
		nra, nca = a.Dims()
		nrb, ncb = b.Dims()
	)
	if nca != nrb {
		panic(mat.ErrShape)
	}
	ad := mat.DenseCopyOf(a)
	bd := mat.DenseCopyOf(b)
	R = mat.NewDense(nra, ncb, nil)
	p.forChunks(nra, func(i1, i2 int) {
		rv := R.Slice(i1, i2, 0, ncb).(*mat.Dense)
		rv.Mul(ad.Slice(i1, i2, 0, nca), bd)
	})
	return
}

func (p *Parallel) MulVec(a mat.Matrix, x []float64) (y []float64) {
	var (
		nr, nc = a.Dims()
	)
	if nc != len(x) {
		panic(mat.ErrShape)
	}
	ad, ok := a.(*mat.Dense)
	if !ok {
		return p.Dense.MulVec(a, x)
	}
	y = make([]float64, nr)
	p.forChunks(nr, func(i1, i2 int) {
		for i := i1; i < i2; i++ {
			y[i] = floats.Dot(ad.RawRowView(i), x)
		}
	})
	return
}

func (p *Parallel) Kron(a, b mat.Matrix) (R *mat.Dense) {
	var (
		ra, ca = a.Dims()
		rb, cb = b.Dims()
	)
	R = mat.NewDense(ra*rb, ca*cb, nil)
	p.forChunks(ra, func(i1, i2 int) {
		for i := i1; i < i2; i++ {
			for j := 0; j < ca; j++ {
				aij := a.At(i, j)
				if aij == 0 {
					continue
				}
				for k := 0; k < rb; k++ {
					row := R.RawRowView(i*rb + k)
					for l := 0; l < cb; l++ {
						row[j*cb+l] = aij * b.At(k, l)
					}
				}
			}
		}
	})
	return
}

func (p *Parallel) forChunks(n int, f func(i1, i2 int)) {
	if p.workers < 2 || n < p.minRows {
		f(0, n)
		return
	}
	var (
		wg        sync.WaitGroup
		chunkSize = (n + p.workers - 1) / p.workers
	)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(i1, i2 int) {
			defer wg.Done()
			f(i1, i2)
		}(start, end)
	}
	wg.Wait()
}
