// SPDX-License-Identifier: MIT
// Package lsq: iterative refinement of a QR least-squares solution.
//
// Both strategies work in pivot order on the retained columns A = X·P[:, 0:r],
// for which A = Q·[R₁₁; 0] holds exactly, and evaluate residuals with
// compensated accumulation.

package lsq

import (
	"github.com/katalvlaran/lsqcore/decomp"
	"github.com/katalvlaran/lsqcore/matrix"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/blas"
)

type refiner struct {
	qr   *decomp.QR
	cols []*matrix.Vector // retained columns of X in pivot order
	piv  []int
	y    *matrix.Vector
	n    int
}

func newRefiner(qr *decomp.QR, x *matrix.Matrix, y *matrix.Vector) *refiner {
	piv := qr.Pivots()
	cols := make([]*matrix.Vector, len(piv))
	for p, j := range piv {
		cols[p] = x.Col(j)
	}

	return &refiner{qr: qr, cols: cols, piv: piv, y: y, n: y.Len()}
}

// solve returns c (pivot order) minimizing ‖v − A·c‖.
func (rf *refiner) solve(v *matrix.Vector) (*matrix.Vector, error) {
	w := v.Clone()
	rf.qr.ApplyQt(w)
	c := w.Slice(0, len(rf.piv)).Clone()
	if err := rf.qr.SolveR(c, blas.NoTrans); err != nil {
		return nil, err
	}

	return c, nil
}

// residual returns y − r − A·c row by row (r may be nil).
func (rf *refiner) residual(r, c *matrix.Vector) *matrix.Vector {
	out, _ := matrix.NewVector(rf.n)
	var acc matrix.Accumulator
	var i, p int
	for i = 0; i < rf.n; i++ {
		acc.Reset()
		acc.Add(rf.y.AtVec(i))
		if r != nil {
			acc.Add(-r.AtVec(i))
		}
		for p = range rf.cols {
			acc.AddProduct(-rf.cols[p].AtVec(i), c.AtVec(p))
		}
		out.SetVec(i, acc.Sum())
	}

	return out
}

// analytic runs passes of corrected semi-normal refinement on the augmented
// system [I A; Aᵀ 0]·[r; c] = [y; 0]:
//
//	f = y − r − A·c,  g = −Aᵀ·r
//	h = R⁻ᵀ·g,  d = Qᵀ·f
//	δc = R⁻¹·(d₁ − h),  δr = Q·[h; d₂]
//
// Every pass is accepted.
func (rf *refiner) analytic(c *matrix.Vector, passes int) (*matrix.Vector, int, error) {
	k := len(rf.piv)
	c = c.Clone()

	// Base residual r = Q·[0; e].
	r := rf.y.Clone()
	rf.qr.ApplyQt(r)
	r.Slice(0, k).Fill(0)
	rf.qr.ApplyQ(r)

	h, _ := matrix.NewVector(k)
	for pass := 0; pass < passes; pass++ {
		f := rf.residual(r, c)
		for p := range rf.cols {
			h.SetVec(p, -matrix.DotMode(matrix.Robust, rf.cols[p], r))
		}
		if err := rf.qr.SolveR(h, blas.Trans); err != nil {
			return nil, 0, err
		}
		rf.qr.ApplyQt(f) // f now holds d
		d1 := f.Slice(0, k)
		dc := d1.Clone()
		matrix.Axpy(-1, h, dc)
		if err := rf.qr.SolveR(dc, blas.NoTrans); err != nil {
			return nil, 0, err
		}
		matrix.Copy(d1, h) // f = [h; d₂]
		rf.qr.ApplyQ(f)
		matrix.Axpy(1, dc, c)
		matrix.Axpy(1, f, r)
	}

	return c, 1 + passes, nil
}

// simple re-solves the current residual as a new least-squares problem and
// accepts the correction only while ‖y − A·c‖² strictly decreases.
func (rf *refiner) simple(c *matrix.Vector, passes int, log zerolog.Logger) (*matrix.Vector, int, error) {
	c = c.Clone()
	e := rf.residual(nil, c)
	ssq := matrix.SumSquares(matrix.Robust, e)
	accepted := 1
	for pass := 0; pass < passes; pass++ {
		dc, err := rf.solve(e)
		if err != nil {
			return nil, 0, err
		}
		next := c.Clone()
		matrix.Axpy(1, dc, next)
		ne := rf.residual(nil, next)
		nssq := matrix.SumSquares(matrix.Robust, ne)
		if !(nssq < ssq) {
			log.Debug().
				Int("pass", pass+1).
				Float64("ssq", ssq).
				Float64("candidate", nssq).
				Msg("refinement stopped: residual did not decrease")
			break
		}
		c, e, ssq = next, ne, nssq
		accepted++
	}

	return c, accepted, nil
}
