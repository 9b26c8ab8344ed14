// SPDX-License-Identifier: MIT
// Package lsq: Householder QR solver with optional column scaling and
// iterative refinement.

package lsq

import (
	"github.com/katalvlaran/lsqcore/decomp"
	"github.com/katalvlaran/lsqcore/matrix"
	"gonum.org/v1/gonum/blas"
)

const nameQR = "qr"

// QRSolver solves least squares through a (pivoted) Householder QR of X.
//
// Column selection depends on WithPivoting:
//   - true (default): the largest remaining column is eliminated first, so
//     of two collinear columns the one with the larger norm is kept.
//   - false: columns are taken in natural order and a column dependent on
//     the earlier ones is dropped while later columns are still used; of
//     two collinear columns the first is kept. Cholesky selects the same
//     columns on well-scaled designs.
type QRSolver struct {
	opts Options
}

// NewQRSolver returns a solver configured by opts. Relevant options are
// WithNormalize, WithIterations, WithSimpleIteration, WithRankEpsilon,
// WithPivoting and WithLogger.
func NewQRSolver(opts ...Option) *QRSolver {
	return &QRSolver{opts: NewOptions(opts...)}
}

// Name returns "qr".
func (s *QRSolver) Name() string { return nameQR }

// Options returns the resolved configuration.
func (s *QRSolver) Options() Options { return s.opts }

// Compute solves min ‖y − X·b‖.
//
// Implementation:
//   - Stage 1: Optionally divide each column by its 2-norm (zero columns keep scale 1).
//   - Stage 2: QR (pivoted or natural order); rank r and retained columns.
//   - Stage 3: Base solve R₁₁·c = (Qᵀy)[0:r].
//   - Stage 4: Iterations()−1 refinement passes (analytic or simple re-solve).
//   - Stage 5: Un-scale, expand to m with zeros at dropped columns,
//     covariance = R₁₁⁻¹·R₁₁⁻ᵀ mapped back through the pivots and scales.
//
// Rank deficiency is not an error. Errors (matching ErrComputeFailed):
//   - KindDegenerateShape, KindNonFinite on bad input.
//   - KindSingular if a triangular solve breaks down.
func (s *QRSolver) Compute(y *matrix.Vector, x *matrix.Matrix) (res *Result, err error) {
	n, m := checkShapes(nameQR, y, x)
	defer s.opts.recoverCompute(nameQR, &res, &err)
	if err = validateData(y, x); err != nil {
		return nil, s.opts.fail(nameQR, err)
	}

	xs, scale := x, make([]float64, m)
	for j := range scale {
		scale[j] = 1
	}
	if s.opts.normalize {
		xs = x.Clone()
		var nrm float64
		for j := 0; j < m; j++ {
			nrm = matrix.Nrm2(xs.Col(j))
			if nrm > 0 {
				scale[j] = nrm
				matrix.Scal(1/nrm, xs.Col(j))
			}
		}
	}

	qr, err := decomp.NewQR(xs, s.opts.qrOptions()...)
	if err != nil {
		return nil, s.opts.fail(nameQR, err)
	}
	rf := newRefiner(qr, xs, y)
	c, err := rf.solve(y)
	if err != nil {
		return nil, s.opts.fail(nameQR, err)
	}

	iterations := 1
	if s.opts.iterations > 1 {
		if s.opts.simple {
			c, iterations, err = rf.simple(c, s.opts.iterations-1, s.opts.logger)
		} else {
			c, iterations, err = rf.analytic(c, s.opts.iterations-1)
		}
		if err != nil {
			return nil, s.opts.fail(nameQR, err)
		}
	}

	coef := make([]float64, m)
	for p, j := range rf.piv {
		coef[j] = c.AtVec(p) / scale[j]
	}
	cov, err := qrCovariance(qr, rf.piv, scale, m)
	if err != nil {
		return nil, s.opts.fail(nameQR, err)
	}

	res = newResult(nameQR, y, x, coef, cov, qr.Rank(), qr.Used(), iterations)
	w := matrix.NewVectorFrom(res.full).Clone()
	qr.ApplyQt(w)
	res.resid = w.Slice(qr.Rank(), n-qr.Rank()).ToSlice()
	s.opts.logRank(nameQR, res)

	return res, nil
}

// qrCovariance returns (XᵀX)⁻¹ on the retained columns: with X·P = Q·R and
// column scales D, C = D⁻¹·P·R₁₁⁻¹·R₁₁⁻ᵀ·Pᵀ·D⁻¹, zero elsewhere.
func qrCovariance(qr *decomp.QR, piv []int, scale []float64, m int) (*matrix.Matrix, error) {
	r := len(piv)
	cov, _ := matrix.NewMatrix(m, m)
	if r == 0 {
		return cov, nil
	}
	rinv, _ := matrix.NewMatrix(r, r)
	for k := 0; k < r; k++ {
		col := rinv.Col(k)
		col.SetVec(k, 1)
		if err := qr.SolveR(col, blas.NoTrans); err != nil {
			return nil, err
		}
	}
	g, _ := matrix.NewMatrix(r, r)
	matrix.Gemm(blas.NoTrans, blas.Trans, 1, rinv, rinv, 0, g)

	var a, b int
	for b = 0; b < r; b++ {
		for a = 0; a < r; a++ {
			cov.Set(piv[a], piv[b], g.At(a, b)/(scale[piv[a]]*scale[piv[b]]))
		}
	}

	return cov, nil
}
