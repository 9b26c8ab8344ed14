// SPDX-License-Identifier: MIT
// Package lsq: minimum-norm solver on a thin SVD.

package lsq

import (
	"fmt"

	"github.com/katalvlaran/lsqcore/matrix"
	"gonum.org/v1/gonum/mat"
)

const nameSVD = "svd"

// SVDSolver returns the minimum-norm least-squares solution b = V·Σ⁺·Uᵀ·y.
// It never drops columns: collinear predictors share the weight, Used()
// lists every column and Rank() reports the numerical rank.
type SVDSolver struct {
	opts Options
}

// NewSVDSolver returns a solver configured by opts. Relevant options are
// WithRankEpsilon and WithLogger.
func NewSVDSolver(opts ...Option) *SVDSolver {
	return &SVDSolver{opts: NewOptions(opts...)}
}

// Name returns "svd".
func (s *SVDSolver) Name() string { return nameSVD }

// Options returns the resolved configuration.
func (s *SVDSolver) Options() Options { return s.opts }

// Compute solves min ‖y − X·b‖ with minimum ‖b‖.
//
// Implementation:
//   - Stage 1: Thin SVD X = U·Σ·Vᵀ (gonum).
//   - Stage 2: Rank r = count of σᵢ > ε·σ₀.
//   - Stage 3: b = Σ_{i<r} (uᵢᵀy/σᵢ)·vᵢ, covariance = Σ_{i<r} vᵢvᵢᵀ/σᵢ².
//
// Errors (matching ErrComputeFailed):
//   - KindDegenerateShape, KindNonFinite on bad input.
//   - KindSingular if the SVD iteration does not converge.
func (s *SVDSolver) Compute(y *matrix.Vector, x *matrix.Matrix) (res *Result, err error) {
	_, m := checkShapes(nameSVD, y, x)
	defer s.opts.recoverCompute(nameSVD, &res, &err)
	if err = validateData(y, x); err != nil {
		return nil, s.opts.fail(nameSVD, err)
	}

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, s.opts.fail(nameSVD, fmt.Errorf("svd did not converge: %w", matrix.ErrSingular))
	}
	sigma := svd.Values(nil)
	var ud, vd mat.Dense
	svd.UTo(&ud)
	svd.VTo(&vd)
	u, v := matrix.ViewGonum(&ud), matrix.ViewGonum(&vd)

	rank := 0
	for _, sv := range sigma {
		if !(sv > s.opts.rankEps*sigma[0]) {
			break
		}
		rank++
	}

	b, _ := matrix.NewVector(m)
	cov, _ := matrix.NewMatrix(m, m)
	var w float64
	for i := 0; i < rank; i++ {
		vi := v.Col(i)
		w = matrix.DotMode(matrix.Robust, u.Col(i), y) / sigma[i]
		matrix.Axpy(w, vi, b)
		matrix.Ger(1/(sigma[i]*sigma[i]), vi, vi, cov)
	}

	used := make([]int, m)
	for j := range used {
		used[j] = j
	}
	res = newResult(nameSVD, y, x, b.ToSlice(), cov, rank, used, 1)
	if rank < m {
		s.opts.logger.Debug().
			Str("solver", nameSVD).
			Int("rank", rank).
			Msg("rank deficient design, minimum-norm solution")
	}

	return res, nil
}
