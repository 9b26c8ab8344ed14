// SPDX-License-Identifier: MIT
// Package lsq: normal-equations solver on a Cholesky factor.

package lsq

import (
	"github.com/katalvlaran/lsqcore/decomp"
	"github.com/katalvlaran/lsqcore/matrix"
)

const nameCholesky = "cholesky"

// CholeskySolver solves the normal equations XᵀX·b = Xᵀy.
// It squares the condition number of X; prefer QRSolver on ill-conditioned
// designs and use this one where speed matters or as a fallback.
type CholeskySolver struct {
	opts Options
}

// NewCholeskySolver returns a solver configured by opts. Relevant options are
// WithStrictCholesky, WithCholeskyTolerance and WithLogger.
func NewCholeskySolver(opts ...Option) *CholeskySolver {
	return &CholeskySolver{opts: NewOptions(opts...)}
}

// Name returns "cholesky".
func (s *CholeskySolver) Name() string { return nameCholesky }

// Options returns the resolved configuration.
func (s *CholeskySolver) Options() Options { return s.opts }

// Compute solves min ‖y − X·b‖ through the normal equations.
//
// Implementation:
//   - Stage 1: S = XᵀX and c = Xᵀy, both with compensated accumulation.
//   - Stage 2: Cholesky S = L·Lᵀ (tolerant drops near-zero pivots, strict fails).
//   - Stage 3: L·z = c, Lᵀ·b = z; dropped pivots give zero coefficients.
//   - Stage 4: residuals y − X·b, ssqerr, covariance = generalized (XᵀX)⁻¹.
//
// Errors (all matching ErrComputeFailed):
//   - KindDegenerateShape, KindNonFinite on bad input.
//   - KindNotPositiveDefinite in strict mode on a singular or indefinite S.
func (s *CholeskySolver) Compute(y *matrix.Vector, x *matrix.Matrix) (res *Result, err error) {
	checkShapes(nameCholesky, y, x)
	defer s.opts.recoverCompute(nameCholesky, &res, &err)
	if err = validateData(y, x); err != nil {
		return nil, s.opts.fail(nameCholesky, err)
	}

	sxx := matrix.CrossProduct(matrix.Robust, x)
	c := matrix.CrossProductVec(matrix.Robust, x, y)
	ch, err := decomp.NewCholesky(sxx, s.opts.choleskyOptions()...)
	if err != nil {
		return nil, s.opts.fail(nameCholesky, err)
	}
	b, err := ch.SolveVec(c)
	if err != nil {
		return nil, s.opts.fail(nameCholesky, err)
	}
	cov, err := ch.Inverse()
	if err != nil {
		return nil, s.opts.fail(nameCholesky, err)
	}

	res = newResult(nameCholesky, y, x, b.ToSlice(), cov, ch.Rank(), ch.Used(), 1)
	s.opts.logRank(nameCholesky, res)

	return res, nil
}
