// SPDX-License-Identifier: MIT
// Package lsq: the Solver contract and the immutable Result it produces.

package lsq

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lsqcore/matrix"
)

// Solver computes min ‖y − X·b‖ for a dense design X.
//
// Compute returns a nil error on success. Numerically degenerate input
// (singular or non-positive-definite factors, empty or non-finite data) is
// reported as an error matching ErrComputeFailed, never as a panic, so the
// caller can fall back to another Solver. A length mismatch between y and
// the rows of X panics with an error wrapping matrix.ErrDimensionMismatch.
type Solver interface {
	Compute(y *matrix.Vector, x *matrix.Matrix) (*Result, error)
	Name() string
}

// Result is the outcome of one successful Compute. It is immutable; every
// accessor returns a copy.
type Result struct {
	solver     string
	coef       []float64      // length m, zeros at dropped columns
	resid      []float64      // solver-specific residual vector (length ≤ n)
	full       []float64      // y − X·b, length n
	ssq        float64        // ‖y − X·b‖², compensated
	cov        *matrix.Matrix // unscaled, m×m, zero rows/cols at dropped columns
	rank       int
	used       []int
	iterations int
}

// newResult assembles a Result and evaluates y − X·b with compensated sums.
// The residual vector defaults to the full one.
func newResult(solver string, y *matrix.Vector, x *matrix.Matrix, coef []float64,
	cov *matrix.Matrix, rank int, used []int, iterations int) *Result {
	full := matrix.Residual(matrix.Robust, y, x, matrix.NewVectorFrom(coef))

	return &Result{
		solver:     solver,
		coef:       coef,
		resid:      full.ToSlice(),
		full:       full.ToSlice(),
		ssq:        matrix.SumSquares(matrix.Robust, full),
		cov:        cov,
		rank:       rank,
		used:       used,
		iterations: iterations,
	}
}

// Solver returns the Name() of the solver that produced r.
func (r *Result) Solver() string { return r.solver }

// Coefficients returns b (length m) with zeros at dropped columns.
func (r *Result) Coefficients() *matrix.Vector { return cloneVec(r.coef) }

// Residuals returns the solver's residual vector. The QR solver reports the
// n−rank components of Qᵀ(y − X·b) beyond the rank; the other solvers report
// y − X·b itself. In both cases its squared norm equals SSQErr().
func (r *Result) Residuals() *matrix.Vector { return cloneVec(r.resid) }

// FullResiduals returns y − X·b (length n).
func (r *Result) FullResiduals() *matrix.Vector { return cloneVec(r.full) }

// SSQErr returns the residual sum of squares ‖y − X·b‖².
func (r *Result) SSQErr() float64 { return r.ssq }

// Covariance returns the unscaled covariance (XᵀX)⁻¹ restricted to the used
// columns, zero-padded to m×m.
func (r *Result) Covariance() *matrix.Matrix { return r.cov.Clone() }

// DoF returns the residual degrees of freedom n − rank.
func (r *Result) DoF() int { return len(r.full) - r.rank }

// Sigma2 returns the error variance estimate SSQErr()/DoF(), or NaN when
// DoF() is zero. The divisor is n − rank rather than n − m: dropped columns
// carry no fitted parameter. On full-rank designs the two are equal.
func (r *Result) Sigma2() float64 {
	dof := r.DoF()
	if dof <= 0 {
		return math.NaN()
	}

	return r.ssq / float64(dof)
}

// ScaledCovariance returns Sigma2()·Covariance().
func (r *Result) ScaledCovariance() *matrix.Matrix {
	out := r.cov.Clone()
	s := r.Sigma2()
	for j := 0; j < out.Cols(); j++ {
		matrix.Scal(s, out.Col(j))
	}

	return out
}

// Rank returns the effective rank of X found by the solver.
func (r *Result) Rank() int { return r.rank }

// Used returns the column indices carrying coefficients, increasing.
func (r *Result) Used() []int { return append([]int(nil), r.used...) }

// Dropped returns the column indices forced to zero, increasing.
func (r *Result) Dropped() []int {
	dropped := make([]int, 0, len(r.coef)-len(r.used))
	k := 0
	for j := range r.coef {
		if k < len(r.used) && r.used[k] == j {
			k++
			continue
		}
		dropped = append(dropped, j)
	}

	return dropped
}

// Iterations returns the number of accepted solve passes, the base solve
// included (1 means no refinement took place).
func (r *Result) Iterations() int { return r.iterations }

func cloneVec(xs []float64) *matrix.Vector {
	return matrix.NewVectorFrom(append([]float64(nil), xs...))
}

// ---------- Compute boundary helpers ----------

// checkShapes panics on nil operands or a y/X row mismatch.
func checkShapes(solver string, y *matrix.Vector, x *matrix.Matrix) (n, m int) {
	tag := solver + "." + opCompute
	if x == nil || y == nil {
		panic(lsqErrorf(tag, matrix.ErrNilMatrix))
	}
	n, m = x.Dims()
	if y.Len() != n {
		panic(lsqErrorf(tag, fmt.Errorf("len(y)=%d, rows(X)=%d: %w", y.Len(), n, matrix.ErrDimensionMismatch)))
	}

	return n, m
}

// validateData rejects empty designs and non-finite data.
func validateData(y *matrix.Vector, x *matrix.Matrix) error {
	n, m := x.Dims()
	if n == 0 || m == 0 {
		return fmt.Errorf("%dx%d design: %w", n, m, matrix.ErrBadShape)
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return err
	}

	return matrix.ValidateVecFinite(y)
}

// fail classifies err, logs it and wraps it into a *ComputeError.
func (o Options) fail(solver string, err error) error {
	kind := classify(err)
	o.logger.Debug().
		Str("solver", solver).
		Str("kind", kind.String()).
		Err(err).
		Msg("compute failed")

	return &ComputeError{Solver: solver, Kind: kind, Err: err}
}

// recoverCompute converts a numerical-condition panic raised below Compute
// into a *ComputeError. Dimension mismatches and foreign panics propagate.
// Must be deferred directly by Compute.
func (o Options) recoverCompute(solver string, res **Result, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok || errors.Is(e, matrix.ErrDimensionMismatch) || classify(e) == KindUnknown {
		panic(r)
	}
	*res = nil
	*err = o.fail(solver, e)
}

// logRank reports a rank-deficient design at debug level.
func (o Options) logRank(solver string, res *Result) {
	if len(res.used) == len(res.coef) {
		return
	}
	o.logger.Debug().
		Str("solver", solver).
		Int("rank", res.rank).
		Ints("dropped", res.Dropped()).
		Msg("rank deficient design")
}
