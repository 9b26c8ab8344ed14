// Package lsq solves dense linear least-squares problems min ‖y − X·b‖.
//
// Three interchangeable implementations share the Solver interface:
//
//   - QRSolver: pivoted Householder QR, optional column scaling
//     (WithNormalize) and iterative refinement (WithIterations,
//     WithSimpleIteration). The accurate default.
//   - CholeskySolver: normal equations XᵀX·b = Xᵀy with compensated
//     cross-products and a tolerant (or strict) Cholesky factor.
//   - SVDSolver: minimum-norm solution via gonum's thin SVD.
//
// Compute returns an immutable *Result (coefficients, residuals, ssqerr,
// covariance, rank, used columns, iterations). Dropped columns get zero
// coefficients and zero covariance rows and columns.
//
// Numerical failures come back as errors matching ErrComputeFailed with a
// FailureKind, so callers can fall back; Chain does this across solvers and
// DefaultFactory hands out QR-then-Cholesky chains. A length mismatch between
// y and X panics.
//
// Solvers hold only immutable configuration and are safe for concurrent use.
// Diagnostics go to an injected zerolog.Logger (WithLogger); the default
// discards them.
package lsq
