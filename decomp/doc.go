// Package decomp provides the two factorizations behind the least-squares
// solvers.
//
//   - QR: Householder reflectors with optional column pivoting (default on).
//     Q is never formed; ApplyQt / ApplyQ replay the stored reflectors.
//     Rank() counts the columns whose residual norm exceeds ε·|R[0,0]|;
//     without pivoting a dependent column is skipped and the sweep goes on.
//     Used() lists the retained original columns in increasing order and
//     LeastSquares solves on them.
//   - Cholesky: lower factor of a symmetric matrix. Strict mode rejects any
//     non-positive pivot; tolerant mode zeroes the column of a pivot below
//     eps·|S[j,j]| and keeps going, so rank-deficient Gram matrices still
//     produce a usable generalized solve and inverse.
//
// Configuration is through functional options (WithPivoting, WithRankEpsilon,
// WithStrict, WithTolerance, WithSymmetryTolerance). Input problems are
// reported with the matrix sentinels; ErrNotPositiveDefinite and
// ErrDegenerateShape are added here.
package decomp
