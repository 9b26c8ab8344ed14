// Package lsqcore is a dense linear-algebra and least-squares core for
// regression-style estimation: OLS, GLS after whitening, parameter fits of
// time-series models.
//
// What is inside?
//
//	A small, layered library with gonum interop:
//		• Strided column-major views that share storage (no copies for sub-blocks)
//		• BLAS-style kernels: Scal, Axpy, Dot, Nrm2, Gemv, Gemm, Ger, Syrk
//		• Neumaier-compensated accumulation for cross-products and residuals
//		• Householder QR with rank-revealing column pivoting
//		• Cholesky with strict or tolerant handling of near-zero pivots
//		• Least-squares solvers (QR, Cholesky, SVD) behind one interface
//
// Layout, leaves first:
//
//	matrix/   Vector/Matrix views, kernels, triangular solves, validators
//	decomp/   QR and Cholesky factorizations
//	lsq/      Solver, Result, refinement, fallback chains and factories
//
// Quick example:
//
//	x, _ := matrix.NewMatrixFromRows([][]float64{{1, 0}, {1, 1}, {1, 2}})
//	y := matrix.NewVectorFrom([]float64{1, 3, 5})
//	res, err := lsq.NewQRSolver().Compute(y, x)
//	// res.Coefficients() ≈ [1 2], res.SSQErr() ≈ 0
//
// Failures are values: Compute returns an error matching lsq.ErrComputeFailed
// for singular or non-finite problems, so a caller can try another solver
// (see lsq.Chain). Rank deficiency is not a failure; dropped columns are
// reported by Result.Dropped and carry zero coefficients.
//
//	go get github.com/katalvlaran/lsqcore
package lsqcore
