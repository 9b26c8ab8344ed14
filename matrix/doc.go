// Package matrix is the dense numerical kernel underneath the least-squares
// solvers.
//
// The matrix package provides:
//
//   - Vector and Matrix: strided views over shared float64 storage. Fresh
//     matrices are column-major; rows, columns, diagonals, windows and
//     transposes are zero-copy views.
//   - Accumulator / AccumulatorMatrix: Neumaier compensated summation, used
//     for XᵀX, Xᵀy and residual recomputation (AccMode Robust vs Fast).
//   - BLAS-style kernels: Scal, Axpy, Dot, Nrm2, Copy, Swap (level 1),
//     Gemv, Ger (level 2), Gemm, Syrk (level 3) and the compensated
//     CrossProduct builders.
//   - Triangular solvers: SolveUpper / SolveLower and their generalized
//     *Tol forms for rank-deficient factors.
//   - gonum interop: *Matrix is a mat.Matrix, *Vector is a mat.Vector.
//
// Kernels panic on non-conforming operands (an error wrapping
// ErrDimensionMismatch); numeric conditions such as a singular triangle are
// returned as errors.
//
// See the examples in this package for usage patterns.
package matrix
