// SPDX-License-Identifier: MIT
// Package matrix: interop with gonum.org/v1/gonum/mat.
//
// *Matrix satisfies mat.Matrix and *Vector satisfies mat.Vector, so views can
// be handed to gonum factorizations (SVD, Cholesky, QR) and formatters
// without copying. The converters below move data the other way.

package matrix

import "gonum.org/v1/gonum/mat"

// Compile-time assertions for gonum conformance.
var (
	_ mat.Matrix = (*Matrix)(nil)
	_ mat.Vector = (*Vector)(nil)
)

// T returns the transpose as a mat.Matrix (a zero-copy *Matrix view).
// Use Transposed when the concrete type is needed.
func (m *Matrix) T() mat.Matrix { return m.Transposed() }

// Dims returns (Len(), 1): a Vector is a column vector for gonum.
func (v *Vector) Dims() (rows, cols int) { return v.n, 1 }

// At returns element (i,0). It panics with ErrOutOfRange when j != 0.
func (v *Vector) At(i, j int) float64 {
	if j != 0 {
		panicRange(ctxAt, "column %d of a vector", j)
	}

	return v.AtVec(i)
}

// T returns the row-vector transpose.
func (v *Vector) T() mat.Matrix { return mat.TransposeVec{Vector: v} }

// FromGonum copies any mat.Matrix into a fresh column-major *Matrix.
func FromGonum(a mat.Matrix) *Matrix {
	r, c := a.Dims()
	out, _ := NewMatrix(r, c)
	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			out.data[i+j*out.cs] = a.At(i, j)
		}
	}

	return out
}

// ViewGonum wraps the storage of a *mat.Dense without copying.
// gonum stores row-major, so the view has row stride = Stride and column stride 1.
func ViewGonum(d *mat.Dense) *Matrix {
	raw := d.RawMatrix()

	return &Matrix{data: raw.Data, r: raw.Rows, c: raw.Cols, rs: raw.Stride, cs: 1}
}

// VectorFromGonum copies any mat.Vector into a fresh contiguous *Vector.
func VectorFromGonum(v mat.Vector) *Vector {
	n := v.Len()
	out := &Vector{data: make([]float64, n), n: n, inc: 1}
	var i int
	for i = 0; i < n; i++ {
		out.data[i] = v.AtVec(i)
	}

	return out
}

// ToGonum copies m into a fresh *mat.Dense.
// A 0-row or 0-column view yields nil, since gonum forbids empty Dense values.
func ToGonum(m *Matrix) *mat.Dense {
	if m.r == 0 || m.c == 0 {
		return nil
	}
	out := mat.NewDense(m.r, m.c, nil)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.Set(i, j, m.data[m.off+i*m.rs+j*m.cs])
		}
	}

	return out
}

// VectorToGonum copies v into a fresh *mat.VecDense (nil for an empty vector).
func VectorToGonum(v *Vector) *mat.VecDense {
	if v.n == 0 {
		return nil
	}

	return mat.NewVecDense(v.n, v.ToSlice())
}
