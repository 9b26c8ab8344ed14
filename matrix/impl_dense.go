// SPDX-License-Identifier: MIT
// Package matrix: constructors and view algebra for Vector and Matrix.
//
// Purpose:
//   - Allocate column-major matrices and contiguous vectors.
//   - Derive zero-copy views: rows, columns, diagonals, windows, transposes.
//   - Materialize independent copies (Clone) when lifetimes must split.
//
// Notes:
//   - Accessors At/Set follow the gonum convention: an invalid index is a
//     programmer error and panics with an error wrapping ErrOutOfRange.
//   - Constructors validate user-supplied shapes and return sentinel errors.

package matrix

import (
	"fmt"
	"strings"
)

const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxView      = "View"
	ctxSlice     = "Slice"
	ctxNewMatrix = "NewMatrix"
	ctxNewVector = "NewVector"
)

// Compile-time assertions for fmt.Stringer conformance.
var (
	_ fmt.Stringer = (*Matrix)(nil)
	_ fmt.Stringer = (*Vector)(nil)
)

// spanOK reports whether every element of a strided window lies inside a
// buffer of length size. Empty windows are always valid.
func spanOK(size, off, r, c, rs, cs int) bool {
	if r < 0 || c < 0 {
		return false
	}
	if r == 0 || c == 0 {
		return true
	}
	lo, hi := off, off // min and max reachable index
	if d := (r - 1) * rs; d < 0 {
		lo += d
	} else {
		hi += d
	}
	if d := (c - 1) * cs; d < 0 {
		lo += d
	} else {
		hi += d
	}

	return lo >= 0 && hi < size
}

// NewMatrix creates an r×c zero matrix using column-major storage.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer; rs=1, cs=rows.
//
// Inputs:
//   - rows, cols: non-negative shape. Zero-area matrices are legal and are
//     used by callers to exercise degenerate-shape paths.
//
// Returns:
//   - *Matrix owning a fresh buffer.
//
// Errors:
//   - ErrBadShape (negative dimension).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxNewMatrix, rows, cols, ErrBadShape)
	}

	return &Matrix{
		data: make([]float64, rows*cols), // zeroed by the runtime
		r:    rows,
		c:    cols,
		rs:   1,
		cs:   max(rows, 1), // keep a valid stride for 0×c matrices
	}, nil
}

// NewMatrixFrom wraps a column-major buffer as an r×c matrix without copying.
// Subsequent writes through the Matrix are visible in data and vice versa.
//
// Errors:
//   - ErrBadShape if len(data) != rows*cols or a dimension is negative.
func NewMatrixFrom(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("%s(%d,%d) with len %d: %w", ctxNewMatrix, rows, cols, len(data), ErrBadShape)
	}

	return &Matrix{data: data, r: rows, c: cols, rs: 1, cs: max(rows, 1)}, nil
}

// NewMatrixFromRows copies a row-major literal into a fresh column-major matrix.
// It is the most readable way to spell small matrices in code and tests.
//
// Errors:
//   - ErrBadShape if rows is ragged.
func NewMatrixFromRows(rows [][]float64) (*Matrix, error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	m, err := NewMatrix(r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d columns, want %d: %w", ctxNewMatrix, i, len(rows[i]), c, ErrBadShape)
		}
		for j = 0; j < c; j++ {
			m.data[i+j*m.cs] = rows[i][j]
		}
	}

	return m, nil
}

// NewMatrixView builds an arbitrary strided view over data.
// Element (i,j) maps to data[off+i*rowStride+j*colStride].
//
// Errors:
//   - ErrBadShape if any element of the window would fall outside data.
func NewMatrixView(data []float64, off, rows, cols, rowStride, colStride int) (*Matrix, error) {
	if !spanOK(len(data), off, rows, cols, rowStride, colStride) {
		return nil, fmt.Errorf("%s(off=%d,%dx%d,rs=%d,cs=%d) over len %d: %w",
			ctxView, off, rows, cols, rowStride, colStride, len(data), ErrBadShape)
	}

	return &Matrix{data: data, off: off, r: rows, c: cols, rs: rowStride, cs: colStride}, nil
}

// NewVector creates a contiguous zero vector of length n.
//
// Errors:
//   - ErrBadShape if n < 0.
func NewVector(n int) (*Vector, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s(%d): %w", ctxNewVector, n, ErrBadShape)
	}

	return &Vector{data: make([]float64, n), n: n, inc: 1}, nil
}

// NewVectorFrom wraps data as a contiguous vector without copying.
func NewVectorFrom(data []float64) *Vector {
	return &Vector{data: data, n: len(data), inc: 1}
}

// NewVectorView builds a strided view: element i maps to data[off+i*inc].
//
// Errors:
//   - ErrBadShape if the view leaves data or inc == 0 with n > 1.
func NewVectorView(data []float64, off, n, inc int) (*Vector, error) {
	if (inc == 0 && n > 1) || !spanOK(len(data), off, n, 1, inc, 1) {
		return nil, fmt.Errorf("%s(off=%d,n=%d,inc=%d) over len %d: %w", ctxView, off, n, inc, len(data), ErrBadShape)
	}

	return &Vector{data: data, off: off, n: n, inc: inc}, nil
}

// ---------- Matrix accessors ----------

// Rows returns the number of rows. Complexity: O(1).
func (m *Matrix) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Matrix) Cols() int { return m.c }

// Dims returns (rows, cols); it satisfies gonum's mat.Matrix.
func (m *Matrix) Dims() (rows, cols int) { return m.r, m.c }

// Strides returns the row and column strides of the view.
func (m *Matrix) Strides() (rowStride, colStride int) { return m.rs, m.cs }

// At returns element (i,j). It panics with ErrOutOfRange on an invalid index.
func (m *Matrix) At(i, j int) float64 {
	if uint(i) >= uint(m.r) || uint(j) >= uint(m.c) {
		panicRange(ctxAt, "(%d,%d) outside %dx%d", i, j, m.r, m.c)
	}

	return m.data[m.off+i*m.rs+j*m.cs]
}

// Set assigns element (i,j). It panics with ErrOutOfRange on an invalid index.
func (m *Matrix) Set(i, j int, v float64) {
	if uint(i) >= uint(m.r) || uint(j) >= uint(m.c) {
		panicRange(ctxSet, "(%d,%d) outside %dx%d", i, j, m.r, m.c)
	}
	m.data[m.off+i*m.rs+j*m.cs] = v
}

// Col returns column j as a zero-copy vector view.
func (m *Matrix) Col(j int) *Vector {
	if uint(j) >= uint(m.c) {
		panicRange("Col", "%d outside %d columns", j, m.c)
	}

	return &Vector{data: m.data, off: m.off + j*m.cs, n: m.r, inc: m.rs}
}

// Row returns row i as a zero-copy vector view.
func (m *Matrix) Row(i int) *Vector {
	if uint(i) >= uint(m.r) {
		panicRange("Row", "%d outside %d rows", i, m.r)
	}

	return &Vector{data: m.data, off: m.off + i*m.rs, n: m.c, inc: m.cs}
}

// Diag returns the main diagonal (length min(rows, cols)) as a view.
func (m *Matrix) Diag() *Vector {
	return &Vector{data: m.data, off: m.off, n: min(m.r, m.c), inc: m.rs + m.cs}
}

// Slice returns the rows×cols window whose top-left corner is (r0,c0).
// The window shares storage with m. It panics with ErrOutOfRange on a bad window.
func (m *Matrix) Slice(r0, c0, rows, cols int) *Matrix {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > m.r || c0+cols > m.c {
		panicRange(ctxSlice, "(%d,%d,%d,%d) outside %dx%d", r0, c0, rows, cols, m.r, m.c)
	}

	return &Matrix{data: m.data, off: m.off + r0*m.rs + c0*m.cs, r: rows, c: cols, rs: m.rs, cs: m.cs}
}

// View is the checked form of Slice: a bad window is reported as ErrBadShape.
func (m *Matrix) View(r0, c0, rows, cols int) (*Matrix, error) {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Matrix.%s(%d,%d,%d,%d): %w", ctxView, r0, c0, rows, cols, ErrBadShape)
	}

	return m.Slice(r0, c0, rows, cols), nil
}

// Transposed returns mᵀ as a zero-copy view (rows/cols and strides swapped).
func (m *Matrix) Transposed() *Matrix {
	return &Matrix{data: m.data, off: m.off, r: m.c, c: m.r, rs: m.cs, cs: m.rs}
}

// Clone materializes the view into a fresh column-major matrix.
// Complexity: O(r*c).
func (m *Matrix) Clone() *Matrix {
	out, _ := NewMatrix(m.r, m.c) // shape already valid
	var j int
	for j = 0; j < m.c; j++ {
		Copy(out.Col(j), m.Col(j))
	}

	return out
}

// CopyFrom overwrites m with src element-wise. Shapes must match.
func (m *Matrix) CopyFrom(src *Matrix) {
	if m.r != src.r || m.c != src.c {
		panicMismatch("CopyFrom", "%dx%d <- %dx%d", m.r, m.c, src.r, src.c)
	}
	var j int
	for j = 0; j < m.c; j++ {
		Copy(m.Col(j), src.Col(j))
	}
}

// Fill sets every element of the view to v.
func (m *Matrix) Fill(v float64) {
	var j int
	for j = 0; j < m.c; j++ {
		m.Col(j).Fill(v)
	}
}

// ToRows copies the view into a row-major [][]float64.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	var i, j int
	for i = 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		for j = 0; j < m.c; j++ {
			out[i][j] = m.data[m.off+i*m.rs+j*m.cs]
		}
	}

	return out
}

// String renders the matrix row by row with %g formatting.
func (m *Matrix) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", m.data[m.off+i*m.rs+j*m.cs])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// ---------- Vector accessors ----------

// Len returns the logical length; it satisfies gonum's mat.Vector.
func (v *Vector) Len() int { return v.n }

// Inc returns the stride between consecutive elements.
func (v *Vector) Inc() int { return v.inc }

// AtVec returns element i. It panics with ErrOutOfRange on an invalid index.
func (v *Vector) AtVec(i int) float64 {
	if uint(i) >= uint(v.n) {
		panicRange("AtVec", "%d outside length %d", i, v.n)
	}

	return v.data[v.off+i*v.inc]
}

// SetVec assigns element i. It panics with ErrOutOfRange on an invalid index.
func (v *Vector) SetVec(i int, x float64) {
	if uint(i) >= uint(v.n) {
		panicRange("SetVec", "%d outside length %d", i, v.n)
	}
	v.data[v.off+i*v.inc] = x
}

// Slice returns elements [i, i+n) as a view sharing storage with v.
func (v *Vector) Slice(i, n int) *Vector {
	if i < 0 || n < 0 || i+n > v.n {
		panicRange(ctxSlice, "[%d,%d) outside length %d", i, i+n, v.n)
	}

	return &Vector{data: v.data, off: v.off + i*v.inc, n: n, inc: v.inc}
}

// Clone materializes v into a fresh contiguous vector.
func (v *Vector) Clone() *Vector {
	out := &Vector{data: make([]float64, v.n), n: v.n, inc: 1}
	Copy(out, v)

	return out
}

// Fill sets every element to x.
func (v *Vector) Fill(x float64) {
	var i, p int
	for i, p = 0, v.off; i < v.n; i, p = i+1, p+v.inc {
		v.data[p] = x
	}
}

// ToSlice copies the logical elements into a fresh []float64.
func (v *Vector) ToSlice() []float64 {
	out := make([]float64, v.n)
	var i, p int
	for i, p = 0, v.off; i < v.n; i, p = i+1, p+v.inc {
		out[i] = v.data[p]
	}

	return out
}

// String renders the vector as [a b c].
func (v *Vector) String() string {
	return fmt.Sprint(v.ToSlice())
}
