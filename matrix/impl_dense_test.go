// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for constructors and view algebra.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/lsqcore/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix_ZeroFilledColumnMajor(t *testing.T) {
	t.Parallel()

	m := MustMatrix(t, 2, 3)
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	rs, cs := m.Strides()
	require.Equal(t, 1, rs)
	require.Equal(t, 2, cs)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			require.Zero(t, m.At(i, j))
		}
	}
}

func TestConstructors_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"negative rows", func() error { _, err := matrix.NewMatrix(-1, 2); return err }},
		{"short buffer", func() error { _, err := matrix.NewMatrixFrom(2, 2, []float64{1, 2, 3}); return err }},
		{"ragged rows", func() error { _, err := matrix.NewMatrixFromRows([][]float64{{1, 2}, {3}}); return err }},
		{"view past end", func() error { _, err := matrix.NewMatrixView(make([]float64, 4), 1, 2, 2, 1, 2); return err }},
		{"negative vector", func() error { _, err := matrix.NewVector(-3); return err }},
		{"vector view past end", func() error { _, err := matrix.NewVectorView(make([]float64, 5), 0, 3, 3); return err }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.fn()
			require.Error(t, err)
			require.Truef(t, errors.Is(err, matrix.ErrBadShape), "expected ErrBadShape, got %v", err)
		})
	}
}

func TestNewMatrixFromRows_Layout(t *testing.T) {
	t.Parallel()

	m := MustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.Equal(t, 2.0, m.At(0, 1))
	require.Equal(t, 4.0, m.At(1, 0))
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m.ToRows())
}

func TestNewMatrixFrom_SharesBuffer(t *testing.T) {
	t.Parallel()

	buf := []float64{1, 2, 3, 4} // column-major 2×2: [[1 3] [2 4]]
	m, err := matrix.NewMatrixFrom(2, 2, buf)
	require.NoError(t, err)
	require.Equal(t, 3.0, m.At(0, 1))
	m.Set(1, 1, 40)
	require.Equal(t, 40.0, buf[3])
}

func TestViews_AliasStorage(t *testing.T) {
	t.Parallel()

	m := MustRows(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	col := m.Col(1)
	require.Equal(t, []float64{2, 5, 8}, col.ToSlice())
	row := m.Row(2)
	require.Equal(t, []float64{7, 8, 9}, row.ToSlice())
	require.Equal(t, []float64{1, 5, 9}, m.Diag().ToSlice())

	sub := m.Slice(1, 1, 2, 2)
	require.Equal(t, [][]float64{{5, 6}, {8, 9}}, sub.ToRows())

	tr := m.Transposed()
	require.Equal(t, 4.0, tr.At(0, 1))
	require.Equal(t, []float64{4, 5, 6}, tr.Col(1).ToSlice())

	// Writes through any view land in the shared buffer.
	sub.Set(0, 0, -5)
	require.Equal(t, -5.0, m.At(1, 1))
	tr.Set(2, 0, -3)
	require.Equal(t, -3.0, m.At(0, 2))
	col.SetVec(0, -2)
	require.Equal(t, -2.0, m.At(0, 1))
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	m := MustRows(t, [][]float64{{1, 2}, {3, 4}})
	tr := m.Transposed().Clone()
	rs, cs := tr.Strides()
	require.Equal(t, 1, rs)
	require.Equal(t, 2, cs)
	require.Equal(t, [][]float64{{1, 3}, {2, 4}}, tr.ToRows())
	tr.Set(0, 0, 100)
	require.Equal(t, 1.0, m.At(0, 0))

	v := m.Row(0).Clone()
	require.Equal(t, 1, v.Inc())
	v.SetVec(1, 100)
	require.Equal(t, 2.0, m.At(0, 1))
}

func TestNewMatrixView_Strided(t *testing.T) {
	t.Parallel()

	// Row-major 2×3 buffer read through a custom stride pattern.
	buf := []float64{1, 2, 3, 4, 5, 6}
	m, err := matrix.NewMatrixView(buf, 0, 2, 3, 3, 1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m.ToRows())

	v, err := matrix.NewVectorView(buf, 5, 3, -2)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 4, 2}, v.ToSlice())
}

func TestAccessors_PanicOutOfRange(t *testing.T) {
	t.Parallel()

	m := MustMatrix(t, 2, 2)
	RequirePanicIs(t, matrix.ErrOutOfRange, func() { m.At(2, 0) })
	RequirePanicIs(t, matrix.ErrOutOfRange, func() { m.Set(0, -1, 1) })
	RequirePanicIs(t, matrix.ErrOutOfRange, func() { m.Col(5) })
	RequirePanicIs(t, matrix.ErrOutOfRange, func() { m.Slice(1, 1, 2, 1) })
	RequirePanicIs(t, matrix.ErrOutOfRange, func() { Vec(1, 2).AtVec(2) })
	RequirePanicIs(t, matrix.ErrOutOfRange, func() { Vec(1, 2).Slice(1, 2) })

	_, err := m.View(1, 1, 2, 1)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestZeroAreaMatrix(t *testing.T) {
	t.Parallel()

	m := MustMatrix(t, 0, 3)
	r, c := m.Dims()
	require.Equal(t, 0, r)
	require.Equal(t, 3, c)
	require.Equal(t, 0, m.Col(2).Len())
	require.Equal(t, 0, m.Clone().Rows())
}
