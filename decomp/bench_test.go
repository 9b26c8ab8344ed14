// SPDX-License-Identifier: MIT
package decomp_test

import (
	"testing"

	"github.com/katalvlaran/lsqcore/decomp"
	"github.com/katalvlaran/lsqcore/matrix"
)

var (
	sinkQR   *decomp.QR
	sinkChol *decomp.Cholesky
	sinkVec  *matrix.Vector
)

func BenchmarkNewQR_200x20(b *testing.B) {
	x := RandomMatrix(b, 200, 20, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkQR, _ = decomp.NewQR(x)
	}
}

func BenchmarkNewQR_200x20_NoPivot(b *testing.B) {
	x := RandomMatrix(b, 200, 20, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkQR, _ = decomp.NewQR(x, decomp.WithPivoting(false))
	}
}

func BenchmarkQR_LeastSquares(b *testing.B) {
	qr, _ := decomp.NewQR(RandomMatrix(b, 200, 20, 2))
	y := RandomVec(200, 3)
	coef, _ := matrix.NewVector(qr.Rank())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = qr.LeastSquares(y, coef, nil)
	}
	sinkVec = coef
}

func BenchmarkNewCholesky_30(b *testing.B) {
	s := SPD(b, 100, 30, 1, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkChol, _ = decomp.NewCholesky(s)
	}
}
