// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankone

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// diagonalOf extracts the eigenvalue vector from e, which may be supplied as
// a column vector (n×1), a row vector (1×n), or an n×n matrix whose diagonal
// holds the eigenvalues. Any other shape panics.
func diagonalOf(e mat.Matrix, n int) []float64 {
	r, c := e.Dims()
	lam := make([]float64, n)
	switch {
	case r == n && c == 1:
		for i := range lam {
			lam[i] = e.At(i, 0)
		}
	case r == 1 && c == n:
		for i := range lam {
			lam[i] = e.At(0, i)
		}
	case r == n && c == n:
		for i := range lam {
			lam[i] = e.At(i, i)
		}
	default:
		panic(badShapeE)
	}
	return lam
}

// normalizeInputs gathers the eigenvalues, the perturbation vector and the
// columns of v into fresh working arrays ordered by ascending eigenvalue.
// The returned slices do not alias the caller's data. v is stored row-major
// with leading dimension n.
func normalizeInputs(v mat.Matrix, e mat.Matrix, t mat.Vector, n int) (lam, tw, w []float64) {
	lam = diagonalOf(e, n)
	perm := make([]int, n)
	floats.Argsort(lam, perm)

	w = make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			w[i*n+j] = v.At(i, perm[j])
		}
	}
	tw = make([]float64, n)
	for j := 0; j < n; j++ {
		tw[j] = t.AtVec(perm[j])
	}
	return lam, tw, w
}

// snapSmall sets eigenvalues with magnitude below n·acc·sqrt(max|λ|) to
// exactly zero. Later equality tests on λ rely on this snapping rather than
// raw floating-point comparison.
func snapSmall(lam []float64, acc float64) {
	var maxLam float64
	for _, li := range lam {
		maxLam = math.Max(maxLam, math.Abs(li))
	}
	tol := float64(len(lam)) * acc * math.Sqrt(maxLam)
	for i, li := range lam {
		if math.Abs(li) < tol {
			lam[i] = 0
		}
	}
}

// orthoDeviation returns the largest absolute deviation of VᵗV from the
// identity for the row-major n×n matrix v.
func orthoDeviation(v []float64, n int) float64 {
	bi := blas64.Implementation()
	var dev float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dot := bi.Ddot(n, v[i:], n, v[j:], n)
			if i == j {
				dot--
			}
			dev = math.Max(dev, math.Abs(dot))
		}
	}
	return dev
}
