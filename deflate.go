// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankone

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

// deflation is the outcome of the deflation pass: the indices whose secular
// pole survives, with the eigenvalues and weights restricted to them. After
// deflation the surviving eigenvalues are pairwise distinct and the surviving
// weights are non-zero, which is what the secular solver requires.
type deflation struct {
	idx     []int
	d, z    []float64
	skipped int
}

// deflate eliminates degenerate secular poles in place.
//
// Repeated eigenvalues are handled first: within each group of equal
// eigenvalues a Householder reflection concentrates the whole perturbation
// weight of the group into a single slot, the last one when rho >= 0 and the
// first one when rho < 0, so that this slot faces the direction the updated
// eigenvalue moves. The same orthogonal reflection is applied to the matching
// columns of v, except when the group's weight norm falls below the guard
// gt·(max|λ| + ‖t‖²)·acc, where applying a reflection built from a near-zero
// vector would introduce more error than it removes.
//
// A second pass zeroes every weight with magnitude at or below
// gt·(max|λ|/‖t‖ + ‖t‖)·acc; such components contribute negligibly to the
// rank-one update.
//
// lam must be sorted ascending and snapped by snapSmall; v is row-major n×n.
func deflate(lam, t, v []float64, n int, rho, acc, gt float64) deflation {
	var defl deflation
	tnorm := floats.Norm(t, 2)
	if tnorm == 0 {
		return defl
	}
	var maxLam float64
	for _, li := range lam {
		maxLam = math.Max(maxLam, math.Abs(li))
	}
	reflectTol := gt * (maxLam + tnorm*tnorm) * acc

	bi := blas64.Implementation()
	y := make([]float64, n)
	for start := 0; start < n; {
		end := start
		for end+1 < n && lam[end+1] == lam[start] {
			end++
		}
		if m := end - start + 1; m > 1 {
			h := make([]float64, m)
			copy(h, t[start:end+1])
			nrm := floats.Norm(h, 2)
			hot := m - 1
			if rho < 0 {
				hot = 0
			}
			for j := start; j <= end; j++ {
				t[j] = 0
			}
			t[start+hot] = -nrm
			switch {
			case nrm == 0:
				// The block is already in target form.
			case nrm <= reflectTol:
				defl.skipped++
			default:
				h[hot] += nrm
				hh := bi.Ddot(m, h, 1, h, 1)
				bi.Dgemv(blas.NoTrans, n, m, 1, v[start:], n, h, 1, 0, y, 1)
				bi.Dger(n, m, -2/hh, y, 1, h, 1, v[start:], n)
			}
		}
		start = end + 1
	}

	zeroTol := gt * (maxLam/tnorm + tnorm) * acc
	for i, ti := range t {
		if math.Abs(ti) <= zeroTol {
			t[i] = 0
		}
	}
	for i, ti := range t {
		if ti != 0 {
			defl.idx = append(defl.idx, i)
			defl.d = append(defl.d, lam[i])
			defl.z = append(defl.z, ti)
		}
	}
	return defl
}
