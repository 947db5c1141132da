// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankone

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// reconstruct replaces the surviving columns of v with the updated
// eigenvectors, following the Bunch–Nielsen–Sorensen closed form: the k-th
// updated eigenvector is
//
//	Σ_j v[:,idx[j]] · z[j] / (fbar[k] − d[j])
//
// over the surviving set, normalized to unit Euclidean norm. Deflated columns
// are left untouched. A vanishing gap, a non-finite coefficient or a
// degenerate column norm is reported as an InstabilityError rather than
// propagated into the result.
func reconstruct(v []float64, n int, defl deflation, fbar []float64) error {
	nt := len(defl.idx)

	c := make([]float64, nt*nt)
	for j := 0; j < nt; j++ {
		for k := 0; k < nt; k++ {
			gap := fbar[k] - defl.d[j]
			if gap == 0 {
				return InstabilityError("eigenvector reconstruction: zero eigenvalue gap")
			}
			cjk := defl.z[j] / gap
			if math.IsNaN(cjk) || math.IsInf(cjk, 0) {
				return InstabilityError("eigenvector reconstruction: non-finite coefficient")
			}
			c[j*nt+k] = cjk
		}
	}

	vs := make([]float64, n*nt)
	for i := 0; i < n; i++ {
		for j := 0; j < nt; j++ {
			vs[i*nt+j] = v[i*n+defl.idx[j]]
		}
	}

	ws := make([]float64, n*nt)
	bi := blas64.Implementation()
	bi.Dgemm(blas.NoTrans, blas.NoTrans, n, nt, nt, 1, vs, nt, c, nt, 0, ws, nt)

	for k := 0; k < nt; k++ {
		nrm := bi.Dnrm2(n, ws[k:], nt)
		if nrm == 0 || math.IsNaN(nrm) || math.IsInf(nrm, 0) {
			return InstabilityError("eigenvector normalization: degenerate column norm")
		}
		bi.Dscal(n, 1/nrm, ws[k:], nt)
	}

	for i := 0; i < n; i++ {
		for k := 0; k < nt; k++ {
			v[i*n+defl.idx[k]] = ws[i*nt+k]
		}
	}
	return nil
}
