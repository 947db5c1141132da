// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rankone updates the eigendecomposition of a real symmetric matrix
// under a rank-one perturbation.
//
// Given A = V·diag(E)·Vᵗ with orthonormal V, the package computes the
// eigendecomposition of
//
//	Ap = A + ρ·u·uᵗ
//
// without re-diagonalizing from scratch. The perturbation is consumed in the
// eigenbasis of A, t = Vᵗ·u, so that
//
//	Ap = V·(diag(E) + ρ·t·tᵗ)·Vᵗ
//
// and the problem reduces to the diagonal-plus-rank-one form. The updated
// eigenvalues are the roots of the secular equation
//
//	f(σ) = 1 + ρ Σ_j t_j² / (λ_j − σ) = 0
//
// and each updated eigenvector has a closed form as a rational combination of
// the original eigenvectors.
//
// The computation proceeds in stages: the eigenvalues are sorted ascending
// with V and t co-permuted, repeated eigenvalues are collapsed by a
// Householder reflection that concentrates their perturbation weight into a
// single component, negligible weight components are zeroed, one secular root
// is solved per surviving component, and finally the surviving eigenvectors
// are rebuilt and renormalized. Columns eliminated by deflation pass through
// unchanged.
//
// The secular root-finding is a seam: any secular.Solver may be supplied
// through Settings, and the package ships a reference rational-interpolation
// solver as the default.
//
// # Accuracy
//
// The eigenvector formula divides by eigenvalue gaps and is only backward
// stable when the updated eigenvalues carry much higher relative precision
// than the gaps require. When eigenvectors (not just eigenvalues) are needed,
// request an accuracy of 1e-10 or tighter; behavior with looser accuracy is
// best effort. The default accuracy is 1e-12.
//
// References:
//
// "Rank-one modification of the symmetric eigenproblem" by J. R. Bunch,
// C. P. Nielsen and D. C. Sorensen, Numerische Mathematik, Vol. 31, 1978,
// [doi:10.1007/BF01396012].
//
// "Some modified matrix eigenvalue problems" by G. H. Golub, SIAM Review,
// Vol. 15, No. 2, 1973, [doi:10.1137/1015032].
//
// [doi:10.1007/BF01396012]: https://doi.org/10.1007/BF01396012
// [doi:10.1137/1015032]: https://doi.org/10.1137/1015032
package rankone
