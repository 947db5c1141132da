// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secular solves the secular equation of the diagonal-plus-rank-one
// symmetric eigenproblem,
//
//	f(σ) = 1 + ρ Σ_j z_j² / (d_j − σ) = 0,
//
// whose roots are the eigenvalues of diag(d) + ρ·z·zᵗ. For ρ > 0 and sorted,
// pairwise distinct d with non-zero weights, f is strictly increasing between
// consecutive poles and has exactly one root in each interval (d_i, d_{i+1})
// and one beyond d_{n-1}, by the interlacing theorem.
//
// The package defines the Solver capability consumed by the rankone package
// and provides Rational, a reference implementation.
//
// Reference:
// "Rank-one modification of the symmetric eigenproblem" by J. R. Bunch,
// C. P. Nielsen and D. C. Sorensen, Numerische Mathematik, Vol. 31, 1978,
// [doi:10.1007/BF01396012].
// [doi:10.1007/BF01396012]: https://doi.org/10.1007/BF01396012
package secular

import (
	"errors"
	"time"
)

// Panic messages for contract violations by the caller.
const (
	badIndex   = "secular: index out of range"
	badLenZ    = "secular: weight vector length mismatch"
	badScale   = "secular: scale must be positive and finite"
	badTol     = "secular: tolerance must be positive"
	emptyD     = "secular: empty eigenvalue vector"
	unsortedD  = "secular: eigenvalues not sorted ascending"
	zeroWeight = "secular: zero weight at requested index"
)

// ErrNonConvergence is the sentinel wrapped by solver errors when the root
// iteration exhausts its budget without meeting the tolerance.
var ErrNonConvergence = errors.New("secular: root iteration did not converge")

// Solver finds single roots of the secular equation.
//
// Solve locates the i-th root of 1 + rho·Σ z_j²/(d_j − σ), the one bracketed
// strictly between d[i] and d[i+1], or beyond d[n-1] for the topmost index.
// It returns mu such that the root is d[i] + rho·mu, together with the
// iteration count and the elapsed wall-clock time.
//
// The contract requires d sorted ascending with pairwise distinct entries to
// within tol, z[i] non-zero, and rho > 0. A solver that cannot converge
// within its iteration budget must return an error wrapping
// ErrNonConvergence rather than a stale or default value.
type Solver interface {
	Solve(i int, d, z []float64, rho, tol float64) (mu float64, iters int, elapsed time.Duration, err error)
}

// Eval returns the value of the secular function 1 + rho·Σ z_j²/(d_j − x)
// at x. Evaluating exactly at a pole yields an infinity.
func Eval(x float64, d, z []float64, rho float64) float64 {
	f := 1.0
	for j, dj := range d {
		f += rho * z[j] * z[j] / (dj - x)
	}
	return f
}
