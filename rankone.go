// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankone

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/Limber0117/RankOneUpdate/secular"
)

// Default values for the tunable parameters in Settings.
const (
	// DefaultAccuracy is the relative precision floor controlling every
	// "effectively zero" decision in the update.
	DefaultAccuracy = 1e-12
	// DefaultGuardScale is the empirical multiplier of the deflation
	// stability guards, taken from Bunch, Nielsen and Sorensen.
	DefaultGuardScale = 10
	// DefaultBasisTol is the tolerance of the eigenbasis orthonormality
	// check.
	DefaultBasisTol = 1e-10
)

// Settings holds tunable parameters of a rank-one update. The zero value of
// every field selects its default.
type Settings struct {
	// Accuracy is the relative precision floor. Values <= 0 select
	// DefaultAccuracy. For accurate eigenvectors it should be 1e-10 or
	// tighter; see the package documentation.
	Accuracy float64
	// GuardScale multiplies the deflation stability guards. Values <= 0
	// select DefaultGuardScale.
	GuardScale float64
	// BasisTol is the tolerance of the orthonormality check on the supplied
	// eigenbasis. Values <= 0 select DefaultBasisTol.
	BasisTol float64
	// SkipBasisCheck elides the O(r³) orthonormality verification. The
	// result is undefined if the eigenbasis is not in fact orthonormal.
	SkipBasisCheck bool
	// Solver finds the secular roots. A nil Solver selects the reference
	// secular.Rational solver.
	Solver secular.Solver
	// Workers bounds the number of concurrent secular solves. Values below 2
	// select the serial loop. The parallel path returns bitwise identical
	// results.
	Workers int
}

func (s *Settings) fillDefaults() {
	if s.Accuracy <= 0 {
		s.Accuracy = DefaultAccuracy
	}
	if s.GuardScale <= 0 {
		s.GuardScale = DefaultGuardScale
	}
	if s.BasisTol <= 0 {
		s.BasisTol = DefaultBasisTol
	}
	if s.Solver == nil {
		s.Solver = secular.Rational{}
	}
}

// Update computes the eigendecomposition of V·diag(E)·Vᵗ + rho·u·uᵗ where
// t = Vᵗ·u, returning the updated eigenbasis, the updated eigenvalues and
// solve diagnostics. The eigenvalues e may be supplied as a length-r vector
// (r×1 or 1×r) or as an r×r matrix whose diagonal is used. acc <= 0 selects
// DefaultAccuracy.
//
// The returned eigenvalues are ordered ascending by the original eigenvalue
// each one derives from; column j of w pairs with f[j]. Update panics on
// shape mismatches between v, e and t and on rho equal to zero, and returns
// an error for data-dependent failures; see Eigen.Factorize.
func Update(v, e mat.Matrix, t mat.Vector, rho, acc float64) (w *mat.Dense, f []float64, stats Stats, err error) {
	var eig Eigen
	if err := eig.Factorize(v, e, t, rho, &Settings{Accuracy: acc}); err != nil {
		return nil, nil, Stats{}, err
	}
	w = &mat.Dense{}
	eig.VectorsTo(w)
	return w, eig.Values(nil), eig.Stats(), nil
}

// Eigen is the result of a rank-one update of a symmetric eigendecomposition.
// The zero value is ready for a call to Factorize.
type Eigen struct {
	n       int
	values  []float64
	vectors *mat.Dense
	stats   Stats
	ok      bool
}

// Factorize computes the eigendecomposition of V·diag(E)·Vᵗ + rho·u·uᵗ with
// t = Vᵗ·u. s configures the computation; a nil s selects all defaults. The
// caller's arguments are never modified.
//
// Factorize panics if v is not square, if the shapes of v, e and t disagree,
// or if rho is zero or not finite: these are precondition violations. It
// returns an OrthonormalityError if v fails the orthonormality check, a
// ConvergenceError if the secular solver fails for some root, and an
// InstabilityError if a non-finite or degenerate intermediate is detected.
// On error no partial results are retained and the accessors panic.
func (e *Eigen) Factorize(v, lambda mat.Matrix, t mat.Vector, rho float64, s *Settings) error {
	start := time.Now()
	e.ok = false

	var cfg Settings
	if s != nil {
		cfg = *s
	}
	cfg.fillDefaults()

	n, c := v.Dims()
	switch {
	case n == 0:
		panic(zeroDim)
	case n != c:
		panic(notSquare)
	case t.Len() != n:
		panic(badShapeT)
	case rho == 0 || math.IsNaN(rho) || math.IsInf(rho, 0):
		panic(badRho)
	case math.IsNaN(cfg.Accuracy) || math.IsInf(cfg.Accuracy, 0):
		panic(badAccuracy)
	}

	lam, tw, w := normalizeInputs(v, lambda, t, n)

	if !cfg.SkipBasisCheck {
		if dev := orthoDeviation(w, n); dev > cfg.BasisTol {
			return OrthonormalityError(dev)
		}
	}

	snapSmall(lam, cfg.Accuracy)

	defl := deflate(lam, tw, w, n, rho, cfg.Accuracy, cfg.GuardScale)

	f := make([]float64, n)
	copy(f, lam)

	var iters, times []float64
	if nt := len(defl.idx); nt > 0 {
		mu := make([]float64, nt)
		iters = make([]float64, nt)
		times = make([]float64, nt)
		err := solveRoots(cfg.Solver, defl, rho, cfg.Accuracy, cfg.Workers, mu, iters, times)
		if err != nil {
			return err
		}

		fbar := make([]float64, nt)
		for k := range mu {
			fk := defl.d[k] + rho*mu[k]
			if math.IsNaN(fk) || math.IsInf(fk, 0) {
				return InstabilityError("eigenvalue update: non-finite updated eigenvalue")
			}
			if math.Abs(fk) < cfg.Accuracy {
				fk = 0
			}
			fbar[k] = fk
			f[defl.idx[k]] = fk
		}

		if err := reconstruct(w, n, defl, fbar); err != nil {
			return err
		}
	}

	e.n = n
	e.values = f
	e.vectors = mat.NewDense(n, n, w)
	e.stats = summarize(time.Since(start), iters, times, len(defl.idx), defl.skipped)
	e.ok = true
	return nil
}

// Values returns the updated eigenvalues. If dst is non-nil the eigenvalues
// are stored in dst and dst is returned; it must have length equal to the
// order of the problem. Values panics if the receiver holds no valid
// factorization.
func (e *Eigen) Values(dst []float64) []float64 {
	if !e.ok {
		panic(noFactorization)
	}
	if dst == nil {
		dst = make([]float64, e.n)
	}
	if len(dst) != e.n {
		panic(badLenDst)
	}
	copy(dst, e.values)
	return dst
}

// VectorsTo stores the updated eigenbasis into dst. Column j of dst is the
// eigenvector paired with the j-th updated eigenvalue. If dst is empty it is
// resized; otherwise it must be r×r. VectorsTo panics if the receiver holds
// no valid factorization.
func (e *Eigen) VectorsTo(dst *mat.Dense) {
	if !e.ok {
		panic(noFactorization)
	}
	if dst.IsEmpty() {
		dst.ReuseAs(e.n, e.n)
	} else if r, c := dst.Dims(); r != e.n || c != e.n {
		panic(badShapeDst)
	}
	dst.Copy(e.vectors)
}

// Stats returns the diagnostics of the factorization. It panics if the
// receiver holds no valid factorization.
func (e *Eigen) Stats() Stats {
	if !e.ok {
		panic(noFactorization)
	}
	return e.stats
}
