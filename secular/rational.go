// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secular

import (
	"fmt"
	"math"
	"time"
)

// DefaultMaxIter is the iteration budget of Rational when MaxIter is zero.
// The bisection safeguard halves the bracket at least once per iteration, so
// the budget comfortably exceeds the ~60 halvings that resolve a double to
// roundoff even when every rational step is rejected.
const DefaultMaxIter = 100

// Rational is the reference secular Solver. Each iteration fits a rational
// model with fixed residues at the two poles bracketing the root (one pole
// and a constant for the topmost root), matched to the current function
// value, and jumps to the model's root; a step leaving the current bracket
// falls back to bisection. The function is strictly monotone between poles,
// so the bracket always contains the root.
//
// The iteration works in the pole-relative variable τ = σ − d[i], which
// preserves relative accuracy of the root's distance to its left pole even
// when that distance is far below the magnitude of the eigenvalues.
type Rational struct {
	// MaxIter is the iteration budget per root. Zero selects DefaultMaxIter.
	MaxIter int
}

// Solve implements the Solver contract. It panics if i is out of range, the
// lengths of d and z disagree, d is not sorted ascending, z[i] is zero, or
// rho or tol is not positive.
func (r Rational) Solve(i int, d, z []float64, rho, tol float64) (mu float64, iters int, elapsed time.Duration, err error) {
	start := time.Now()
	n := len(d)
	switch {
	case n == 0:
		panic(emptyD)
	case len(z) != n:
		panic(badLenZ)
	case i < 0 || i >= n:
		panic(badIndex)
	case rho <= 0 || math.IsNaN(rho) || math.IsInf(rho, 0):
		panic(badScale)
	case tol <= 0:
		panic(badTol)
	case z[i] == 0:
		panic(zeroWeight)
	}

	if n == 1 {
		// f(σ) = 1 + rho·z₀²/(d₀ − σ) vanishes at exactly σ = d₀ + rho·z₀².
		return z[0] * z[0], 0, time.Since(start), nil
	}

	maxIter := r.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	delta := make([]float64, n)
	for j, dj := range d {
		delta[j] = dj - d[i]
	}

	// The root lies in the open interval (0, width) of the shifted variable:
	// up to the next pole for an interior index, and within rho·‖z‖² of the
	// last pole for the topmost index.
	last := i == n-1
	var width float64
	if last {
		for _, zj := range z {
			width += zj * zj
		}
		width *= rho
	} else {
		width = delta[i+1]
		if width <= 0 {
			panic(unsortedD)
		}
	}

	lo, hi := 0.0, width
	tau := 0.5 * width
	for iters = 1; iters <= maxIter; iters++ {
		f, sum := value(tau, delta, z, rho)
		if f == 0 || math.Abs(f) <= tol*sum {
			return tau / rho, iters, time.Since(start), nil
		}
		if f < 0 {
			lo = tau
		} else {
			hi = tau
		}
		next, ok := step(f, tau, width, rho, z, i, last)
		if !ok || next <= lo || next >= hi {
			next = 0.5 * (lo + hi)
		}
		if next == tau || next == lo || next == hi {
			// The bracket has collapsed to adjacent floating-point numbers;
			// the root is resolved to roundoff.
			return tau / rho, iters, time.Since(start), nil
		}
		tau = next
	}
	return 0, maxIter, time.Since(start), fmt.Errorf("secular: root %d: %w", i, ErrNonConvergence)
}

// value evaluates the secular function at the shifted point tau, returning
// its value and the sum of the absolute values of its terms. The latter
// scales the convergence test: near the root the computed f carries rounding
// noise proportional to it.
func value(tau float64, delta, z []float64, rho float64) (f, sum float64) {
	f, sum = 1, 1
	for j, dj := range delta {
		term := rho * z[j] * z[j] / (dj - tau)
		f += term
		sum += math.Abs(term)
	}
	return f, sum
}

// step proposes the next iterate from the rational model matched to f at
// tau. The returned flag reports whether the model produced a usable root in
// (0, width); the caller still validates the proposal against its bracket.
func step(f, tau, width, rho float64, z []float64, i int, last bool) (float64, bool) {
	p := rho * z[i] * z[i]
	if last {
		// Model g(x) = s − p/x with s fixed by g(tau) = f.
		s := f + p/tau
		if s <= 0 {
			return 0, false
		}
		x := p / s
		return x, x > 0 && x < width
	}
	// Model g(x) = s − p/x + q/(width − x) with the residues fixed at the
	// true values and s fixed by g(tau) = f. Its root in (0, width) solves
	// s·x² − (s·width + p + q)·x + p·width = 0.
	q := rho * z[i+1] * z[i+1]
	s := f + p/tau - q/(width-tau)
	a := s
	b := -(s*width + p + q)
	c := p * width
	if a == 0 {
		if b == 0 {
			return 0, false
		}
		x := -c / b
		return x, x > 0 && x < width
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	qq := -0.5 * (b + math.Copysign(sq, b))
	x1 := qq / a
	if x1 > 0 && x1 < width {
		return x1, true
	}
	if qq != 0 {
		x2 := c / qq
		if x2 > 0 && x2 < width {
			return x2, true
		}
	}
	return 0, false
}
