// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secular

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

// randomProblem returns a sorted eigenvalue vector with gaps in [0.1, 1.1)
// and weights bounded away from zero.
func randomProblem(n int, rnd *rand.Rand) (d, z []float64) {
	d = make([]float64, n)
	z = make([]float64, n)
	d[0] = rnd.NormFloat64()
	for j := 1; j < n; j++ {
		d[j] = d[j-1] + 0.1 + rnd.Float64()
	}
	for j := range z {
		z[j] = 0.2 + rnd.Float64()
		if rnd.IntN(2) == 0 {
			z[j] = -z[j]
		}
	}
	return d, z
}

func TestRationalSingleRoot(t *testing.T) {
	var slv Rational
	mu, iters, _, err := slv.Solve(0, []float64{3.5}, []float64{2}, 0.7, 1e-12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mu != 4 {
		t.Errorf("n=1 root: got mu=%v, want 4", mu)
	}
	if iters != 0 {
		t.Errorf("n=1 root: got %d iterations, want 0", iters)
	}
}

func TestRationalTwoPoles(t *testing.T) {
	// For n=2 the rational model coincides with the secular function, so
	// both roots must come out at full accuracy.
	rnd := rand.New(rand.NewPCG(1, 1))
	const tol = 1e-12
	var slv Rational
	for trial := 0; trial < 50; trial++ {
		d, z := randomProblem(2, rnd)
		rho := 0.5 + rnd.Float64()

		var roots [2]float64
		for i := 0; i < 2; i++ {
			mu, _, _, err := slv.Solve(i, d, z, rho, tol)
			if err != nil {
				t.Fatalf("trial %d root %d: unexpected error: %v", trial, i, err)
			}
			roots[i] = d[i] + rho*mu
		}

		if !(d[0] < roots[0] && roots[0] < d[1] && d[1] < roots[1]) {
			t.Errorf("trial %d: roots %v do not interlace poles %v", trial, roots, d)
		}
		wantTrace := d[0] + d[1] + rho*(z[0]*z[0]+z[1]*z[1])
		gotTrace := roots[0] + roots[1]
		if math.Abs(gotTrace-wantTrace) > 1e-10*(1+math.Abs(wantTrace)) {
			t.Errorf("trial %d: trace %v, want %v", trial, gotTrace, wantTrace)
		}
	}
}

func TestRationalRandom(t *testing.T) {
	rnd := rand.New(rand.NewPCG(2, 3))
	const tol = 1e-12
	var slv Rational
	for _, n := range []int{3, 5, 10, 20} {
		for trial := 0; trial < 10; trial++ {
			d, z := randomProblem(n, rnd)
			rho := 0.5 + 2*rnd.Float64()

			var zn, trace float64
			for j := range z {
				zn += z[j] * z[j]
			}

			for i := 0; i < n; i++ {
				mu, iters, _, err := slv.Solve(i, d, z, rho, tol)
				if err != nil {
					t.Fatalf("n=%d trial=%d root=%d: unexpected error: %v", n, trial, i, err)
				}
				if iters < 1 || iters > DefaultMaxIter {
					t.Errorf("n=%d trial=%d root=%d: implausible iteration count %d", n, trial, i, iters)
				}
				sigma := d[i] + rho*mu

				// Bracketing by interlacing.
				if sigma <= d[i] {
					t.Errorf("n=%d trial=%d root=%d: root %v not above pole %v", n, trial, i, sigma, d[i])
				}
				if i < n-1 && sigma >= d[i+1] {
					t.Errorf("n=%d trial=%d root=%d: root %v not below pole %v", n, trial, i, sigma, d[i+1])
				}
				if i == n-1 && sigma >= d[i]+rho*zn {
					t.Errorf("n=%d trial=%d: top root %v beyond bound %v", n, trial, sigma, d[i]+rho*zn)
				}

				// Small relative residual. The residual is scaled by the sum
				// of term magnitudes, matching the rounding noise floor of the
				// secular function near a root.
				sum := 1.0
				for j := range d {
					sum += math.Abs(rho * z[j] * z[j] / (d[j] - sigma))
				}
				if res := math.Abs(Eval(sigma, d, z, rho)); res > 1e-9*sum {
					t.Errorf("n=%d trial=%d root=%d: residual %v too large (scale %v)", n, trial, i, res, sum)
				}

				trace += sigma
			}

			var wantTrace float64
			for j := range d {
				wantTrace += d[j]
			}
			wantTrace += rho * zn
			if math.Abs(trace-wantTrace) > 1e-9*(1+math.Abs(wantTrace)) {
				t.Errorf("n=%d trial=%d: trace %v, want %v", n, trial, trace, wantTrace)
			}
		}
	}
}

func TestRationalNonConvergence(t *testing.T) {
	slv := Rational{MaxIter: 1}
	d := []float64{0, 1, 100}
	z := []float64{1, 1, 1}
	_, iters, _, err := slv.Solve(0, d, z, 1, 1e-12)
	if err == nil {
		t.Fatal("expected non-convergence error with MaxIter=1")
	}
	if !errors.Is(err, ErrNonConvergence) {
		t.Errorf("error %v does not wrap ErrNonConvergence", err)
	}
	if iters != 1 {
		t.Errorf("got %d iterations, want 1", iters)
	}
}

func TestEval(t *testing.T) {
	// 1 + 2·(1/(−1−0) + 1/(1−0)) = 1 exactly.
	if got := Eval(0, []float64{-1, 1}, []float64{1, 1}, 2); got != 1 {
		t.Errorf("Eval = %v, want 1", got)
	}
	if got := Eval(1, []float64{-1, 1}, []float64{1, 1}, 2); !math.IsInf(got, 0) {
		t.Errorf("Eval at pole = %v, want infinity", got)
	}
}

func TestRationalPanics(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	var slv Rational
	d := []float64{1, 2}
	z := []float64{1, 1}
	mustPanic("empty d", func() { slv.Solve(0, nil, nil, 1, 1e-12) })
	mustPanic("length mismatch", func() { slv.Solve(0, d, z[:1], 1, 1e-12) })
	mustPanic("index out of range", func() { slv.Solve(2, d, z, 1, 1e-12) })
	mustPanic("negative scale", func() { slv.Solve(0, d, z, -1, 1e-12) })
	mustPanic("zero tolerance", func() { slv.Solve(0, d, z, 1, 0) })
	mustPanic("zero weight", func() { slv.Solve(0, d, []float64{0, 1}, 1, 1e-12) })
	mustPanic("unsorted", func() { slv.Solve(0, []float64{2, 1}, z, 1, 1e-12) })
}

func BenchmarkRational(b *testing.B) {
	rnd := rand.New(rand.NewPCG(1, 1))
	const n = 100
	d, z := randomProblem(n, rnd)
	var slv Rational
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _, err := slv.Solve(n/2, d, z, 1, 1e-12)
		if err != nil {
			b.Fatal(err)
		}
	}
}
