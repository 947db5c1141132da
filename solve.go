// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankone

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Limber0117/RankOneUpdate/secular"
)

// solveRoots finds the secular root for every surviving eigenvalue, writing
// the roots into mu and the per-root diagnostics into iters and times (times
// in nanoseconds). All three slices have length len(defl.idx). The updated
// eigenvalue for surviving index k is defl.d[k] + rho·mu[k].
//
// The secular solver contract demands a positive scale, so for rho < 0 the
// problem is solved in negated, reversed coordinates: the secular equation is
// invariant under simultaneous negation of rho and the eigenvalues together
// with reversal of their order, which maps root i of the original problem to
// root nt-1-i of the flipped one.
//
// With workers >= 2 the mutually independent solves are fanned out over an
// errgroup; each solve writes only its own slots, so the parallel path is
// bitwise identical to the serial one.
func solveRoots(slv secular.Solver, defl deflation, rho, acc float64, workers int, mu, iters, times []float64) error {
	nt := len(defl.idx)
	d, z := defl.d, defl.z

	flip := rho < 0
	var df, zf []float64
	if flip {
		df = make([]float64, nt)
		zf = make([]float64, nt)
		for k := 0; k < nt; k++ {
			df[k] = -d[nt-1-k]
			zf[k] = z[nt-1-k]
		}
	}

	solveOne := func(k int) error {
		var (
			root float64
			it   int
			el   time.Duration
			err  error
		)
		if flip {
			root, it, el, err = slv.Solve(nt-1-k, df, zf, -rho, acc)
		} else {
			root, it, el, err = slv.Solve(k, d, z, rho, acc)
		}
		if err != nil {
			return &ConvergenceError{Root: defl.idx[k], Err: err}
		}
		mu[k] = root
		iters[k] = float64(it)
		times[k] = float64(el)
		return nil
	}

	if workers < 2 {
		for k := 0; k < nt; k++ {
			if err := solveOne(k); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for k := 0; k < nt; k++ {
		g.Go(func() error { return solveOne(k) })
	}
	return g.Wait()
}
