// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankone

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Stats reports diagnostics collected during a rank-one update.
type Stats struct {
	// Total is the wall-clock time of the whole operation.
	Total time.Duration
	// AvgSolve is the mean wall-clock time of a single secular root solve.
	// It is zero when no roots were solved.
	AvgSolve time.Duration
	// AvgIterations is the mean iteration count of a single secular root
	// solve. It is zero when no roots were solved.
	AvgIterations float64
	// Solved is the number of eigenvalues that survived deflation and were
	// solved through the secular equation.
	Solved int
	// SkippedReflections counts repeated-eigenvalue groups whose Householder
	// update of the eigenbasis was skipped by the stability guard. A non-zero
	// count indicates borderline-conditioned input.
	SkippedReflections int
}

// summarize derives the final Stats from the per-root samples. iters and
// times hold one sample per solved root, times in nanoseconds.
func summarize(total time.Duration, iters, times []float64, solved, skipped int) Stats {
	s := Stats{
		Total:              total,
		Solved:             solved,
		SkippedReflections: skipped,
	}
	if len(iters) > 0 {
		s.AvgIterations = stat.Mean(iters, nil)
		s.AvgSolve = time.Duration(stat.Mean(times, nil))
	}
	return s
}
