// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankone

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNormalizeInputs(t *testing.T) {
	// λ = [3, 1, 2] sorts to [1, 2, 3] through the permutation [1, 2, 0];
	// V columns and t entries must follow.
	v := mat.NewDense(3, 3, []float64{
		10, 20, 30,
		11, 21, 31,
		12, 22, 32,
	})
	e := mat.NewVecDense(3, []float64{3, 1, 2})
	tv := mat.NewVecDense(3, []float64{0.3, 0.1, 0.2})

	lam, tw, w := normalizeInputs(v, e, tv, 3)

	wantLam := []float64{1, 2, 3}
	wantT := []float64{0.1, 0.2, 0.3}
	wantW := []float64{
		20, 30, 10,
		21, 31, 11,
		22, 32, 12,
	}
	for i := range wantLam {
		if lam[i] != wantLam[i] {
			t.Errorf("lam[%d] = %v, want %v", i, lam[i], wantLam[i])
		}
		if tw[i] != wantT[i] {
			t.Errorf("t[%d] = %v, want %v", i, tw[i], wantT[i])
		}
	}
	for i, wi := range wantW {
		if w[i] != wi {
			t.Errorf("w[%d] = %v, want %v", i, w[i], wi)
		}
	}

	// The originals must be untouched.
	if v.At(0, 0) != 10 || e.AtVec(0) != 3 || tv.AtVec(0) != 0.3 {
		t.Error("normalizeInputs modified its arguments")
	}
}

func TestDiagonalOfForms(t *testing.T) {
	want := []float64{1.5, -2, 4}
	forms := map[string]mat.Matrix{
		"column":   mat.NewVecDense(3, []float64{1.5, -2, 4}),
		"row":      mat.NewDense(1, 3, []float64{1.5, -2, 4}),
		"diagonal": mat.NewDiagDense(3, []float64{1.5, -2, 4}),
		"square": mat.NewDense(3, 3, []float64{
			1.5, 9, 9,
			9, -2, 9,
			9, 9, 4,
		}),
	}
	for name, m := range forms {
		got := diagonalOf(m, 3)
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s form: diagonal[%d] = %v, want %v", name, i, got[i], want[i])
			}
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for 2×3 eigenvalue matrix")
		}
	}()
	diagonalOf(mat.NewDense(2, 3, nil), 3)
}

func TestSnapSmall(t *testing.T) {
	lam := []float64{-1e-30, 1e-15, 1}
	snapSmall(lam, 1e-12)
	// tol = 3·1e-12·1 = 3e-12.
	if lam[0] != 0 || lam[1] != 0 {
		t.Errorf("small eigenvalues not snapped: %v", lam[:2])
	}
	if lam[2] != 1 {
		t.Errorf("lam[2] = %v, want 1", lam[2])
	}

	// All-zero input must not produce NaNs.
	zero := []float64{0, 0}
	snapSmall(zero, 1e-12)
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero eigenvalues perturbed: %v", zero)
	}
}

func TestOrthoDeviation(t *testing.T) {
	id := []float64{
		1, 0,
		0, 1,
	}
	if dev := orthoDeviation(id, 2); dev != 0 {
		t.Errorf("identity deviation = %v, want 0", dev)
	}
	scaled := []float64{
		2, 0,
		0, 1,
	}
	if dev := orthoDeviation(scaled, 2); dev != 3 {
		t.Errorf("scaled deviation = %v, want 3", dev)
	}
}
