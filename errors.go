// Copyright ©2026 The RankOneUpdate Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankone

import "fmt"

// Panic messages for precondition violations. These indicate a bug in the
// caller, not a data-dependent failure.
const (
	badAccuracy     = "rankone: accuracy is not a finite number"
	badLenDst       = "rankone: bad destination length"
	badRho          = "rankone: rho must be finite and non-zero"
	badShapeDst     = "rankone: bad destination dimensions"
	badShapeE       = "rankone: eigenvalues must be a length-r vector or an r×r diagonal matrix"
	badShapeT       = "rankone: perturbation vector length does not match eigenbasis"
	noFactorization = "rankone: no valid factorization"
	notSquare       = "rankone: eigenbasis matrix is not square"
	zeroDim         = "rankone: zero-sized problem"
)

// OrthonormalityError is returned when the columns of the supplied eigenbasis
// fail the orthonormality check. The value is the largest absolute deviation
// of an entry of VᵗV from the identity.
type OrthonormalityError float64

func (e OrthonormalityError) Error() string {
	return fmt.Sprintf("rankone: eigenbasis is not orthonormal: deviation %v", float64(e))
}

// ConvergenceError is returned when the secular solver fails for one of the
// roots. Root is the index of the failing eigenvalue in the ascending sorted
// order, and the wrapped error is the solver's own failure.
type ConvergenceError struct {
	Root int
	Err  error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("rankone: secular solve for eigenvalue %d failed: %v", e.Root, e.Err)
}

func (e *ConvergenceError) Unwrap() error { return e.Err }

// InstabilityError is returned when an intermediate quantity is non-finite or
// degenerate, such as a vanishing eigenvalue gap during eigenvector
// reconstruction. The string names the failing stage.
type InstabilityError string

func (e InstabilityError) Error() string {
	return "rankone: numerical instability: " + string(e)
}
