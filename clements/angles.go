// SPDX-License-Identifier: MIT

package clements

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/clements/matrix"
)

// eliminationAngles returns the (θ, φ) of the rotation that zeroes o against
// the reference element e.
//
// When e is zero within tol the rotation degenerates to a pure swap: (π/2, 0).
// Otherwise r = o/e, θ = atan|r| and φ = arg r.
func eliminationAngles(e, o complex128, tol float64) (theta, phi float64) {
	if matrix.IsZero(e, tol) {
		return math.Pi / 2, 0
	}
	r := o / e

	return math.Atan(cmplx.Abs(r)), cmplx.Phase(r)
}
