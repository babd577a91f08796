// SPDX-License-Identifier: MIT

package clements

import (
	"fmt"

	"github.com/katalvlaran/clements/matrix"
)

// Reconstruct multiplies a decomposition back into its d×d unitary, where d is
// the number of phaseshifters.
//
// Starting from the identity every beamsplitter is left-multiplied in stored
// order, then the phase layer diag(e^{iφ_k}) is applied last.
//
// Errors:
//   - ErrNilDecomposition, ErrEmptyDecomposition.
//   - ErrModeOutOfRange for any beamsplitter or phaseshifter mode outside [0, d).
//   - backend errors from matrix (wrapped).
//
// Complexity: O(|BS|·d + d³) time, O(d²) space.
func Reconstruct(dec *Decomposition, opts ...Option) (*matrix.Dense, error) {
	if dec == nil {
		return nil, clementsErrorf(opReconstruct, ErrNilDecomposition)
	}
	d := dec.Dim()
	if d == 0 {
		return nil, clementsErrorf(opReconstruct, ErrEmptyDecomposition)
	}
	if err := dec.checkModes(); err != nil {
		return nil, clementsErrorf(opReconstruct, err)
	}
	o := gatherOptions(opts...)

	u, err := matrix.NewIdentity(d, matrix.WithPrecision(o.precision))
	if err != nil {
		return nil, clementsErrorf(opReconstruct, err)
	}
	for k, bs := range dec.Beamsplitters {
		if err = rotateRows(u, bs, o.precision); err != nil {
			return nil, clementsErrorf(opReconstruct, fmt.Errorf("beamsplitter %d: %w", k, err))
		}
	}

	phis := make([]float64, d)
	for _, ps := range dec.Phaseshifters {
		phis[ps.Mode] = ps.Phi
	}
	layer, err := matrix.NewPhaseDiag(phis, matrix.WithPrecision(o.precision))
	if err != nil {
		return nil, clementsErrorf(opReconstruct, err)
	}
	if u, err = matrix.Mul(layer, u); err != nil {
		return nil, clementsErrorf(opReconstruct, err)
	}
	if u, err = o.round(u); err != nil {
		return nil, clementsErrorf(opReconstruct, err)
	}

	return u, nil
}
