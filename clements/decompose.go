// SPDX-License-Identifier: MIT

package clements

import (
	"fmt"
	"math/cmplx"
	"slices"

	"github.com/katalvlaran/clements/matrix"
)

// Decompose factors the unitary u into beamsplitters and a final phase layer.
//
// Implementation:
//   - Stage 1: validate u is square; optionally check unitarity (WithUnitaryCheck).
//   - Stage 2: copy u at the configured precision; the caller's matrix is never mutated.
//   - Stage 3: eliminate columns d−2 … 0 (direct on even, inverse on odd).
//   - Stage 4: read the middle phases arg(U[k,k]) from the diagonal.
//   - Stage 5: reverse the trailing rotations and commute them through the
//     phases; result = leading ++ commuted.
//
// The input is assumed unitary; without WithUnitaryCheck a non-unitary input
// yields a decomposition whose reconstruction differs from it.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare (wrapped).
//   - ErrNotUnitary (only under WithUnitaryCheck).
//
// Complexity:
//   - Time O(d³) (d(d−1)/2 in-place rotations of O(d) each), Space O(d²).
func Decompose(u matrix.Matrix, opts ...Option) (*Decomposition, error) {
	o := gatherOptions(opts...)

	if err := matrix.ValidateSquare(u); err != nil {
		return nil, clementsErrorf(opDecompose, err)
	}
	if o.checkUnitary {
		ok, err := matrix.IsUnitary(u, matrix.WithEpsilon(o.unitaryEps))
		if err != nil {
			return nil, clementsErrorf(opDecompose, err)
		}
		if !ok {
			return nil, clementsErrorf(opDecompose, ErrNotUnitary)
		}
	}

	work, err := matrix.Cast(u, o.precision)
	if err != nil {
		return nil, clementsErrorf(opDecompose, err)
	}
	d := work.Rows()

	leading, trailing, diag, err := eliminate(work, o)
	if err != nil {
		return nil, clementsErrorf(opDecompose, err)
	}

	phases := make([]float64, d)
	for k, z := range diag.Diagonal() {
		phases[k] = cmplx.Phase(z)
	}

	slices.Reverse(trailing)
	commuted := commute(phases, trailing)

	dec := &Decomposition{
		Beamsplitters: append(leading, commuted...),
		Phaseshifters: make([]Phaseshifter, d),
	}
	for k, phi := range phases {
		dec.Phaseshifters[k] = Phaseshifter{Mode: k, Phi: phi}
	}

	return dec, nil
}

// Template returns the decomposition of the d×d identity. Its beamsplitter
// modes define the layout of weight vectors.
func Template(d int) (*Decomposition, error) {
	if d < 1 {
		return nil, fmt.Errorf("Template(%d): %w", d, ErrInvalidDimension)
	}
	id, err := matrix.NewIdentity(d)
	if err != nil {
		return nil, err
	}

	return Decompose(id)
}
