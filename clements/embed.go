// SPDX-License-Identifier: MIT

package clements

import "github.com/katalvlaran/clements/matrix"

// Embedded lifts the 2×2 block of bs into a d×d identity at its modes.
// Only WithPrecision is consulted. The elimination passes and Reconstruct
// never build this matrix; they apply the same product in place through
// rotateRows and rotateColsConjTrans.
//
// Errors: matrix.ErrOutOfRange, matrix.ErrDuplicateIndex (wrapped).
// Complexity: O(d²).
func (bs Beamsplitter) Embedded(d int, opts ...Option) (*matrix.Dense, error) {
	block, err := bs.Matrix()
	if err != nil {
		return nil, err
	}

	return matrix.EmbedInIdentity(block, bs.Modes[:], d, matrix.WithPrecision(gatherOptions(opts...).precision))
}

// rotateRows overwrites u with B·u, B the embedded rotation of bs. Only the
// two rows at bs.Modes change.
// Complexity: O(d).
func rotateRows(u *matrix.Dense, bs Beamsplitter, p matrix.Precision) error {
	block, err := bs.Matrix()
	if err != nil {
		return err
	}

	return matrix.ApplyBlockLeft(u, block, bs.Modes[:], matrix.WithPrecision(p))
}

// rotateColsConjTrans overwrites u with u·Bᴴ. Only the two columns at
// bs.Modes change.
// Complexity: O(d).
func rotateColsConjTrans(u *matrix.Dense, bs Beamsplitter, p matrix.Precision) error {
	block, err := bs.Matrix()
	if err != nil {
		return err
	}

	return matrix.ApplyBlockRightConjTrans(u, block, bs.Modes[:], matrix.WithPrecision(p))
}
