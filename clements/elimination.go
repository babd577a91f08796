// SPDX-License-Identifier: MIT
// Package clements: column elimination passes.
//
// Each pass walks one anti-diagonal of the working matrix and annihilates it
// with adjacent-mode rotations. Even columns act from the left (rows mix),
// odd columns act from the right with the conjugate transpose (columns mix).
// Columns are processed from d−2 down to 0 so entries zeroed earlier are never
// touched again.

package clements

import (
	"fmt"

	"github.com/katalvlaran/clements/matrix"
)

// applyDirect eliminates column `column` (even) from the left.
//
// For j = 0 … d−2−column it rotates modes (column+j, column+j+1) so that
// U[column+j+1, j] becomes zero, using e = U[column+j, j] and
// o = −U[column+j+1, j] as the angle pair, and updates U ← B·U in place.
//
// Returns the rotations in application order and the updated matrix.
// Complexity: O(d) rotations, O(d) each (only rows column+j, column+j+1 move).
func applyDirect(column int, u *matrix.Dense, o Options) ([]Beamsplitter, *matrix.Dense, error) {
	d := u.Rows()
	ops := make([]Beamsplitter, 0, d-1-column)

	var (
		e, below complex128
		err      error
	)
	for j := 0; j < d-1-column; j++ {
		modes := [2]int{column + j, column + j + 1}
		if e, err = u.At(modes[0], j); err != nil {
			return nil, nil, err
		}
		if below, err = u.At(modes[1], j); err != nil {
			return nil, nil, err
		}
		theta, phi := eliminationAngles(e, -below, o.zeroTol)
		bs := Beamsplitter{Modes: modes, Theta: theta, Phi: phi}

		if err = rotateRows(u, bs, o.precision); err != nil {
			return nil, nil, fmt.Errorf("direct column %d step %d: %w", column, j, err)
		}
		ops = append(ops, bs)
	}

	return ops, u, nil
}

// applyInverse eliminates column `column` (odd) from the right.
//
// For j = d−2−column down to 0, with i = column+j+1, it rotates modes (j, j+1)
// using e = U[i, j+1] and o = U[i, j], and updates U ← U·Bᴴ in place, zeroing
// U[i, j].
//
// Returns the rotations in application order and the updated matrix.
// Complexity: O(d) rotations, O(d) each (only columns j, j+1 move).
func applyInverse(column int, u *matrix.Dense, o Options) ([]Beamsplitter, *matrix.Dense, error) {
	d := u.Rows()
	ops := make([]Beamsplitter, 0, d-1-column)

	var (
		e, left complex128
		err     error
	)
	for j := d - 2 - column; j >= 0; j-- {
		modes := [2]int{j, j + 1}
		i := column + j + 1
		if e, err = u.At(i, modes[1]); err != nil {
			return nil, nil, err
		}
		if left, err = u.At(i, modes[0]); err != nil {
			return nil, nil, err
		}
		theta, phi := eliminationAngles(e, left, o.zeroTol)
		bs := Beamsplitter{Modes: modes, Theta: theta, Phi: phi}

		if err = rotateColsConjTrans(u, bs, o.precision); err != nil {
			return nil, nil, fmt.Errorf("inverse column %d step %d: %w", column, j, err)
		}
		ops = append(ops, bs)
	}

	return ops, u, nil
}

// eliminate runs every column pass on u (which it overwrites) and returns the
// leading rotations, the trailing rotations in the order they were applied,
// and the remaining diagonal matrix.
func eliminate(u *matrix.Dense, o Options) (leading, trailing []Beamsplitter, diag *matrix.Dense, err error) {
	d := u.Rows()
	leading = make([]Beamsplitter, 0, BeamsplitterCount(d))
	trailing = make([]Beamsplitter, 0, BeamsplitterCount(d))

	var ops []Beamsplitter
	for column := d - 2; column >= 0; column-- {
		if column%2 == 0 {
			if ops, u, err = applyDirect(column, u, o); err != nil {
				return nil, nil, nil, err
			}
			trailing = append(trailing, ops...)
		} else {
			if ops, u, err = applyInverse(column, u, o); err != nil {
				return nil, nil, nil, err
			}
			leading = append(leading, ops...)
		}
	}

	return leading, trailing, u, nil
}
