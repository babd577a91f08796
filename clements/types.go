// SPDX-License-Identifier: MIT

package clements

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/clements/matrix"
)

// Beamsplitter is one two-mode rotation of the mesh acting on adjacent modes
// (Modes[0], Modes[1]) with the 2×2 matrix
//
//	[[e^{iφ}·cosθ, −sinθ],
//	 [e^{iφ}·sinθ,  cosθ]].
type Beamsplitter struct {
	Modes [2]int  `json:"modes"`
	Theta float64 `json:"theta"`
	Phi   float64 `json:"phi"`
}

// Matrix returns the 2×2 block of bs.
func (bs Beamsplitter) Matrix() (*matrix.Dense, error) {
	c, s := math.Cos(bs.Theta), math.Sin(bs.Theta)
	ph := cmplx.Exp(complex(0, bs.Phi))

	return matrix.NewDenseFrom(2, 2, []complex128{
		ph * complex(c, 0), complex(-s, 0),
		ph * complex(s, 0), complex(c, 0),
	})
}

// Phaseshifter multiplies a single mode by e^{iφ}.
type Phaseshifter struct {
	Mode int     `json:"mode"`
	Phi  float64 `json:"phi"`
}

// Decomposition is the result of Decompose: beamsplitters in application
// order followed by a final layer of phaseshifters, one per mode.
type Decomposition struct {
	Beamsplitters []Beamsplitter `json:"beamsplitters"`
	Phaseshifters []Phaseshifter `json:"phaseshifters"`
}

// Dim returns the number of modes (the number of phaseshifters).
func (d *Decomposition) Dim() int {
	if d == nil {
		return 0
	}

	return len(d.Phaseshifters)
}

// Clone returns a deep copy of d.
func (d *Decomposition) Clone() *Decomposition {
	if d == nil {
		return nil
	}

	return &Decomposition{
		Beamsplitters: append([]Beamsplitter(nil), d.Beamsplitters...),
		Phaseshifters: append([]Phaseshifter(nil), d.Phaseshifters...),
	}
}

// BeamsplitterCount returns d(d−1)/2, the number of beamsplitters in a
// decomposition of d modes.
func BeamsplitterCount(d int) int { return d * (d - 1) / 2 }

// WeightCount returns d², the length of a weight vector for d modes.
func WeightCount(d int) int { return d * d }

// checkModes reports ErrModeOutOfRange for any mode outside [0, d).
func (d *Decomposition) checkModes() error {
	n := d.Dim()
	for k, bs := range d.Beamsplitters {
		for _, m := range bs.Modes {
			if m < 0 || m >= n {
				return fmt.Errorf("beamsplitter %d mode %d of %d: %w", k, m, n, ErrModeOutOfRange)
			}
		}
	}
	for k, ps := range d.Phaseshifters {
		if ps.Mode < 0 || ps.Mode >= n {
			return fmt.Errorf("phaseshifter %d mode %d of %d: %w", k, ps.Mode, n, ErrModeOutOfRange)
		}
	}

	return nil
}
