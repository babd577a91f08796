// SPDX-License-Identifier: MIT
// Package clements: gate-level instruction stream.
//
// A circuit simulator usually offers a real beamsplitter gate
//
//	[[t, −r̄], [r, t]],  t = cosθ, r = e^{iφ}·sinθ
//
// and a single-mode phaseshifter. Each mesh rotation BS(θ, φ) equals the gate
// (θ, 0) applied after a phaseshifter φ on its first mode, so a Decomposition
// maps onto a flat stream of those two gates.

package clements

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/clements/matrix"
)

// GateKind names an instruction gate.
type GateKind int

const (
	// GatePhaseshifter is e^{iφ} on one mode; Params = [φ].
	GatePhaseshifter GateKind = iota
	// GateBeamsplitter is [[t, −r̄],[r, t]] on two modes; Params = [θ, φ].
	GateBeamsplitter
)

// String implements fmt.Stringer.
func (k GateKind) String() string {
	switch k {
	case GatePhaseshifter:
		return "Phaseshifter"
	case GateBeamsplitter:
		return "Beamsplitter"
	default:
		return fmt.Sprintf("GateKind(%d)", int(k))
	}
}

// Instruction is one gate of the stream.
type Instruction struct {
	Kind   GateKind  `json:"kind"`
	Modes  []int     `json:"modes"`
	Params []float64 `json:"params"`
}

// arity returns the mode and parameter counts a kind expects.
func (k GateKind) arity() (modes, params int, ok bool) {
	switch k {
	case GatePhaseshifter:
		return 1, 1, true
	case GateBeamsplitter:
		return 2, 2, true
	default:
		return 0, 0, false
	}
}

func (in Instruction) validate() error {
	modes, params, ok := in.Kind.arity()
	if !ok {
		return fmt.Errorf("%v: %w", in.Kind, ErrUnknownGate)
	}
	if len(in.Modes) != modes || len(in.Params) != params {
		return fmt.Errorf("%v with %d modes, %d params: %w", in.Kind, len(in.Modes), len(in.Params), ErrInstructionArity)
	}

	return nil
}

// Matrix returns the local gate matrix (1×1 or 2×2).
func (in Instruction) Matrix() (*matrix.Dense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Kind == GatePhaseshifter {
		return matrix.NewPhaseDiag(in.Params[:1])
	}
	t := complex(math.Cos(in.Params[0]), 0)
	r := cmplx.Exp(complex(0, in.Params[1])) * complex(math.Sin(in.Params[0]), 0)

	return matrix.NewDenseFrom(2, 2, []complex128{
		t, -cmplx.Conj(r),
		r, t,
	})
}

// String renders the instruction as "Kind(params) | modes".
func (in Instruction) String() string {
	switch in.Kind {
	case GatePhaseshifter:
		if len(in.Params) == 1 && len(in.Modes) == 1 {
			return fmt.Sprintf("Phaseshifter(phi=%.6f) | Q(%d)", in.Params[0], in.Modes[0])
		}
	case GateBeamsplitter:
		if len(in.Params) == 2 && len(in.Modes) == 2 {
			return fmt.Sprintf("Beamsplitter(theta=%.6f, phi=%.6f) | Q(%d, %d)",
				in.Params[0], in.Params[1], in.Modes[0], in.Modes[1])
		}
	}

	return fmt.Sprintf("%v%v | Q%v", in.Kind, in.Params, in.Modes)
}

// Instructions flattens dec into its gate stream: for every beamsplitter a
// phaseshifter φ on Modes[0] then a beamsplitter gate (θ, 0) on both modes;
// then the final phaseshifters. A nil decomposition yields nil.
func Instructions(dec *Decomposition) []Instruction {
	if dec == nil {
		return nil
	}
	out := make([]Instruction, 0, 2*len(dec.Beamsplitters)+len(dec.Phaseshifters))
	for _, bs := range dec.Beamsplitters {
		out = append(out,
			Instruction{Kind: GatePhaseshifter, Modes: []int{bs.Modes[0]}, Params: []float64{bs.Phi}},
			Instruction{Kind: GateBeamsplitter, Modes: []int{bs.Modes[0], bs.Modes[1]}, Params: []float64{bs.Theta, 0}},
		)
	}
	for _, ps := range dec.Phaseshifters {
		out = append(out, Instruction{Kind: GatePhaseshifter, Modes: []int{ps.Mode}, Params: []float64{ps.Phi}})
	}

	return out
}

// ApplyInstructions multiplies the stream (first instruction applied first)
// into a d×d unitary.
//
// Errors: ErrInvalidDimension, ErrUnknownGate, ErrInstructionArity,
// ErrModeOutOfRange (matrix.ErrDuplicateIndex from the block update is wrapped
// as it comes).
func ApplyInstructions(instrs []Instruction, d int, opts ...Option) (*matrix.Dense, error) {
	if d < 1 {
		return nil, clementsErrorf(opApplyInstructions, ErrInvalidDimension)
	}
	o := gatherOptions(opts...)
	u, err := matrix.NewIdentity(d, matrix.WithPrecision(o.precision))
	if err != nil {
		return nil, clementsErrorf(opApplyInstructions, err)
	}

	var local *matrix.Dense
	for k, in := range instrs {
		if local, err = in.Matrix(); err != nil {
			return nil, clementsErrorf(opApplyInstructions, fmt.Errorf("instruction %d: %w", k, err))
		}
		for _, m := range in.Modes {
			if m < 0 || m >= d {
				return nil, clementsErrorf(opApplyInstructions, fmt.Errorf("instruction %d mode %d: %w", k, m, ErrModeOutOfRange))
			}
		}
		if err = matrix.ApplyBlockLeft(u, local, in.Modes, matrix.WithPrecision(o.precision)); err != nil {
			return nil, clementsErrorf(opApplyInstructions, fmt.Errorf("instruction %d: %w", k, err))
		}
	}

	return u, nil
}
