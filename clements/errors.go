// SPDX-License-Identifier: MIT
// Package clements: sentinel error set.
// Every message is prefixed with "clements: ..."; operations wrap sentinels
// with their tag via clementsErrorf and callers match with errors.Is.
// Errors coming from the matrix backend are wrapped, never reinterpreted.

package clements

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDecomposition indicates a nil *Decomposition argument.
	ErrNilDecomposition = errors.New("clements: nil decomposition")

	// ErrEmptyDecomposition indicates a decomposition without phaseshifters
	// (its dimension would be zero).
	ErrEmptyDecomposition = errors.New("clements: decomposition has no modes")

	// ErrInvalidDimension indicates a mode count below one.
	ErrInvalidDimension = errors.New("clements: dimension must be >= 1")

	// ErrWeightsLength indicates a weight vector (or decomposition) that does not
	// hold exactly d² angles.
	ErrWeightsLength = errors.New("clements: weight count must equal d*d")

	// ErrModeOutOfRange indicates an operation addressing a mode outside [0, d).
	ErrModeOutOfRange = errors.New("clements: mode out of range")

	// ErrNotUnitary is returned by Decompose under WithUnitaryCheck when the
	// input is not unitary within the configured tolerance.
	ErrNotUnitary = errors.New("clements: matrix is not unitary")

	// ErrUnknownGate indicates an Instruction with an unsupported kind.
	ErrUnknownGate = errors.New("clements: unknown gate kind")

	// ErrInstructionArity indicates an Instruction whose modes/params do not fit its kind.
	ErrInstructionArity = errors.New("clements: wrong instruction arity")
)

// Operation tags used in error wrapping.
const (
	opDecompose         = "Decompose"
	opReconstruct       = "Reconstruct"
	opWeights           = "Weights"
	opFromWeights       = "FromWeights"
	opWeightsFromMatrix = "WeightsFromMatrix"
	opMatrixFromWeights = "MatrixFromWeights"
	opApplyInstructions = "ApplyInstructions"
	opDecomposeBatch    = "DecomposeBatch"
	opReconstructBatch  = "ReconstructBatch"
)

// clementsErrorf wraps err with an operation tag, preserving it for errors.Is/As.
// Use only when err != nil.
func clementsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
