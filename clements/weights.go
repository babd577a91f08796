// SPDX-License-Identifier: MIT

package clements

import (
	"fmt"

	"github.com/katalvlaran/clements/matrix"
)

// Weights flattens dec into a length-d² vector: (θ, φ) for every beamsplitter
// in stored order, then φ for every phaseshifter.
//
// Errors: ErrNilDecomposition, ErrInvalidDimension (d < 1), ErrWeightsLength
// when dec does not hold exactly d² angles.
func Weights(dec *Decomposition, d int) ([]float64, error) {
	if dec == nil {
		return nil, clementsErrorf(opWeights, ErrNilDecomposition)
	}
	if d < 1 {
		return nil, clementsErrorf(opWeights, ErrInvalidDimension)
	}
	n := WeightCount(d)
	if got := 2*len(dec.Beamsplitters) + len(dec.Phaseshifters); got != n {
		return nil, clementsErrorf(opWeights, fmt.Errorf("%d angles for d=%d: %w", got, d, ErrWeightsLength))
	}

	w := make([]float64, 0, n)
	for _, bs := range dec.Beamsplitters {
		w = append(w, bs.Theta, bs.Phi)
	}
	for _, ps := range dec.Phaseshifters {
		w = append(w, ps.Phi)
	}

	return w, nil
}

// FromWeights builds a decomposition of d modes from a weight vector. The
// beamsplitter modes come from Template(d); only the angles are taken from w.
//
// Errors: ErrInvalidDimension (d < 1), ErrWeightsLength (len(w) != d²).
func FromWeights(w []float64, d int) (*Decomposition, error) {
	if d < 1 {
		return nil, clementsErrorf(opFromWeights, ErrInvalidDimension)
	}
	if len(w) != WeightCount(d) {
		return nil, clementsErrorf(opFromWeights, fmt.Errorf("got %d weights for d=%d: %w", len(w), d, ErrWeightsLength))
	}
	dec, err := Template(d)
	if err != nil {
		return nil, clementsErrorf(opFromWeights, err)
	}

	idx := 0
	for k := range dec.Beamsplitters {
		dec.Beamsplitters[k].Theta = w[idx]
		dec.Beamsplitters[k].Phi = w[idx+1]
		idx += 2
	}
	for k := range dec.Phaseshifters {
		dec.Phaseshifters[k].Phi = w[idx]
		idx++
	}

	return dec, nil
}

// WeightsFromMatrix decomposes u and flattens the result.
func WeightsFromMatrix(u matrix.Matrix, opts ...Option) ([]float64, error) {
	dec, err := Decompose(u, opts...)
	if err != nil {
		return nil, clementsErrorf(opWeightsFromMatrix, err)
	}
	w, err := Weights(dec, dec.Dim())
	if err != nil {
		return nil, clementsErrorf(opWeightsFromMatrix, err)
	}

	return w, nil
}

// MatrixFromWeights rebuilds the d×d unitary described by w.
func MatrixFromWeights(w []float64, d int, opts ...Option) (*matrix.Dense, error) {
	dec, err := FromWeights(w, d)
	if err != nil {
		return nil, clementsErrorf(opMatrixFromWeights, err)
	}
	u, err := Reconstruct(dec, opts...)
	if err != nil {
		return nil, clementsErrorf(opMatrixFromWeights, err)
	}

	return u, nil
}
