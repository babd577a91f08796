package ops

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/katalvlaran/clements/matrix"
)

// ErrNilRand is returned when a sampler is called without a random source.
var ErrNilRand = errors.New("ops: nil random source")

// NewRand returns a deterministic PCG source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
}

// Ginibre returns an n×n matrix of i.i.d. standard complex normal entries
// (real and imaginary parts N(0, 1/2)).
// Complexity: O(n²).
func Ginibre(n int, rng *rand.Rand) (*matrix.Dense, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	data := make([]complex128, n*n)
	for i := range data {
		data[i] = complex(rng.NormFloat64(), rng.NormFloat64()) / complex(math.Sqrt2, 0)
	}

	return matrix.NewDenseFrom(n, n, data)
}

// HaarUnitary samples an n×n unitary from the Haar measure on U(n).
//
// A Ginibre matrix is QR-factorized and Q's columns are rephased by
// R_kk/|R_kk| (https://arxiv.org/abs/math-ph/0609050). Deterministic for a
// seeded rng.
// Complexity: O(n³).
func HaarUnitary(n int, rng *rand.Rand) (*matrix.Dense, error) {
	z, err := Ginibre(n, rng)
	if err != nil {
		return nil, fmt.Errorf("HaarUnitary: %w", err)
	}
	q, r, err := QR(z)
	if err != nil {
		return nil, fmt.Errorf("HaarUnitary: %w", err)
	}

	// Extract the phases of R's diagonal.
	lambda := make([]complex128, n)
	var rkk complex128
	for k := 0; k < n; k++ {
		rkk, _ = r.At(k, k)
		lambda[k] = 1
		if a := cmplx.Abs(rkk); a != NormZero {
			lambda[k] = rkk / complex(a, 0)
		}
	}
	d, err := matrix.NewDiag(lambda)
	if err != nil {
		return nil, fmt.Errorf("HaarUnitary: %w", err)
	}

	return matrix.Mul(q, d)
}

// RandomPhases returns n angles drawn uniformly from [0, 2π).
func RandomPhases(n int, rng *rand.Rand) ([]float64, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 2 * math.Pi * rng.Float64()
	}

	return out, nil
}
