// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/clements/matrix"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (materializing) path.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// MustAt READS m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) complex128 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// MustSet WRITES m[i,j]=v or fails the test.
func MustSet(t testing.TB, m matrix.Matrix, i, j int, v complex128) {
	t.Helper()
	if err := m.Set(i, j, v); err != nil {
		t.Fatalf("Set(%d,%d): %v", i, j, err)
	}
}

// RandomFill FILLS m with seeded pseudo-random complex values in [-1,1)².
func RandomFill(t testing.TB, m matrix.Matrix, seed uint64) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x5bd1e995))
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			MustSet(t, m, i, j, complex(2*rng.Float64()-1, 2*rng.Float64()-1))
		}
	}
}

// CompareApprox ASSERTS that m matches want element-wise within tol.
func CompareApprox(t testing.TB, want [][]complex128, m matrix.Matrix, tol float64) {
	t.Helper()
	if len(want) != m.Rows() {
		t.Fatalf("rows: want %d, got %d", len(want), m.Rows())
	}
	for i := range want {
		if len(want[i]) != m.Cols() {
			t.Fatalf("cols: want %d, got %d", len(want[i]), m.Cols())
		}
		for j := range want[i] {
			got := MustAt(t, m, i, j)
			if cmplx.Abs(got-want[i][j]) > tol {
				t.Fatalf("[%d,%d]: want %v, got %v (tol %g)", i, j, want[i][j], got, tol)
			}
		}
	}
}
