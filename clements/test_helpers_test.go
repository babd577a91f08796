package clements_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clements/matrix"
	"github.com/katalvlaran/clements/matrix/ops"
)

// haar returns a seeded Haar-random d×d unitary.
func haar(t testing.TB, d int, seed uint64) *matrix.Dense {
	t.Helper()
	u, err := ops.HaarUnitary(d, ops.NewRand(seed))
	require.NoError(t, err)

	return u
}

// identity returns the d×d identity.
func identity(t testing.TB, d int) *matrix.Dense {
	t.Helper()
	id, err := matrix.NewIdentity(d)
	require.NoError(t, err)

	return id
}

// requireClose asserts max|a−b| ≤ atol.
func requireClose(t testing.TB, want, got matrix.Matrix, atol float64) {
	t.Helper()
	diff, err := matrix.MaxAbsDiff(want, got)
	require.NoError(t, err)
	require.LessOrEqual(t, diff, atol)
}
