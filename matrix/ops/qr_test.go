package ops_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clements/matrix"
	"github.com/katalvlaran/clements/matrix/ops"
)

// TestQR_Reconstructs verifies Q·R == m, Q unitary and R upper triangular.
func TestQR_Reconstructs(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6} {
		z, err := ops.Ginibre(n, ops.NewRand(uint64(n)))
		require.NoError(t, err)

		q, r, err := ops.QR(z)
		require.NoError(t, err)

		qr, err := matrix.Mul(q, r)
		require.NoError(t, err)
		ok, err := matrix.AllClose(qr, z, 0, 1e-12)
		require.NoError(t, err)
		assert.True(t, ok, "n=%d: Q·R must reproduce the input", n)

		unitary, err := matrix.IsUnitary(q, matrix.WithEpsilon(1e-12))
		require.NoError(t, err)
		assert.True(t, unitary, "n=%d: Q must be unitary", n)

		for i := 1; i < n; i++ {
			for j := 0; j < i; j++ {
				v, err := r.At(i, j)
				require.NoError(t, err)
				assert.Zero(t, v, "R[%d,%d] must be zero", i, j)
			}
		}
	}
}

// TestQR_ZeroColumn checks that an all-zero column is skipped without NaNs.
func TestQR_ZeroColumn(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []complex128{0, 1, 0, 1i})
	require.NoError(t, err)

	q, r, err := ops.QR(m)
	require.NoError(t, err)
	qr, err := matrix.Mul(q, r)
	require.NoError(t, err)
	ok, err := matrix.AllClose(qr, m, 0, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestQR_NonSquare(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	_, _, err = ops.QR(m)
	assert.True(t, errors.Is(err, matrix.ErrNonSquare), "got %v", err)
}
