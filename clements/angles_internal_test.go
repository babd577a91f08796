package clements

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clements/matrix"
	"github.com/katalvlaran/clements/matrix/ops"
)

func randComplex(rng *rand.Rand) complex128 {
	return complex(rng.NormFloat64(), rng.NormFloat64())
}

func blockAt(t *testing.T, m *matrix.Dense, i, j int) complex128 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestEliminationAngles_Degenerate(t *testing.T) {
	theta, phi := eliminationAngles(0, 1+2i, DefaultZeroTolerance)
	assert.Equal(t, math.Pi/2, theta)
	assert.Equal(t, 0.0, phi)

	// Below tolerance still counts as zero.
	theta, phi = eliminationAngles(1e-10, 3, DefaultZeroTolerance)
	assert.Equal(t, math.Pi/2, theta)
	assert.Equal(t, 0.0, phi)
}

func TestEliminationAngles_Ratio(t *testing.T) {
	theta, phi := eliminationAngles(2, 2i, DefaultZeroTolerance)
	assert.InDelta(t, math.Pi/4, theta, 1e-15)
	assert.InDelta(t, math.Pi/2, phi, 1e-15)

	theta, phi = eliminationAngles(1, 0, DefaultZeroTolerance)
	assert.Equal(t, 0.0, theta)
	assert.Equal(t, 0.0, phi)
}

// The angles of the left-acting rotation annihilate the lower entry of (e, x)
// when o = −x.
func TestEliminationAngles_ZeroesColumnPair(t *testing.T) {
	rng := ops.NewRand(11)
	for n := 0; n < 50; n++ {
		e, x := randComplex(rng), randComplex(rng)
		theta, phi := eliminationAngles(e, -x, DefaultZeroTolerance)
		b, err := Beamsplitter{Modes: [2]int{0, 1}, Theta: theta, Phi: phi}.Matrix()
		require.NoError(t, err)

		lower := blockAt(t, b, 1, 0)*e + blockAt(t, b, 1, 1)*x
		assert.Less(t, cmplx.Abs(lower), 1e-12)
	}
}

// The angles of the right-acting rotation annihilate the left entry of the
// row pair (left, e) under U·Bᴴ.
func TestEliminationAngles_ZeroesRowPair(t *testing.T) {
	rng := ops.NewRand(12)
	for n := 0; n < 50; n++ {
		left, e := randComplex(rng), randComplex(rng)
		theta, phi := eliminationAngles(e, left, DefaultZeroTolerance)
		b, err := Beamsplitter{Modes: [2]int{0, 1}, Theta: theta, Phi: phi}.Matrix()
		require.NoError(t, err)

		got := left*cmplx.Conj(blockAt(t, b, 0, 0)) + e*cmplx.Conj(blockAt(t, b, 0, 1))
		assert.Less(t, cmplx.Abs(got), 1e-12)
	}
}

func TestEliminate_LeavesDiagonal(t *testing.T) {
	for _, d := range []int{2, 3, 4, 7} {
		u, err := ops.HaarUnitary(d, ops.NewRand(uint64(d)))
		require.NoError(t, err)

		o := gatherOptions()
		leading, trailing, diag, err := eliminate(u, o)
		require.NoError(t, err)
		assert.Len(t, leading, BeamsplitterCount(d)-len(trailing))

		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				v := blockAt(t, diag, i, j)
				if i == j {
					assert.InDelta(t, 1.0, cmplx.Abs(v), 1e-10, "diag %d", i)
				} else {
					assert.Less(t, cmplx.Abs(v), 1e-10, "entry (%d,%d)", i, j)
				}
			}
		}
	}
}

func TestEliminate_PassSizes(t *testing.T) {
	// Column c contributes d−1−c rotations; even columns go to the trailing list.
	d := 5
	u, err := ops.HaarUnitary(d, ops.NewRand(3))
	require.NoError(t, err)

	leading, trailing, _, err := eliminate(u, gatherOptions())
	require.NoError(t, err)
	assert.Len(t, trailing, (d-1-0)+(d-1-2)) // columns 0 and 2
	assert.Len(t, leading, (d-1-1)+(d-1-3))  // columns 1 and 3
}

// The in-place passes must agree with multiplying the embedded rotations as
// full d×d products.
func TestPasses_MatchEmbeddedProducts(t *testing.T) {
	const d = 6
	tols := map[matrix.Precision]float64{matrix.Complex128: 1e-12, matrix.Complex64: 1e-6}
	for p, tol := range tols {
		t.Run(p.String(), func(t *testing.T) {
			o := gatherOptions(WithPrecision(p))
			u, err := ops.HaarUnitary(d, ops.NewRand(41))
			require.NoError(t, err)
			u, err = matrix.Cast(u, p)
			require.NoError(t, err)

			want, err := matrix.Cast(u, p)
			require.NoError(t, err)
			direct, got, err := applyDirect(2, u, o)
			require.NoError(t, err)
			require.Len(t, direct, d-1-2)
			for _, bs := range direct {
				b, err := bs.Embedded(d, WithPrecision(p))
				require.NoError(t, err)
				want, err = matrix.Mul(b, want)
				require.NoError(t, err)
				want, err = o.round(want)
				require.NoError(t, err)
			}
			diff, err := matrix.MaxAbsDiff(got, want)
			require.NoError(t, err)
			assert.Less(t, diff, tol)

			inverse, got, err := applyInverse(1, got, o)
			require.NoError(t, err)
			require.Len(t, inverse, d-1-1)
			for _, bs := range inverse {
				b, err := bs.Embedded(d, WithPrecision(p))
				require.NoError(t, err)
				want, err = matrix.MulConjTrans(want, b)
				require.NoError(t, err)
				want, err = o.round(want)
				require.NoError(t, err)
			}
			diff, err = matrix.MaxAbsDiff(got, want)
			require.NoError(t, err)
			assert.Less(t, diff, tol)
		})
	}
}

func TestEmbedded_Errors(t *testing.T) {
	bs := Beamsplitter{Modes: [2]int{2, 3}, Theta: 0.3}
	_, err := bs.Embedded(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	m, err := bs.Embedded(4)
	require.NoError(t, err)
	assert.Equal(t, complex128(1), blockAt(t, m, 0, 0))
	assert.InDelta(t, math.Cos(0.3), real(blockAt(t, m, 3, 3)), 1e-15)
}
