// Package ops provides advanced matrix operations for the clements/matrix package.
// QR computes the QR decomposition of a square complex matrix using Householder
// reflections, returning unitary Q and upper-triangular R such that m = Q×R.
package ops

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/clements/matrix"
)

// NormZero is the additive identity for norm accumulation.
const NormZero = 0.0

// QR returns Q and R for the decomposition m = Q×R.
// It returns matrix.ErrNonSquare if m is not square.
// The diagonal of R carries the reflection scalars alpha_k = -e^{i·arg(x_k)}·‖x_k‖.
// Complexity: O(n³) time, O(n²) memory where n = m.Rows().
func QR(m matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	// Stage 1: Validate input dimensions
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}
	n := m.Rows()

	// Stage 2: Prepare working matrices and Householder vector
	A, err := matrix.Cast(m, matrix.Complex128) // deep copy to preserve original
	if err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}
	Q, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}
	v := make([]complex128, n)

	// Stage 3: Execute Householder reflections
	var (
		k, i, j     int        // loop indices
		norm, beta  float64    // column norm and vᴴv
		tau         float64    // 2/β factor
		val, sum    complex128 // temporaries
		phase, alph complex128 // reflection phase and scalar
	)
	for k = 0; k < n-1; k++ {
		// 3.1: Compute norm of A[k:n][k]
		norm = NormZero
		for i = k; i < n; i++ {
			val, _ = A.At(i, k)
			norm += real(val)*real(val) + imag(val)*imag(val)
		}
		norm = math.Sqrt(norm)
		if norm == NormZero {
			continue // skip zero column
		}
		// 3.2: alpha = -e^{i·arg(A[k][k])} * norm
		val, _ = A.At(k, k)
		phase = 1
		if cmplx.Abs(val) != NormZero {
			phase = val / complex(cmplx.Abs(val), 0)
		}
		alph = -phase * complex(norm, 0)
		// 3.3: Build Householder vector v = x - alpha·e_k
		for i = 0; i < n; i++ {
			v[i] = 0
		}
		for i = k; i < n; i++ {
			v[i], _ = A.At(i, k)
		}
		v[k] -= alph
		// 3.4: beta = vᴴv
		beta = NormZero
		for i = k; i < n; i++ {
			beta += real(v[i])*real(v[i]) + imag(v[i])*imag(v[i])
		}
		if beta == NormZero {
			continue
		}
		tau = 2.0 / beta

		// 3.5: Apply H = I - tau·v·vᴴ to A from the left (update R)
		for j = k; j < n; j++ {
			sum = 0
			for i = k; i < n; i++ {
				val, _ = A.At(i, j)
				sum += cmplx.Conj(v[i]) * val
			}
			for i = k; i < n; i++ {
				val, _ = A.At(i, j)
				_ = A.Set(i, j, val-complex(tau, 0)*v[i]*sum)
			}
		}

		// 3.6: Accumulate Q ← Q·H
		for j = 0; j < n; j++ {
			sum = 0
			for i = k; i < n; i++ {
				val, _ = Q.At(j, i)
				sum += val * v[i]
			}
			for i = k; i < n; i++ {
				val, _ = Q.At(j, i)
				_ = Q.Set(j, i, val-complex(tau, 0)*sum*cmplx.Conj(v[i]))
			}
		}
	}

	// Stage 4: Clean sub-diagonal round-off and return (R is the current A)
	for i = 1; i < n; i++ {
		for j = 0; j < i; j++ {
			_ = A.Set(i, j, 0)
		}
	}

	return Q, A, nil
}
