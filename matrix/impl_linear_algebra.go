// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// multiplication, conjugate transpose, identity embedding, precision casting
// and tolerance checks. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare the linear-algebra kernels the decomposition core relies on.
//   - Define operation tags for determinism and error reporting.
//
// Notes:
//   - *Dense operands take the BLAS path (gonum cblas128.Gemm); any other
//     Matrix is first materialized into a *Dense via At.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul           = "Mul"
	opMulConjTrans  = "MulConjTrans"
	opConjTranspose = "ConjTranspose"
	opEmbed         = "EmbedInIdentity"
	opApplyLeft     = "ApplyBlockLeft"
	opApplyRight    = "ApplyBlockRightConjTrans"
	opCast          = "Cast"
	opAllClose      = "AllClose"
	opMaxAbsDiff    = "MaxAbsDiff"
	opIsUnitary     = "IsUnitary"
	opFromCMatrix   = "FromCMatrix"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// castTo rounds v through the complex type T and widens it back.
func castTo[T constraints.Complex](v complex128) complex128 {
	return complex128(T(v))
}

// castValue applies the precision policy to one scalar.
func castValue(v complex128, p Precision) complex128 {
	if p == Complex64 {
		return castTo[complex64](v)
	}

	return castTo[complex128](v)
}

// asDense returns m itself when it is a *Dense, otherwise a materialized copy.
// Complexity: O(1) fast path, O(r*c) fallback.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	var v complex128
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*c+j] = v
		}
	}
	out.validateNaNInf = DefaultValidateNaNInf

	return out, nil
}

// Mul computes the matrix product C = A·B and returns a fresh Dense.
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: materialize operands as *Dense (no copy for *Dense inputs).
//   - Stage 3: zgemm through gonum cblas128.Gemm into a new buffer.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, da.RawCMatrix(), db.RawCMatrix(), 0, res.RawCMatrix())

	return res, nil
}

// MulConjTrans computes C = A·Bᴴ without materializing Bᴴ.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Cols).
//
// Complexity:
//   - Time O(r*n*m), Space O(r*m).
func MulConjTrans(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMulConjTrans, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMulConjTrans, err)
	}
	if a.Cols() != b.Cols() {
		return nil, matrixErrorf(opMulConjTrans, ErrDimensionMismatch)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMulConjTrans, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMulConjTrans, err)
	}
	res, err := NewDense(da.r, db.r)
	if err != nil {
		return nil, matrixErrorf(opMulConjTrans, err)
	}
	cblas128.Gemm(blas.NoTrans, blas.ConjTrans, 1, da.RawCMatrix(), db.RawCMatrix(), 0, res.RawCMatrix())

	return res, nil
}

// ConjTranspose returns a new matrix mᴴ (rows and columns swapped, conjugated).
// The original matrix is never mutated.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func ConjTranspose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opConjTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opConjTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opConjTranspose, err)
	}
	for i := 0; i < dm.r; i++ {
		for j := 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = cmplx.Conj(dm.data[i*dm.c+j])
		}
	}

	return res, nil
}

// EmbedInIdentity returns the n×n identity with the k×k block `small` written
// at rows/cols `indices` (res[indices[a], indices[b]] = small[a, b]).
// Implementation:
//   - Stage 1: validate small is square and len(indices) == small.Rows().
//   - Stage 2: validate indices are in range and distinct.
//   - Stage 3: allocate identity and scatter the block (cast to opts precision).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrOutOfRange,
//     ErrDuplicateIndex, ErrInvalidDimensions.
//
// Complexity:
//   - Time O(n² + k²), Space O(n²).
func EmbedInIdentity(small Matrix, indices []int, n int, opts ...Option) (*Dense, error) {
	if err := ValidateSquare(small); err != nil {
		return nil, matrixErrorf(opEmbed, err)
	}
	k := small.Rows()
	if len(indices) != k {
		return nil, matrixErrorf(opEmbed, fmt.Errorf("%d indices for %dx%d block: %w", len(indices), k, k, ErrDimensionMismatch))
	}
	if err := ValidateIndices(indices, n); err != nil {
		return nil, matrixErrorf(opEmbed, err)
	}
	res, err := NewIdentity(n, opts...)
	if err != nil {
		return nil, matrixErrorf(opEmbed, err)
	}
	o := gatherOptions(opts...)
	var v complex128
	for a := 0; a < k; a++ {
		for b := 0; b < k; b++ {
			if v, err = small.At(a, b); err != nil {
				return nil, matrixErrorf(opEmbed, err)
			}
			res.data[indices[a]*n+indices[b]] = castValue(v, o.precision)
		}
	}

	return res, nil
}

// blockOperand validates an in-place block update and returns the k×k block
// as a row-major slice rounded to precision p. n is the extent the indices
// address (rows for a left update, columns for a right one).
func blockOperand(small Matrix, indices []int, n int, p Precision) ([]complex128, error) {
	if err := ValidateSquare(small); err != nil {
		return nil, err
	}
	k := small.Rows()
	if len(indices) != k {
		return nil, fmt.Errorf("%d indices for %dx%d block: %w", len(indices), k, k, ErrDimensionMismatch)
	}
	if err := ValidateIndices(indices, n); err != nil {
		return nil, err
	}
	blk := make([]complex128, k*k)
	var (
		v   complex128
		err error
	)
	for a := 0; a < k; a++ {
		for b := 0; b < k; b++ {
			if v, err = small.At(a, b); err != nil {
				return nil, err
			}
			blk[a*k+b] = castValue(v, p)
		}
	}

	return blk, nil
}

// ApplyBlockLeft overwrites m with E·m, where E is the identity with the k×k
// block `small` embedded at `indices` (see EmbedInIdentity). Only the k rows
// named by indices change; they are rounded to the opts precision.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrOutOfRange,
//     ErrDuplicateIndex.
//
// Complexity:
//   - Time O(k²·c), Space O(k²).
func ApplyBlockLeft(m *Dense, small Matrix, indices []int, opts ...Option) error {
	if m == nil {
		return matrixErrorf(opApplyLeft, ErrNilMatrix)
	}
	p := gatherOptions(opts...).precision
	blk, err := blockOperand(small, indices, m.r, p)
	if err != nil {
		return matrixErrorf(opApplyLeft, err)
	}
	k := len(indices)
	x := make([]complex128, k)
	for col := 0; col < m.c; col++ {
		for b, row := range indices {
			x[b] = m.data[row*m.c+col]
		}
		for a, row := range indices {
			var acc complex128
			for b := 0; b < k; b++ {
				acc += blk[a*k+b] * x[b]
			}
			m.data[row*m.c+col] = castValue(acc, p)
		}
	}

	return nil
}

// ApplyBlockRightConjTrans overwrites m with m·Eᴴ, E as in ApplyBlockLeft.
// Only the k columns named by indices change.
//
// Errors: as ApplyBlockLeft.
// Complexity: Time O(k²·r), Space O(k²).
func ApplyBlockRightConjTrans(m *Dense, small Matrix, indices []int, opts ...Option) error {
	if m == nil {
		return matrixErrorf(opApplyRight, ErrNilMatrix)
	}
	p := gatherOptions(opts...).precision
	blk, err := blockOperand(small, indices, m.c, p)
	if err != nil {
		return matrixErrorf(opApplyRight, err)
	}
	k := len(indices)
	x := make([]complex128, k)
	for row := 0; row < m.r; row++ {
		base := row * m.c
		for b, col := range indices {
			x[b] = m.data[base+col]
		}
		for a, col := range indices {
			var acc complex128
			for b := 0; b < k; b++ {
				acc += x[b] * cmplx.Conj(blk[a*k+b])
			}
			m.data[base+col] = castValue(acc, p)
		}
	}

	return nil
}

// Cast returns a copy of m with every entry rounded to precision p.
// Complex128 yields an exact copy.
//
// Errors: ErrNilMatrix, ErrUnknownPrecision.
// Complexity: O(r*c).
func Cast(m Matrix, p Precision) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opCast, err)
	}
	if p != Complex128 && p != Complex64 {
		return nil, matrixErrorf(opCast, ErrUnknownPrecision)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opCast, err)
	}
	out := dm.clone()
	for idx, v := range out.data {
		out.data[idx] = castValue(v, p)
	}

	return out, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances yield ErrNaNInf.
//
// Complexity: Time O(r*c), Space O(1) for *Dense operands.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range da.data {
		if cmplx.Abs(da.data[idx]-db.data[idx]) > atol+rtol*cmplx.Abs(db.data[idx]) {
			return false, nil // early-exit on first violation
		}
	}

	return true, nil
}

// MaxAbsDiff returns max_ij |a_ij - b_ij| for identically shaped matrices.
// Complexity: O(r*c).
func MaxAbsDiff(a, b Matrix) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	da, err := asDense(a)
	if err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	db, err := asDense(b)
	if err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	var worst float64
	for idx := range da.data {
		if d := cmplx.Abs(da.data[idx] - db.data[idx]); d > worst {
			worst = d
		}
	}

	return worst, nil
}

// IsUnitary reports whether mᴴ·m equals the identity within the resolved
// tolerance (WithEpsilon, default DefaultEpsilon) in the max-abs norm.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n³).
func IsUnitary(m Matrix, opts ...Option) (bool, error) {
	eps := gatherOptions(opts...).eps
	if err := ValidateSquare(m); err != nil {
		return false, matrixErrorf(opIsUnitary, err)
	}
	h, err := ConjTranspose(m)
	if err != nil {
		return false, matrixErrorf(opIsUnitary, err)
	}
	p, err := Mul(h, m)
	if err != nil {
		return false, matrixErrorf(opIsUnitary, err)
	}
	n := p.r
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(p.data[i*n+j]-want) > eps {
				return false, nil
			}
		}
	}

	return true, nil
}

// IsZero reports whether |z| ≤ atol (numpy isclose(z, 0) semantics).
// Complexity: O(1).
func IsZero(z complex128, atol float64) bool {
	return cmplx.Abs(z) <= atol
}
