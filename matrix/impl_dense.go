// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major, complex128) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//   - Interoperate with gonum: the flat buffer is exactly a cblas128.General.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// ---------- error context tags ----------

const (
	ctxAt   = "At"  // method tag used in error wrappers
	ctxSet  = "Set" // method tag used in error wrappers
	ctxFrom = "NewDenseFrom"
	ctxDiag = "NewDiag"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves sentinel via %w.
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major complex matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int          // row and column counts (> 0)
	data           []complex128 // contiguous row-major storage (len == r*c)
	validateNaNInf bool         // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy from options.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]complex128, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFrom builds an r×c matrix from a row-major data slice.
// The slice is copied and rounded to the configured precision.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch (len(data) != r*c),
//     ErrNaNInf (non-finite entry under the default policy).
//
// Complexity: O(r*c).
func NewDenseFrom(rows, cols int, data []complex128, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: %d values for %dx%d: %w", ctxFrom, len(data), rows, cols, ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)
	for idx, v := range data {
		if m.validateNaNInf && isNonFiniteComplex(v) {
			return nil, denseErrorf(ctxFrom, idx/cols, idx%cols, ErrNaNInf)
		}
		m.data[idx] = castValue(v, o.precision)
	}

	return m, nil
}

// NewIdentity returns the n×n identity matrix.
// Errors: ErrInvalidDimensions when n <= 0.
// Complexity: O(n²).
func NewIdentity(n int, opts ...Option) (*Dense, error) {
	m, err := NewDense(n, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// NewDiag returns diag(values) as a dense n×n matrix, n = len(values).
// Errors: ErrInvalidDimensions on an empty slice, ErrNaNInf on non-finite values.
// Complexity: O(n²).
func NewDiag(values []complex128, opts ...Option) (*Dense, error) {
	n := len(values)
	m, err := NewDense(n, n, opts...)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	for i, v := range values {
		if m.validateNaNInf && isNonFiniteComplex(v) {
			return nil, denseErrorf(ctxDiag, i, i, ErrNaNInf)
		}
		m.data[i*n+i] = castValue(v, o.precision)
	}

	return m, nil
}

// NewPhaseDiag returns diag(e^{i·φ_k}) for the given angles.
// Complexity: O(n²).
func NewPhaseDiag(phis []float64, opts ...Option) (*Dense, error) {
	values := make([]complex128, len(phis))
	for k, phi := range phis {
		values[k] = cmplx.Exp(complex(0, phi))
	}

	return NewDiag(values, opts...)
}

// FromCMatrix copies any gonum complex matrix into a Dense.
// Errors: ErrNilMatrix for a nil source, ErrInvalidDimensions for empty shapes.
// Complexity: O(r*c).
func FromCMatrix(a mat.CMatrix, opts ...Option) (*Dense, error) {
	if a == nil {
		return nil, matrixErrorf(opFromCMatrix, ErrNilMatrix)
	}
	r, c := a.Dims()
	m, err := NewDense(r, c, opts...)
	if err != nil {
		return nil, matrixErrorf(opFromCMatrix, err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i*c+j] = a.At(i, j)
		}
	}

	return m, nil
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors: ErrOutOfRange wrapped with coordinates.
// Complexity: O(1).
func (m *Dense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Errors: ErrOutOfRange; ErrNaNInf when the numeric policy rejects v.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	if m.validateNaNInf && isNonFiniteComplex(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix (policy included).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	return m.clone()
}

func (m *Dense) clone() *Dense {
	buf := make([]complex128, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf, validateNaNInf: m.validateNaNInf}
}

// Diagonal returns a copy of the main diagonal (length min(r,c)).
// Complexity: O(min(r,c)).
func (m *Dense) Diagonal() []complex128 {
	n := m.r
	if m.c < n {
		n = m.c
	}
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		out[k] = m.data[k*m.c+k]
	}

	return out
}

// RawCMatrix exposes the backing buffer as a cblas128.General (no copy).
// Mutations through the returned value are visible in m.
func (m *Dense) RawCMatrix() cblas128.General {
	return cblas128.General{Rows: m.r, Cols: m.c, Data: m.data, Stride: m.c}
}

// ToCDense copies m into a gonum *mat.CDense.
// Complexity: O(r*c).
func (m *Dense) ToCDense() *mat.CDense {
	buf := make([]complex128, len(m.data))
	copy(buf, m.data)

	return mat.NewCDense(m.r, m.c, buf)
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			v := m.data[i*m.c+j]
			sb.WriteString(formatComplex(v))
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// formatComplex prints a compact a±bi form; negative zeros are normalized.
func formatComplex(v complex128) string {
	re, im := real(v), imag(v)
	if re == 0 {
		re = 0
	}
	if im == 0 {
		im = 0
	}
	sign := "+"
	if math.Signbit(im) {
		sign = "-"
		im = -im
	}

	return fmt.Sprintf("%g%s%gi", re, sign, im)
}
