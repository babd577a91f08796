// SPDX-License-Identifier: MIT

// Package matrix: domain types used by the dense complex kernels.
// This file intentionally contains ONLY domain-facing types (the Matrix
// interface and the numeric Precision). Errors and options live in dedicated
// files (errors.go, options.go).
package matrix

import "fmt"

// Matrix represents a two-dimensional mutable array of complex128 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (complex128, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v complex128) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}

// Precision selects the complex element type results are rounded to.
// Storage is always complex128; Complex64 rounds every produced entry
// through complex64, matching single-precision backends.
type Precision int

const (
	// Complex128 keeps full double precision (default).
	Complex128 Precision = iota

	// Complex64 rounds entries to single precision (float32 parts).
	Complex64
)

// String implements fmt.Stringer.
func (p Precision) String() string {
	switch p {
	case Complex128:
		return "complex128"
	case Complex64:
		return "complex64"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision maps "complex128"/"complex64" to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "complex128", "c128", "":
		return Complex128, nil
	case "complex64", "c64":
		return Complex64, nil
	default:
		return Complex128, fmt.Errorf("ParsePrecision(%q): %w", s, ErrUnknownPrecision)
	}
}
