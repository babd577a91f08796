// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/clements/matrix"
)

// TestDefaultOptions_Documented verifies that NewOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewOptions()

	assert.Equal(t, matrix.DefaultEpsilon, o.Epsilon())
	assert.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf())
	assert.Equal(t, matrix.DefaultPrecision, o.Precision())
}

// TestOptions_LastWriterWins ensures each Option toggles exactly its intended field.
func TestOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	assert.True(t, o.ValidateNaNInf())

	o = matrix.NewOptions(matrix.WithEpsilon(1e-3), matrix.WithPrecision(matrix.Complex64))
	assert.Equal(t, 1e-3, o.Epsilon())
	assert.Equal(t, matrix.Complex64, o.Precision())
	assert.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf())
}

// TestOptions_PanicsOnNonsense checks constructor validation.
func TestOptions_PanicsOnNonsense(t *testing.T) {
	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { matrix.WithPrecision(matrix.Precision(42)) })
	assert.NotPanics(t, func() { matrix.WithEpsilon(0) })
}
