// SPDX-License-Identifier: MIT

// Package clements: functional configuration.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package clements

import (
	"math"
	"runtime"

	"github.com/katalvlaran/clements/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultZeroTolerance is the absolute tolerance under which the element to
	// eliminate counts as zero (the degenerate (π/2, 0) rotation is used).
	DefaultZeroTolerance = 1e-8

	// DefaultPrecision is the element precision of produced matrices.
	DefaultPrecision = matrix.Complex128

	// DefaultUnitaryEpsilon is the tolerance used once WithUnitaryCheck is enabled
	// with a zero epsilon.
	DefaultUnitaryEpsilon = 1e-9
)

const (
	panicToleranceInvalid   = "clements: WithZeroTolerance: tol must be finite, non-negative"
	panicUnitaryEpsInvalid  = "clements: WithUnitaryCheck: eps must be finite, non-negative"
	panicConcurrencyInvalid = "clements: WithConcurrency: n must be >= 1"
	panicPrecisionInvalid   = "clements: WithPrecision: unknown precision"
)

// Option mutates internal options; apply order is last-writer-wins.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	zeroTol      float64
	precision    matrix.Precision
	checkUnitary bool
	unitaryEps   float64
	concurrency  int
}

// WithZeroTolerance sets the absolute zero test used by angle extraction.
// Panics when tol is negative or non-finite.
func WithZeroTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.zeroTol = tol }
}

// WithPrecision selects the precision of embedded rotations, working copies and
// reconstructed matrices (the "dtype").
func WithPrecision(p matrix.Precision) Option {
	if p != matrix.Complex128 && p != matrix.Complex64 {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.precision = p }
}

// WithUnitaryCheck makes Decompose verify UᴴU ≈ I within eps before factoring.
// eps == 0 selects DefaultUnitaryEpsilon.
func WithUnitaryCheck(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicUnitaryEpsInvalid)
	}
	if eps == 0 {
		eps = DefaultUnitaryEpsilon
	}

	return func(o *Options) {
		o.checkUnitary = true
		o.unitaryEps = eps
	}
}

// WithConcurrency bounds the number of goroutines used by the batch helpers.
func WithConcurrency(n int) Option {
	if n < 1 {
		panic(panicConcurrencyInvalid)
	}

	return func(o *Options) { o.concurrency = n }
}

// gatherOptions applies user-provided setters on top of the defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		zeroTol:     DefaultZeroTolerance,
		precision:   DefaultPrecision,
		unitaryEps:  DefaultUnitaryEpsilon,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// round applies the precision policy to a freshly produced matrix.
func (o Options) round(m *matrix.Dense) (*matrix.Dense, error) {
	if o.precision == matrix.Complex128 {
		return m, nil
	}

	return matrix.Cast(m, o.precision)
}
