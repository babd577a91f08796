// SPDX-License-Identifier: MIT

package clements

import "math"

const twoPi = 2 * math.Pi

// wrapAngle maps x into [0, 2π) with the sign convention of a floored modulo.
func wrapAngle(x float64) float64 {
	y := math.Mod(x, twoPi)
	if y < 0 {
		y += twoPi
	}

	return y
}

// commuteAngles rewrites BS(θ,φ)⁻¹ · diag(e^{iφ1}, e^{iφ2}) as
// diag(e^{iφ1'}, e^{iφ2'}) · BS(θ', φ') on one mode pair.
//
//	θ'  = θ
//	φ'  = (φ1 − φ2 + π) mod 2π
//	φ1' = (φ2 − φ + π)  mod 2π
//	φ2' = φ2
func commuteAngles(theta, phi, phi1, phi2 float64) (thetaOut, phiOut, phi1Out, phi2Out float64) {
	return theta, wrapAngle(phi1 - phi2 + math.Pi), wrapAngle(phi2 - phi + math.Pi), phi2
}

// commute moves the phase layer past the trailing rotations.
//
// trailing must be in the order the rotations act on the phase layer (the
// last applied direct rotation first). phases is updated in place and ends as
// the output-side phase layer; the returned rotations keep the input order.
func commute(phases []float64, trailing []Beamsplitter) []Beamsplitter {
	out := make([]Beamsplitter, len(trailing))
	for k, bs := range trailing {
		m0, m1 := bs.Modes[0], bs.Modes[1]
		theta, phi, p1, p2 := commuteAngles(bs.Theta, bs.Phi, phases[m0], phases[m1])
		out[k] = Beamsplitter{Modes: bs.Modes, Theta: theta, Phi: phi}
		phases[m0], phases[m1] = p1, p2
	}

	return out
}
