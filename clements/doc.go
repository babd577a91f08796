// Package clements factors a d×d unitary into the rectangular (Clements)
// mesh of adjacent-mode beamsplitters followed by one layer of phaseshifters,
// and inverts that factorization.
//
// 🚀 What is the Clements decomposition?
//
//	Any unitary U can be written as D·∏ BS(θ,φ), where every BS mixes two
//	neighbouring modes with
//
//	    BS(θ, φ) = [[e^{iφ}·cosθ, −sinθ],
//	                [e^{iφ}·sinθ,  cosθ]]
//
//	and D = diag(e^{iφ_k}). The d(d−1)/2 beamsplitters fit in 2d−3 columns,
//	the minimal depth for a physically realizable linear interferometer.
//
// ✨ Key features:
//   - Decompose / Reconstruct: exact up to floating-point tolerance.
//   - Instructions: the equivalent gate stream (phaseshifter + beamsplitter per BS).
//   - Weights / FromWeights: a length-d² real vector for optimizers, laid out
//     on the topology of the decomposition of the identity.
//   - DecomposeBatch / ReconstructBatch: bounded concurrent fan-out.
//
// ⚙️ Usage:
//
//	dec, err := clements.Decompose(U)
//	if err != nil { ... }
//	back, err := clements.Reconstruct(dec) // ≈ U
//	w, err := clements.Weights(dec, U.Rows())
//
// Algorithm outline:
//  1. For column = d−2 … 0: even columns eliminate sub-diagonal entries by
//     left-multiplying rotations (direct pass, collected as trailing ops);
//     odd columns right-multiply conjugate rotations (inverse pass, leading ops).
//  2. The remaining diagonal gives the middle phases arg(U[k,k]).
//  3. Trailing ops are reversed and commuted through the phase layer so all
//     phaseshifters end up at the output side.
//
// Complexity: O(d²) rotations, each applied in place to the two rows or columns
// it mixes (O(d³) total); memory O(d²).
//
// The decomposition is one representative of a commutation-equivalence class;
// only the reconstructed matrix is canonical.
package clements
