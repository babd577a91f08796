// Package clements is the root of the Clements decomposition toolkit: it
// turns any d×d unitary into the settings of a rectangular mesh of
// beamsplitters, the layout used by programmable linear-optics chips.
//
// 🚀 What is in the module?
//
//	clements/      Decompose, Reconstruct, instruction stream, weight vectors, batches
//	matrix/        complex dense backend (gonum BLAS), embedding, tolerance checks
//	matrix/ops/    complex Householder QR and Haar-random unitaries
//	codec/         JSON / go-json codecs with zstd or lz4 compression, file documents
//	cmd/clements/  command-line front end
//	examples/      runnable scenarios
//
// ✨ Guarantees:
//
//   - Reconstruct(Decompose(U)) ≈ U for every unitary U.
//   - d(d−1)/2 beamsplitters on adjacent modes plus d output phaseshifters.
//   - A decomposition round-trips through a d² weight vector.
//   - No global state: every call is safe for concurrent use.
//
// Quick ASCII picture of a 4-mode mesh (one column of beamsplitters per layer):
//
//	0 ─[BS]──────[BS]────── φ0
//	1 ─[  ]─[BS]─[  ]─[BS]─ φ1
//	2 ─[BS]─[  ]─[BS]─[  ]─ φ2
//	3 ─[  ]──────[  ]────── φ3
//
//	go get github.com/katalvlaran/clements
package clements
