// Package matrix is the numeric backend of the Clements toolkit: a dense,
// row-major complex128 matrix with bounds-checked accessors and the handful
// of kernels a mesh decomposition needs.
//
// The matrix package provides:
//
//   - Dense with safe At/Set (errors, never panics) and a NaN/Inf policy.
//   - Identity, diagonal and phase-diagonal constructors.
//   - Mul / MulConjTrans backed by gonum's cblas128 (zgemm), ConjTranspose.
//   - EmbedInIdentity: scatter a k×k block into an n×n identity at given modes.
//   - ApplyBlockLeft, ApplyBlockRightConjTrans: the same embedded product
//     applied in place, touching only the k affected rows or columns.
//   - Cast to a Precision (complex128 or complex64 rounding).
//   - Tolerance checks: AllClose, MaxAbsDiff, IsUnitary, IsZero.
//   - gonum interop through RawCMatrix, ToCDense and FromCMatrix.
//
// Sub-package ops adds a complex Householder QR and Haar-random unitaries.
package matrix
