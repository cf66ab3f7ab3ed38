// Package dataset defines the observation matrices consumed by the joint
// eDNA / traditional-survey model, and validates them before any inference
// begins.
//
// What
//
//   - FloatMatrix / IntMatrix: rectangular matrices with an explicit
//     per-cell "missing" sentinel, so that "no replicate recorded" is never
//     confused with "zero count observed".
//   - Dataset: the full input bundle — traditional counts, PCR attempts,
//     PCR detections, optional standardized site covariates, and an
//     optional per-replicate gear assignment.
//   - Validate: shape and missingness-alignment checks, returning a fatal
//     error on the first violation and non-fatal Warnings for soft
//     criteria (covariate scaling).
//
// Why
//
//	Every downstream package (model building, sampling, model comparison)
//	assumes the invariants enforced here: equal site counts across
//	matrices, detections never exceeding attempts, and identical
//	missingness patterns between the two PCR matrices. Validation is the
//	single cheap place to fail fast; once a Dataset passes Validate it is
//	treated as immutable and may be shared freely across parallel chains.
//
// Errors (sentinel)
//
//   - ErrNilDataset            — nil *Dataset passed to Validate.
//   - ErrNilMatrix             — a required matrix is nil.
//   - ErrShapeMismatch         — row/column counts disagree across matrices.
//   - ErrMissingnessMismatch   — a cell is present in one PCR matrix and
//     absent in its twin.
//   - ErrCountExceedsAttempts  — detections[i][w] > attempts[i][w].
//   - ErrNegativeValue         — a negative count, attempt, or detection.
//   - ErrCovariateNotFinite    — NaN or ±Inf in the covariate matrix.
//   - ErrGearOutOfRange        — gear index outside 0..G-1.
//
// Fatal errors carry a CellError identifying the offending matrix, row,
// and column; match the underlying condition with errors.Is.
package dataset
