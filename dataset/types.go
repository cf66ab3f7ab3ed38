package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by dataset validation and matrix accessors.
var (
	// ErrNilDataset indicates that a nil *Dataset was passed to Validate.
	ErrNilDataset = errors.New("dataset: dataset is nil")

	// ErrNilMatrix indicates that a required observation matrix is nil.
	ErrNilMatrix = errors.New("dataset: required matrix is nil")

	// ErrShapeMismatch indicates that row or column counts disagree across
	// the observation matrices (e.g., differing numbers of sites).
	ErrShapeMismatch = errors.New("dataset: shape mismatch")

	// ErrMissingnessMismatch indicates that a cell is present in the PCR
	// attempt matrix but absent in the detection matrix, or vice versa.
	ErrMissingnessMismatch = errors.New("dataset: missingness mismatch")

	// ErrCountExceedsAttempts indicates a PCR detection count greater than
	// its paired attempt count.
	ErrCountExceedsAttempts = errors.New("dataset: detections exceed attempts")

	// ErrNegativeValue indicates a negative count, attempt, or detection.
	ErrNegativeValue = errors.New("dataset: negative value")

	// ErrCovariateNotFinite indicates a NaN or ±Inf covariate entry.
	ErrCovariateNotFinite = errors.New("dataset: covariate not finite")

	// ErrGearOutOfRange indicates a gear index outside the declared range.
	ErrGearOutOfRange = errors.New("dataset: gear index out of range")

	// ErrOutOfRange indicates a matrix index outside valid bounds.
	// Public indexers return this; they never panic.
	ErrOutOfRange = errors.New("dataset: index out of range")
)

// CellError pinpoints the first offending cell of a validation failure.
// It wraps one of the package sentinels, so errors.Is still matches.
type CellError struct {
	Matrix string // "count", "attempts", "detections", "covariates", "gear"
	Row    int
	Col    int
	Err    error
}

// Error implements the error interface.
func (e *CellError) Error() string {
	return fmt.Sprintf("%v: matrix %q, row %d, col %d", e.Err, e.Matrix, e.Row, e.Col)
}

// Unwrap exposes the underlying sentinel for errors.Is / errors.As.
func (e *CellError) Unwrap() error { return e.Err }

// Warning is a non-fatal validation finding. Warnings never abort model
// building; callers decide whether to act on them.
type Warning struct {
	Code    string
	Message string
}

// Warning codes emitted by Validate.
const (
	// WarnCovariateScaling signals a covariate column whose sample mean or
	// standard deviation is far from the expected standardized scale
	// (mean ≈ 0, sd ≈ 1).
	WarnCovariateScaling = "covariate_scaling"
)

// FloatMatrix is a rectangular matrix of float64 values with per-cell
// presence tracking. A fresh matrix starts fully missing; Set marks a
// cell present. Missing cells are a first-class state, distinct from any
// numeric value.
type FloatMatrix struct {
	rows, cols int
	vals       []float64
	present    []bool
}

// NewFloatMatrix allocates a rows×cols matrix with every cell missing.
// Non-positive dimensions yield a nil matrix; Validate will reject it.
func NewFloatMatrix(rows, cols int) *FloatMatrix {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	return &FloatMatrix{
		rows:    rows,
		cols:    cols,
		vals:    make([]float64, rows*cols),
		present: make([]bool, rows*cols),
	}
}

// Rows returns the number of rows (sites).
func (m *FloatMatrix) Rows() int { return m.rows }

// Cols returns the number of columns (replicates / water samples).
func (m *FloatMatrix) Cols() int { return m.cols }

// Set records value v at (i, j) and marks the cell present.
// Returns ErrOutOfRange for indices outside the matrix.
func (m *FloatMatrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return ErrOutOfRange
	}
	m.vals[i*m.cols+j] = v
	m.present[i*m.cols+j] = true

	return nil
}

// At returns the value at (i, j) and whether the cell is present.
// Out-of-range indices report (0, false).
func (m *FloatMatrix) At(i, j int) (float64, bool) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, false
	}
	if !m.present[i*m.cols+j] {
		return 0, false
	}

	return m.vals[i*m.cols+j], true
}

// Present reports whether the cell (i, j) holds an observed value.
func (m *FloatMatrix) Present(i, j int) bool {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return false
	}

	return m.present[i*m.cols+j]
}

// RowPresent counts the observed cells in row i.
func (m *FloatMatrix) RowPresent(i int) int {
	if i < 0 || i >= m.rows {
		return 0
	}
	n := 0
	for j := 0; j < m.cols; j++ {
		if m.present[i*m.cols+j] {
			n++
		}
	}

	return n
}

// IntMatrix is a rectangular matrix of int values with per-cell presence
// tracking, mirroring FloatMatrix.
type IntMatrix struct {
	rows, cols int
	vals       []int
	present    []bool
}

// NewIntMatrix allocates a rows×cols matrix with every cell missing.
// Non-positive dimensions yield a nil matrix; Validate will reject it.
func NewIntMatrix(rows, cols int) *IntMatrix {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	return &IntMatrix{
		rows:    rows,
		cols:    cols,
		vals:    make([]int, rows*cols),
		present: make([]bool, rows*cols),
	}
}

// Rows returns the number of rows (sites).
func (m *IntMatrix) Rows() int { return m.rows }

// Cols returns the number of columns (replicates / water samples).
func (m *IntMatrix) Cols() int { return m.cols }

// Set records value v at (i, j) and marks the cell present.
// Returns ErrOutOfRange for indices outside the matrix.
func (m *IntMatrix) Set(i, j, v int) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return ErrOutOfRange
	}
	m.vals[i*m.cols+j] = v
	m.present[i*m.cols+j] = true

	return nil
}

// At returns the value at (i, j) and whether the cell is present.
// Out-of-range indices report (0, false).
func (m *IntMatrix) At(i, j int) (int, bool) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, false
	}
	if !m.present[i*m.cols+j] {
		return 0, false
	}

	return m.vals[i*m.cols+j], true
}

// Present reports whether the cell (i, j) holds an observed value.
func (m *IntMatrix) Present(i, j int) bool {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return false
	}

	return m.present[i*m.cols+j]
}

// RowPresent counts the observed cells in row i.
func (m *IntMatrix) RowPresent(i int) int {
	if i < 0 || i >= m.rows {
		return 0
	}
	n := 0
	for j := 0; j < m.cols; j++ {
		if m.present[i*m.cols+j] {
			n++
		}
	}

	return n
}

// Dataset bundles the observation matrices for one joint-model fit.
//
// Count holds the traditional survey observations (S × R_max); under the
// gamma count family the values may be positive continuous measures.
// Attempts and Detections hold the PCR replicate matrices (S × W_max) and
// must share an identical missingness pattern. Covariates, if non-nil, is
// an S × P dense matrix of standardized site predictors named by
// CovariateNames. Gear, if non-nil, assigns each traditional replicate a
// gear type 0..G-1 and must mirror Count's missingness.
//
// A Dataset that has passed Validate is immutable by convention: no
// package in this module mutates it, so it is safe to share across
// parallel chains and repeated fits.
type Dataset struct {
	Count      *FloatMatrix
	Attempts   *IntMatrix
	Detections *IntMatrix

	Covariates     *mat.Dense
	CovariateNames []string

	Gear *IntMatrix
}

// Sites returns the number of survey sites (rows) in the dataset, taken
// from the traditional count matrix.
func (ds *Dataset) Sites() int {
	if ds == nil || ds.Count == nil {
		return 0
	}

	return ds.Count.Rows()
}

// GearTypes returns the number of distinct gear types referenced by the
// gear assignment matrix (max index + 1), or 1 when no gear matrix is set.
func (ds *Dataset) GearTypes() int {
	if ds == nil || ds.Gear == nil {
		return 1
	}
	maxGear := 0
	for i := 0; i < ds.Gear.Rows(); i++ {
		for j := 0; j < ds.Gear.Cols(); j++ {
			if g, ok := ds.Gear.At(i, j); ok && g > maxGear {
				maxGear = g
			}
		}
	}

	return maxGear + 1
}
