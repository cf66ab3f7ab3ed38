package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Tolerances for the covariate scaling warning. Standardized predictors
// should have per-column mean ≈ 0 and standard deviation ≈ 1; drifting
// outside these bounds yields a Warning, never a hard failure.
const (
	// MaxCovariateMeanDrift bounds |column mean| before a scaling warning.
	MaxCovariateMeanDrift = 0.15

	// MinCovariateSD / MaxCovariateSD bound the column standard deviation
	// before a scaling warning. Constant (binary, all-equal) columns with
	// sd == 0 are also flagged.
	MinCovariateSD = 0.85
	MaxCovariateSD = 1.15
)

// Validate checks shape consistency and missingness alignment across the
// dataset's matrices. It returns on the first fatal violation with a
// *CellError wrapping the matching sentinel; soft criteria (covariate
// scaling) accumulate Warnings instead.
//
// Checks, in order:
//  1. required matrices non-nil, site count > 0;
//  2. equal row count across Count, Attempts, Detections, Covariates, Gear;
//  3. Attempts and Detections share column count and an identical,
//     cell-for-cell missingness pattern;
//  4. detections ≤ attempts wherever both are present; no negative
//     counts, attempts, or detections;
//  5. covariates (if present): every entry finite; per-column mean and
//     standard deviation close to standardized scale (warning only);
//  6. gear (if present): missingness identical to Count, indices ≥ 0.
//
// Validate has no side effects; the dataset is never mutated.
func Validate(ds *Dataset) ([]Warning, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if ds.Count == nil || ds.Attempts == nil || ds.Detections == nil {
		return nil, ErrNilMatrix
	}

	sites := ds.Count.Rows()
	if sites == 0 {
		return nil, &CellError{Matrix: "count", Row: 0, Col: 0, Err: ErrShapeMismatch}
	}
	if ds.Attempts.Rows() != sites {
		return nil, &CellError{Matrix: "attempts", Row: ds.Attempts.Rows(), Col: 0, Err: ErrShapeMismatch}
	}
	if ds.Detections.Rows() != sites {
		return nil, &CellError{Matrix: "detections", Row: ds.Detections.Rows(), Col: 0, Err: ErrShapeMismatch}
	}
	if ds.Attempts.Cols() != ds.Detections.Cols() {
		return nil, &CellError{Matrix: "detections", Row: 0, Col: ds.Detections.Cols(), Err: ErrShapeMismatch}
	}

	if err := validateCounts(ds.Count); err != nil {
		return nil, err
	}
	if err := validatePCR(ds.Attempts, ds.Detections); err != nil {
		return nil, err
	}

	var warnings []Warning
	if ds.Covariates != nil {
		w, err := validateCovariates(ds, sites)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
	}
	if ds.Gear != nil {
		if err := validateGear(ds, sites); err != nil {
			return nil, err
		}
	}

	return warnings, nil
}

// validateCounts rejects negative traditional observations.
func validateCounts(c *FloatMatrix) error {
	for i := 0; i < c.Rows(); i++ {
		for j := 0; j < c.Cols(); j++ {
			if v, ok := c.At(i, j); ok && (v < 0 || math.IsNaN(v) || math.IsInf(v, 0)) {
				return &CellError{Matrix: "count", Row: i, Col: j, Err: ErrNegativeValue}
			}
		}
	}

	return nil
}

// validatePCR enforces the missingness twin-pattern between attempts and
// detections, and the per-cell detections ≤ attempts invariant.
func validatePCR(attempts, detections *IntMatrix) error {
	for i := 0; i < attempts.Rows(); i++ {
		for w := 0; w < attempts.Cols(); w++ {
			na, okN := attempts.At(i, w)
			k, okK := detections.At(i, w)
			if okN != okK {
				return &CellError{Matrix: "detections", Row: i, Col: w, Err: ErrMissingnessMismatch}
			}
			if !okN {
				continue
			}
			if na < 0 {
				return &CellError{Matrix: "attempts", Row: i, Col: w, Err: ErrNegativeValue}
			}
			if k < 0 {
				return &CellError{Matrix: "detections", Row: i, Col: w, Err: ErrNegativeValue}
			}
			if k > na {
				return &CellError{Matrix: "detections", Row: i, Col: w, Err: ErrCountExceedsAttempts}
			}
		}
	}

	return nil
}

// validateCovariates checks finiteness (fatal) and standardized scaling
// (warning) of the covariate matrix.
func validateCovariates(ds *Dataset, sites int) ([]Warning, error) {
	r, p := ds.Covariates.Dims()
	if r != sites {
		return nil, &CellError{Matrix: "covariates", Row: r, Col: 0, Err: ErrShapeMismatch}
	}
	if len(ds.CovariateNames) != 0 && len(ds.CovariateNames) != p {
		return nil, &CellError{Matrix: "covariates", Row: 0, Col: len(ds.CovariateNames), Err: ErrShapeMismatch}
	}

	for i := 0; i < r; i++ {
		for j := 0; j < p; j++ {
			v := ds.Covariates.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &CellError{Matrix: "covariates", Row: i, Col: j, Err: ErrCovariateNotFinite}
			}
		}
	}

	var warnings []Warning
	col := make([]float64, r)
	for j := 0; j < p; j++ {
		for i := 0; i < r; i++ {
			col[i] = ds.Covariates.At(i, j)
		}
		mean, sd := stat.MeanStdDev(col, nil)
		if math.Abs(mean) > MaxCovariateMeanDrift || sd < MinCovariateSD || sd > MaxCovariateSD {
			warnings = append(warnings, Warning{
				Code:    WarnCovariateScaling,
				Message: covariateScalingMessage(j, ds.CovariateNames, mean, sd),
			})
		}
	}

	return warnings, nil
}

// covariateScalingMessage names the column (by covariate name when one is
// available) and reports the observed mean and standard deviation.
func covariateScalingMessage(col int, names []string, mean, sd float64) string {
	label := fmt.Sprintf("column %d", col)
	if col < len(names) {
		label = fmt.Sprintf("column %q", names[col])
	}

	return fmt.Sprintf("covariate %s not standardized: mean=%.3f, sd=%.3f", label, mean, sd)
}

// validateGear enforces missingness alignment with Count and index bounds.
func validateGear(ds *Dataset, sites int) error {
	if ds.Gear.Rows() != sites {
		return &CellError{Matrix: "gear", Row: ds.Gear.Rows(), Col: 0, Err: ErrShapeMismatch}
	}
	if ds.Gear.Cols() != ds.Count.Cols() {
		return &CellError{Matrix: "gear", Row: 0, Col: ds.Gear.Cols(), Err: ErrShapeMismatch}
	}
	for i := 0; i < sites; i++ {
		for j := 0; j < ds.Gear.Cols(); j++ {
			g, okG := ds.Gear.At(i, j)
			if okG != ds.Count.Present(i, j) {
				return &CellError{Matrix: "gear", Row: i, Col: j, Err: ErrMissingnessMismatch}
			}
			if okG && g < 0 {
				return &CellError{Matrix: "gear", Row: i, Col: j, Err: ErrGearOutOfRange}
			}
		}
	}

	return nil
}
