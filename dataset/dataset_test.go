package dataset_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/abigailkeller/eDNAjoint-workshop/dataset"
)

// buildComplete returns a fully observed 3-site dataset: 2 traditional
// replicates and 2 water samples per site, no covariates, no gear.
func buildComplete(t *testing.T) *dataset.Dataset {
	t.Helper()

	count := dataset.NewFloatMatrix(3, 2)
	attempts := dataset.NewIntMatrix(3, 2)
	detections := dataset.NewIntMatrix(3, 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			require.NoError(t, count.Set(i, j, float64(i+j)))
			require.NoError(t, attempts.Set(i, j, 6))
			require.NoError(t, detections.Set(i, j, i))
		}
	}

	return &dataset.Dataset{Count: count, Attempts: attempts, Detections: detections}
}

func TestValidate_NilDataset(t *testing.T) {
	_, err := dataset.Validate(nil)
	assert.ErrorIs(t, err, dataset.ErrNilDataset)
}

func TestValidate_NilMatrix(t *testing.T) {
	ds := buildComplete(t)
	ds.Detections = nil
	_, err := dataset.Validate(ds)
	assert.ErrorIs(t, err, dataset.ErrNilMatrix)
}

func TestValidate_CompleteDatasetAccepted(t *testing.T) {
	warnings, err := dataset.Validate(buildComplete(t))
	assert.NoError(t, err)
	assert.Empty(t, warnings)
}

// TestValidate_RaggedReplicatesAccepted verifies that a site with fewer
// recorded replicates than R_max passes as long as missingness is aligned.
func TestValidate_RaggedReplicatesAccepted(t *testing.T) {
	count := dataset.NewFloatMatrix(2, 3)
	attempts := dataset.NewIntMatrix(2, 2)
	detections := dataset.NewIntMatrix(2, 2)

	// Site 0: 3 traditional replicates; site 1: only 1.
	for j := 0; j < 3; j++ {
		require.NoError(t, count.Set(0, j, 1))
	}
	require.NoError(t, count.Set(1, 0, 0))

	// Site 0: 2 water samples; site 1: 1, missing in both PCR matrices.
	require.NoError(t, attempts.Set(0, 0, 3))
	require.NoError(t, attempts.Set(0, 1, 3))
	require.NoError(t, detections.Set(0, 0, 1))
	require.NoError(t, detections.Set(0, 1, 0))
	require.NoError(t, attempts.Set(1, 0, 3))
	require.NoError(t, detections.Set(1, 0, 2))

	_, err := dataset.Validate(&dataset.Dataset{Count: count, Attempts: attempts, Detections: detections})
	assert.NoError(t, err)
}

func TestValidate_RowCountMismatch(t *testing.T) {
	ds := buildComplete(t)
	ds.Attempts = dataset.NewIntMatrix(4, 2)
	for i := 0; i < 4; i++ {
		for j := 0; j < 2; j++ {
			require.NoError(t, ds.Attempts.Set(i, j, 6))
		}
	}
	_, err := dataset.Validate(ds)
	assert.ErrorIs(t, err, dataset.ErrShapeMismatch)
}

// TestValidate_SingleMissingnessMismatch injects one absent detection cell
// whose attempt twin is present, and checks the error names that cell.
func TestValidate_SingleMissingnessMismatch(t *testing.T) {
	count := dataset.NewFloatMatrix(3, 2)
	attempts := dataset.NewIntMatrix(3, 2)
	detections := dataset.NewIntMatrix(3, 2)
	for i := 0; i < 3; i++ {
		require.NoError(t, count.Set(i, 0, 1))
		for j := 0; j < 2; j++ {
			require.NoError(t, attempts.Set(i, j, 6))
			if i != 1 || j != 1 {
				require.NoError(t, detections.Set(i, j, 1))
			}
		}
	}

	_, err := dataset.Validate(&dataset.Dataset{Count: count, Attempts: attempts, Detections: detections})
	require.ErrorIs(t, err, dataset.ErrMissingnessMismatch)

	var cell *dataset.CellError
	require.True(t, errors.As(err, &cell))
	assert.Equal(t, 1, cell.Row)
	assert.Equal(t, 1, cell.Col)
	assert.Equal(t, "detections", cell.Matrix)
}

// TestValidate_DetectionsExceedAttempts injects a single K > N cell and
// checks that the failure identifies row i and column w.
func TestValidate_DetectionsExceedAttempts(t *testing.T) {
	ds := buildComplete(t)
	require.NoError(t, ds.Attempts.Set(2, 1, 3))
	require.NoError(t, ds.Detections.Set(2, 1, 5))

	_, err := dataset.Validate(ds)
	require.ErrorIs(t, err, dataset.ErrCountExceedsAttempts)

	var cell *dataset.CellError
	require.True(t, errors.As(err, &cell))
	assert.Equal(t, 2, cell.Row)
	assert.Equal(t, 1, cell.Col)
}

func TestValidate_NegativeDetection(t *testing.T) {
	ds := buildComplete(t)
	require.NoError(t, ds.Detections.Set(0, 0, -1))
	_, err := dataset.Validate(ds)
	assert.ErrorIs(t, err, dataset.ErrNegativeValue)
}

func TestValidate_CovariateNotFinite(t *testing.T) {
	ds := buildComplete(t)
	ds.Covariates = mat.NewDense(3, 1, []float64{0.1, math.NaN(), 0.1})
	_, err := dataset.Validate(ds)
	assert.ErrorIs(t, err, dataset.ErrCovariateNotFinite)
}

// TestValidate_CovariateScalingWarning checks that an unscaled covariate
// column produces a warning, not an error.
func TestValidate_CovariateScalingWarning(t *testing.T) {
	ds := buildComplete(t)
	ds.Covariates = mat.NewDense(3, 1, []float64{10, 20, 30})
	ds.CovariateNames = []string{"depth"}

	warnings, err := dataset.Validate(ds)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, dataset.WarnCovariateScaling, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "depth")
}

func TestValidate_StandardizedCovariateNoWarning(t *testing.T) {
	ds := buildComplete(t)
	ds.Covariates = mat.NewDense(3, 1, []float64{-1, 0, 1})

	warnings, err := dataset.Validate(ds)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_GearMissingnessMismatch(t *testing.T) {
	ds := buildComplete(t)
	ds.Gear = dataset.NewIntMatrix(3, 2)
	// Leave (0,1) missing in gear while count has it present.
	require.NoError(t, ds.Gear.Set(0, 0, 0))
	for i := 1; i < 3; i++ {
		for j := 0; j < 2; j++ {
			require.NoError(t, ds.Gear.Set(i, j, 1))
		}
	}

	_, err := dataset.Validate(ds)
	require.ErrorIs(t, err, dataset.ErrMissingnessMismatch)

	var cell *dataset.CellError
	require.True(t, errors.As(err, &cell))
	assert.Equal(t, "gear", cell.Matrix)
}

func TestDataset_GearTypes(t *testing.T) {
	ds := buildComplete(t)
	assert.Equal(t, 1, ds.GearTypes())

	ds.Gear = dataset.NewIntMatrix(3, 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			require.NoError(t, ds.Gear.Set(i, j, j))
		}
	}
	assert.Equal(t, 2, ds.GearTypes())
}

func TestMatrix_MissingIsNotZero(t *testing.T) {
	m := dataset.NewFloatMatrix(2, 2)
	require.NoError(t, m.Set(0, 0, 0))

	_, ok := m.At(0, 0)
	assert.True(t, ok, "explicit zero must read back as present")
	_, ok = m.At(0, 1)
	assert.False(t, ok, "unset cell must read back as missing")

	assert.Equal(t, 1, m.RowPresent(0))
	assert.Equal(t, 0, m.RowPresent(1))
}

func TestMatrix_OutOfRange(t *testing.T) {
	m := dataset.NewIntMatrix(2, 2)
	assert.ErrorIs(t, m.Set(5, 0, 1), dataset.ErrOutOfRange)
	_, ok := m.At(-1, 0)
	assert.False(t, ok)
	assert.Nil(t, dataset.NewIntMatrix(0, 3))
}
