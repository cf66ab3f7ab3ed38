package effort

import "errors"

// Sentinel errors returned by Curve.
var (
	// ErrNilDraws indicates a nil or empty draw set.
	ErrNilDraws = errors.New("effort: nil or empty draw set")

	// ErrBadTarget indicates a target probability outside (0, 1).
	ErrBadTarget = errors.New("effort: target probability must lie in (0, 1)")

	// ErrBadMuRange indicates a malformed intensity grid.
	ErrBadMuRange = errors.New("effort: intensity range must satisfy 0 < MuMin < MuMax with at least two steps")

	// ErrContinuousFamily indicates a gamma observation model, which has
	// no per-unit probability of observing at least one individual.
	ErrContinuousFamily = errors.New("effort: continuous count family has no detection probability")
)

// Default knob values used by DefaultOptions.
const (
	DefaultTarget   = 0.9
	DefaultMuMin    = 0.1
	DefaultMuMax    = 5.0
	DefaultSteps    = 50
	DefaultMaxUnits = 1000
)

// Options configures an effort curve.
type Options struct {
	// Target is the cumulative detection probability to reach, in (0, 1).
	Target float64

	// MuMin and MuMax bound the inclusive range of expected catch
	// intensities to scan; Steps is the number of grid points (≥ 2).
	MuMin, MuMax float64
	Steps        int

	// Covariates holds site covariate values for the eDNA sensitivity
	// predictor, in the fitted model's covariate order. Nil means the
	// all-zero "average site".
	Covariates []float64

	// MaxUnits caps the reported unit count; where the target is
	// unreachable the curve reports the cap rather than diverging.
	MaxUnits int
}

// DefaultOptions returns the baseline curve configuration: 90% target
// detection over fifty intensities in [0.1, 5] at the average site.
func DefaultOptions() Options {
	return Options{
		Target:   DefaultTarget,
		MuMin:    DefaultMuMin,
		MuMax:    DefaultMuMax,
		Steps:    DefaultSteps,
		MaxUnits: DefaultMaxUnits,
	}
}

// Point is one grid entry of an effort curve: at expected catch intensity
// Mu, the posterior-mean number of traditional replicates and eDNA water
// samples needed to reach the target detection probability.
type Point struct {
	Mu          float64
	Traditional float64
	EDNA        float64
}
