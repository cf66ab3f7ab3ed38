package model

import "errors"

// Sentinel errors returned by model construction.
var (
	// ErrUnsupportedFamily indicates a count-family selector outside
	// {Poisson, NegativeBinomial, Gamma}.
	ErrUnsupportedFamily = errors.New("model: unsupported count family")

	// ErrCovariateMismatch indicates a requested covariate name that is not
	// a column of the dataset's covariate matrix.
	ErrCovariateMismatch = errors.New("model: covariate not found in dataset")

	// ErrBadPrior indicates a non-positive Beta prior shape for p10.
	ErrBadPrior = errors.New("model: p10 prior shapes must be positive")

	// ErrGearMismatch indicates that the gear-type configuration and the
	// dataset's gear assignment matrix disagree (missing matrix, or a gear
	// index at or above the declared count).
	ErrGearMismatch = errors.New("model: gear configuration mismatch")

	// ErrNonPositiveCount indicates a zero or negative traditional count
	// under the gamma family, whose support is strictly positive.
	ErrNonPositiveCount = errors.New("model: gamma family requires positive counts")

	// ErrNonIntegerCount indicates a fractional traditional count under a
	// discrete family (Poisson, negative binomial).
	ErrNonIntegerCount = errors.New("model: discrete family requires integer counts")

	// ErrNilDataset indicates a nil *dataset.Dataset.
	ErrNilDataset = errors.New("model: dataset is nil")
)

// Family selects the distribution of traditional survey counts.
type Family int

const (
	// Poisson: counts with variance equal to the mean.
	Poisson Family = iota

	// NegativeBinomial: overdispersed counts; dispersion parameter phi.
	NegativeBinomial

	// Gamma: positive continuous measures (e.g., biomass); shape phi,
	// rate phi/mu, so the mean stays mu.
	Gamma
)

// String returns the configuration-layer name of the family.
func (f Family) String() string {
	switch f {
	case Poisson:
		return "poisson"
	case NegativeBinomial:
		return "negative_binomial"
	case Gamma:
		return "gamma"
	default:
		return "unknown"
	}
}

// ParseFamily maps a configuration string onto a Family.
// Unknown strings yield ErrUnsupportedFamily.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "poisson":
		return Poisson, nil
	case "negative_binomial":
		return NegativeBinomial, nil
	case "gamma":
		return Gamma, nil
	default:
		return 0, ErrUnsupportedFamily
	}
}

// valid reports whether f is one of the three recognized families.
func (f Family) valid() bool {
	return f == Poisson || f == NegativeBinomial || f == Gamma
}

// hasDispersion reports whether the family carries a phi parameter.
func (f Family) hasDispersion() bool {
	return f == NegativeBinomial || f == Gamma
}

// BetaPrior holds the two positive shape parameters of the Beta prior on
// the false-positive rate p10.
type BetaPrior struct {
	Alpha float64
	Beta  float64
}

// Mean returns the prior mean Alpha/(Alpha+Beta).
func (p BetaPrior) Mean() float64 { return p.Alpha / (p.Alpha + p.Beta) }

// Default prior and hyperparameter constants.
const (
	// DefaultP10PriorAlpha / DefaultP10PriorBeta give the Beta(1, 20)
	// default prior on p10 (prior mean ≈ 0.048).
	DefaultP10PriorAlpha = 1.0
	DefaultP10PriorBeta  = 20.0

	// AlphaPriorSD is the scale of the Normal(0, sd) prior on the
	// regression coefficients.
	AlphaPriorSD = 10.0

	// MuPriorShape / MuPriorRate parameterize the weakly informative
	// Gamma prior on each site intensity mu_i (and on phi).
	MuPriorShape = 0.25
	MuPriorRate  = 0.25

	// QPriorLogSD is the log-scale sd of the LogNormal(0, sd) prior on the
	// per-gear catchability multipliers.
	QPriorLogSD = 1.0
)

// Options configures model construction.
//
// Family      – traditional count distribution (default Poisson).
// P10Prior    – Beta prior on the false-positive rate (default Beta(1, 20)).
// Covariates  – dataset covariate columns to include, order-significant:
//
//	alpha[1..P] follow this ordering, alpha[0] is the intercept.
//
// GearTypes   – 0 or 1 selects the single-intensity count sub-model;
//
//	G ≥ 2 selects per-gear-type intensities mu_i·q_g with the
//	reference gear 0 fixed at q=1 and q[2..G] estimated.
type Options struct {
	Family     Family
	P10Prior   BetaPrior
	Covariates []string
	GearTypes  int
}

// DefaultOptions returns the baseline configuration: Poisson counts,
// Beta(1, 20) prior on p10, no covariates, single-intensity sub-model.
func DefaultOptions() Options {
	return Options{
		Family:   Poisson,
		P10Prior: BetaPrior{Alpha: DefaultP10PriorAlpha, Beta: DefaultP10PriorBeta},
	}
}
