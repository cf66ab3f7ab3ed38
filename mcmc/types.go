package mcmc

import (
	"errors"
	"math/rand"
)

// Sentinel errors returned by the sampler and draw-set accessors.
var (
	// ErrNilTarget indicates a nil or zero-dimensional sampling target.
	ErrNilTarget = errors.New("mcmc: target is nil or empty")

	// ErrSamplingError indicates a non-finite log density at a chain's
	// initial point. This is fatal: the chain cannot start.
	ErrSamplingError = errors.New("mcmc: log density non-finite at initial point")

	// ErrUnknownParameter indicates a parameter name absent from the draw
	// set's index. The error is scoped to the single query.
	ErrUnknownParameter = errors.New("mcmc: unknown parameter")
)

// Warning is a non-fatal sampling finding attached to a DrawSet.
type Warning struct {
	Code    string
	Message string
}

// Warning codes emitted by Sample.
const (
	// WarnDivergentChain reports divergent (NaN log density) iterations on
	// a chain. Sampling continued; the draws are flagged, not discarded.
	WarnDivergentChain = "divergent_chain"
)

// Target is the joint density a sampler explores. *model.Spec satisfies
// it. Implementations must be safe for concurrent read-only use: chains
// share one Target and never mutate it.
type Target interface {
	// Dim is the length of the unconstrained parameter vector.
	Dim() int

	// LogDensity evaluates the joint log posterior density. It may return
	// -Inf (out of numeric range) or NaN (numerical failure; counted as a
	// divergence).
	LogDensity(theta []float64) float64

	// ParamNames names the constrained parameters, in Constrain order.
	ParamNames() []string

	// Constrain maps an unconstrained vector to the constrained
	// parameters, including any derived quantities.
	Constrain(theta []float64) []float64

	// InitialPoint draws a dispersed unconstrained starting vector.
	InitialPoint(rng *rand.Rand) []float64
}

// Sampler defaults.
const (
	// DefaultChains is the number of independent chains.
	DefaultChains = 4

	// DefaultWarmup / DefaultDraws are the per-chain iteration budget:
	// warmup iterations are used for scale adaptation and discarded;
	// DefaultDraws post-warmup draws are kept.
	DefaultWarmup = 1000
	DefaultDraws  = 1000

	// DefaultThin keeps every draw.
	DefaultThin = 1

	// DefaultSeed is the fixed base seed; WithSeed overrides it.
	DefaultSeed int64 = 1

	// targetAcceptance is the component-wise Metropolis acceptance rate
	// the warmup adaptation steers toward.
	targetAcceptance = 0.44

	// initialScale is the starting proposal standard deviation per
	// coordinate; warmup adaptation moves it within [minScale, maxScale].
	initialScale = 0.5
	minScale     = 1e-6
	maxScale     = 50.0
)

// Options stores the effective sampler configuration. Fields are
// unexported; public entry points accept ...Option.
type Options struct {
	chains   int
	warmup   int
	draws    int
	thin     int
	seed     int64
	parallel bool
}

// Option mutates sampler options. Constructors panic only on nonsensical
// values (programmer error); data-dependent failures are returned as
// errors by Sample.
type Option func(*Options)

// WithChains sets the number of independent chains. Panics if n < 1.
func WithChains(n int) Option {
	if n < 1 {
		panic("mcmc: WithChains: n must be >= 1")
	}

	return func(o *Options) { o.chains = n }
}

// WithIterations sets the per-chain warmup and kept-draw budget.
// Panics if warmup < 0 or draws < 1.
func WithIterations(warmup, draws int) Option {
	if warmup < 0 || draws < 1 {
		panic("mcmc: WithIterations: warmup must be >= 0 and draws >= 1")
	}

	return func(o *Options) {
		o.warmup = warmup
		o.draws = draws
	}
}

// WithThinning keeps every k-th post-warmup draw. Panics if k < 1.
func WithThinning(k int) Option {
	if k < 1 {
		panic("mcmc: WithThinning: k must be >= 1")
	}

	return func(o *Options) { o.thin = k }
}

// WithSeed fixes the base RNG seed. Chain c samples from an independent
// stream derived from (seed, c), so results are reproducible for a fixed
// seed and chain count.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithSequential runs chains one after another on the calling goroutine.
// The default is parallel execution, one goroutine per chain.
func WithSequential() Option {
	return func(o *Options) { o.parallel = false }
}

// gatherOptions resolves option setters against the documented defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		chains:   DefaultChains,
		warmup:   DefaultWarmup,
		draws:    DefaultDraws,
		thin:     DefaultThin,
		seed:     DefaultSeed,
		parallel: true,
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}
