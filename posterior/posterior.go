// Package posterior reduces raw MCMC draws to decision-ready summaries:
// point estimates, central credible intervals, and per-parameter
// convergence diagnostics.
//
// Summarize is a pure function over an immutable draw set; a failed query
// (unknown parameter) is scoped to that single call and never affects
// other queries or the draws themselves.
package posterior

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/abigailkeller/eDNAjoint-workshop/diagnostics"
	"github.com/abigailkeller/eDNAjoint-workshop/mcmc"
)

// ErrUnknownParameter mirrors the draw set's sentinel so callers can match
// either package; Summarize returns the mcmc error unchanged.
var ErrUnknownParameter = mcmc.ErrUnknownParameter

// DefaultCredibleLevel is the central credible-interval mass.
const DefaultCredibleLevel = 0.95

// Summary holds the reduction of one parameter's posterior draws.
type Summary struct {
	Param  string
	Mean   float64
	SD     float64
	Median float64

	// Lower and Upper bound the central credible interval at the
	// configured level (default 95%).
	Lower float64
	Upper float64
	Level float64

	// ESS and RHat are the convergence diagnostics of the underlying
	// multi-chain series.
	ESS  float64
	RHat float64

	// N is the total number of draws across chains.
	N int
}

// Option configures summarization.
type Option func(*options)

type options struct {
	level float64
}

// WithCredibleLevel sets the central credible-interval mass, e.g. 0.89.
// Panics unless 0 < level < 1 (programmer error).
func WithCredibleLevel(level float64) Option {
	if level <= 0 || level >= 1 {
		panic("posterior: WithCredibleLevel: level must be in (0, 1)")
	}

	return func(o *options) { o.level = level }
}

// Summarize reduces one named parameter of a draw set. Indexed parameters
// use their exported names ("mu[3]", "p11[1]", ...). Unknown names return
// mcmc.ErrUnknownParameter.
func Summarize(ds *mcmc.DrawSet, name string, opts ...Option) (Summary, error) {
	o := options{level: DefaultCredibleLevel}
	for _, set := range opts {
		set(&o)
	}

	chains, err := ds.Extract(name)
	if err != nil {
		return Summary{}, err
	}
	flat, err := ds.Flatten(name)
	if err != nil {
		return Summary{}, err
	}

	mean, sd := stat.MeanStdDev(flat, nil)
	sorted := make([]float64, len(flat))
	copy(sorted, flat)
	sort.Float64s(sorted)

	tail := (1 - o.level) / 2
	s := Summary{
		Param:  name,
		Mean:   mean,
		SD:     sd,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Lower:  stat.Quantile(tail, stat.Empirical, sorted, nil),
		Upper:  stat.Quantile(1-tail, stat.Empirical, sorted, nil),
		Level:  o.level,
		N:      len(flat),
	}

	// Diagnostics are best-effort: a draw set too small to diagnose still
	// summarizes.
	if rhat, derr := diagnostics.SplitRHat(chains); derr == nil {
		s.RHat = rhat
	}
	if ess, derr := diagnostics.ESS(chains); derr == nil {
		s.ESS = ess
	}

	return s, nil
}

// SummarizeAll summarizes every parameter of the draw set, in the draw
// set's stable parameter order.
func SummarizeAll(ds *mcmc.DrawSet, opts ...Option) ([]Summary, error) {
	out := make([]Summary, 0, len(ds.Params))
	for _, name := range ds.Params {
		s, err := Summarize(ds, name, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}
