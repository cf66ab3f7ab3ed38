package diagnostics

import (
	"fmt"

	"github.com/abigailkeller/eDNAjoint-workshop/mcmc"
)

// Threshold defaults for Check.
const (
	// DefaultRHatThreshold flags parameters whose split R-hat exceeds it.
	DefaultRHatThreshold = 1.01

	// DefaultMinESS flags parameters with fewer independent-equivalent
	// draws than this.
	DefaultMinESS = 100.0
)

// Warning codes emitted by Check.
const (
	WarnHighRHat = "high_rhat"
	WarnLowESS   = "low_ess"
)

// Warning is one non-fatal convergence finding for a named parameter.
type Warning struct {
	Code    string
	Param   string
	Message string
}

// CheckOptions configures the Check thresholds. Zero values select the
// documented defaults.
type CheckOptions struct {
	RHatThreshold float64
	MinESS        float64
}

// Check scans every parameter of a draw set and returns convergence
// warnings. It never fails a fit: downstream consumers may ignore or
// reject low-quality posteriors at their discretion. Parameters whose
// series are constant across all chains (e.g., a fixed reference gear)
// are skipped.
func Check(ds *mcmc.DrawSet, opts CheckOptions) []Warning {
	if ds == nil {
		return nil
	}
	threshold := opts.RHatThreshold
	if threshold == 0 {
		threshold = DefaultRHatThreshold
	}
	minESS := opts.MinESS
	if minESS == 0 {
		minESS = DefaultMinESS
	}

	var warnings []Warning
	for _, name := range ds.Params {
		chains, err := ds.Extract(name)
		if err != nil {
			continue
		}
		if constantSeries(chains) {
			continue
		}

		if rhat, err := SplitRHat(chains); err == nil && rhat > threshold {
			warnings = append(warnings, Warning{
				Code:    WarnHighRHat,
				Param:   name,
				Message: fmt.Sprintf("%s: split R-hat %.4f exceeds %.4f", name, rhat, threshold),
			})
		}
		if ess, err := ESS(chains); err == nil && ess < minESS {
			warnings = append(warnings, Warning{
				Code:    WarnLowESS,
				Param:   name,
				Message: fmt.Sprintf("%s: effective sample size %.1f below %.1f", name, ess, minESS),
			})
		}
	}

	return warnings
}

// constantSeries reports whether every draw across every chain holds one
// identical value.
func constantSeries(chains [][]float64) bool {
	if len(chains) == 0 || len(chains[0]) == 0 {
		return true
	}
	v := chains[0][0]
	for _, chain := range chains {
		for _, x := range chain {
			if x != v {
				return false
			}
		}
	}

	return true
}
