package effort

import (
	"fmt"
	"math"

	"github.com/abigailkeller/eDNAjoint-workshop/mcmc"
	"github.com/abigailkeller/eDNAjoint-workshop/model"
)

// probEps keeps per-unit probabilities strictly below one so the unit
// count stays finite.
const probEps = 1e-9

// Curve scans expected catch intensities over [MuMin, MuMax] and reports,
// per intensity, the posterior-mean number of survey units each method
// needs to reach the target cumulative detection probability. The draw
// set must come from a fit of the given family; missing parameters (for
// example phi when the fit was Poisson) surface as
// mcmc.ErrUnknownParameter.
func Curve(ds *mcmc.DrawSet, family model.Family, opts Options) ([]Point, error) {
	if ds == nil || ds.NumChains() == 0 || ds.DrawsPerChain() == 0 {
		return nil, ErrNilDraws
	}
	if opts.Target <= 0 || opts.Target >= 1 {
		return nil, fmt.Errorf("target %v: %w", opts.Target, ErrBadTarget)
	}
	if !(opts.MuMin > 0) || !(opts.MuMax > opts.MuMin) || opts.Steps < 2 {
		return nil, ErrBadMuRange
	}
	if opts.MaxUnits <= 0 {
		opts.MaxUnits = DefaultMaxUnits
	}

	switch family {
	case model.Poisson, model.NegativeBinomial:
	case model.Gamma:
		return nil, ErrContinuousFamily
	default:
		return nil, model.ErrUnsupportedFamily
	}

	p10, err := ds.Flatten("p10")
	if err != nil {
		return nil, err
	}

	// Sensitivity predictor per draw: beta = alpha[0] + x·alpha[1..].
	beta, err := ds.Flatten("alpha[0]")
	if err != nil {
		return nil, err
	}
	for j, x := range opts.Covariates {
		coef, err := ds.Flatten(fmt.Sprintf("alpha[%d]", j+1))
		if err != nil {
			return nil, err
		}
		for s := range beta {
			beta[s] += x * coef[s]
		}
	}

	var phi []float64
	if family == model.NegativeBinomial {
		if phi, err = ds.Flatten("phi"); err != nil {
			return nil, err
		}
	}

	draws := float64(len(p10))
	out := make([]Point, opts.Steps)
	step := (opts.MuMax - opts.MuMin) / float64(opts.Steps-1)
	for t := range out {
		mu := opts.MuMin + float64(t)*step
		pt := Point{Mu: mu}
		for s := range p10 {
			tradP := 1 - math.Exp(-mu)
			if family == model.NegativeBinomial {
				tradP = -math.Expm1(phi[s] * (math.Log(phi[s]) - math.Log(phi[s]+mu)))
			}
			pt.Traditional += float64(unitsNeeded(tradP, opts.Target, opts.MaxUnits))

			p11 := mu / (mu + math.Exp(beta[s]))
			pt.EDNA += float64(unitsNeeded(p11+p10[s], opts.Target, opts.MaxUnits))
		}
		pt.Traditional /= draws
		pt.EDNA /= draws
		out[t] = pt
	}

	return out, nil
}

// unitsNeeded solves 1-(1-p)^n ≥ target for the smallest integer n,
// capped at max. A vanishing per-unit probability reports the cap.
func unitsNeeded(p, target float64, max int) int {
	if p <= 0 {
		return max
	}
	if p > 1-probEps {
		p = 1 - probEps
	}
	n := int(math.Ceil(math.Log1p(-target) / math.Log1p(-p)))
	if n < 1 {
		n = 1
	}
	if n > max {
		n = max
	}

	return n
}
