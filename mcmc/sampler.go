package mcmc

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Sample draws from target with independent Markov chains and returns the
// joined DrawSet.
//
// Each chain: a dispersed initial point from its own RNG stream, warmup
// iterations with component-wise proposal-scale adaptation, then kept
// draws on the constrained scale. Chains run in parallel unless
// WithSequential is set. Cancelling ctx aborts every chain and discards
// all partial output.
//
// Errors:
//   - ErrNilTarget       — nil target or zero-dimensional parameter space.
//   - ErrSamplingError   — non-finite log density at a chain's initial
//     point (the wrapped error names the chain).
//   - ctx.Err()          — the context was cancelled mid-run.
func Sample(ctx context.Context, target Target, opts ...Option) (*DrawSet, error) {
	if target == nil || target.Dim() == 0 {
		return nil, ErrNilTarget
	}
	o := gatherOptions(opts...)

	chains := make([][][]float64, o.chains)
	inits := make([][]float64, o.chains)
	divergences := make([]int, o.chains)

	if o.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for c := 0; c < o.chains; c++ {
			c := c
			g.Go(func() error {
				return runChain(gctx, target, o, c, chains, inits, divergences)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for c := 0; c < o.chains; c++ {
			if err := runChain(ctx, target, o, c, chains, inits, divergences); err != nil {
				return nil, err
			}
		}
	}

	return newDrawSet(target.ParamNames(), chains, inits, divergences), nil
}

// runChain executes one chain. It writes only to its own slots of the
// output slices, so chains never share mutable state.
func runChain(ctx context.Context, target Target, o Options, chain int,
	chains [][][]float64, inits [][]float64, divergences []int) error {
	rng := chainRNG(o.seed, chain)
	dim := target.Dim()

	theta := target.InitialPoint(rng)
	lp := target.LogDensity(theta)
	if math.IsNaN(lp) || math.IsInf(lp, 0) {
		return fmt.Errorf("chain %d: %w", chain, ErrSamplingError)
	}

	init := make([]float64, dim)
	copy(init, theta)
	inits[chain] = init

	scales := make([]float64, dim)
	for d := range scales {
		scales[d] = initialScale
	}

	total := o.warmup + o.draws*o.thin
	draws := make([][]float64, 0, o.draws)
	divergent := 0

	for iter := 1; iter <= total; iter++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		iterDiverged := false
		for d := 0; d < dim; d++ {
			old := theta[d]
			theta[d] = old + scales[d]*rng.NormFloat64()
			lpProp := target.LogDensity(theta)

			accProb := 0.0
			switch {
			case math.IsNaN(lpProp):
				// Numerical failure at the proposal: reject and flag the
				// iteration, but keep sampling.
				iterDiverged = true
				theta[d] = old
			case lpProp >= lp:
				accProb = 1
				lp = lpProp
			default:
				accProb = math.Exp(lpProp - lp)
				if rng.Float64() < accProb {
					lp = lpProp
				} else {
					theta[d] = old
				}
			}

			if iter <= o.warmup {
				// Robbins–Monro step toward the target acceptance rate;
				// scales freeze once warmup ends.
				step := 1.0 / math.Sqrt(float64(iter))
				scales[d] *= math.Exp(step * (accProb - targetAcceptance))
				if scales[d] < minScale {
					scales[d] = minScale
				} else if scales[d] > maxScale {
					scales[d] = maxScale
				}
			}
		}
		if iterDiverged {
			divergent++
		}

		if iter > o.warmup && (iter-o.warmup)%o.thin == 0 {
			draws = append(draws, target.Constrain(theta))
		}
	}

	chains[chain] = draws
	divergences[chain] = divergent

	return nil
}
