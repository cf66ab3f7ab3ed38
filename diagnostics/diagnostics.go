package diagnostics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Sentinel errors for malformed chain input.
var (
	// ErrNoChains indicates an empty chain set.
	ErrNoChains = errors.New("diagnostics: no chains")

	// ErrChainLengthMismatch indicates chains of unequal length.
	ErrChainLengthMismatch = errors.New("diagnostics: chains have unequal lengths")

	// ErrTooFewDraws indicates a chain too short to diagnose (< 4 draws).
	ErrTooFewDraws = errors.New("diagnostics: too few draws")
)

// checkChains validates the common preconditions and returns (m, n).
func checkChains(chains [][]float64) (int, int, error) {
	m := len(chains)
	if m == 0 {
		return 0, 0, ErrNoChains
	}
	n := len(chains[0])
	for _, c := range chains {
		if len(c) != n {
			return 0, 0, ErrChainLengthMismatch
		}
	}
	if n < 4 {
		return 0, 0, ErrTooFewDraws
	}

	return m, n, nil
}

// RHat computes the potential scale reduction factor across chains:
//
//	R̂ = sqrt((W + B/n) / W)
//
// with W the mean within-chain variance and B/n the variance of the chain
// means. Identical chains give B = 0 and therefore exactly 1.0; values
// above ~1.01 indicate the chains have not mixed.
//
// A single chain is legal input (R̂ = 1.0 trivially); see SplitRHat for
// the variant that also detects within-chain drift.
func RHat(chains [][]float64) (float64, error) {
	m, _, err := checkChains(chains)
	if err != nil {
		return 0, err
	}
	if m == 1 {
		return 1.0, nil
	}

	w, bOverN := varianceComponents(chains)
	if bOverN == 0 {
		// Zero between-chain variance: perfectly matching chains.
		return 1.0, nil
	}
	if w == 0 {
		// Constant chains at different levels never mix.
		return math.Inf(1), nil
	}

	return math.Sqrt((w + bOverN) / w), nil
}

// SplitRHat splits each chain into halves before computing RHat, so a
// single drifting chain is flagged even when full-chain means agree.
// Each half must itself be diagnosable, so chains need at least eight
// draws; shorter chains fail with ErrTooFewDraws.
func SplitRHat(chains [][]float64) (float64, error) {
	_, n, err := checkChains(chains)
	if err != nil {
		return 0, err
	}
	if n < 8 {
		return 0, fmt.Errorf("%d draws cannot be split into diagnosable halves: %w", n, ErrTooFewDraws)
	}

	return RHat(splitHalves(chains))
}

// varianceComponents returns the mean within-chain variance W and the
// variance of chain means B/n (both with unbiased denominators).
func varianceComponents(chains [][]float64) (w, bOverN float64) {
	means := make([]float64, len(chains))
	for c, chain := range chains {
		mean, variance := stat.MeanVariance(chain, nil)
		means[c] = mean
		w += variance
	}
	w /= float64(len(chains))
	bOverN = stat.Variance(means, nil)

	return w, bOverN
}

// splitHalves doubles the chain count by halving each chain. Odd lengths
// drop the middle draw.
func splitHalves(chains [][]float64) [][]float64 {
	out := make([][]float64, 0, 2*len(chains))
	for _, chain := range chains {
		half := len(chain) / 2
		out = append(out, chain[:half], chain[len(chain)-half:])
	}

	return out
}

// ESS computes the effective sample size of a multi-chain series,
// discounting within-chain autocorrelation. Chain-averaged
// autocorrelations are truncated with Geyer's initial monotone positive
// sequence: lags are consumed in pairs while the pair sums stay positive
// and non-increasing.
func ESS(chains [][]float64) (float64, error) {
	m, n, err := checkChains(chains)
	if err != nil {
		return 0, err
	}

	w, bOverN := varianceComponents(chains)
	varPlus := w*float64(n-1)/float64(n) + bOverN
	if varPlus == 0 {
		// Constant series: every draw carries the same information.
		return float64(m * n), nil
	}

	means := make([]float64, m)
	for c, chain := range chains {
		means[c] = stat.Mean(chain, nil)
	}

	// rho(t) from the chain-averaged biased autocovariance.
	rho := func(t int) float64 {
		s := 0.0
		for c, chain := range chains {
			acov := 0.0
			for i := 0; i+t < n; i++ {
				acov += (chain[i] - means[c]) * (chain[i+t] - means[c])
			}
			s += acov / float64(n)
		}
		s /= float64(m)

		return 1 - (w-s)/varPlus
	}

	sum := 0.0
	prev := math.Inf(1)
	for t := 0; t+1 < n; t += 2 {
		pair := rho(t) + rho(t+1)
		if pair <= 0 {
			break
		}
		if pair > prev {
			pair = prev // enforce monotone non-increasing pair sums
		}
		sum += pair
		prev = pair
	}

	tau := -1 + 2*sum
	if tau < 1e-8 {
		tau = 1e-8
	}

	return float64(m*n) / tau, nil
}
