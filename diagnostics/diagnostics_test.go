package diagnostics_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abigailkeller/eDNAjoint-workshop/diagnostics"
	"github.com/abigailkeller/eDNAjoint-workshop/mcmc"
)

// whiteNoise returns m chains of n iid standard-normal draws.
func whiteNoise(m, n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	chains := make([][]float64, m)
	for c := range chains {
		chain := make([]float64, n)
		for i := range chain {
			chain[i] = rng.NormFloat64()
		}
		chains[c] = chain
	}

	return chains
}

func TestRHat_InputValidation(t *testing.T) {
	_, err := diagnostics.RHat(nil)
	assert.ErrorIs(t, err, diagnostics.ErrNoChains)

	_, err = diagnostics.RHat([][]float64{{1, 2, 3, 4}, {1, 2, 3}})
	assert.ErrorIs(t, err, diagnostics.ErrChainLengthMismatch)

	_, err = diagnostics.RHat([][]float64{{1, 2, 3}, {1, 2, 3}})
	assert.ErrorIs(t, err, diagnostics.ErrTooFewDraws)
}

// TestRHat_DuplicatedChainIsExactlyOne pins the zero-between-variance
// contract: one chain duplicated four times has R-hat of exactly 1.0.
func TestRHat_DuplicatedChainIsExactlyOne(t *testing.T) {
	chain := whiteNoise(1, 200, 1)[0]
	chains := [][]float64{chain, chain, chain, chain}

	rhat, err := diagnostics.RHat(chains)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rhat)
}

func TestRHat_SeparatedChains(t *testing.T) {
	chains := whiteNoise(2, 500, 2)
	for i := range chains[1] {
		chains[1][i] += 10 // second chain stuck far away
	}

	rhat, err := diagnostics.RHat(chains)
	require.NoError(t, err)
	assert.Greater(t, rhat, 2.0)
}

func TestRHat_ConstantChainsAtDifferentLevels(t *testing.T) {
	chains := [][]float64{{1, 1, 1, 1}, {2, 2, 2, 2}}
	rhat, err := diagnostics.RHat(chains)
	require.NoError(t, err)
	assert.True(t, math.IsInf(rhat, 1))
}

// TestSplitRHat_DetectsDrift verifies that a trending chain is flagged
// even when duplicated (full-chain means agree, halves do not).
func TestSplitRHat_DetectsDrift(t *testing.T) {
	n := 400
	trend := make([]float64, n)
	rng := rand.New(rand.NewSource(3))
	for i := range trend {
		trend[i] = float64(i)/40.0 + 0.1*rng.NormFloat64()
	}
	chains := [][]float64{trend, trend, trend, trend}

	split, err := diagnostics.SplitRHat(chains)
	require.NoError(t, err)
	assert.Greater(t, split, 1.01, "drifting chains must be flagged by the split variant")
}

func TestSplitRHat_MixedChains(t *testing.T) {
	split, err := diagnostics.SplitRHat(whiteNoise(4, 1000, 4))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, split, 0.02)
}

func TestSplitRHat_ChainsTooShortToHalve(t *testing.T) {
	// Between four and seven draws pass the whole-chain minimum but leave
	// halves too short to diagnose.
	for _, n := range []int{4, 6, 7} {
		_, err := diagnostics.SplitRHat(whiteNoise(2, n, 5))
		assert.ErrorIs(t, err, diagnostics.ErrTooFewDraws, "n=%d", n)
	}

	_, err := diagnostics.SplitRHat(whiteNoise(2, 8, 5))
	assert.NoError(t, err, "eight draws split into two diagnosable halves")
}

func TestESS_WhiteNoiseNearNominal(t *testing.T) {
	chains := whiteNoise(4, 1000, 5)
	ess, err := diagnostics.ESS(chains)
	require.NoError(t, err)
	assert.Greater(t, ess, 2000.0, "iid draws should retain most of the nominal sample size")
}

// TestESS_AutocorrelatedChainShrinks checks that an AR(1) series with
// strong positive correlation loses most of its effective draws.
func TestESS_AutocorrelatedChainShrinks(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	m, n := 4, 1000
	chains := make([][]float64, m)
	for c := range chains {
		chain := make([]float64, n)
		x := 0.0
		for i := range chain {
			x = 0.9*x + rng.NormFloat64()
			chain[i] = x
		}
		chains[c] = chain
	}

	ess, err := diagnostics.ESS(chains)
	require.NoError(t, err)
	nominal := float64(m * n)
	assert.Less(t, ess, nominal/4, "AR(1) with rho=0.9 should cut ESS sharply")
	assert.Greater(t, ess, 10.0)
}

func TestESS_ConstantSeries(t *testing.T) {
	chains := [][]float64{{2, 2, 2, 2, 2}, {2, 2, 2, 2, 2}}
	ess, err := diagnostics.ESS(chains)
	require.NoError(t, err)
	assert.Equal(t, 10.0, ess)
}

// gauss is a minimal sampling target for exercising Check end to end.
type gauss struct{}

func (gauss) Dim() int { return 1 }
func (gauss) LogDensity(theta []float64) float64 {
	return -0.5 * theta[0] * theta[0]
}
func (gauss) ParamNames() []string { return []string{"x"} }
func (gauss) Constrain(theta []float64) []float64 {
	return []float64{theta[0]}
}
func (gauss) InitialPoint(rng *rand.Rand) []float64 {
	return []float64{rng.NormFloat64()}
}

func TestCheck_WarnsOnUnreachableESS(t *testing.T) {
	ds, err := mcmc.Sample(context.Background(), gauss{},
		mcmc.WithChains(2), mcmc.WithIterations(100, 100), mcmc.WithSeed(8))
	require.NoError(t, err)

	warnings := diagnostics.Check(ds, diagnostics.CheckOptions{MinESS: 1e9})
	require.NotEmpty(t, warnings)
	found := false
	for _, w := range warnings {
		if w.Code == diagnostics.WarnLowESS && w.Param == "x" {
			found = true
		}
	}
	assert.True(t, found, "expected a low-ESS warning for x")
}

func TestCheck_NilDrawSet(t *testing.T) {
	assert.Nil(t, diagnostics.Check(nil, diagnostics.CheckOptions{}))
}
