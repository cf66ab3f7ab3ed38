package posterior_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abigailkeller/eDNAjoint-workshop/mcmc"
	"github.com/abigailkeller/eDNAjoint-workshop/posterior"
)

// shiftedGauss samples N(3, 1) on two coordinates.
type shiftedGauss struct{}

func (shiftedGauss) Dim() int { return 2 }
func (shiftedGauss) LogDensity(theta []float64) float64 {
	lp := 0.0
	for _, t := range theta {
		d := t - 3
		lp -= 0.5 * d * d
	}

	return lp
}
func (shiftedGauss) ParamNames() []string { return []string{"x[1]", "x[2]"} }
func (shiftedGauss) Constrain(theta []float64) []float64 {
	out := make([]float64, len(theta))
	copy(out, theta)

	return out
}
func (shiftedGauss) InitialPoint(rng *rand.Rand) []float64 {
	return []float64{3 + rng.NormFloat64(), 3 + rng.NormFloat64()}
}

func sampleGauss(t *testing.T) *mcmc.DrawSet {
	t.Helper()

	ds, err := mcmc.Sample(context.Background(), shiftedGauss{},
		mcmc.WithChains(4),
		mcmc.WithIterations(500, 1000),
		mcmc.WithSeed(21),
	)
	require.NoError(t, err)

	return ds
}

func TestSummarize_UnknownParameter(t *testing.T) {
	ds := sampleGauss(t)

	_, err := posterior.Summarize(ds, "x[9]")
	assert.ErrorIs(t, err, posterior.ErrUnknownParameter)

	// The failed query leaves the draw set fully usable.
	_, err = posterior.Summarize(ds, "x[1]")
	assert.NoError(t, err)
}

func TestSummarize_RecoversKnownPosterior(t *testing.T) {
	ds := sampleGauss(t)

	s, err := posterior.Summarize(ds, "x[1]")
	require.NoError(t, err)

	assert.InDelta(t, 3.0, s.Mean, 0.15)
	assert.InDelta(t, 1.0, s.SD, 0.15)
	assert.InDelta(t, 3.0, s.Median, 0.2)
	assert.Equal(t, 4000, s.N)
	assert.Equal(t, posterior.DefaultCredibleLevel, s.Level)
	assert.Greater(t, s.ESS, 100.0)
	assert.Less(t, s.RHat, 1.05)
}

// TestSummarize_MeanInsideInterval pins the contract that the reported
// mean lies within the reported credible interval.
func TestSummarize_MeanInsideInterval(t *testing.T) {
	ds := sampleGauss(t)

	for _, name := range ds.Params {
		s, err := posterior.Summarize(ds, name)
		require.NoError(t, err)
		assert.LessOrEqual(t, s.Lower, s.Mean, "%s: mean below interval", name)
		assert.GreaterOrEqual(t, s.Upper, s.Mean, "%s: mean above interval", name)
	}
}

// TestSummarize_IntervalNesting checks that widening the credible level
// never narrows the interval: the 99% interval contains the 95%, which
// contains the 50%.
func TestSummarize_IntervalNesting(t *testing.T) {
	ds := sampleGauss(t)

	levels := []float64{0.5, 0.8, 0.95, 0.99}
	var prev posterior.Summary
	for i, level := range levels {
		s, err := posterior.Summarize(ds, "x[1]", posterior.WithCredibleLevel(level))
		require.NoError(t, err)
		if i > 0 {
			assert.LessOrEqual(t, s.Lower, prev.Lower, "level %.2f lower bound must not move inward", level)
			assert.GreaterOrEqual(t, s.Upper, prev.Upper, "level %.2f upper bound must not move inward", level)
		}
		prev = s
	}
}

func TestSummarizeAll_StableOrder(t *testing.T) {
	ds := sampleGauss(t)

	all, err := posterior.SummarizeAll(ds)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for i, s := range all {
		assert.Equal(t, fmt.Sprintf("x[%d]", i+1), s.Param)
	}
}

func TestWithCredibleLevel_PanicsOnNonsense(t *testing.T) {
	assert.Panics(t, func() { posterior.WithCredibleLevel(0) })
	assert.Panics(t, func() { posterior.WithCredibleLevel(1) })
	assert.Panics(t, func() { posterior.WithCredibleLevel(-0.5) })
}
