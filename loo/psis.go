package loo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// minTailLength is the smallest tail PSIS will fit a Pareto to; below it
// the raw ratios are used unsmoothed and k̂ is reported as +Inf.
const minTailLength = 5

// tailLength is the PSIS tail size: ceil(min(0.2·S, 3·sqrt(S))).
func tailLength(s int) int {
	return int(math.Ceil(math.Min(0.2*float64(s), 3*math.Sqrt(float64(s)))))
}

// smoothTail Pareto-smooths the largest log-ratios in place and returns
// the fitted shape k̂. Ratios are shifted by their maximum before
// exponentiation, and smoothed values are capped at the raw maximum, so
// the procedure is overflow-safe and never inflates the largest weight.
func smoothTail(lw []float64) float64 {
	s := len(lw)
	tail := tailLength(s)
	if tail < minTailLength {
		return math.Inf(1)
	}

	idx := make([]int, s)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return lw[idx[a]] < lw[idx[b]] })

	maxLw := lw[idx[s-1]]
	cutoff := math.Exp(lw[idx[s-tail-1]] - maxLw)

	// Exceedances over the cutoff, on the (shifted) ratio scale.
	exceed := make([]float64, 0, tail)
	for _, i := range idx[s-tail:] {
		if y := math.Exp(lw[i]-maxLw) - cutoff; y > 0 {
			exceed = append(exceed, y)
		}
	}
	if len(exceed) < minTailLength {
		return math.Inf(1)
	}
	sort.Float64s(exceed)

	k, sigma := gpdFit(exceed)
	if math.IsNaN(k) || math.IsInf(k, 0) || sigma <= 0 || math.IsNaN(sigma) {
		return math.Inf(1)
	}

	// Replace the tail with expected GPD order statistics, keeping the
	// original rank order and never exceeding the raw maximum.
	for j, i := range idx[s-tail:] {
		p := (float64(j) + 0.5) / float64(tail)
		q := cutoff + gpdQuantile(p, k, sigma)
		v := math.Log(q) + maxLw
		if v > maxLw {
			v = maxLw
		}
		lw[i] = v
	}

	return k
}

// gpdQuantile is the generalized Pareto quantile function with shape k
// and scale sigma.
func gpdQuantile(p, k, sigma float64) float64 {
	if math.Abs(k) < 1e-12 {
		return -sigma * math.Log1p(-p)
	}

	return sigma * math.Expm1(-k*math.Log1p(-p)) / k
}

// gpdFit estimates the generalized Pareto shape and scale from sorted
// positive exceedances using the Zhang–Stephens (2009) posterior-mean
// estimator, with the weak shape prior used by standard PSIS
// implementations.
func gpdFit(y []float64) (k, sigma float64) {
	n := len(y)
	m := 30 + int(math.Sqrt(float64(n)))

	quartIdx := int(float64(n)/4.0 + 0.5)
	if quartIdx < 1 {
		quartIdx = 1
	}
	xstar := y[quartIdx-1]
	ymax := y[n-1]

	theta := make([]float64, m)
	profile := make([]float64, m)
	for j := 0; j < m; j++ {
		theta[j] = 1.0/ymax + (1.0-math.Sqrt(float64(m)/(float64(j+1)-0.5)))/(3.0*xstar)
		kj := 0.0
		for _, yi := range y {
			kj += math.Log1p(-theta[j] * yi)
		}
		kj = -kj / float64(n)
		profile[j] = float64(n) * (math.Log(theta[j]/kj) + kj - 1.0)
	}

	lse := floats.LogSumExp(profile)
	thetaHat := 0.0
	for j := range theta {
		thetaHat += theta[j] * math.Exp(profile[j]-lse)
	}

	for _, yi := range y {
		k += math.Log1p(-thetaHat * yi)
	}
	k /= float64(n)
	sigma = -k / thetaHat

	// Weakly informative prior pull on k stabilizes small tails.
	k = (k*float64(n) + 5.0) / (float64(n) + 10.0)

	return k, sigma
}
