package model

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// logCountDensity evaluates log f_family(y | mean, phi). The dispersion
// phi is ignored by the Poisson family.
func (f Family) logCountDensity(y, mean, phi float64) float64 {
	switch f {
	case Poisson:
		return distuv.Poisson{Lambda: mean}.LogProb(y)
	case NegativeBinomial:
		return logNegBinomial(y, mean, phi)
	case Gamma:
		// Shape phi, rate phi/mean keeps E[Y] = mean, Var[Y] = mean²/phi.
		return distuv.Gamma{Alpha: phi, Beta: phi / mean}.LogProb(y)
	default:
		return math.Inf(-1)
	}
}

// logNegBinomial is the log-pmf of the mean/dispersion parameterization:
// E[Y] = mu, Var[Y] = mu + mu²/phi. gonum's distuv has no negative
// binomial, so the pmf is written out with Lgamma.
func logNegBinomial(y, mu, phi float64) float64 {
	if y < 0 || y != math.Floor(y) {
		return math.Inf(-1)
	}
	lgYPhi, _ := math.Lgamma(y + phi)
	lgPhi, _ := math.Lgamma(phi)
	lgY1, _ := math.Lgamma(y + 1)

	lp := lgYPhi - lgPhi - lgY1 + phi*(math.Log(phi)-math.Log(phi+mu))
	if y > 0 {
		// Guard the y=0 case: 0·log(mu) must contribute 0 even as mu
		// underflows to zero.
		lp += y * (math.Log(mu) - math.Log(phi+mu))
	}

	return lp
}

// logBinomial is the log-pmf of Binomial(n, p) at k.
func logBinomial(k, n int, p float64) float64 {
	return distuv.Binomial{N: float64(n), P: p}.LogProb(float64(k))
}
