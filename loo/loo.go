package loo

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/abigailkeller/eDNAjoint-workshop/mcmc"
)

// Sentinel errors returned by model comparison.
var (
	// ErrIncompatibleModels indicates fits over differing observation
	// counts; ELPD comparison is undefined across different data.
	ErrIncompatibleModels = errors.New("loo: models fit on different observations")

	// ErrTooFewModels indicates a comparison with fewer than two models.
	ErrTooFewModels = errors.New("loo: need at least two models to compare")

	// ErrTooFewDraws indicates a degenerate draw count.
	ErrTooFewDraws = errors.New("loo: too few draws")

	// ErrNilLogLik indicates a missing log-likelihood matrix.
	ErrNilLogLik = errors.New("loo: log-likelihood matrix is nil")
)

// HighParetoK is the k̂ threshold above which an observation's PSIS
// contribution is considered unreliable.
const HighParetoK = 0.7

// Warning codes attached to Result.
const WarnHighParetoK = "high_pareto_k"

// Warning is a non-fatal PSIS finding.
type Warning struct {
	Code    string
	Message string
}

// Pointwise is the model-side contract for building log-likelihood
// matrices: a fixed observation count and per-observation contributions
// evaluated from one constrained draw. *model.Spec satisfies it.
type Pointwise interface {
	NumObservations() int
	PointwiseFromConstrained(vals []float64) []float64
}

// Result holds the PSIS-LOO estimate for one model.
type Result struct {
	// ELPD is the expected log predictive density estimate (higher is
	// better); SE its standard error over observations.
	ELPD float64
	SE   float64

	// Pointwise holds per-observation ELPD contributions; ParetoK the
	// fitted Pareto shape per observation.
	Pointwise []float64
	ParetoK   []float64

	Warnings []Warning
}

// PointwiseLogLik evaluates pw's per-observation log-likelihood at every
// draw of ds, returning the draws × observations matrix consumed by ELPD
// and Compare.
func PointwiseLogLik(ds *mcmc.DrawSet, pw Pointwise) (*mat.Dense, error) {
	if ds == nil || ds.NumChains() == 0 || ds.DrawsPerChain() == 0 {
		return nil, ErrTooFewDraws
	}
	rows := ds.NumChains() * ds.DrawsPerChain()
	cols := pw.NumObservations()
	out := mat.NewDense(rows, cols, nil)

	r := 0
	for _, chain := range ds.Chains {
		for _, draw := range chain {
			out.SetRow(r, pw.PointwiseFromConstrained(draw))
			r++
		}
	}

	return out, nil
}

// ELPD computes the PSIS-LOO expected log predictive density from a
// draws × observations log-likelihood matrix.
func ELPD(logLik *mat.Dense) (Result, error) {
	if logLik == nil {
		return Result{}, ErrNilLogLik
	}
	s, n := logLik.Dims()
	if s < 2 || n == 0 {
		return Result{}, ErrTooFewDraws
	}

	res := Result{
		Pointwise: make([]float64, n),
		ParetoK:   make([]float64, n),
	}

	col := make([]float64, s)
	lw := make([]float64, s)
	sum := make([]float64, s)
	highK := 0
	for j := 0; j < n; j++ {
		mat.Col(col, j, logLik)
		// Importance ratio of leave-one-out: the inverse likelihood.
		for i := range lw {
			lw[i] = -col[i]
		}
		k := smoothTail(lw)
		res.ParetoK[j] = k
		if k > HighParetoK {
			highK++
		}

		for i := range sum {
			sum[i] = lw[i] + col[i]
		}
		res.Pointwise[j] = floats.LogSumExp(sum) - floats.LogSumExp(lw)
		res.ELPD += res.Pointwise[j]
	}
	res.SE = math.Sqrt(float64(n) * stat.Variance(res.Pointwise, nil))

	if highK > 0 {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnHighParetoK,
			Message: fmt.Sprintf("%d of %d observations with Pareto k > %.1f; ELPD estimate may be unreliable", highK, n, HighParetoK),
		})
	}

	return res, nil
}

// Model pairs a name with its log-likelihood matrix for comparison.
type Model struct {
	Name   string
	LogLik *mat.Dense
}

// Comparison is one row of a ranking: the model's own ELPD, and its
// difference (with standard error) against the best-ranked model.
type Comparison struct {
	Name string

	ELPD float64
	SE   float64

	// DeltaELPD ≤ 0 is the ELPD difference to the best model (0 for the
	// best itself); DeltaSE its standard error over the paired
	// per-observation differences.
	DeltaELPD float64
	DeltaSE   float64

	Warnings []Warning
}

// Compare ranks two or more fitted models by ELPD, best first. All
// models must have been fit on data of identical shape (same observation
// count and order); otherwise the comparison fails with
// ErrIncompatibleModels. The result is invariant to the listing order of
// the inputs.
func Compare(models ...Model) ([]Comparison, error) {
	if len(models) < 2 {
		return nil, ErrTooFewModels
	}

	results := make([]Result, len(models))
	obs := -1
	for i, m := range models {
		if m.LogLik == nil {
			return nil, ErrNilLogLik
		}
		_, n := m.LogLik.Dims()
		if obs >= 0 && n != obs {
			return nil, fmt.Errorf("model %q has %d observations, want %d: %w",
				m.Name, n, obs, ErrIncompatibleModels)
		}
		obs = n

		r, err := ELPD(m.LogLik)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", m.Name, err)
		}
		results[i] = r
	}

	order := make([]int, len(models))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ra, rb := results[order[a]], results[order[b]]
		if ra.ELPD != rb.ELPD {
			return ra.ELPD > rb.ELPD
		}

		return models[order[a]].Name < models[order[b]].Name
	})

	best := results[order[0]]
	out := make([]Comparison, len(order))
	diff := make([]float64, obs)
	for rank, i := range order {
		r := results[i]
		c := Comparison{
			Name:     models[i].Name,
			ELPD:     r.ELPD,
			SE:       r.SE,
			Warnings: r.Warnings,
		}
		if rank > 0 {
			for j := range diff {
				diff[j] = r.Pointwise[j] - best.Pointwise[j]
			}
			c.DeltaELPD = r.ELPD - best.ELPD
			c.DeltaSE = math.Sqrt(float64(obs) * stat.Variance(diff, nil))
		}
		out[rank] = c
	}

	return out, nil
}
