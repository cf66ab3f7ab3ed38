package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/abigailkeller/eDNAjoint-workshop/dataset"
	"gonum.org/v1/gonum/stat/distuv"
)

// probEps clamps detection probabilities away from 0 and 1 so binomial
// terms stay finite.
const probEps = 1e-9

// countObs is one observed traditional-survey cell.
type countObs struct {
	site int
	gear int
	y    float64
}

// pcrObs is one observed PCR cell: n attempts, k positives.
type pcrObs struct {
	site int
	n    int
	k    int
}

// Spec is a fully parameterized joint model closed over a validated
// dataset. It is immutable after Build and safe to share across parallel
// chains.
//
// The unconstrained parameter vector consumed by LogDensity is laid out as
// [log mu_1..log mu_S, alpha_0..alpha_P, logit p10, log phi?, log q_2..log q_G];
// Constrain maps it to the exported (constrained) parameters, appending
// the derived per-site true-positive probabilities p11_i.
type Spec struct {
	ds   *dataset.Dataset
	opts Options

	sites  int
	covIdx []int // dataset covariate columns, in option order
	gears  int   // 1 in the single-intensity sub-model
	hasPhi bool

	// unconstrained layout
	offMu, offAlpha, offP10, offPhi, offQ int
	dim                                   int

	// constrained layout (ParamNames order)
	cOffMu, cOffAlpha, cOffP10, cOffPhi, cOffQ, cOffP11 int
	cDim                                                int
	names                                               []string

	countObs []countObs
	pcrObs   []pcrObs
}

// Build validates the configuration against the dataset and constructs the
// joint model. The dataset is re-validated (fail fast: configuration and
// data errors must surface before any sampling starts).
func Build(ds *dataset.Dataset, opts Options) (*Spec, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if _, err := dataset.Validate(ds); err != nil {
		return nil, err
	}
	if !opts.Family.valid() {
		return nil, fmt.Errorf("family %d: %w", int(opts.Family), ErrUnsupportedFamily)
	}
	if opts.P10Prior.Alpha <= 0 || opts.P10Prior.Beta <= 0 {
		return nil, ErrBadPrior
	}

	s := &Spec{
		ds:     ds,
		opts:   opts,
		sites:  ds.Sites(),
		gears:  1,
		hasPhi: opts.Family.hasDispersion(),
	}

	if err := s.resolveCovariates(); err != nil {
		return nil, err
	}
	if err := s.resolveGears(); err != nil {
		return nil, err
	}
	if err := s.collectObservations(); err != nil {
		return nil, err
	}
	s.layout()

	return s, nil
}

// resolveCovariates maps the requested covariate names onto dataset
// columns, preserving the requested (alpha-index) order.
func (s *Spec) resolveCovariates() error {
	if len(s.opts.Covariates) == 0 {
		return nil
	}
	if s.ds.Covariates == nil {
		return fmt.Errorf("no covariate matrix in dataset: %w", ErrCovariateMismatch)
	}
	s.covIdx = make([]int, 0, len(s.opts.Covariates))
	for _, name := range s.opts.Covariates {
		idx := -1
		for j, n := range s.ds.CovariateNames {
			if n == name {
				idx = j

				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("covariate %q: %w", name, ErrCovariateMismatch)
		}
		s.covIdx = append(s.covIdx, idx)
	}

	return nil
}

// resolveGears checks the per-gear-type sub-model configuration.
// GearTypes ≤ 1 selects the single-intensity variant and ignores any gear
// matrix; G ≥ 2 requires a gear matrix whose indices all fall in 0..G-1.
func (s *Spec) resolveGears() error {
	if s.opts.GearTypes <= 1 {
		return nil
	}
	if s.ds.Gear == nil {
		return fmt.Errorf("gear types = %d but no gear matrix: %w", s.opts.GearTypes, ErrGearMismatch)
	}
	if got := s.ds.GearTypes(); got > s.opts.GearTypes {
		return fmt.Errorf("gear index %d outside 0..%d: %w", got-1, s.opts.GearTypes-1, ErrGearMismatch)
	}
	s.gears = s.opts.GearTypes

	return nil
}

// collectObservations freezes the observation order: all present
// traditional cells row-major, then all present PCR cells row-major.
// This order is the contract for per-observation log-likelihoods.
// Family support checks run here so a violation names the offending cell
// instead of surfacing later as a sampler failure.
func (s *Spec) collectObservations() error {
	c := s.ds.Count
	for i := 0; i < c.Rows(); i++ {
		for r := 0; r < c.Cols(); r++ {
			y, ok := c.At(i, r)
			if !ok {
				continue
			}
			if s.opts.Family == Gamma && y <= 0 {
				return fmt.Errorf("count[%d][%d]=%g: %w", i, r, y, ErrNonPositiveCount)
			}
			if s.opts.Family != Gamma && y != math.Floor(y) {
				return fmt.Errorf("count[%d][%d]=%g: %w", i, r, y, ErrNonIntegerCount)
			}
			g := 0
			if s.gears > 1 {
				g, _ = s.ds.Gear.At(i, r)
			}
			s.countObs = append(s.countObs, countObs{site: i, gear: g, y: y})
		}
	}
	for i := 0; i < s.ds.Attempts.Rows(); i++ {
		for w := 0; w < s.ds.Attempts.Cols(); w++ {
			n, ok := s.ds.Attempts.At(i, w)
			if !ok {
				continue
			}
			k, _ := s.ds.Detections.At(i, w)
			s.pcrObs = append(s.pcrObs, pcrObs{site: i, n: n, k: k})
		}
	}

	return nil
}

// layout fixes the unconstrained and constrained parameter offsets and the
// exported parameter names.
func (s *Spec) layout() {
	p := len(s.covIdx)

	s.offMu = 0
	s.offAlpha = s.offMu + s.sites
	s.offP10 = s.offAlpha + p + 1
	s.dim = s.offP10 + 1
	if s.hasPhi {
		s.offPhi = s.dim
		s.dim++
	}
	if s.gears > 1 {
		s.offQ = s.dim
		s.dim += s.gears - 1
	}

	s.names = make([]string, 0, s.dim+s.sites)
	s.cOffMu = 0
	for i := 1; i <= s.sites; i++ {
		s.names = append(s.names, fmt.Sprintf("mu[%d]", i))
	}
	s.cOffAlpha = len(s.names)
	for j := 0; j <= p; j++ {
		s.names = append(s.names, fmt.Sprintf("alpha[%d]", j))
	}
	s.cOffP10 = len(s.names)
	s.names = append(s.names, "p10")
	if s.hasPhi {
		s.cOffPhi = len(s.names)
		s.names = append(s.names, "phi")
	}
	if s.gears > 1 {
		s.cOffQ = len(s.names)
		for g := 2; g <= s.gears; g++ {
			s.names = append(s.names, fmt.Sprintf("q[%d]", g))
		}
	}
	s.cOffP11 = len(s.names)
	for i := 1; i <= s.sites; i++ {
		s.names = append(s.names, fmt.Sprintf("p11[%d]", i))
	}
	s.cDim = len(s.names)
}

// Dim returns the length of the unconstrained parameter vector.
func (s *Spec) Dim() int { return s.dim }

// ParamNames returns the exported parameter names, in Constrain order:
// mu[1..S], alpha[0..P], p10, phi (NB/gamma), q[2..G] (gear mode), and the
// derived p11[1..S].
func (s *Spec) ParamNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)

	return out
}

// NumObservations returns the number of observed cells contributing to the
// likelihood (traditional + PCR), in the fixed pointwise order.
func (s *Spec) NumObservations() int { return len(s.countObs) + len(s.pcrObs) }

// Family returns the configured count family.
func (s *Spec) Family() Family { return s.opts.Family }

// state is the constrained view of one unconstrained parameter vector.
type state struct {
	mu    []float64
	alpha []float64
	p10   float64
	phi   float64
	q     []float64 // len gears; q[0] = 1
	p11   []float64
}

// decode maps the unconstrained vector onto the constrained state,
// computing the derived per-site p11.
func (s *Spec) decode(theta []float64) state {
	p := len(s.covIdx)
	st := state{
		mu:    make([]float64, s.sites),
		alpha: make([]float64, p+1),
		phi:   1,
		q:     make([]float64, s.gears),
		p11:   make([]float64, s.sites),
	}
	for i := 0; i < s.sites; i++ {
		st.mu[i] = math.Exp(theta[s.offMu+i])
	}
	for j := 0; j <= p; j++ {
		st.alpha[j] = theta[s.offAlpha+j]
	}
	st.p10 = logistic(theta[s.offP10])
	if s.hasPhi {
		st.phi = math.Exp(theta[s.offPhi])
	}
	st.q[0] = 1
	for g := 1; g < s.gears; g++ {
		st.q[g] = math.Exp(theta[s.offQ+g-1])
	}
	for i := 0; i < s.sites; i++ {
		beta := st.alpha[0]
		for j, col := range s.covIdx {
			beta += st.alpha[j+1] * s.ds.Covariates.At(i, col)
		}
		st.p11[i] = st.mu[i] / (st.mu[i] + math.Exp(beta))
	}

	return st
}

// LogDensity evaluates the joint log posterior density (priors, likelihood
// and change-of-variable terms) at an unconstrained parameter vector.
// The result may be -Inf or NaN outside the numerically representable
// region; the sampler interprets those states.
func (s *Spec) LogDensity(theta []float64) float64 {
	st := s.decode(theta)
	lp := s.logPrior(theta, st)

	for _, o := range s.countObs {
		lp += s.opts.Family.logCountDensity(o.y, st.mu[o.site]*st.q[o.gear], st.phi)
	}
	for _, o := range s.pcrObs {
		lp += logBinomial(o.k, o.n, clampProb(st.p11[o.site]+st.p10))
	}

	return lp
}

// logPrior sums the prior log-densities and the Jacobian terms of the
// unconstrained transforms.
func (s *Spec) logPrior(theta []float64, st state) float64 {
	muPrior := distuv.Gamma{Alpha: MuPriorShape, Beta: MuPriorRate}
	alphaPrior := distuv.Normal{Mu: 0, Sigma: AlphaPriorSD}
	p10Prior := distuv.Beta{Alpha: s.opts.P10Prior.Alpha, Beta: s.opts.P10Prior.Beta}

	lp := 0.0
	for i := 0; i < s.sites; i++ {
		// log-transform Jacobian: d mu / d theta = mu.
		lp += muPrior.LogProb(st.mu[i]) + theta[s.offMu+i]
	}
	for j := range st.alpha {
		lp += alphaPrior.LogProb(st.alpha[j])
	}
	// logit-transform Jacobian: p10(1-p10).
	lp += p10Prior.LogProb(st.p10) + math.Log(st.p10) + math.Log(1-st.p10)
	if s.hasPhi {
		lp += muPrior.LogProb(st.phi) + theta[s.offPhi]
	}
	if s.gears > 1 {
		qPrior := distuv.LogNormal{Mu: 0, Sigma: QPriorLogSD}
		for g := 1; g < s.gears; g++ {
			lp += qPrior.LogProb(st.q[g]) + theta[s.offQ+g-1]
		}
	}

	return lp
}

// Constrain maps an unconstrained vector onto the exported parameters in
// ParamNames order, including the derived p11[i].
func (s *Spec) Constrain(theta []float64) []float64 {
	st := s.decode(theta)
	out := make([]float64, s.cDim)
	copy(out[s.cOffMu:], st.mu)
	copy(out[s.cOffAlpha:], st.alpha)
	out[s.cOffP10] = st.p10
	if s.hasPhi {
		out[s.cOffPhi] = st.phi
	}
	if s.gears > 1 {
		copy(out[s.cOffQ:], st.q[1:])
	}
	copy(out[s.cOffP11:], st.p11)

	return out
}

// PointwiseLogLik evaluates the per-observation log-likelihood
// contributions at an unconstrained parameter vector, in the fixed
// observation order (traditional cells first, then PCR cells).
func (s *Spec) PointwiseLogLik(theta []float64) []float64 {
	st := s.decode(theta)

	return s.pointwise(st.mu, st.q, st.phi, st.p10, st.p11)
}

// PointwiseFromConstrained evaluates the same contributions from a
// constrained draw (ParamNames order), as stored in a posterior draw set.
func (s *Spec) PointwiseFromConstrained(vals []float64) []float64 {
	q := make([]float64, s.gears)
	q[0] = 1
	if s.gears > 1 {
		copy(q[1:], vals[s.cOffQ:s.cOffQ+s.gears-1])
	}
	phi := 1.0
	if s.hasPhi {
		phi = vals[s.cOffPhi]
	}

	return s.pointwise(
		vals[s.cOffMu:s.cOffMu+s.sites],
		q,
		phi,
		vals[s.cOffP10],
		vals[s.cOffP11:s.cOffP11+s.sites],
	)
}

func (s *Spec) pointwise(mu, q []float64, phi, p10 float64, p11 []float64) []float64 {
	out := make([]float64, 0, s.NumObservations())
	for _, o := range s.countObs {
		out = append(out, s.opts.Family.logCountDensity(o.y, mu[o.site]*q[o.gear], phi))
	}
	for _, o := range s.pcrObs {
		out = append(out, logBinomial(o.k, o.n, clampProb(p11[o.site]+p10)))
	}

	return out
}

// InitialPoint draws a dispersed random starting vector on the
// unconstrained scale. Distinct chains call this with independent RNG
// streams, so every chain starts from its own overdispersed point.
func (s *Spec) InitialPoint(rng *rand.Rand) []float64 {
	theta := make([]float64, s.dim)
	for i := 0; i < s.sites; i++ {
		theta[s.offMu+i] = rng.NormFloat64() // log mu around 0 (mu near 1)
	}
	for j := 0; j <= len(s.covIdx); j++ {
		theta[s.offAlpha+j] = 0.5 * rng.NormFloat64()
	}
	theta[s.offP10] = -3 + 0.5*rng.NormFloat64() // p10 near 0.05
	if s.hasPhi {
		theta[s.offPhi] = 0.5 * rng.NormFloat64()
	}
	for g := 1; g < s.gears; g++ {
		theta[s.offQ+g-1] = 0.2 * rng.NormFloat64()
	}

	return theta
}

// logistic is the numerically stable inverse-logit.
func logistic(t float64) float64 {
	if t >= 0 {
		return 1 / (1 + math.Exp(-t))
	}
	e := math.Exp(t)

	return e / (1 + e)
}

// clampProb keeps a detection probability inside (0, 1).
func clampProb(p float64) float64 {
	if p < probEps {
		return probEps
	}
	if p > 1-probEps {
		return 1 - probEps
	}

	return p
}
