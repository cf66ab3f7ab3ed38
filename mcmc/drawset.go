package mcmc

import "fmt"

// DrawSet is the multi-chain posterior sample. It is created by Sample
// and never mutated afterwards; all downstream consumers (diagnostics,
// summaries, model comparison, effort curves) read it concurrently.
type DrawSet struct {
	// Params names the constrained parameters; every draw vector follows
	// this order.
	Params []string

	// Chains holds the kept draws: Chains[c][i] is the i-th post-warmup
	// constrained parameter vector of chain c. All chains hold the same
	// number of draws.
	Chains [][][]float64

	// Inits records one unconstrained initial vector per chain, for
	// reproducibility auditing.
	Inits [][]float64

	// Divergences counts divergent iterations per chain.
	Divergences []int

	// Warnings holds non-fatal sampling findings (divergence reports).
	Warnings []Warning

	index map[string]int
}

// newDrawSet builds the parameter index. Internal: Sample is the only
// constructor.
func newDrawSet(params []string, chains [][][]float64, inits [][]float64, divergences []int) *DrawSet {
	idx := make(map[string]int, len(params))
	for i, name := range params {
		idx[name] = i
	}
	ds := &DrawSet{
		Params:      params,
		Chains:      chains,
		Inits:       inits,
		Divergences: divergences,
		index:       idx,
	}
	for c, n := range divergences {
		if n > 0 {
			ds.Warnings = append(ds.Warnings, Warning{
				Code:    WarnDivergentChain,
				Message: fmt.Sprintf("chain %d: %d divergent iterations", c, n),
			})
		}
	}

	return ds
}

// NumChains returns the number of chains.
func (d *DrawSet) NumChains() int { return len(d.Chains) }

// DrawsPerChain returns the number of kept draws per chain.
func (d *DrawSet) DrawsPerChain() int {
	if len(d.Chains) == 0 {
		return 0
	}

	return len(d.Chains[0])
}

// Index returns the flat offset of a named parameter, or
// ErrUnknownParameter if the name is not in the draw set.
func (d *DrawSet) Index(name string) (int, error) {
	i, ok := d.index[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownParameter)
	}

	return i, nil
}

// Extract returns the per-chain series of one parameter: out[c][i] is the
// i-th kept draw of chain c. The slices are fresh copies; mutating them
// cannot corrupt the draw set.
func (d *DrawSet) Extract(name string) ([][]float64, error) {
	p, err := d.Index(name)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(d.Chains))
	for c, chain := range d.Chains {
		series := make([]float64, len(chain))
		for i, draw := range chain {
			series[i] = draw[p]
		}
		out[c] = series
	}

	return out, nil
}

// Flatten returns all chains' draws of one parameter concatenated in
// chain order.
func (d *DrawSet) Flatten(name string) ([]float64, error) {
	p, err := d.Index(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, d.NumChains()*d.DrawsPerChain())
	for _, chain := range d.Chains {
		for _, draw := range chain {
			out = append(out, draw[p])
		}
	}

	return out, nil
}
