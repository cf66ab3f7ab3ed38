// Package mcmc draws from a joint posterior density with multiple
// independent Markov chains and collects the result into an immutable
// DrawSet.
//
// What
//
//   - Target: the interface a model must satisfy — unconstrained dimension,
//     joint log density, constrained parameter names, the unconstrained →
//     constrained mapping, and a dispersed initial point generator.
//   - Sample: runs N chains (default 4) of an adaptive component-wise
//     random-walk Metropolis sampler. Proposal scales adapt toward a 0.44
//     acceptance rate during warmup (Robbins–Monro) and freeze afterwards,
//     so the post-warmup kernel is a valid, fixed Markov chain.
//   - DrawSet: one draw sequence per chain on the constrained scale, plus
//     the per-chain initial vectors (reproducibility auditing), per-chain
//     divergence counts, and non-fatal warnings.
//
// Concurrency
//
//	Chains are embarrassingly parallel: one goroutine per chain via
//	errgroup, no shared mutable state, disjoint outputs, and a single
//	barrier join before any downstream statistic is computed. Each chain
//	owns a deterministic RNG stream derived from the base seed with a
//	SplitMix64-style mix, so runs are reproducible for a fixed seed and
//	chain count regardless of scheduling. Cancelling the context aborts
//	the run and discards all partial draws — diagnostics never see a mix
//	of complete and partial chains.
//
// Failure modes
//
//   - A non-finite log density at a chain's initial point is fatal
//     (ErrSamplingError, the error names the chain).
//   - A NaN log density at a proposal is recoverable: the proposal is
//     rejected, the iteration is counted as divergent, and the total is
//     attached to the DrawSet as a WarnDivergentChain warning.
package mcmc
