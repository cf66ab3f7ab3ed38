// Package loo ranks competing model fits by approximate leave-one-out
// expected log predictive density (ELPD), computed with Pareto-smoothed
// importance sampling (PSIS) over per-observation log-likelihood
// contributions.
//
// What
//
//   - PointwiseLogLik: evaluates a fitted model's per-observation
//     log-likelihood at every posterior draw, producing the draws ×
//     observations matrix PSIS consumes.
//   - ELPD: per observation, treats the inverse likelihood as an
//     importance ratio, fits a generalized Pareto distribution to the
//     ratio tail (Zhang–Stephens posterior-mean estimator), replaces the
//     tail with smoothed quantiles, and combines draws by log-sum-exp.
//     The Pareto shape k̂ per observation is reported; k̂ > 0.7 marks an
//     unreliable contribution and yields a warning.
//   - Compare: ranks two or more fits of the *same* observations by ELPD
//     (higher is better) with a standard error on each pairwise
//     difference against the best model. Comparing fits over different
//     observation sets is undefined and fails with ErrIncompatibleModels.
//
// The ranking is order-invariant: listing model A before B or after it
// yields the same ordering (ties break on model name).
package loo
