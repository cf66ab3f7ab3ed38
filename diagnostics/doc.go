// Package diagnostics computes MCMC convergence statistics over
// multi-chain draw series: the potential scale reduction factor (R-hat)
// and the autocorrelation-adjusted effective sample size.
//
// What
//
//   - RHat: between/within-chain variance ratio, exactly 1.0 when every
//     chain is identical and approaching 1.0 as chains mix.
//   - SplitRHat: RHat after splitting each chain in half, which also
//     detects within-chain drift (the default for Check).
//   - ESS: effective sample size from chain-averaged autocorrelations with
//     Geyer's initial monotone positive-sequence truncation.
//   - Check: scans every parameter of a draw set and returns non-fatal
//     warnings for R-hat above threshold (default 1.01) or ESS below a
//     configurable minimum. Poor mixing never hard-fails: consumers decide
//     whether to reject a fit.
//
// All functions are pure: they read per-chain series and never touch the
// draw set's storage.
package diagnostics
