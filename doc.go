// Package ednajoint is a joint Bayesian inference engine for species
// detection — fusing environmental DNA (eDNA) assays and traditional
// survey counts into one model, from data validation to survey planning.
//
// 🚀 What is eDNAjoint?
//
//	A pure-Go inference library that brings together:
//		• Data validation: shape, missingness and consistency checks
//		• Joint likelihood: shared catch intensity links both methods
//		• False positives: an estimable per-replicate eDNA error rate
//		• MCMC: parallel adaptive Metropolis chains, fully deterministic
//		• Diagnostics: split R-hat & autocorrelation-aware ESS
//		• Summaries: means, medians, credible intervals by parameter name
//		• Model choice: PSIS-LOO ELPD ranking across specifications
//		• Planning: effort curves — replicates needed per detection target
//
// ✨ Why joint modeling?
//
//   - Each method's sensitivity is informed by the other
//   - eDNA false-positive rates are unidentifiable alone, estimable jointly
//   - One latent intensity per site keeps the two data streams honest
//
// Everything is organized as a pipeline of subpackages:
//
//	dataset/     — input matrices, validation, warnings
//	model/       — families (Poisson, negative binomial, gamma), priors, gear types
//	mcmc/        — chains, draws, divergence reporting
//	diagnostics/ — R-hat, effective sample size, convergence checks
//	posterior/   — point estimates & credible intervals
//	loo/         — Pareto-smoothed importance-sampling model comparison
//	effort/      — survey effort vs. intensity, per method
//
// The first three form a chain (validate → build → sample); the last four
// are independent consumers of the finished draw set.
//
//	go get github.com/abigailkeller/eDNAjoint-workshop
package ednajoint
