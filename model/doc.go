// Package model builds the joint log-density for the eDNA / traditional-
// survey occupancy model from a validated dataset and a configuration.
//
// What
//
//   - Family: the traditional count distribution — Poisson, negative
//     binomial, or gamma (positive continuous "counts").
//   - Options: count family, Beta prior on the per-replicate false-positive
//     rate p10, an order-significant covariate selection, and the number of
//     gear types for stratified traditional sampling.
//   - Build: closes over the data and returns a *Spec exposing the joint
//     log posterior density over an unconstrained parameter vector, together
//     with per-observation log-likelihood contributions for leave-one-out
//     model comparison.
//
// Model structure
//
//	Each observed traditional cell C[i][r] contributes
//	log f_family(C[i][r] | mu_i·q_g, phi), where q_g is a per-gear
//	catchability multiplier (reference gear fixed at 1) and phi the
//	dispersion parameter of the negative-binomial and gamma families.
//	Each observed PCR cell contributes a Binomial(N[i][w], p_i) term with
//
//	    p_i   = min(p11_i + p10, 1-ε)
//	    p11_i = mu_i / (mu_i + exp(beta_i))
//	    beta_i = alpha_0 + Σ_p alpha_p · X[i][p]
//
//	so that a larger sensitivity offset beta_i strictly lowers the
//	true-positive probability p11_i, and p11_i vanishes as mu_i → 0,
//	leaving only the false-positive rate at truly unoccupied sites.
//
// Priors
//
//	p10 ~ Beta(shape1, shape2)   (user supplied, default Beta(1, 20))
//	alpha_j ~ Normal(0, 10)
//	mu_i, phi ~ Gamma(0.25, 0.25)
//	q_g ~ LogNormal(0, 1)
//
// Sampling happens on an unconstrained scale (log mu, logit p10, log phi,
// log q) with the change-of-variable terms folded into LogDensity, so any
// Metropolis-family or gradient-based kernel can consume the density
// directly.
//
// Errors (sentinel)
//
//   - ErrUnsupportedFamily  — family selector outside the three values.
//   - ErrCovariateMismatch  — a requested covariate is not a dataset column.
//   - ErrBadPrior           — non-positive Beta prior shape.
//   - ErrGearMismatch       — gear configuration inconsistent with the data.
//   - ErrNonPositiveCount   — gamma family fed a zero or negative count.
//   - ErrNilDataset         — nil dataset.
package model
