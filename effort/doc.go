// Package effort turns posterior draws into survey planning curves: for a
// grid of expected catch intensities it reports how many traditional
// replicates and how many eDNA water samples are needed to reach a target
// cumulative detection probability.
//
// Per-unit detection probabilities come from the fitted model. For
// traditional sampling the chosen count family gives the probability of
// catching at least one individual at intensity mu (Poisson or
// negative-binomial; a gamma observation model is continuous and has no
// such mass, so it is rejected). For eDNA the probability is the
// true-positive rate p11 at the requested covariate vector plus the
// false-positive rate p10, both taken from the draws. Required effort is
// computed per draw and averaged, so parameter uncertainty propagates
// into the curve.
//
// Typical use:
//
//	curve, err := effort.Curve(draws, model.Poisson, effort.DefaultOptions())
//
// Each returned Point carries the grid intensity and the posterior-mean
// unit counts for both methods.
package effort
