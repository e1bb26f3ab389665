// Package glm implements exponential-family models for generalized
// linear models.
//
// A family pairs a response distribution with a link function and
// exposes the quantities a GLM needs as functions of the linear
// response eta: the mean (the inverse link of eta), the variance of the
// response distribution at that mean, the gradient of the mean with
// respect to eta, and the log-probability of an observation. Ten named
// families are provided (NewPoisson, NewBernoulli, NewGammaSoftplus,
// ...); families whose link is canonical compute the variance and the
// gradient-of-mean through identical expressions, so the two agree
// exactly.
//
// NewCustomFamily assembles a family generically from a distribution
// constructor and a mean function, taking the variance and the
// log-probability from the constructed distribution and the
// gradient-of-mean from central-difference numerical differentiation.
// Families built this way serve as reference implementations for the
// named ones.
//
// The GLM estimator fits coefficients for any family by iteratively
// reweighted least squares:
//
//	m := glm.NewGLM(glm.NewPoisson())
//	if err := m.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	pred, err := m.Predict(XTest)
package glm
