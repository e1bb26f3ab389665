// Package goglm provides generalized linear models for Go, built around
// the exponential families used in statistical regression.
//
// Each family exposes the mean, variance and gradient-of-mean of the
// response distribution as functions of the linear response, together
// with the log-probability of observations. Ten named families cover
// the common distribution/link pairs, and a generic builder assembles a
// reference family from any gonum distribution.
//
// # Features
//
// - Ten exponential families: Bernoulli (logit and probit), Gamma,
// LogNormal, Normal, Poisson and their alternative-link variants
// - Canonical families compute variance and gradient-of-mean through
// the same expressions, so the two agree bitwise
// - Iteratively reweighted least squares fitting with offsets, weights
// and convergence reporting
// - Generic family builder with numerically differentiated gradients,
// usable as an independent reference for testing
// - Typed errors with stack traces and structured logging throughout
//
// # Installation
//
// Install goglm using go get:
//
//	go get github.com/YuminosukeSato/goglm
//
// # Quick Start
//
// Fitting a Poisson regression:
//
//	package main
//
//	import (
//	    "fmt"
//	    stdlog "log"
//
//	    "github.com/YuminosukeSato/goglm/glm"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
//	    y := mat.NewDense(4, 1, []float64{1, 2, 4, 8})
//
//	    model := glm.NewGLM(glm.NewPoisson())
//	    if err := model.Fit(X, y); err != nil {
//	        stdlog.Fatal(err)
//	    }
//
//	    summary, err := model.Summary()
//	    if err != nil {
//	        stdlog.Fatal(err)
//	    }
//	    fmt.Println(summary)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - glm: exponential families, links, variance functions and the
//     IRLS estimator
//   - glmplot: diagnostic plots of family shape
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R²)
//   - preprocessing: feature scaling transformers
//   - core/model: estimator state and interfaces
//   - core/parallel: parallel processing utilities
//   - pkg/errors: typed errors, warnings and numerical checks
//   - pkg/log: structured logging built on slog
//
// # License
//
// goglm is released under the MIT License.
package goglm
