// Package model provides the estimator state machinery shared by every
// fitted model in goglm.
package model

// EstimatorState represents the training state of a model.
type EstimatorState int

const (
	// NotFitted is the state of a model before Fit has been called.
	NotFitted EstimatorState = iota
	// Fitted is the state of a model after a successful Fit.
	Fitted
)

// BaseEstimator is embedded by models that only need a fitted flag.
// Models that also track data dimensions embed StateManager instead.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to its initial state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
