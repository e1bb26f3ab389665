package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for models that learn from training data.
type Fitter interface {
	// Fit trains the model on the design matrix X and response y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that predict responses.
type Predictor interface {
	// Predict returns predictions for the rows of X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can score their predictions.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces every regression model satisfies.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// Transformer is the interface for data transformations such as scaling.
type Transformer interface {
	// Fit learns the parameters needed for the transformation.
	Fit(X mat.Matrix) error

	// Transform applies the transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits the transformation and applies it in one step.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter is the interface for models that expose their
// hyperparameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
