package log

// Common attribute keys used across the library. Sharing the constants keeps
// field names consistent between packages so logs aggregate cleanly.
const (
	// ComponentKey names the package or subsystem emitting the record.
	ComponentKey = "component"
	// OperationKey names the operation in progress (fit, predict, score).
	OperationKey = "operation"

	// FamilyKey names the model family (Poisson, Bernoulli, ...).
	FamilyKey = "family"
	// LinkKey names the link function in use.
	LinkKey = "link"

	// IterationsKey reports how many scoring iterations have run.
	IterationsKey = "iterations"
	// DevianceKey reports the current model deviance.
	DevianceKey = "deviance"
	// ToleranceKey reports the convergence tolerance in force.
	ToleranceKey = "tolerance"

	// SamplesKey reports the number of observations.
	SamplesKey = "n_samples"
	// FeaturesKey reports the number of model matrix columns.
	FeaturesKey = "n_features"

	// DurationMSKey reports elapsed wall time in milliseconds.
	DurationMSKey = "duration_ms"
)
