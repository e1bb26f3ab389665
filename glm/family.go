package glm

import (
	"github.com/YuminosukeSato/goglm/pkg/errors"
)

// ExponentialFamily is the model interface shared by the named families
// and the generic reference builder. Implementations are immutable after
// construction and safe for concurrent use.
type ExponentialFamily interface {
	// Name returns the family name, e.g. "Poisson" or "GammaSoftplus".
	Name() string

	// IsCanonical reports whether the family pairs its distribution with
	// the canonical link, i.e. whether the variance and the
	// gradient-of-mean are the identical function.
	IsCanonical() bool

	// Call evaluates the family elementwise on the linear response,
	// returning the mean, the variance and the gradient of the mean with
	// respect to the linear response.
	Call(eta []float64) (mean, variance, gradMean []float64, err error)

	// LogProb returns the per-element log-probability of the response
	// under the family's distribution at the given linear response.
	LogProb(response, eta []float64) ([]float64, error)
}

// logProbFunc evaluates a closed-form log-probability elementwise. The
// response, the linear response and the output slice have equal length.
type logProbFunc func(y, eta, out []float64)

// Model is an exponential family assembled from a link function, a
// variance function and a closed-form log-probability. The named
// constructors (NewPoisson, NewBernoulli, ...) are the only way to
// build one; dispatch happens at construction, not through inheritance.
type Model struct {
	name      string
	link      *Link
	variance  *Variance
	canonical bool
	logProb   logProbFunc
}

var _ ExponentialFamily = (*Model)(nil)

// Name returns the family name.
func (m *Model) Name() string { return m.name }

// String returns the family name.
func (m *Model) String() string { return m.name }

// IsCanonical reports whether the family uses its canonical link. For
// canonical families the variance and the gradient-of-mean agree exactly,
// bit for bit, not merely within tolerance.
func (m *Model) IsCanonical() bool { return m.canonical }

// Link returns the family's link function object.
func (m *Model) Link() *Link { return m.link }

// Variance returns the family's variance function object.
func (m *Model) Variance() *Variance { return m.variance }

// Call evaluates mean = invlink(eta), the variance of the distribution at
// that mean, and the derivative of the mean with respect to eta. The
// input is not modified. Domain-boundary inputs (e.g. a linear response
// outside the link's range) produce NaN or Inf values rather than errors.
func (m *Model) Call(eta []float64) (mean, variance, gradMean []float64, err error) {
	if err := validateEta(m.name+".Call", eta); err != nil {
		return nil, nil, nil, err
	}

	n := len(eta)
	mean = make([]float64, n)
	variance = make([]float64, n)
	gradMean = make([]float64, n)

	m.link.InvLink(eta, mean)
	m.variance.Var(mean, variance)
	m.link.InvDeriv(eta, gradMean)

	return mean, variance, gradMean, nil
}

// Mean evaluates only the inverse link, mapping the linear response to
// the mean.
func (m *Model) Mean(eta []float64) ([]float64, error) {
	if err := validateEta(m.name+".Mean", eta); err != nil {
		return nil, err
	}
	mean := make([]float64, len(eta))
	m.link.InvLink(eta, mean)
	return mean, nil
}

// LogProb evaluates the closed-form log-probability of each response
// element under the distribution parameterized by the corresponding
// linear response element.
func (m *Model) LogProb(response, eta []float64) ([]float64, error) {
	if err := validatePair(m.name+".LogProb", response, eta); err != nil {
		return nil, err
	}
	out := make([]float64, len(eta))
	m.logProb(response, eta, out)
	return out, nil
}

func validateEta(op string, eta []float64) error {
	if len(eta) == 0 {
		return errors.NewValueError(op, "empty linear response")
	}
	return nil
}

func validatePair(op string, response, eta []float64) error {
	if err := validateEta(op, eta); err != nil {
		return err
	}
	if len(response) != len(eta) {
		return errors.NewDimensionError(op, len(eta), len(response), 0)
	}
	return nil
}
