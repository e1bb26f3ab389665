package glm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/goglm/pkg/errors"
)

// The named families pair a response distribution with a link function.
// Canonical pairings compute the variance and the gradient-of-mean through
// the same expressions, so the two agree exactly rather than approximately.

// NewBernoulli returns the Bernoulli family with its canonical logit
// link: mean = sigmoid(eta), response ~ Bernoulli(p = mean).
func NewBernoulli() *Model {
	return &Model{
		name:      "Bernoulli",
		link:      NewLink(LogitLink),
		variance:  NewVariance(BinomialVar),
		canonical: true,
		logProb:   bernoulliLogProb,
	}
}

// NewBernoulliNormalCDF returns the Bernoulli family with the probit
// link: mean = Phi(eta), the standard normal CDF of the linear response.
func NewBernoulliNormalCDF() *Model {
	return &Model{
		name:      "BernoulliNormalCDF",
		link:      NewLink(ProbitLink),
		variance:  NewVariance(BinomialVar),
		canonical: false,
		logProb:   bernoulliNormalCDFLogProb,
	}
}

// NewGammaExp returns the Gamma family with the exponential inverse link:
// mean = exp(eta), response ~ Gamma(shape = 1, rate = 1/mean).
func NewGammaExp() *Model {
	return &Model{
		name:      "GammaExp",
		link:      NewLink(LogLink),
		variance:  NewVariance(SquaredVar),
		canonical: false,
		logProb:   gammaExpLogProb,
	}
}

// NewGammaSoftplus returns the Gamma family with the softplus inverse
// link: mean = softplus(eta), response ~ Gamma(shape = 1, rate = 1/mean).
func NewGammaSoftplus() *Model {
	return &Model{
		name:      "GammaSoftplus",
		link:      NewLink(SoftplusLink),
		variance:  NewVariance(SquaredVar),
		canonical: false,
		logProb:   gammaSoftplusLogProb,
	}
}

// NewLogNormal returns the LogNormal family with the exponential inverse
// link. The distribution is LogNormal(loc = log(mean) - log(2)/2,
// scale = sqrt(log 2)), which has expectation mean and variance mean^2.
func NewLogNormal() *Model {
	return &Model{
		name:      "LogNormal",
		link:      NewLink(LogLink),
		variance:  NewVariance(SquaredVar),
		canonical: false,
		logProb:   logNormalLogProb,
	}
}

// NewLogNormalSoftplus returns the LogNormal family with the softplus
// inverse link: mean = softplus(eta), distribution as in NewLogNormal.
func NewLogNormalSoftplus() *Model {
	return &Model{
		name:      "LogNormalSoftplus",
		link:      NewLink(SoftplusLink),
		variance:  NewVariance(SquaredVar),
		canonical: false,
		logProb:   logNormalSoftplusLogProb,
	}
}

// NewNormal returns the Normal family with its canonical identity link:
// mean = eta, response ~ Normal(mean, 1).
func NewNormal() *Model {
	return &Model{
		name:      "Normal",
		link:      NewLink(IdentityLink),
		variance:  NewVariance(ConstantVar),
		canonical: true,
		logProb:   normalLogProb,
	}
}

// NewNormalReciprocal returns the Normal family with the reciprocal
// inverse link: mean = 1/eta, response ~ Normal(mean, 1).
func NewNormalReciprocal() *Model {
	return &Model{
		name:      "NormalReciprocal",
		link:      NewLink(RecipLink),
		variance:  NewVariance(ConstantVar),
		canonical: false,
		logProb:   normalReciprocalLogProb,
	}
}

// NewPoisson returns the Poisson family with its canonical log link:
// mean = exp(eta), response ~ Poisson(rate = mean).
func NewPoisson() *Model {
	return &Model{
		name:      "Poisson",
		link:      NewLink(LogLink),
		variance:  NewVariance(IdentityVar),
		canonical: true,
		logProb:   poissonLogProb,
	}
}

// NewPoissonSoftplus returns the Poisson family with the softplus inverse
// link: mean = softplus(eta), response ~ Poisson(rate = mean).
func NewPoissonSoftplus() *Model {
	return &Model{
		name:      "PoissonSoftplus",
		link:      NewLink(SoftplusLink),
		variance:  NewVariance(IdentityVar),
		canonical: false,
		logProb:   poissonSoftplusLogProb,
	}
}

// FamilyNames lists every named family constructor, in the order the
// families are documented.
func FamilyNames() []string {
	return []string{
		"Bernoulli",
		"BernoulliNormalCDF",
		"GammaExp",
		"GammaSoftplus",
		"LogNormal",
		"LogNormalSoftplus",
		"Normal",
		"NormalReciprocal",
		"Poisson",
		"PoissonSoftplus",
	}
}

// NewFamilyByName constructs a named family from its name. It returns a
// ValueError for names not listed by FamilyNames.
func NewFamilyByName(name string) (ExponentialFamily, error) {
	switch name {
	case "Bernoulli":
		return NewBernoulli(), nil
	case "BernoulliNormalCDF":
		return NewBernoulliNormalCDF(), nil
	case "GammaExp":
		return NewGammaExp(), nil
	case "GammaSoftplus":
		return NewGammaSoftplus(), nil
	case "LogNormal":
		return NewLogNormal(), nil
	case "LogNormalSoftplus":
		return NewLogNormalSoftplus(), nil
	case "Normal":
		return NewNormal(), nil
	case "NormalReciprocal":
		return NewNormalReciprocal(), nil
	case "Poisson":
		return NewPoisson(), nil
	case "PoissonSoftplus":
		return NewPoissonSoftplus(), nil
	default:
		return nil, errors.NewValueError("glm.NewFamilyByName", fmt.Sprintf("unknown family: %q", name))
	}
}

var halfLog2Pi = 0.5 * math.Log(2*math.Pi)

// logNormalScale2 is the squared scale (log 2) of the LogNormal
// parameterization, fixed so that the variance equals the squared mean.
var logNormalScale2 = math.Ln2

func bernoulliLogProb(y, eta, out []float64) {
	for i, e := range eta {
		out[i] = y[i]*e - softplus(e)
	}
}

func bernoulliNormalCDFLogProb(y, eta, out []float64) {
	for i, e := range eta {
		out[i] = y[i]*math.Log(distuv.UnitNormal.CDF(e)) +
			(1-y[i])*math.Log(distuv.UnitNormal.CDF(-e))
	}
}

func gammaExpLogProb(y, eta, out []float64) {
	for i, e := range eta {
		out[i] = -e - y[i]*math.Exp(-e)
	}
}

func gammaSoftplusLogProb(y, eta, out []float64) {
	for i, e := range eta {
		m := softplus(e)
		out[i] = -math.Log(m) - y[i]/m
	}
}

func logNormalLogProb(y, eta, out []float64) {
	for i, e := range eta {
		loc := e - logNormalScale2/2
		out[i] = logNormalDensity(y[i], loc)
	}
}

func logNormalSoftplusLogProb(y, eta, out []float64) {
	for i, e := range eta {
		loc := math.Log(softplus(e)) - logNormalScale2/2
		out[i] = logNormalDensity(y[i], loc)
	}
}

// logNormalDensity is the LogNormal(loc, sqrt(log 2)) log density at y.
func logNormalDensity(y, loc float64) float64 {
	d := math.Log(y) - loc
	return -math.Log(y) - 0.5*math.Log(logNormalScale2) - halfLog2Pi -
		d*d/(2*logNormalScale2)
}

func normalLogProb(y, eta, out []float64) {
	for i, e := range eta {
		d := y[i] - e
		out[i] = -0.5*d*d - halfLog2Pi
	}
}

func normalReciprocalLogProb(y, eta, out []float64) {
	for i, e := range eta {
		d := y[i] - 1/e
		out[i] = -0.5*d*d - halfLog2Pi
	}
}

func poissonLogProb(y, eta, out []float64) {
	for i, e := range eta {
		lg, _ := math.Lgamma(1 + y[i])
		out[i] = y[i]*e - math.Exp(e) - lg
	}
}

func poissonSoftplusLogProb(y, eta, out []float64) {
	for i, e := range eta {
		m := softplus(e)
		lg, _ := math.Lgamma(1 + y[i])
		out[i] = y[i]*math.Log(m) - m - lg
	}
}
