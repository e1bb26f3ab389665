package glm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/goglm/pkg/errors"
)

// VecFunc evaluates a scalar function elementwise, reading from x and
// writing to y. The slices must have equal length.
type VecFunc func(x, y []float64)

// Link specifies a GLM link function pair: the map from the mean to the
// linear response and its inverse, together with the derivatives needed
// for scoring.
type Link struct {
	Name string

	TypeCode LinkType

	// Link maps the mean value to the linear response.
	Link VecFunc

	// InvLink maps the linear response to the mean value.
	InvLink VecFunc

	// InvDeriv is the derivative of InvLink with respect to the linear
	// response. This is the gradient-of-mean of the family.
	InvDeriv VecFunc

	// Deriv is the derivative of Link with respect to the mean, used by
	// iteratively reweighted least squares.
	Deriv VecFunc
}

// LinkType identifies a link function.
type LinkType uint8

// LogitLink, etc. identify the supported link functions.
const (
	LogitLink LinkType = iota
	ProbitLink
	LogLink
	SoftplusLink
	IdentityLink
	RecipLink
)

// NewLink returns the link function object for the given type code.
// Supported links are logit, probit, log, softplus, identity and recip.
func NewLink(link LinkType) *Link {
	switch link {
	case LogitLink:
		return &logitLink
	case ProbitLink:
		return &probitLink
	case LogLink:
		return &logLink
	case SoftplusLink:
		return &softplusLink
	case IdentityLink:
		return &idLink
	case RecipLink:
		return &recipLink
	default:
		panic(fmt.Sprintf("glm: unknown link: %v", link))
	}
}

var logitLink = Link{
	Name:     "Logit",
	TypeCode: LogitLink,
	Link:     logitFunc,
	InvLink:  expitFunc,
	InvDeriv: expitDerivFunc,
	Deriv:    logitDerivFunc,
}

var probitLink = Link{
	Name:     "Probit",
	TypeCode: ProbitLink,
	Link:     probitFunc,
	InvLink:  ncdfFunc,
	InvDeriv: npdfFunc,
	Deriv:    probitDerivFunc,
}

var logLink = Link{
	Name:     "Log",
	TypeCode: LogLink,
	Link:     logFunc,
	InvLink:  expFunc,
	InvDeriv: expFunc,
	Deriv:    logDerivFunc,
}

var softplusLink = Link{
	Name:     "Softplus",
	TypeCode: SoftplusLink,
	Link:     softplusInvFunc,
	InvLink:  softplusFunc,
	InvDeriv: sigmoidFunc,
	Deriv:    softplusDerivFunc,
}

var idLink = Link{
	Name:     "Identity",
	TypeCode: IdentityLink,
	Link:     idFunc,
	InvLink:  idFunc,
	InvDeriv: oneFunc,
	Deriv:    oneFunc,
}

var recipLink = Link{
	Name:     "Recip",
	TypeCode: RecipLink,
	Link:     recipFunc,
	InvLink:  recipFunc,
	InvDeriv: recipInvDerivFunc,
	Deriv:    recipInvDerivFunc,
}

// CheckResponseDomain verifies that observed responses lie in the
// closure of the link's mean domain. Scoring moves means through
// InvLink, which cannot leave the domain; responses come from the
// caller and can.
func (l *Link) CheckResponseDomain(y []float64) error {
	switch l.TypeCode {
	case LogitLink, ProbitLink:
		for _, v := range y {
			if v < 0 || v > 1 || math.IsNaN(v) {
				return errors.NewLinkDomainError(l.Name, v)
			}
		}
	case LogLink, SoftplusLink:
		for _, v := range y {
			if v < 0 || math.IsNaN(v) {
				return errors.NewLinkDomainError(l.Name, v)
			}
		}
	}
	return nil
}

// startingMeanFloor keeps starting means away from the edge of the
// link domain, where Link would map them to an infinite linear
// response.
const startingMeanFloor = 0.1

// StartingMean fills mu with damped starting means for the scoring
// iterations: each response is pulled halfway toward a center (0.5 for
// the unit-interval links, the response mean otherwise) and then moved
// inside the link's domain. Zero coefficients put the reciprocal link
// on its pole, so scoring cannot start there.
func (l *Link) StartingMean(y, mu []float64) {
	center := 0.5
	if l.TypeCode != LogitLink && l.TypeCode != ProbitLink {
		center = 0
		for _, v := range y {
			center += v
		}
		center /= float64(len(y))
	}

	for i, v := range y {
		mu[i] = (v + center) / 2
	}

	switch l.TypeCode {
	case LogLink, SoftplusLink:
		for i, m := range mu {
			if m < startingMeanFloor {
				mu[i] = startingMeanFloor
			}
		}
	case RecipLink:
		for i, m := range mu {
			if math.Abs(m) < startingMeanFloor {
				mu[i] = math.Copysign(startingMeanFloor, m)
			}
		}
	}
}

func logitFunc(x, y []float64) {
	for i, v := range x {
		y[i] = math.Log(v / (1 - v))
	}
}

func logitDerivFunc(x, y []float64) {
	for i, v := range x {
		y[i] = 1 / (v * (1 - v))
	}
}

func expitFunc(x, y []float64) {
	for i, v := range x {
		y[i] = sigmoid(v)
	}
}

func expitDerivFunc(x, y []float64) {
	for i, v := range x {
		p := sigmoid(v)
		y[i] = p * (1 - p)
	}
}

func probitFunc(x, y []float64) {
	for i, v := range x {
		y[i] = mathext.NormalQuantile(v)
	}
}

func probitDerivFunc(x, y []float64) {
	for i, v := range x {
		y[i] = 1 / distuv.UnitNormal.Prob(mathext.NormalQuantile(v))
	}
}

func ncdfFunc(x, y []float64) {
	for i, v := range x {
		y[i] = distuv.UnitNormal.CDF(v)
	}
}

func npdfFunc(x, y []float64) {
	for i, v := range x {
		y[i] = distuv.UnitNormal.Prob(v)
	}
}

func logFunc(x, y []float64) {
	for i, v := range x {
		y[i] = math.Log(v)
	}
}

func logDerivFunc(x, y []float64) {
	for i, v := range x {
		y[i] = 1 / v
	}
}

func expFunc(x, y []float64) {
	for i, v := range x {
		y[i] = math.Exp(v)
	}
}

func softplusFunc(x, y []float64) {
	for i, v := range x {
		y[i] = softplus(v)
	}
}

func softplusInvFunc(x, y []float64) {
	for i, v := range x {
		y[i] = v + math.Log1p(-math.Exp(-v))
	}
}

func sigmoidFunc(x, y []float64) {
	for i, v := range x {
		y[i] = sigmoid(v)
	}
}

func softplusDerivFunc(x, y []float64) {
	for i, v := range x {
		y[i] = -1 / math.Expm1(-v)
	}
}

func idFunc(x, y []float64) {
	copy(y, x)
}

func recipFunc(x, y []float64) {
	for i, v := range x {
		y[i] = 1 / v
	}
}

func recipInvDerivFunc(x, y []float64) {
	for i, v := range x {
		y[i] = -1 / (v * v)
	}
}

func oneFunc(x, y []float64) {
	one(y)
}

// sigmoid is the standard logistic function. Large negative inputs
// underflow to 0 and large positive inputs saturate at 1.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// softplus computes log(1+exp(x)) without overflowing for large x.
func softplus(x float64) float64 {
	return math.Max(x, 0) + math.Log1p(math.Exp(-math.Abs(x)))
}
