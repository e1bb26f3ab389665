package glm

import "fmt"

// VarianceType identifies a GLM variance function.
type VarianceType uint8

// BinomialVar, etc. identify the supported variance functions.
const (
	BinomialVar VarianceType = iota
	IdentityVar
	SquaredVar
	ConstantVar
)

// Variance represents a GLM variance function, mapping the mean value to
// the variance of the response distribution.
type Variance struct {
	Name     string
	TypeCode VarianceType
	Var      VecFunc
}

// NewVariance returns the variance function object for the given type
// code. Supported variance functions are binomial, identity, squared and
// constant.
func NewVariance(vartype VarianceType) *Variance {
	switch vartype {
	case BinomialVar:
		return &binomVariance
	case IdentityVar:
		return &identVariance
	case SquaredVar:
		return &squaredVariance
	case ConstantVar:
		return &constVariance
	default:
		panic(fmt.Sprintf("glm: unknown variance function: %v", vartype))
	}
}

var binomVariance = Variance{
	Name:     "Binomial",
	TypeCode: BinomialVar,
	Var:      binomVar,
}

var identVariance = Variance{
	Name:     "Identity",
	TypeCode: IdentityVar,
	Var:      identVar,
}

var squaredVariance = Variance{
	Name:     "Squared",
	TypeCode: SquaredVar,
	Var:      squaredVar,
}

var constVariance = Variance{
	Name:     "Constant",
	TypeCode: ConstantVar,
	Var:      constVar,
}

func binomVar(mn, v []float64) {
	for i, p := range mn {
		v[i] = p * (1 - p)
	}
}

func identVar(mn, v []float64) {
	copy(v, mn)
}

func squaredVar(mn, v []float64) {
	for i, m := range mn {
		v[i] = m * m
	}
}

func constVar(mn, v []float64) {
	one(v)
}

func one(y []float64) {
	for i := range y {
		y[i] = 1
	}
}
