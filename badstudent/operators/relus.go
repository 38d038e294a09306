// relus.go contains the activation functions that are derivative of relu:
// * ReLU
// * Leaky ReLU
// * Softplus (because it's similar)
package operators

import (
	"math"
)

type relu struct{}

// ReLU returns the standard rectified linear unit, which implements badstudent.Operator.
func ReLU() activation {
	return activation{relu{}}
}

func (t relu) TypeString() string {
	return "relu"
}

func (t relu) Value(in float64) float64 {
	return math.Max(in, 0)
}

func (t relu) Deriv(in, out float64) float64 {
	if in > 0 {
		return 1
	}

	return 0
}

type lrelu float64

// LeakyReLU returns a standard 'leaky ReLU', where the leaky factor is given by alpha.
func LeakyReLU(alpha float64) activation {
	t := lrelu(alpha)
	return activation{&t}
}

func (t *lrelu) TypeString() string {
	return "leaky-relu"
}

func (t *lrelu) Value(in float64) float64 {
	if in > 0 {
		return in
	}

	return float64(*t) * in
}

func (t *lrelu) Deriv(in, out float64) float64 {
	if in > 0 {
		return 1
	}

	return float64(*t)
}

func (t *lrelu) Get() interface{} {
	return float64(*t)
}

func (t *lrelu) Blank() interface{} {
	return t
}

type softplus struct{}

// Softplus returns the softplus activation function, ln(1 + e^x).
func Softplus() activation {
	return activation{softplus{}}
}

func (t softplus) TypeString() string {
	return "softplus"
}

func (t softplus) Value(in float64) float64 {
	// avoids overflow of e^x for large x
	if in > 30 {
		return in
	}

	return math.Log1p(math.Exp(in))
}

func (t softplus) Deriv(in, out float64) float64 {
	return 0.5 + 0.5*math.Tanh(0.5*in)
}
