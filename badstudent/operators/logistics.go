package operators

import (
	"math"
)

type logistic struct{}

// Logistic returns an elementwise application of the logistic (or sigmoid) function that
// implements badstudent.Operator.
func Logistic() activation {
	return activation{logistic{}}
}

func (t logistic) TypeString() string {
	return "logistic"
}

func (t logistic) Value(in float64) float64 {
	// the logistic function can be rephrased as:
	return 0.5 + 0.5*math.Tanh(0.5*in)
}

func (t logistic) Deriv(in, out float64) float64 {
	return out * (1 - out)
}

type tanh struct{}

// Tanh returns an Operator that performs an element-wise application of the tanh() function.
func Tanh() activation {
	return activation{tanh{}}
}

func (t tanh) TypeString() string {
	return "tanh"
}

func (t tanh) Value(in float64) float64 {
	return math.Tanh(in)
}

func (t tanh) Deriv(in, out float64) float64 {
	return 1 - out*out
}

type softsign struct{}

// Softsign (not to be confused with softplus) returns the Softsign activation function. It is
// similar in shape to Tanh and Logistic.
func Softsign() activation {
	return activation{softsign{}}
}

func (t softsign) TypeString() string {
	return "softsign"
}

func (t softsign) Value(in float64) float64 {
	return in / (math.Abs(in) + 1)
}

func (t softsign) Deriv(in, out float64) float64 {
	d := math.Abs(in) + 1
	return 1 / (d * d)
}

type identity struct{}

// Identity returns an operator that returns its inputs
func Identity() activation {
	return activation{identity{}}
}

func (t identity) TypeString() string {
	return "identity"
}

func (t identity) Value(in float64) float64 {
	return in
}

func (t identity) Deriv(in, out float64) float64 {
	return 1
}
