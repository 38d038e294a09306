// Package hyperparams provides HyperParameters, for use with Optimizers such as those in the
// optimizers package.
package hyperparams

type constant float64

// Constant returns a HyperParameter that always has the given value.
func Constant(value float64) *constant {
	c := constant(value)
	return &c
}

func (c *constant) TypeString() string {
	return "constant"
}

func (c *constant) Value(iter int) float64 {
	return float64(*c)
}
