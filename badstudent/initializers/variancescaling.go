package initializers

import (
	"math"
	"math/rand"
)

type varianceScaling struct {
	// either: "in", "out", "avg"
	mode   string
	factor float64

	// draw from a uniform distribution instead of a truncated normal one
	uniform bool
}

const defaultVarianceMode string = "avg"

// VarianceScaling returns the variance scaling initializer, which has 3 modes and a user-defined
// scaling factor. The three modes can be set by In, Out, and Avg. It defaults to Avg, drawing from
// a truncated normal distribution.
func VarianceScaling() *varianceScaling {
	return &varianceScaling{mode: defaultVarianceMode, factor: defaultValue["varscl-factor"]}
}

// Factor sets the scaling factor to be used for the Initializer. The default factor can be set by
// SetDefault("varscl-factor")
func (v *varianceScaling) Factor(f float64) *varianceScaling {
	v.factor = f
	return v
}

// In sets the scaling to be based on the number of input values to the block of weights.
func (v *varianceScaling) In() *varianceScaling {
	v.mode = "in"
	return v
}

// Out sets the scaling to be based on the number of output values of the block of weights.
func (v *varianceScaling) Out() *varianceScaling {
	v.mode = "out"
	return v
}

// Avg sets the scaling to be based on the average of the numbers of input and output values.
func (v *varianceScaling) Avg() *varianceScaling {
	v.mode = "avg"
	return v
}

// Uniform makes the Initializer draw from a uniform distribution with the same variance, instead
// of a truncated normal distribution.
func (v *varianceScaling) Uniform() *varianceScaling {
	v.uniform = true
	return v
}

// Set is the implementation of badstudent.Initializer
func (v *varianceScaling) Set(r *rand.Rand, fanOut, fanIn int, ws []float64) {
	var scale float64
	switch v.mode {
	case "in":
		scale = float64(fanIn)
	case "out":
		scale = float64(fanOut)
	default:
		scale = float64(fanIn+fanOut) / 2
	}

	if scale < 1 {
		scale = 1
	}

	variance := v.factor / scale

	var gen RNG
	if v.uniform {
		limit := math.Sqrt(3 * variance)
		gen = Uniform().Bounds(-limit, limit)
	} else {
		gen = TruncNormal().SD(math.Sqrt(variance))
	}

	for i := range ws {
		ws[i] = gen.Gen(r)
	}
}
