// Package costfuncs provides the CostFunctions that a Network can be finalized with. Importing it
// registers each of them, so that saved Networks can be loaded.
package costfuncs

import (
	"math"
)

// epsilon bounds the outputs away from 0 and 1 before taking the log
const epsilon float64 = 1e-7

type crossEntropy struct{}

// CrossEntropy returns the categorical cross-entropy cost function, for use with one-hot targets
// and outputs that form a probability distribution (usually from softmax). The cost of a sample
// is -Σ t·log(o).
func CrossEntropy() crossEntropy {
	return crossEntropy{}
}

// NegativeLog is a proxy for CrossEntropy
func NegativeLog() crossEntropy {
	return CrossEntropy()
}

func (c crossEntropy) TypeString() string {
	return "cross-entropy"
}

func clip(v float64) float64 {
	return math.Min(math.Max(v, epsilon), 1-epsilon)
}

func (c crossEntropy) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		if targets[i] != 0 {
			sum -= targets[i] * math.Log(clip(outs[i]))
		}
	}

	return sum
}

func (c crossEntropy) Derivs(outs, targets []float64) []float64 {
	ds := make([]float64, len(outs))
	for i := range outs {
		ds[i] = -targets[i] / clip(outs[i])
	}

	return ds
}
