package initializers

import (
	"math/rand"
)

type random struct {
	RNG
}

// Random returns an Initializer that uses the provided RNG to generate the weights. There is no
// scaling beyond that of the RNG.
func Random(g RNG) random {
	return random{g}
}

// Set is the implementation of badstudent.Initializer
func (i random) Set(r *rand.Rand, fanOut, fanIn int, ws []float64) {
	for j := range ws {
		ws[j] = i.Gen(r)
	}
}

type constant float64

// Zeros returns an Initializer that sets every weight to 0, as is usual for biases.
func Zeros() constant {
	return Constant(0)
}

// Constant returns an Initializer that sets every weight to the given value.
func Constant(v float64) constant {
	return constant(v)
}

func (c constant) Set(r *rand.Rand, fanOut, fanIn int, ws []float64) {
	for i := range ws {
		ws[i] = float64(c)
	}
}
