// Package optimizers provides Optimizers for badstudent Networks. Importing it registers each of
// them and sets SGD as the package-level default.
package optimizers

import (
	bs "github.com/sharnoff/emojify/badstudent"
)

type gradientDescent struct{}

// GradientDescent returns the plain stochastic gradient descent Optimizer. It requires the
// HyperParameter "learning-rate".
func GradientDescent() gradientDescent {
	return gradientDescent{}
}

// SGD is a proxy for GradientDescent
func SGD() gradientDescent {
	return GradientDescent()
}

func (g gradientDescent) TypeString() string {
	return "sgd"
}

func (g gradientDescent) Needs() []string {
	return []string{"learning-rate"}
}

func (g gradientDescent) Run(l *bs.Layer, size int, grad func(int) float64, add func(int, float64)) error {
	learningRate := l.HP("learning-rate")

	for i := 0; i < size; i++ {
		add(i, -learningRate*grad(i))
	}

	return nil
}
