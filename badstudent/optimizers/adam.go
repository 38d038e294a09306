package optimizers

import (
	"math"

	bs "github.com/sharnoff/emojify/badstudent"
)

type adam struct {
	β1, β2, ε float64

	// first and second moment estimates
	m, v []float64

	// number of updates so far
	t int
}

// Adam returns the Adam Optimizer, with β1 = 0.9, β2 = 0.999, and ε = 1e-7. It requires the
// HyperParameter "learning-rate".
//
// Each Layer must be given its own Adam, because it tracks the moments of the Layer's weights.
func Adam() *adam {
	return &adam{β1: 0.9, β2: 0.999, ε: 1e-7}
}

// Betas sets the decay rates of the first and second moment estimates.
func (a *adam) Betas(β1, β2 float64) *adam {
	a.β1, a.β2 = β1, β2
	return a
}

// Epsilon sets the small constant added to the denominator of each update.
func (a *adam) Epsilon(ε float64) *adam {
	a.ε = ε
	return a
}

func (a *adam) TypeString() string {
	return "adam"
}

func (a *adam) Needs() []string {
	return []string{"learning-rate"}
}

func (a *adam) Run(l *bs.Layer, size int, grad func(int) float64, add func(int, float64)) error {
	if len(a.m) != size {
		a.m = make([]float64, size)
		a.v = make([]float64, size)
		a.t = 0
	}

	a.t++
	t := float64(a.t)
	lr := l.HP("learning-rate") * math.Sqrt(1-math.Pow(a.β2, t)) / (1 - math.Pow(a.β1, t))

	for i := 0; i < size; i++ {
		g := grad(i)
		a.m[i] = a.β1*a.m[i] + (1-a.β1)*g
		a.v[i] = a.β2*a.v[i] + (1-a.β2)*g*g

		add(i, -lr*a.m[i]/(math.Sqrt(a.v[i])+a.ε))
	}

	return nil
}
