package costfuncs

import (
	"math"
	"testing"

	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/stretchr/testify/require"
)

// checkDerivs compares Derivs against a central difference of Cost
func checkDerivs(t *testing.T, cf bs.CostFunction, outs, targets []float64) {
	const h = 1e-6

	ds := cf.Derivs(outs, targets)
	require.Len(t, ds, len(outs))

	for i := range outs {
		o := outs[i]

		outs[i] = o + h
		plus := cf.Cost(outs, targets)
		outs[i] = o - h
		minus := cf.Cost(outs, targets)
		outs[i] = o

		require.InDelta(t, (plus-minus)/(2*h), ds[i], 1e-4, "%s: output %d", cf.TypeString(), i)
	}
}

func TestDerivs(t *testing.T) {
	outs := []float64{0.1, 0.6, 0.05, 0.2, 0.05}
	targets := []float64{0, 1, 0, 0, 0}

	for _, cf := range []bs.CostFunction{CrossEntropy(), MSE(), Abs(), Huber(0.3)} {
		checkDerivs(t, cf, append([]float64(nil), outs...), targets)
	}
}

func TestCrossEntropy(t *testing.T) {
	cf := CrossEntropy()
	require.InDelta(t, -math.Log(0.6), cf.Cost([]float64{0.1, 0.6, 0.3}, []float64{0, 1, 0}), 1e-12)

	// a zero output is clipped instead of giving +Inf
	c := cf.Cost([]float64{1, 0}, []float64{0, 1})
	require.False(t, math.IsInf(c, 0))
	require.InDelta(t, -math.Log(epsilon), c, 1e-9)
}

func TestRegistered(t *testing.T) {
	for _, cf := range []bs.CostFunction{CrossEntropy(), MSE(), Abs(), Huber(1)} {
		err := bs.RegisterCostFunction(func() bs.CostFunction { return cf })
		require.ErrorIs(t, err, bs.ErrRegisterTaken, cf.TypeString())
	}
}
