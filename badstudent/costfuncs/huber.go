package costfuncs

import (
	"math"
)

type huber struct {
	δ float64
}

// Huber returns the Huber loss function. δ controls the bounds of the transition between MSE and
// Absolute Value.
func Huber(δ float64) *huber {
	return &huber{δ}
}

func (h *huber) TypeString() string {
	return "huber"
}

func (h *huber) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		d := math.Abs(outs[i] - targets[i])
		if d <= h.δ {
			sum += 0.5 * d * d
		} else {
			sum += h.δ*d - 0.5*h.δ*h.δ
		}
	}

	return sum / float64(len(outs))
}

func (h *huber) Derivs(outs, targets []float64) []float64 {
	ds := make([]float64, len(outs))
	for i := range outs {
		d := outs[i] - targets[i]
		if math.Abs(d) > h.δ {
			d = math.Copysign(h.δ, d)
		}

		ds[i] = d / float64(len(outs))
	}

	return ds
}
