package costfuncs

type mse struct{}

// MSE returns the mean squared error cost function, which implements badstudent.CostFunction.
func MSE() mse {
	return mse{}
}

// L2 is a proxy for MSE
func L2() mse {
	return MSE()
}

func (m mse) TypeString() string {
	return "mse"
}

func (m mse) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		d := outs[i] - targets[i]
		sum += 0.5 * d * d
	}

	return sum / float64(len(outs))
}

func (m mse) Derivs(outs, targets []float64) []float64 {
	ds := make([]float64, len(outs))
	for i := range outs {
		ds[i] = (outs[i] - targets[i]) / float64(len(outs))
	}

	return ds
}
