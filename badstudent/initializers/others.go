package initializers

// LeCun scales by the number of inputs.
func LeCun() *varianceScaling {
	return VarianceScaling().In()
}

// He scales by twice the number of inputs, which suits ReLU-like activations.
func He() *varianceScaling {
	return VarianceScaling().In().Factor(2)
}

// Xavier scales by the average of the numbers of inputs and outputs, drawing from a uniform
// distribution.
func Xavier() *varianceScaling {
	return VarianceScaling().Avg().Uniform()
}

// Glorot is an alias for Xavier
func Glorot() *varianceScaling {
	return Xavier()
}
