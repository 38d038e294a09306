package badstudent

// Argmax returns the index of the largest value. Ties go to the lowest index. Argmax returns -1 for
// an empty slice.
func Argmax(values []float64) int {
	best := -1
	for i, v := range values {
		if best == -1 || v > values[best] {
			best = i
		}
	}

	return best
}

// CorrectHighest returns whether or not the largest value in each is at the same index
func CorrectHighest(outs, targets []float64) bool {
	return Argmax(outs) == Argmax(targets)
}

// TrainUntil returns a function that satisfies TrainArgs.RunCondition, stopping after the given
// number of iterations.
func TrainUntil(maxIterations int) func(int) bool {
	return func(iteration int) bool {
		return iteration < maxIterations
	}
}

// Every returns a function that satisfies TrainArgs.SendStatus or TrainArgs.ShouldTest.
// 'frequency' is in units of iterations
//
// this function is self-explanatory from viewing the source
func Every(frequency int) func(int) bool {
	return func(iteration int) bool {
		return iteration%frequency == 0
	}
}

// EndEvery returns a function that returns true on the last iteration of every group of
// 'frequency' iterations, which can be used for DataSupplier.BatchEnded.
func EndEvery(frequency int) func(int) bool {
	return func(iteration int) bool {
		return (iteration+1)%frequency == 0
	}
}
