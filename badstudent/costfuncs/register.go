package costfuncs

import (
	bs "github.com/sharnoff/emojify/badstudent"
)

func init() {
	list := []interface{}{
		func() bs.CostFunction { return CrossEntropy() },
		func() bs.CostFunction { return MSE() },
		func() bs.CostFunction { return Abs() },
		func() bs.CostFunction { return Huber(1) },
	}

	if err := bs.RegisterAll(list); err != nil {
		panic(err)
	}
}
