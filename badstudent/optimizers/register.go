package optimizers

import (
	bs "github.com/sharnoff/emojify/badstudent"
)

func init() {
	list := []interface{}{
		func() bs.Optimizer { return GradientDescent() },
		func() bs.Optimizer { return Adam() },
	}

	if err := bs.RegisterAll(list); err != nil {
		panic(err)
	}

	bs.SetDefaultOptimizer(func() bs.Optimizer { return GradientDescent() })
}
