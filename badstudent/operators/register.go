package operators

import (
	bs "github.com/sharnoff/emojify/badstudent"
)

func init() {
	list := []interface{}{
		func() bs.Operator { return Neurons(0) },
		func() bs.Operator { return LSTM(0) },
		func() bs.Operator { return Embedding(0, nil) },
		func() bs.Operator { return Mean() },
		func() bs.Operator { return Dropout(0) },
		func() bs.Operator { return Softmax() },
		func() bs.Operator { return Logistic() },
		func() bs.Operator { return Tanh() },
		func() bs.Operator { return Softsign() },
		func() bs.Operator { return Identity() },
		func() bs.Operator { return ReLU() },
		func() bs.Operator { return LeakyReLU(0) },
		func() bs.Operator { return Softplus() },
	}

	if err := bs.RegisterAll(list); err != nil {
		panic(err)
	}
}
