package badstudent_test

import (
	"math/rand"
	"testing"

	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/costfuncs"
	"github.com/sharnoff/emojify/badstudent/hyperparams"
	"github.com/sharnoff/emojify/badstudent/operators"
	"github.com/sharnoff/emojify/badstudent/optimizers"
	"github.com/stretchr/testify/require"
)

// points above the line y = x are class 1, below are class 0. None are within 0.4 of the line
// along either axis.
func separable(n int, seed int64) []bs.Datum {
	r := rand.New(rand.NewSource(seed))

	data := make([]bs.Datum, 0, n)
	for len(data) < n {
		x, y := r.Float64()*2-1, r.Float64()*2-1
		if x-y > -0.4 && x-y < 0.4 {
			continue
		}

		outs := []float64{1, 0}
		if y > x {
			outs = []float64{0, 1}
		}

		data = append(data, bs.Datum{Inputs: [][]float64{{x, y}}, Outputs: outs})
	}

	return data
}

func classifier(t *testing.T) *bs.Network {
	net := new(bs.Network).Seed(1)
	net.AddInput(2)
	net.Add("out", operators.Dense(2))
	net.Add("", operators.Softmax())
	net.AddHP("learning-rate", hyperparams.Constant(0.5))
	require.NoError(t, net.Error())
	require.NoError(t, net.Finalize(costfuncs.CrossEntropy()))

	return net
}

func TestTrain(t *testing.T) {
	net := classifier(t)

	train, err := bs.Data(separable(100, 1), 10)
	require.NoError(t, err)
	test, err := bs.Data(separable(50, 2), 1)
	require.NoError(t, err)

	var results []bs.Result
	err = net.Train(bs.TrainArgs{
		TrainData:    train,
		TestData:     test,
		ShouldTest:   bs.Every(500),
		SendStatus:   bs.Every(100),
		RunCondition: bs.TrainUntil(5000),
		IsCorrect:    bs.CorrectHighest,
		Update:       func(r bs.Result) { results = append(results, r) },
	})
	require.NoError(t, err)
	require.Equal(t, 5000, net.Iter())

	tests, statuses := 0, 0
	for _, r := range results {
		if r.IsTest {
			tests++
		} else {
			statuses++
		}
	}
	// tests on every multiple of 500 up to 5000; statuses on every multiple of 100 but 0
	require.Equal(t, 11, tests)
	require.Equal(t, 50, statuses)

	cost, correct, err := net.Test(test, bs.CorrectHighest)
	require.NoError(t, err)
	require.Greater(t, correct, 0.95)
	require.Less(t, cost, results[0].Cost)
}

func TestManualTraining(t *testing.T) {
	net := classifier(t)
	data := separable(40, 3)

	for epoch := 0; epoch < 200; epoch++ {
		for _, d := range data {
			_, err := net.Correct(d)
			require.NoError(t, err)
		}
		require.NoError(t, net.Adjust())
	}

	supplier, err := bs.Data(data, 1)
	require.NoError(t, err)
	_, correct, err := net.Test(supplier, bs.CorrectHighest)
	require.NoError(t, err)
	require.Greater(t, correct, 0.9)
}

func TestConstructionErrors(t *testing.T) {
	req := require.New(t)

	net := new(bs.Network)
	req.ErrorIs(net.Finalize(costfuncs.MSE()), bs.ErrNoInput)

	net.AddInput(2)
	req.ErrorIs(net.Finalize(costfuncs.MSE()), bs.ErrNoLayers)
	req.Error(net.Finalize(nil))

	net.Add("", operators.Dense(3))
	req.Error(net.Finalize(costfuncs.MSE()), "sgd needs a learning rate")

	net = new(bs.Network)
	net.AddInput(2)
	net.Add("", operators.Dense(3))
	net.Add("", operators.Dense(0))
	req.Error(net.Error())
	req.Error(net.Finalize(costfuncs.MSE()))

	net = new(bs.Network)
	net.Add("", operators.Tanh())
	req.ErrorIs(net.Error(), bs.ErrNoInput)

	net = new(bs.Network).PanicErrors()
	req.Panics(func() { net.Add("", nil) })
}

func TestOutputs(t *testing.T) {
	req := require.New(t)

	net := new(bs.Network)
	net.AddInput(2)
	net.Add("", operators.Tanh())
	req.NoError(net.Finalize(costfuncs.MSE()))

	_, err := net.GetOutputs(nil)
	req.ErrorIs(err, bs.ErrNoSteps)

	_, err = net.GetOutputs([][]float64{{1, 2, 3}})
	req.IsType(bs.SizeMismatchError{}, err)

	_, err = net.GetOutputs([][]float64{{1, 2}, {3, 4}})
	req.ErrorIs(err, bs.ErrOutputSteps)

	outs, err := net.GetOutputs([][]float64{{0, 0}})
	req.NoError(err)
	req.Equal([]float64{0, 0}, outs)

	req.ErrorIs(new(bs.Network).Train(bs.TrainArgs{}), bs.ErrNetNotFinalized)
}

func TestStepLearningRate(t *testing.T) {
	net := new(bs.Network).Seed(2).DefaultOpt(func() bs.Optimizer { return optimizers.SGD() })
	net.AddInput(1)
	l := net.Add("", operators.Dense(1))
	net.AddHP("learning-rate", hyperparams.Constant(100))
	// the Layer's own HyperParameter takes precedence
	l.AddHP("learning-rate", hyperparams.Step(0.1).Add(1, 0))
	require.NoError(t, net.Finalize(costfuncs.MSE()))

	adj := l.Operator().(bs.Adjustable)
	before := append([]float64(nil), adj.Weights(l)...)

	data, err := bs.Data([]bs.Datum{{Inputs: [][]float64{{1}}, Outputs: []float64{5}}}, 1)
	require.NoError(t, err)

	require.NoError(t, net.Train(bs.TrainArgs{TrainData: data, RunCondition: bs.TrainUntil(1)}))
	after := append([]float64(nil), adj.Weights(l)...)
	require.NotEqual(t, before, after)

	// learning rate is 0 from the second iteration onwards
	require.NoError(t, net.Train(bs.TrainArgs{TrainData: data, RunCondition: bs.TrainUntil(3)}))
	require.Equal(t, after, adj.Weights(l))
}

func TestRegisterAll(t *testing.T) {
	require.Error(t, bs.RegisterAll([]interface{}{"not a function"}))
	require.ErrorIs(t, bs.RegisterAll([]interface{}{
		func() bs.Operator { return operators.Mean() },
	}), bs.ErrRegisterTaken)
}

func TestArgmax(t *testing.T) {
	require.Equal(t, -1, bs.Argmax(nil))
	require.Equal(t, 1, bs.Argmax([]float64{0.1, 0.7, 0.7, 0.2}))
	require.True(t, bs.CorrectHighest([]float64{0.1, 0.9}, []float64{0, 1}))
	require.False(t, bs.CorrectHighest([]float64{0.1, 0.9}, []float64{1, 0}))
}
