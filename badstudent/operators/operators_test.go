package operators

import (
	"math/rand"
	"testing"

	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/costfuncs"
	"github.com/sharnoff/emojify/badstudent/hyperparams"
	"github.com/sharnoff/emojify/badstudent/optimizers"
	"github.com/stretchr/testify/require"
)

const h float64 = 1e-6

func randSeq(r *rand.Rand, steps, size int) [][]float64 {
	seq := newSeq(steps, size)
	for s := range seq {
		for i := range seq[s] {
			seq[s][i] = r.Float64()*2 - 1
		}
	}

	return seq
}

// gradCheck compares the gradients accumulated for every adjustable Layer against a central
// difference of the cost
func gradCheck(t *testing.T, net *bs.Network, d bs.Datum) {
	_, err := net.Correct(d)
	require.NoError(t, err)

	cost := func() float64 {
		outs, err := net.GetOutputs(d.Inputs)
		require.NoError(t, err)
		return net.CostFunction().Cost(outs, d.Outputs)
	}

	checked := 0
	for _, l := range net.Layers()[1:] {
		adj, ok := l.Operator().(bs.Adjustable)
		if !ok || !adj.CanBeAdjusted(l) {
			continue
		}

		ws := adj.Weights(l)
		for i := range ws {
			w := ws[i]
			ws[i] = w + h
			plus := cost()
			ws[i] = w - h
			minus := cost()
			ws[i] = w

			require.InDelta(t, (plus-minus)/(2*h), adj.Grad(l, i), 1e-5, "layer %v, weight %d", l, i)
			checked++
		}
	}

	require.NotZero(t, checked)
}

func finalize(t *testing.T, net *bs.Network, cf bs.CostFunction) {
	net.AddHP("learning-rate", hyperparams.Constant(0.1))
	require.NoError(t, net.Error())
	require.NoError(t, net.Finalize(cf))
}

func TestNeurons(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	net := new(bs.Network).Seed(1)
	net.AddInput(3)
	net.Add("hidden", Neurons(4))
	net.Add("", Tanh())
	net.Add("", Mean())
	net.Add("out", Dense(2))
	net.Add("", Softmax())
	finalize(t, net, costfuncs.CrossEntropy())

	gradCheck(t, net, bs.Datum{Inputs: randSeq(r, 3, 3), Outputs: []float64{0, 1}})
}

func TestActivations(t *testing.T) {
	ops := []bs.Operator{Logistic(), Tanh(), Softsign(), Identity(), ReLU(), LeakyReLU(0.1), Softplus()}

	for _, op := range ops {
		t.Run(op.TypeString(), func(t *testing.T) {
			r := rand.New(rand.NewSource(2))

			net := new(bs.Network).Seed(2)
			net.AddInput(2)
			net.Add("", Neurons(3))
			net.Add("", op)
			net.Add("", Mean())
			net.Add("", Neurons(2))
			finalize(t, net, costfuncs.MSE())

			gradCheck(t, net, bs.Datum{Inputs: randSeq(r, 2, 2), Outputs: []float64{0.5, -0.5}})
		})
	}
}

func TestLSTM(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	net := new(bs.Network).Seed(3)
	net.AddInput(2)
	net.Add("lstm-1", LSTM(3).ReturnSequences())
	net.Add("lstm-2", LSTM(3))
	net.Add("", Neurons(2))
	net.Add("", Softmax())
	finalize(t, net, costfuncs.CrossEntropy())

	gradCheck(t, net, bs.Datum{Inputs: randSeq(r, 4, 2), Outputs: []float64{1, 0}})

	outs, err := net.GetOutputs(randSeq(r, 6, 2))
	require.NoError(t, err)
	require.Len(t, outs, 2)
}

func TestLSTMForgetBias(t *testing.T) {
	net := new(bs.Network)
	net.AddInput(2)
	l := net.Add("", LSTM(4))
	finalize(t, net, costfuncs.MSE())

	op := l.Operator().(*lstm)
	bias := op.Ws[op.biasOffset():]
	for k, b := range bias {
		if k/4 == 1 {
			require.Equal(t, 1.0, b, "forget gate bias %d", k)
		} else {
			require.Equal(t, 0.0, b, "bias %d", k)
		}
	}
}

// four rows of three
var vectors = []float64{
	0, 0, 0,
	1, 2, 3,
	-1, 0.5, 0,
	0.25, -0.5, 1,
}

func TestEmbeddingTrainable(t *testing.T) {
	net := new(bs.Network).Seed(4)
	net.AddInput(1)
	e := Embedding(3, vectors).Trainable()
	require.NotSame(t, &vectors[0], &e.Ws[0])
	net.Add("", e)
	net.Add("", Mean())
	net.Add("", Neurons(2))
	net.Add("", Softmax())
	finalize(t, net, costfuncs.CrossEntropy())

	// repeated indexes must accumulate
	gradCheck(t, net, bs.Datum{Inputs: [][]float64{{1}, {3}, {1}}, Outputs: []float64{0, 1}})
}

func TestEmbeddingFrozen(t *testing.T) {
	net := new(bs.Network)
	net.AddInput(1)
	l := net.Add("", Embedding(3, vectors))
	net.Add("", Mean())
	finalize(t, net, costfuncs.MSE())

	require.False(t, l.Operator().CanBeAdjusted(l))
	require.Same(t, &vectors[0], &l.Operator().(*embedding).Ws[0])

	outs, err := net.GetOutputs([][]float64{{1}, {2}})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 1.25, 1.5}, outs, 1e-12)

	_, err = net.GetOutputs([][]float64{{4}})
	require.Error(t, err)

	net = new(bs.Network)
	net.AddInput(2)
	net.Add("", Embedding(3, vectors))
	require.Error(t, net.Error())

	net = new(bs.Network)
	net.AddInput(1)
	net.Add("", Embedding(3, vectors[:10]))
	require.Error(t, net.Error())
}

func TestDropout(t *testing.T) {
	const size = 2000

	net := new(bs.Network).Seed(5)
	net.AddInput(size)
	net.Add("", Dropout(0.5))
	finalize(t, net, costfuncs.MSE())

	ones := make([]float64, size)
	for i := range ones {
		ones[i] = 1
	}

	outs, err := net.Correct(bs.Datum{Inputs: [][]float64{ones}, Outputs: make([]float64, size)})
	require.NoError(t, err)

	dropped := 0
	for _, v := range outs {
		switch v {
		case 0:
			dropped++
		case 2:
		default:
			t.Fatalf("unexpected value %v", v)
		}
	}
	require.InDelta(t, size/2, dropped, size/10)

	outs, err = net.GetOutputs([][]float64{ones})
	require.NoError(t, err)
	require.Equal(t, ones, outs)

	net = new(bs.Network)
	net.AddInput(2)
	net.Add("", Dropout(1))
	require.Error(t, net.Error())
}

func TestSaveLoad(t *testing.T) {
	r := rand.New(rand.NewSource(6))

	net := new(bs.Network).Seed(6).DefaultOpt(func() bs.Optimizer { return optimizers.Adam() })
	net.AddInput(1)
	net.Add("embed", Embedding(3, vectors))
	net.Add("lstm", LSTM(4).ReturnSequences())
	net.Add("", Dropout(0.5))
	net.Add("", LeakyReLU(0.2))
	net.Add("", Mean())
	net.Add("dense", Dense(5))
	net.Add("", Softmax())
	finalize(t, net, costfuncs.CrossEntropy())

	// train a little so that the weights aren't just their initial values
	data, err := bs.Data([]bs.Datum{
		{Inputs: [][]float64{{1}, {2}}, Outputs: []float64{0, 0, 1, 0, 0}},
		{Inputs: [][]float64{{3}, {0}}, Outputs: []float64{1, 0, 0, 0, 0}},
	}, 2)
	require.NoError(t, err)
	require.NoError(t, net.Train(bs.TrainArgs{TrainData: data, RunCondition: bs.TrainUntil(10)}))

	dir := t.TempDir() + "/net"
	require.NoError(t, net.Save(dir, false))
	require.Error(t, net.Save(dir, false))
	require.NoError(t, net.Save(dir, true))

	_, err = bs.Load(dir, nil)
	require.Error(t, err, "frozen embeddings must be required")

	_, err = bs.Load(dir, map[string]interface{}{AuxEmbeddings: vectors[:9]})
	require.Error(t, err)

	loaded, err := bs.Load(dir, map[string]interface{}{AuxEmbeddings: vectors})
	require.NoError(t, err)
	require.Equal(t, net.Iter(), loaded.Iter())
	require.Len(t, loaded.Layers(), len(net.Layers()))

	for i := 0; i < 5; i++ {
		in := [][]float64{{float64(r.Intn(4))}, {float64(r.Intn(4))}, {float64(r.Intn(4))}}

		expected, err := net.GetOutputs(in)
		require.NoError(t, err)
		got, err := loaded.GetOutputs(in)
		require.NoError(t, err)
		require.InDeltaSlice(t, expected, got, 1e-12)
	}

	// HyperParameters aren't saved
	require.Error(t, loaded.Train(bs.TrainArgs{TrainData: data, RunCondition: bs.TrainUntil(1)}))
	loaded.AddHP("learning-rate", hyperparams.Constant(0.01))
	require.NoError(t, loaded.Train(bs.TrainArgs{TrainData: data, RunCondition: bs.TrainUntil(1)}))
}
