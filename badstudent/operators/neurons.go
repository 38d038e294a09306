package operators

import (
	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/utils"
)

// neurons is a fully-connected layer, applied to each step of its input with the same weights
type neurons struct {
	Size   int
	Inputs int

	// Ws holds the [Size][Inputs] weight matrix, row-major, followed by Size biases
	Ws []float64 `json:"Weights"`

	grads []float64
}

// Neurons returns a fully-connected layer with the given number of outputs per step, which
// implements badstudent.Adjustable. Weights are set by the Layer's Initializer and biases start at
// zero.
func Neurons(size int) *neurons {
	return &neurons{Size: size}
}

// Dense is a proxy for Neurons
func Dense(size int) *neurons {
	return Neurons(size)
}

const weightsFile string = "weights.json"

func (n *neurons) TypeString() string {
	return "neurons"
}

func (n *neurons) OutputSize(l *bs.Layer) (int, error) {
	if n.Size < 1 {
		return 0, errors.Errorf("Size must be >= 1 (%d)", n.Size)
	}

	n.Inputs = l.InputSize()
	return n.Size, nil
}

func (n *neurons) Init(l *bs.Layer) error {
	n.Ws = make([]float64, n.Size*(n.Inputs+1))
	n.grads = make([]float64, len(n.Ws))

	l.Initializer().Set(l.Rand(), n.Size, n.Inputs, n.Ws[:n.Size*n.Inputs])
	return nil
}

func (n *neurons) bias(v int) float64 {
	return n.Ws[n.Size*n.Inputs+v]
}

func (n *neurons) Evaluate(l *bs.Layer, inputs [][]float64) ([][]float64, error) {
	values := newSeq(len(inputs), n.Size)

	for s, in := range inputs {
		calculateValue := func(v int) {
			row := n.Ws[v*n.Inputs : (v+1)*n.Inputs]

			sum := n.bias(v)
			for i := range in {
				sum += row[i] * in[i]
			}

			values[s][v] = sum
		}

		utils.MultiThread(0, n.Size, calculateValue, opsPerThread, threadsPerCPU)
	}

	return values, nil
}

func (n *neurons) InputDeltas(l *bs.Layer) ([][]float64, error) {
	inputs, deltas := l.InputValues(), l.Deltas()

	// gradients of weights are accumulated one output at a time, so that no two goroutines write
	// to the same index
	addGrads := func(v int) {
		row := n.grads[v*n.Inputs : (v+1)*n.Inputs]
		for s := range inputs {
			d := deltas[s][v]
			for i, in := range inputs[s] {
				row[i] += d * in
			}

			n.grads[n.Size*n.Inputs+v] += d
		}
	}

	utils.MultiThread(0, n.Size, addGrads, opsPerThread, threadsPerCPU)

	if l.Input().IsInput() {
		return nil, nil
	}

	ds := newSeq(len(inputs), n.Inputs)
	for s := range ds {
		sendDelta := func(i int) {
			var sum float64
			for v := 0; v < n.Size; v++ {
				sum += deltas[s][v] * n.Ws[v*n.Inputs+i]
			}

			ds[s][i] = sum
		}

		utils.MultiThread(0, n.Inputs, sendDelta, opsPerThread, threadsPerCPU)
	}

	return ds, nil
}

func (n *neurons) CanBeAdjusted(l *bs.Layer) bool {
	return true
}

func (n *neurons) Weights(l *bs.Layer) []float64 {
	return n.Ws
}

func (n *neurons) Grad(l *bs.Layer, index int) float64 {
	return n.grads[index]
}

func (n *neurons) ClearGrads(l *bs.Layer) {
	for i := range n.grads {
		n.grads[i] = 0
	}
}

func (n *neurons) Save(l *bs.Layer, dirPath string) error {
	if err := utils.SaveJSON(dirPath, weightsFile, n); err != nil {
		return errors.Wrapf(err, "Couldn't save operator\n")
	}

	return nil
}

func (n *neurons) Load(l *bs.Layer, dirPath string, aux map[string]interface{}) error {
	if err := utils.LoadJSON(dirPath, weightsFile, n); err != nil {
		return errors.Wrapf(err, "Couldn't load operator\n")
	}

	if n.Inputs != l.InputSize() {
		return errors.Wrapf(bs.SizeMismatchError{Expected: l.InputSize(), Given: n.Inputs, Name: "inputs"}, "Couldn't load operator\n")
	} else if len(n.Ws) != n.Size*(n.Inputs+1) {
		return errors.Wrapf(bs.SizeMismatchError{Expected: n.Size * (n.Inputs + 1), Given: len(n.Ws), Name: "weights"}, "Couldn't load operator\n")
	}

	n.grads = make([]float64, len(n.Ws))
	return nil
}
