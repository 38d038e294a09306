// Package operators provides the Operators that badstudent Networks are built from. Importing it
// registers each of them, so that saved Networks can be loaded.
//
// Every Operator here works on sequences: values are indexed [step][unit].
package operators

import (
	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/utils"
)

// used for all calls to utils.MultiThread. Have not been optimized
const (
	opsPerThread  int = 16
	threadsPerCPU int = 1
)

// activationFunc is an element-wise function, applied independently to every input value
type activationFunc interface {
	TypeString() string

	Value(in float64) float64

	// Deriv returns the derivative of the function, given its input and output
	Deriv(in, out float64) float64
}

// parameterized is implemented by activation functions that have values which must be saved.
// Blank should return a pointer to decode into.
type parameterized interface {
	Get() interface{}
	Blank() interface{}
}

const paramsFile string = "params.json"

// activation turns an activationFunc into a badstudent.Operator
type activation struct {
	f activationFunc
}

func (a activation) TypeString() string {
	return a.f.TypeString()
}

func (a activation) OutputSize(l *bs.Layer) (int, error) {
	return l.InputSize(), nil
}

func (a activation) Init(l *bs.Layer) error {
	return nil
}

func (a activation) Evaluate(l *bs.Layer, inputs [][]float64) ([][]float64, error) {
	values := newSeq(len(inputs), l.Size())
	for s := range inputs {
		for i, in := range inputs[s] {
			values[s][i] = a.f.Value(in)
		}
	}

	return values, nil
}

func (a activation) InputDeltas(l *bs.Layer) ([][]float64, error) {
	inputs, values, deltas := l.InputValues(), l.Values(), l.Deltas()

	ds := newSeq(len(inputs), l.Size())
	for s := range ds {
		for i := range ds[s] {
			ds[s][i] = deltas[s][i] * a.f.Deriv(inputs[s][i], values[s][i])
		}
	}

	return ds, nil
}

func (a activation) CanBeAdjusted(l *bs.Layer) bool {
	return false
}

func (a activation) Save(l *bs.Layer, dirPath string) error {
	p, ok := a.f.(parameterized)
	if !ok {
		return nil
	}

	if err := utils.SaveJSON(dirPath, paramsFile, p.Get()); err != nil {
		return errors.Wrapf(err, "Couldn't save operator %q\n", a.TypeString())
	}

	return nil
}

func (a activation) Load(l *bs.Layer, dirPath string, aux map[string]interface{}) error {
	p, ok := a.f.(parameterized)
	if !ok {
		return nil
	}

	if err := utils.LoadJSON(dirPath, paramsFile, p.Blank()); err != nil {
		return errors.Wrapf(err, "Couldn't load operator %q\n", a.TypeString())
	}

	return nil
}

// newSeq allocates a sequence of the given number of steps, each with 'size' values
func newSeq(steps, size int) [][]float64 {
	seq := make([][]float64, steps)
	for s := range seq {
		seq[s] = make([]float64, size)
	}

	return seq
}
