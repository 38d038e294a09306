package operators

import (
	"math"

	bs "github.com/sharnoff/emojify/badstudent"
)

type softmax struct{}

// Softmax returns the softmax function as a badstudent.Operator. It is applied separately to each
// step of its input.
func Softmax() softmax {
	return softmax{}
}

func (t softmax) TypeString() string {
	return "softmax"
}

func (t softmax) OutputSize(l *bs.Layer) (int, error) {
	return l.InputSize(), nil
}

func (t softmax) Init(l *bs.Layer) error {
	return nil
}

func (t softmax) Evaluate(l *bs.Layer, inputs [][]float64) ([][]float64, error) {
	values := newSeq(len(inputs), l.Size())
	for s, in := range inputs {
		// shifting by the max keeps math.Exp from overflowing
		max := math.Inf(-1)
		for _, v := range in {
			max = math.Max(max, v)
		}

		var sum float64
		for i, v := range in {
			values[s][i] = math.Exp(v - max)
			sum += values[s][i]
		}

		for i := range values[s] {
			values[s][i] /= sum
		}
	}

	return values, nil
}

// d(out_j)/d(in_i) = out_j * (δij - out_i), so each input delta is
// out_i * (delta_i - Σ_j delta_j * out_j)
func (t softmax) InputDeltas(l *bs.Layer) ([][]float64, error) {
	values, deltas := l.Values(), l.Deltas()

	ds := newSeq(len(values), l.Size())
	for s := range values {
		var dot float64
		for j := range values[s] {
			dot += deltas[s][j] * values[s][j]
		}

		for i := range values[s] {
			ds[s][i] = values[s][i] * (deltas[s][i] - dot)
		}
	}

	return ds, nil
}

func (t softmax) CanBeAdjusted(l *bs.Layer) bool {
	return false
}

func (t softmax) Save(l *bs.Layer, dirPath string) error {
	return nil
}

func (t softmax) Load(l *bs.Layer, dirPath string, aux map[string]interface{}) error {
	return nil
}
