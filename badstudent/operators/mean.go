package operators

import (
	bs "github.com/sharnoff/emojify/badstudent"
)

type mean struct{}

// Mean returns an Operator that averages its input over every step, producing a single step. With
// word vectors as input, this gives the average vector of a sentence.
func Mean() mean {
	return mean{}
}

func (t mean) TypeString() string {
	return "mean"
}

func (t mean) OutputSize(l *bs.Layer) (int, error) {
	return l.InputSize(), nil
}

func (t mean) Init(l *bs.Layer) error {
	return nil
}

func (t mean) Evaluate(l *bs.Layer, inputs [][]float64) ([][]float64, error) {
	if len(inputs) == 0 {
		return nil, bs.ErrNoSteps
	}

	avg := make([]float64, l.Size())
	for _, in := range inputs {
		for i, v := range in {
			avg[i] += v
		}
	}

	for i := range avg {
		avg[i] /= float64(len(inputs))
	}

	return [][]float64{avg}, nil
}

func (t mean) InputDeltas(l *bs.Layer) ([][]float64, error) {
	steps := len(l.InputValues())
	d := l.Deltas()[0]

	ds := newSeq(steps, l.Size())
	for s := range ds {
		for i := range ds[s] {
			ds[s][i] = d[i] / float64(steps)
		}
	}

	return ds, nil
}

func (t mean) CanBeAdjusted(l *bs.Layer) bool {
	return false
}

func (t mean) Save(l *bs.Layer, dirPath string) error {
	return nil
}

func (t mean) Load(l *bs.Layer, dirPath string, aux map[string]interface{}) error {
	return nil
}
