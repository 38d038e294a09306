package operators

import (
	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/utils"
)

type dropout struct {
	Rate float64

	// the scale of each value for the most recent training sample. nil outside of training.
	mask [][]float64
}

// Dropout returns an Operator that, during training, sets each value to zero with probability
// 'rate' and scales the rest by 1/(1-rate). Outside of training it passes its input through.
func Dropout(rate float64) *dropout {
	return &dropout{Rate: rate}
}

func (t *dropout) TypeString() string {
	return "dropout"
}

func (t *dropout) OutputSize(l *bs.Layer) (int, error) {
	if t.Rate < 0 || t.Rate >= 1 {
		return 0, errors.Errorf("Rate must be in [0, 1) (%v)", t.Rate)
	}

	return l.InputSize(), nil
}

func (t *dropout) Init(l *bs.Layer) error {
	return nil
}

func (t *dropout) Evaluate(l *bs.Layer, inputs [][]float64) ([][]float64, error) {
	values := newSeq(len(inputs), l.Size())

	if !l.Training() || t.Rate == 0 {
		t.mask = nil
		for s := range inputs {
			copy(values[s], inputs[s])
		}

		return values, nil
	}

	r := l.Rand()
	scale := 1 / (1 - t.Rate)

	t.mask = newSeq(len(inputs), l.Size())
	for s := range inputs {
		for i := range inputs[s] {
			if r.Float64() >= t.Rate {
				t.mask[s][i] = scale
			}

			values[s][i] = inputs[s][i] * t.mask[s][i]
		}
	}

	return values, nil
}

func (t *dropout) InputDeltas(l *bs.Layer) ([][]float64, error) {
	deltas := l.Deltas()

	ds := newSeq(len(deltas), l.Size())
	for s := range deltas {
		for i := range deltas[s] {
			if t.mask == nil {
				ds[s][i] = deltas[s][i]
			} else {
				ds[s][i] = deltas[s][i] * t.mask[s][i]
			}
		}
	}

	return ds, nil
}

func (t *dropout) CanBeAdjusted(l *bs.Layer) bool {
	return false
}

func (t *dropout) Save(l *bs.Layer, dirPath string) error {
	return utils.SaveJSON(dirPath, paramsFile, t)
}

func (t *dropout) Load(l *bs.Layer, dirPath string, aux map[string]interface{}) error {
	return utils.LoadJSON(dirPath, paramsFile, t)
}
