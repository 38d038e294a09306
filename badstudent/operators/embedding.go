package operators

import (
	"math"

	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/utils"
)

// AuxEmbeddings is the key of the auxiliary value given to badstudent.Load that holds the rows
// of a frozen Embedding, flattened into a []float64
const AuxEmbeddings string = "embeddings"

type embedding struct {
	Rows, Dim int
	Train     bool

	// only saved if Train is true
	Ws []float64 `json:"Weights,omitempty"`

	grads []float64
}

// Embedding returns an Operator that maps indexes to rows of a matrix, given as consecutive rows of
// length dim. It expects an input of size 1, where each step holds an index as a float64. Indexes
// are usually assigned so that row 0 is all zeros, for padding.
//
// The rows are frozen unless Trainable is called. Frozen rows are used without copying and are
// not saved with the Network; they must be given to badstudent.Load under AuxEmbeddings.
func Embedding(dim int, rows []float64) *embedding {
	e := &embedding{Dim: dim, Ws: rows}
	if dim > 0 {
		e.Rows = len(rows) / dim
	}

	return e
}

// Trainable makes the rows of the Embedding weights, which will be adjusted during training. The
// rows are copied first.
func (e *embedding) Trainable() *embedding {
	e.Train = true
	e.Ws = append([]float64(nil), e.Ws...)
	return e
}

func (e *embedding) TypeString() string {
	return "embedding"
}

func (e *embedding) OutputSize(l *bs.Layer) (int, error) {
	if l.InputSize() != 1 {
		return 0, errors.Errorf("Input must have size 1 (%d)", l.InputSize())
	} else if e.Rows < 1 || e.Dim < 1 {
		return 0, errors.Errorf("Embedding matrix must be non-empty (%d × %d)", e.Rows, e.Dim)
	} else if len(e.Ws) != e.Rows*e.Dim {
		return 0, errors.Errorf("Embedding matrix of %d values can't be split into rows of %d", len(e.Ws), e.Dim)
	}

	return e.Dim, nil
}

func (e *embedding) Init(l *bs.Layer) error {
	if e.Train {
		e.grads = make([]float64, len(e.Ws))
	}

	return nil
}

func (e *embedding) index(step []float64) (int, error) {
	idx := int(math.Round(step[0]))
	if idx < 0 || idx >= e.Rows {
		return 0, errors.Errorf("Index %d out of range [0, %d)", idx, e.Rows)
	}

	return idx, nil
}

func (e *embedding) Evaluate(l *bs.Layer, inputs [][]float64) ([][]float64, error) {
	values := newSeq(len(inputs), e.Dim)
	for s := range inputs {
		idx, err := e.index(inputs[s])
		if err != nil {
			return nil, errors.Wrapf(err, "Step %d\n", s)
		}

		copy(values[s], e.Ws[idx*e.Dim:(idx+1)*e.Dim])
	}

	return values, nil
}

// InputDeltas gives nothing back; indexes have no derivative
func (e *embedding) InputDeltas(l *bs.Layer) ([][]float64, error) {
	if !e.Train {
		return nil, nil
	}

	for s, in := range l.InputValues() {
		idx, err := e.index(in)
		if err != nil {
			return nil, err
		}

		row := e.grads[idx*e.Dim : (idx+1)*e.Dim]
		for i, d := range l.Deltas()[s] {
			row[i] += d
		}
	}

	return nil, nil
}

func (e *embedding) CanBeAdjusted(l *bs.Layer) bool {
	return e.Train
}

func (e *embedding) Weights(l *bs.Layer) []float64 {
	return e.Ws
}

func (e *embedding) Grad(l *bs.Layer, index int) float64 {
	return e.grads[index]
}

func (e *embedding) ClearGrads(l *bs.Layer) {
	for i := range e.grads {
		e.grads[i] = 0
	}
}

func (e *embedding) Save(l *bs.Layer, dirPath string) error {
	saved := *e
	if !e.Train {
		saved.Ws = nil
	}

	if err := utils.SaveJSON(dirPath, weightsFile, saved); err != nil {
		return errors.Wrapf(err, "Couldn't save operator\n")
	}

	return nil
}

func (e *embedding) Load(l *bs.Layer, dirPath string, aux map[string]interface{}) error {
	if err := utils.LoadJSON(dirPath, weightsFile, e); err != nil {
		return errors.Wrapf(err, "Couldn't load operator\n")
	}

	if !e.Train {
		rows, ok := aux[AuxEmbeddings].([]float64)
		if !ok {
			return errors.Errorf("Couldn't load operator, frozen embeddings must be given as aux[%q]", AuxEmbeddings)
		} else if len(rows) != e.Rows*e.Dim {
			return errors.Wrapf(bs.SizeMismatchError{Expected: e.Rows * e.Dim, Given: len(rows), Name: "embedding values"}, "Couldn't load operator\n")
		}

		e.Ws = rows
	} else if len(e.Ws) != e.Rows*e.Dim {
		return errors.Wrapf(bs.SizeMismatchError{Expected: e.Rows * e.Dim, Given: len(e.Ws), Name: "weights"}, "Couldn't load operator\n")
	}

	e.grads = make([]float64, len(e.Ws))
	return nil
}
