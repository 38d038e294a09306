package models

import (
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sharnoff/emojify"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/initializers"
	"github.com/sharnoff/emojify/badstudent/operators"
	"github.com/sharnoff/emojify/glove"
)

// AverageOptions configures an average-of-vectors Classifier
type AverageOptions struct {
	TrainOptions

	// units in a layer between the average and the output, or 0 for none
	Hidden int `json:"hidden"`

	// activation of the hidden layer: "relu", "leaky-relu", "softplus" or "tanh"
	Activation string `json:"activation"`
}

func (o AverageOptions) validate() error {
	if o.Hidden < 0 {
		return errors.Errorf("Hidden units must be >= 0 (%d)", o.Hidden)
	} else if o.Hidden == 0 {
		return nil
	}

	_, err := activation(o.Activation)
	return err
}

func activation(name string) (bs.Operator, error) {
	switch name {
	case "relu":
		return operators.ReLU(), nil
	case "leaky-relu":
		return operators.LeakyReLU(0.01), nil
	case "softplus":
		return operators.Softplus(), nil
	case "tanh":
		return operators.Tanh(), nil
	default:
		return nil, errors.Errorf("Unknown activation %q", name)
	}
}

// DefaultAverageOptions returns the usual settings for NewAverage: plain gradient descent with a
// learning rate of 0.01 for 400 epochs, updating after every sentence.
func DefaultAverageOptions() AverageOptions {
	return AverageOptions{
		TrainOptions: TrainOptions{
			Epochs:       400,
			BatchSize:    1,
			LearningRate: 0.01,
			Optimizer:    "sgd",
			Shuffle:      false,
			Seed:         1,
			StatusEvery:  100,
			Cost:         "cross-entropy",
		},
		Activation: "relu",
	}
}

// NewAverage returns a Classifier that averages the vectors of the words in a sentence and passes
// the result through a single softmax layer, or through a hidden layer first if opts.Hidden is
// set. The word vectors are not trained.
//
// If log is nil, nothing is logged.
func NewAverage(table *glove.Table, opts AverageOptions, log *slog.Logger) (Classifier, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Wrapf(err, "Can't create average classifier, invalid options\n")
	}

	c, err := newClassifier(KindAverage, uuid.New().String(), table, 0, opts.TrainOptions, log)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't create average classifier\n")
	}

	c.net = new(bs.Network)
	c.net.AddInput(1)
	c.net.Add("embedding", operators.Embedding(table.Dim(), table.Embeddings()))
	c.net.Add("average", operators.Mean())

	dim := table.Dim()
	if opts.Hidden > 0 {
		act, _ := activation(opts.Activation)
		c.net.Add("hidden", operators.Dense(opts.Hidden)).SetInitializer(initializers.He())
		c.net.Add(opts.Activation, act)
		dim = opts.Hidden
	}

	c.net.Add("dense", operators.Dense(emojify.NumLabels)).
		SetInitializer(averageInit(dim))
	c.net.Add("softmax", operators.Softmax())

	if err = c.finalize(); err != nil {
		return nil, errors.Wrapf(err, "Can't create average classifier\n")
	}

	return c, nil
}

// averageInit draws the dense weights from N(0, 1/dim)
func averageInit(dim int) bs.Initializer {
	return initializers.Random(initializers.Normal().SD(1 / math.Sqrt(float64(dim))))
}
