// Package models provides the two emoji classifiers: Average, which feeds the mean of a sentence's
// word vectors through a single dense layer, and Sequence, which runs two stacked LSTMs over the
// padded sequence of the sentence's words.
package models

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sharnoff/emojify"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/costfuncs"
	"github.com/sharnoff/emojify/badstudent/hyperparams"
	"github.com/sharnoff/emojify/badstudent/optimizers"
	"github.com/sharnoff/emojify/dataset"
	"github.com/sharnoff/emojify/glove"
)

// Kind identifies the architecture of a Classifier
type Kind string

const (
	KindAverage  Kind = "average"
	KindSequence Kind = "sequence"
)

// Classifier maps sentences to emoji labels
type Classifier interface {
	Kind() Kind

	// RunID returns the identifier given to the Classifier when it was created. It is kept when
	// the Classifier is saved and loaded.
	RunID() string

	// Train fits the Classifier to the examples. If progress is not nil, it is called at the end
	// of every status interval (see TrainOptions.StatusEvery).
	Train(examples []dataset.Example, progress func(Progress)) error

	Evaluate(examples []dataset.Example) (Evaluation, error)

	Predict(sentence string) (Prediction, error)

	// Save writes the Classifier to dir, replacing anything already there. The word vectors are
	// not saved; they must be given to Load.
	Save(dir string) error
}

// TrainOptions are the settings shared by both kinds of Classifier
type TrainOptions struct {
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batch_size"`
	LearningRate float64 `json:"learning_rate"`

	// either "sgd" or "adam"
	Optimizer string `json:"optimizer"`

	// reorder the examples at the start of every epoch
	Shuffle bool  `json:"shuffle"`
	Seed    int64 `json:"seed"`

	// number of epochs between progress reports
	StatusEvery int `json:"status_every"`

	// changes to the learning rate, in any order. Epochs are counted over every call to Train.
	LRSteps []LRStep `json:"lr_steps,omitempty"`

	// one of "cross-entropy", "mse", "abs" or "huber". Empty is cross-entropy.
	Cost string `json:"cost"`

	// applied to every Layer with weights. May be nil.
	Penalty bs.Penalty `json:"-"`
}

// LRStep sets the learning rate from the start of an epoch onwards
type LRStep struct {
	Epoch int     `json:"epoch"`
	Rate  float64 `json:"rate"`
}

// learningRate returns the learning rate as a HyperParameter, for a training set of n examples
func (o TrainOptions) learningRate(n int) bs.HyperParameter {
	if len(o.LRSteps) == 0 {
		return hyperparams.Constant(o.LearningRate)
	}

	st := hyperparams.Step(o.LearningRate)
	for _, s := range o.LRSteps {
		st.Add(s.Epoch*n, s.Rate)
	}

	return st
}

func (o TrainOptions) validate() error {
	if o.Epochs < 0 {
		return errors.Errorf("Number of epochs must be >= 0 (%d)", o.Epochs)
	} else if o.BatchSize < 1 {
		return errors.Errorf("Batch size must be >= 1 (%d)", o.BatchSize)
	} else if o.LearningRate <= 0 {
		return errors.Errorf("Learning rate must be > 0 (%v)", o.LearningRate)
	} else if o.StatusEvery < 1 {
		return errors.Errorf("Status interval must be >= 1 epoch (%d)", o.StatusEvery)
	}

	for _, s := range o.LRSteps {
		if s.Epoch < 1 {
			return errors.Errorf("Learning rate steps must start at epoch >= 1 (%d)", s.Epoch)
		} else if s.Rate <= 0 {
			return errors.Errorf("Learning rate must be > 0 (%v at epoch %d)", s.Rate, s.Epoch)
		}
	}

	if _, err := costFunc(o.Cost); err != nil {
		return err
	}

	_, err := optimizer(o.Optimizer)
	return err
}

func costFunc(name string) (bs.CostFunction, error) {
	switch name {
	case "", "cross-entropy":
		return costfuncs.CrossEntropy(), nil
	case "mse":
		return costfuncs.MSE(), nil
	case "abs":
		return costfuncs.Abs(), nil
	case "huber":
		return costfuncs.Huber(1), nil
	default:
		return nil, errors.Errorf("Unknown cost function %q", name)
	}
}

func optimizer(name string) (func() bs.Optimizer, error) {
	switch name {
	case "sgd":
		return func() bs.Optimizer { return optimizers.SGD() }, nil
	case "adam":
		return func() bs.Optimizer { return optimizers.Adam() }, nil
	default:
		return nil, errors.Errorf("Unknown optimizer %q", name)
	}
}

// Progress is the average cost and accuracy over the training examples since the last report
type Progress struct {
	Epoch    int
	Cost     float64
	Accuracy float64
}

// Prediction is the output of a Classifier for a single sentence
type Prediction struct {
	Sentence string
	Label    emojify.Label

	// the probability of each label
	Probs []float64
}

// Outcome is a Prediction for an example whose label is known
type Outcome struct {
	Prediction
	Expected emojify.Label
}

// Correct returns whether the predicted label is the expected one
func (o Outcome) Correct() bool {
	return o.Label == o.Expected
}

// Evaluation is the result of running a Classifier over a set of examples
type Evaluation struct {
	Cost     float64
	Accuracy float64
	Outcomes []Outcome

	// Confusion[expected][predicted] counts the examples with each pair of labels
	Confusion [emojify.NumLabels][emojify.NumLabels]int
}

// Mislabeled returns the outcomes whose prediction was wrong
func (e Evaluation) Mislabeled() []Outcome {
	return lo.Filter(e.Outcomes, func(o Outcome, _ int) bool {
		return !o.Correct()
	})
}

// classifier implements both kinds; they differ in their network and in how sentences become
// inputs
type classifier struct {
	kind  Kind
	runID string

	net   *bs.Network
	table *glove.Table

	// only used by KindSequence
	maxLen int

	opts TrainOptions
	log  *slog.Logger
}

func newClassifier(kind Kind, runID string, table *glove.Table, maxLen int, opts TrainOptions, log *slog.Logger) (*classifier, error) {
	if table == nil {
		return nil, errors.Errorf("Vector table is nil")
	} else if err := opts.validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid options\n")
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &classifier{
		kind:   kind,
		runID:  runID,
		table:  table,
		maxLen: maxLen,
		opts:   opts,
		log:    log.With("run_id", runID, "model", string(kind)),
	}, nil
}

// finalize sets the training settings of the network and finalizes it
func (c *classifier) finalize() error {
	opt, err := optimizer(c.opts.Optimizer)
	if err != nil {
		return err
	}

	cf, err := costFunc(c.opts.Cost)
	if err != nil {
		return err
	}

	c.net.Seed(c.opts.Seed).
		DefaultOpt(opt).
		AddHP("learning-rate", hyperparams.Constant(c.opts.LearningRate))

	if c.opts.Penalty != nil {
		c.net.SetPenalty(c.opts.Penalty)
	}

	if err := c.net.Error(); err != nil {
		return errors.Wrapf(err, "Failed to build network\n")
	} else if err := c.net.Finalize(cf); err != nil {
		return errors.Wrapf(err, "Failed to finalize network\n")
	}

	return nil
}

func (c *classifier) Kind() Kind {
	return c.kind
}

func (c *classifier) RunID() string {
	return c.runID
}

// Network returns the underlying network, for inspection
func (c *classifier) Network() *bs.Network {
	return c.net
}

// input converts a sentence to the input sequence of the network: one index per step
func (c *classifier) input(sentence string) ([][]float64, error) {
	var idxs []int
	var err error
	if c.kind == KindSequence {
		idxs, err = dataset.Indices(sentence, c.table, c.maxLen)
	} else {
		idxs, err = dataset.Sequence(sentence, c.table)
	}

	if err != nil {
		return nil, err
	}

	return lo.Map(idxs, func(i int, _ int) []float64 {
		return []float64{float64(i)}
	}), nil
}

func (c *classifier) data(examples []dataset.Example) ([]bs.Datum, error) {
	data := make([]bs.Datum, len(examples))
	for i, e := range examples {
		in, err := c.input(e.Sentence)
		if err != nil {
			return nil, errors.Wrapf(err, "Example %d (%q)\n", i, e.Sentence)
		} else if !e.Label.Valid() {
			return nil, errors.Wrapf(emojify.ErrLabelRange, "Example %d (%q)\n", i, e.Sentence)
		}

		data[i] = bs.Datum{Inputs: in, Outputs: emojify.OneHot(e.Label)}
	}

	return data, nil
}

func (c *classifier) Train(examples []dataset.Example, progress func(Progress)) error {
	data, err := c.data(examples)
	if err != nil {
		return errors.Wrapf(err, "Can't train\n")
	}

	supplier, err := dataset.NewSupplier(data, c.opts.BatchSize)
	if err != nil {
		return errors.Wrapf(err, "Can't train\n")
	}

	if c.opts.Shuffle {
		supplier.Shuffle(c.opts.Seed)
	}

	n := len(data)
	c.net.AddHP("learning-rate", c.opts.learningRate(n))

	c.log.Info("training", "examples", n, "epochs", c.opts.Epochs, "batch_size", c.opts.BatchSize)

	update := func(r bs.Result) {
		p := Progress{Epoch: r.Iteration / n, Cost: r.Cost, Accuracy: r.Correct}
		c.log.Info("epoch finished", "epoch", p.Epoch, "cost", p.Cost, "accuracy", p.Accuracy)

		if progress != nil {
			progress(p)
		}
	}

	err = c.net.Train(bs.TrainArgs{
		TrainData:    supplier,
		SendStatus:   bs.Every(n * c.opts.StatusEvery),
		RunCondition: bs.TrainUntil(n * c.opts.Epochs),
		IsCorrect:    bs.CorrectHighest,
		Update:       update,
	})
	if err != nil {
		return errors.Wrapf(err, "Training failed\n")
	}

	return nil
}

func (c *classifier) predict(sentence string) (Prediction, error) {
	in, err := c.input(sentence)
	if err != nil {
		return Prediction{}, err
	}

	probs, err := c.net.GetOutputs(in)
	if err != nil {
		return Prediction{}, errors.Wrapf(err, "Failed to evaluate network\n")
	}

	return Prediction{Sentence: sentence, Label: emojify.LabelOf(probs), Probs: probs}, nil
}

func (c *classifier) Predict(sentence string) (Prediction, error) {
	p, err := c.predict(sentence)
	if err != nil {
		return Prediction{}, errors.Wrapf(err, "Can't predict %q\n", sentence)
	}

	return p, nil
}

func (c *classifier) Evaluate(examples []dataset.Example) (Evaluation, error) {
	var ev Evaluation
	if len(examples) == 0 {
		return ev, errors.Errorf("No examples to evaluate")
	}

	cf := c.net.CostFunction()
	correct := 0

	for i, e := range examples {
		p, err := c.predict(e.Sentence)
		if err != nil {
			return Evaluation{}, errors.Wrapf(err, "Can't evaluate example %d (%q)\n", i, e.Sentence)
		} else if !e.Label.Valid() {
			return Evaluation{}, errors.Wrapf(emojify.ErrLabelRange, "Can't evaluate example %d (%q)\n", i, e.Sentence)
		}

		o := Outcome{Prediction: p, Expected: e.Label}
		ev.Outcomes = append(ev.Outcomes, o)
		ev.Cost += cf.Cost(p.Probs, emojify.OneHot(e.Label))
		ev.Confusion[e.Label][p.Label]++
		if o.Correct() {
			correct++
		}
	}

	ev.Cost /= float64(len(examples))
	ev.Accuracy = float64(correct) / float64(len(examples))

	c.log.Info("evaluated", "examples", len(examples), "cost", ev.Cost, "accuracy", ev.Accuracy)
	return ev, nil
}
