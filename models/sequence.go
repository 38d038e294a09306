package models

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sharnoff/emojify"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/operators"
	"github.com/sharnoff/emojify/glove"
)

// SequenceOptions configures a recurrent Classifier
type SequenceOptions struct {
	TrainOptions

	// number of units in each LSTM
	Units int `json:"units"`

	// fraction of values dropped after each LSTM while training
	Dropout float64 `json:"dropout"`
}

// DefaultSequenceOptions returns the usual settings for NewSequence: two layers of 128 units with
// 50% dropout, trained with Adam for 50 epochs in shuffled batches of 32.
func DefaultSequenceOptions() SequenceOptions {
	return SequenceOptions{
		TrainOptions: TrainOptions{
			Epochs:       50,
			BatchSize:    32,
			LearningRate: 0.001,
			Optimizer:    "adam",
			Shuffle:      true,
			Seed:         1,
			StatusEvery:  1,
			Cost:         "cross-entropy",
		},
		Units:   128,
		Dropout: 0.5,
	}
}

func (o SequenceOptions) validate() error {
	if o.Units < 1 {
		return errors.Errorf("Number of units must be >= 1 (%d)", o.Units)
	} else if o.Dropout < 0 || o.Dropout >= 1 {
		return errors.Errorf("Dropout rate must be in [0, 1) (%v)", o.Dropout)
	}

	return nil
}

// NewSequence returns a Classifier that runs two stacked LSTMs over the words of a sentence,
// padded to maxLen, and classifies the final hidden state. The word vectors are not trained.
//
// Sentences with more than maxLen words can't be classified. If log is nil, nothing is logged.
func NewSequence(table *glove.Table, maxLen int, opts SequenceOptions, log *slog.Logger) (Classifier, error) {
	if maxLen < 1 {
		return nil, errors.Errorf("Can't create sequence classifier, maximum length must be >= 1 (%d)", maxLen)
	} else if err := opts.validate(); err != nil {
		return nil, errors.Wrapf(err, "Can't create sequence classifier, invalid options\n")
	}

	c, err := newClassifier(KindSequence, uuid.New().String(), table, maxLen, opts.TrainOptions, log)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't create sequence classifier\n")
	}

	c.net = new(bs.Network)
	c.net.AddInput(1)
	c.net.Add("embedding", operators.Embedding(table.Dim(), table.Embeddings()))
	c.net.Add("lstm-1", operators.LSTM(opts.Units).ReturnSequences())
	c.net.Add("dropout-1", operators.Dropout(opts.Dropout))
	c.net.Add("lstm-2", operators.LSTM(opts.Units))
	c.net.Add("dropout-2", operators.Dropout(opts.Dropout))
	c.net.Add("dense", operators.Dense(emojify.NumLabels))
	c.net.Add("softmax", operators.Softmax())

	if err = c.finalize(); err != nil {
		return nil, errors.Wrapf(err, "Can't create sequence classifier\n")
	}

	return c, nil
}
