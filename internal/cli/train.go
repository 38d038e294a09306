package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sharnoff/emojify"
	"github.com/sharnoff/emojify/dataset"
	"github.com/sharnoff/emojify/glove"
	"github.com/sharnoff/emojify/models"
	"github.com/spf13/cobra"
)

func (a *app) trainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model and evaluate it on the test set",
		Long: `Train a model on the training set, then print its accuracy on both sets along with the
predictions, mislabeled sentences and confusion matrix of the test set. If --model is given, the
trained model is saved there.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.train()
		},
	}

	flags := cmd.Flags()
	flags.String("train", "", "CSV of training sentences and labels")
	flags.String("test", "", "CSV of test sentences and labels")
	flags.String("kind", "", "model to train: average or sequence")
	flags.String("model", "", "directory to save the trained model to")
	flags.Int("epochs", 0, "number of passes over the training set")
	flags.Int("batch-size", 0, "number of sentences per update")
	flags.Float64("learning-rate", 0, "learning rate of the optimizer")
	flags.String("lr-steps", "", "later learning rates, as epoch:rate pairs separated by commas")
	flags.String("optimizer", "", "sgd or adam")
	flags.Bool("shuffle", false, "reorder the training set every epoch")
	flags.Int64("seed", 0, "seed for weights, dropout and shuffling")
	flags.Int("status-every", 0, "epochs between progress logs")
	flags.String("cost", "", "cost function: cross-entropy, mse, abs or huber")
	flags.Int("hidden", 0, "units in a hidden layer (average only, 0 for none)")
	flags.String("activation", "", "activation of the hidden layer: relu, leaky-relu, softplus or tanh")
	flags.Int("max-len", 0, "maximum number of words in a sentence (sequence only, 0 for the longest)")
	flags.Int("units", 0, "units in each LSTM (sequence only)")
	flags.Float64("dropout", 0, "dropout rate after each LSTM (sequence only)")
	flags.String("penalty", "", "weight penalty: none, l1, l2 or elastic-net")

	return cmd
}

func (a *app) train() error {
	train, err := a.examples(a.cfg.Data.Train)
	if err != nil {
		return err
	}

	test, err := a.examples(a.cfg.Data.Test)
	if err != nil {
		return err
	}

	table, err := a.table()
	if err != nil {
		return err
	}

	all := append(append([]dataset.Example(nil), train...), test...)
	if missing := dataset.Missing(all, table); len(missing) != 0 {
		a.log.Error("words without vectors", "words", missing)
		return errors.Wrapf(emojify.UnknownWordError{Word: missing[0]}, "%d words have no vector\n", len(missing))
	}

	c, err := a.newClassifier(table, train, test)
	if err != nil {
		return err
	}

	a.log.Info("model created", "run_id", c.RunID(), "kind", string(c.Kind()))
	if err = c.Train(train, nil); err != nil {
		return err
	}

	trainEv, err := c.Evaluate(train)
	if err != nil {
		return errors.Wrapf(err, "Failed to evaluate training set\n")
	}

	testEv, err := c.Evaluate(test)
	if err != nil {
		return errors.Wrapf(err, "Failed to evaluate test set\n")
	}

	r := a.reporter()
	r.Evaluation("Test", testEv)
	r.Summary("Train", trainEv)

	if a.cfg.Model.Dir != "" {
		if err = c.Save(a.cfg.Model.Dir); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Saved model to %s\n", a.cfg.Model.Dir)
	}

	return nil
}

func (a *app) newClassifier(table *glove.Table, train, test []dataset.Example) (models.Classifier, error) {
	m := a.cfg.Model
	if models.Kind(m.Kind) == models.KindAverage {
		return models.NewAverage(table, m.AverageOptions(), a.log)
	}

	maxLen := m.MaxLen
	if maxLen == 0 {
		maxLen = lo.Max([]int{dataset.MaxLen(train), dataset.MaxLen(test)})
		a.log.Debug("maximum sentence length", "words", maxLen)
	}

	return models.NewSequence(table, maxLen, m.SequenceOptions(), a.log)
}
