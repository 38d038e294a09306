package cli

import (
	"github.com/pkg/errors"
	"github.com/sharnoff/emojify/models"
	"github.com/spf13/cobra"
)

func (a *app) evaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate [csv]",
		Short: "Evaluate a saved model",
		Long:  `Evaluate a saved model on a CSV of sentences and labels, by default the test set.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Data.Test
			if len(args) == 1 {
				path = args[0]
			}

			c, err := a.loadClassifier()
			if err != nil {
				return err
			}

			examples, err := a.examples(path)
			if err != nil {
				return err
			}

			ev, err := c.Evaluate(examples)
			if err != nil {
				return err
			}

			a.reporter().Evaluation("Test", ev)
			return nil
		},
	}

	cmd.Flags().String("model", "", "directory of the saved model")
	cmd.Flags().String("test", "", "CSV of sentences and labels")
	return cmd
}

func (a *app) loadClassifier() (models.Classifier, error) {
	if a.cfg.Model.Dir == "" {
		return nil, errors.Errorf("No model given (set --model or EMOJIFY_MODEL_DIR)")
	}

	table, err := a.table()
	if err != nil {
		return nil, err
	}

	return models.Load(a.cfg.Model.Dir, table, a.log)
}
