package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/pkg/errors"
	"github.com/sharnoff/emojify/models"
	"github.com/sharnoff/emojify/report"
	"github.com/spf13/cobra"
)

func (a *app) predictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict [sentence...]",
		Short: "Suggest an emoji for each sentence",
		Long: `Print each sentence with the emoji a saved model suggests for it. With no arguments,
sentences are read one per line until the input ends or "q" is entered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadClassifier()
			if err != nil {
				return err
			}

			r := a.reporter()
			if len(args) == 0 {
				return a.interactive(c, r)
			}

			for _, s := range args {
				p, err := a.predict(c, s)
				if err != nil {
					return err
				}

				r.Prediction(p)
			}

			return nil
		},
	}

	cmd.Flags().String("model", "", "directory of the saved model")
	return cmd
}

func (a *app) predict(c models.Classifier, sentence string) (models.Prediction, error) {
	if info := whatlanggo.Detect(sentence); info.IsReliable() && info.Lang != whatlanggo.Eng {
		a.log.Warn("sentence does not look like English", "lang", info.Lang.Iso6391(), "sentence", sentence)
	}

	return c.Predict(sentence)
}

// interactive predicts a sentence for every line of input. Errors from predicting are printed
// rather than returned.
func (a *app) interactive(c models.Classifier, r *report.Reporter) error {
	sc := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(a.out)
			if err := sc.Err(); err != nil {
				return errors.Wrapf(err, "Failed to read input\n")
			}

			return nil
		}

		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "q", "quit":
			return nil
		}

		p, err := a.predict(c, line)
		if err != nil {
			fmt.Fprintf(a.out, "%v\n", errors.Cause(err))
			continue
		}

		r.Prediction(p)
	}
}
