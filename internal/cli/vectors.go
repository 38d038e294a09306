package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sharnoff/emojify"
	"github.com/sharnoff/emojify/glove"
	"github.com/spf13/cobra"
)

func (a *app) importVectorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-vectors",
		Short: "Copy word vectors from a GloVe file into a store",
		Long: `Read the GloVe file given by --vectors and write its vectors to the store given by --store,
which later commands can read from much faster.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Vectors.Store == "" {
				return errors.Errorf("No store given (set --store or EMOJIFY_VECTORS_STORE)")
			}

			t, err := glove.ReadFile(a.cfg.Vectors.File)
			if err != nil {
				return err
			}

			s, err := glove.OpenStore(a.cfg.Vectors.Store)
			if err != nil {
				return err
			}

			if err = s.Import(t); err != nil {
				s.Close()
				return err
			} else if err = s.Close(); err != nil {
				return errors.Wrapf(err, "Failed to close store\n")
			}

			a.log.Info("vectors imported", "words", t.Len(), "dim", t.Dim(), "store", a.cfg.Vectors.Store)
			fmt.Fprintf(a.out, "Imported %d words of dimension %d into %s\n", t.Len(), t.Dim(), a.cfg.Vectors.Store)
			return nil
		},
	}
}

func (a *app) similarCommand() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "similar <word>",
		Short: "List the words with the most similar vectors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}

			words := emojify.Tokenize(args[0])
			if len(words) != 1 {
				return errors.Errorf("Expected a single word, got %q", args[0])
			}

			ns, err := t.Nearest(words[0], n)
			if err != nil {
				return err
			}

			a.reporter().Neighbors(words[0], ns)
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "number", "n", 10, "number of words to list")
	return cmd
}
