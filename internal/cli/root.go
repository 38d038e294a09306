// Package cli holds the commands of the emojify program.
package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/pkg/errors"
	"github.com/sharnoff/emojify/config"
	"github.com/sharnoff/emojify/dataset"
	"github.com/sharnoff/emojify/glove"
	"github.com/sharnoff/emojify/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps the name of every flag that can also be set by the config file or the
// environment to its key
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"colours":       "colours",
	"train":         "data.train",
	"test":          "data.test",
	"vectors":       "vectors.file",
	"store":         "vectors.store",
	"kind":          "model.kind",
	"model":         "model.dir",
	"epochs":        "model.epochs",
	"batch-size":    "model.batch_size",
	"learning-rate": "model.learning_rate",
	"lr-steps":      "model.lr_steps",
	"optimizer":     "model.optimizer",
	"shuffle":       "model.shuffle",
	"seed":          "model.seed",
	"status-every":  "model.status_every",
	"cost":          "model.cost",
	"hidden":        "model.hidden",
	"activation":    "model.activation",
	"max-len":       "model.max_len",
	"units":         "model.units",
	"dropout":       "model.dropout",
	"penalty":       "model.penalty",
}

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config

	log       *slog.Logger
	newLogger func(level string) *slog.Logger

	in  io.Reader
	out io.Writer
}

// NewRootCommand returns the emojify command with all of its subcommands. Results are written to
// out and interactive input is read from in.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	return newApp(in, out).command()
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{
		v:         config.New(),
		newLogger: logs.GetLoggerFromString,
		in:        in,
		out:       out,
	}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "emojify",
		Short: "Suggest an emoji for short sentences",
		Long: `emojify classifies short English sentences as one of five emoji, using pre-trained GloVe
word vectors. Two models are available: "average", which classifies the mean of a sentence's
word vectors, and "sequence", which runs two stacked LSTMs over the sentence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.SetIn(a.in)
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.String("log-level", "", "log level: DEBUG, INFO, WARN or ERROR (or set EMOJIFY_LOG_LEVEL)")
	flags.Bool("colours", true, "colour the output")
	flags.String("vectors", "", "GloVe text file of word vectors (or set EMOJIFY_VECTORS_FILE)")
	flags.String("store", "", "vector store written by import-vectors; used instead of --vectors if set")

	root.AddCommand(
		a.trainCommand(),
		a.evaluateCommand(),
		a.predictCommand(),
		a.importVectorsCommand(),
		a.similarCommand(),
	)

	return root
}

// Execute runs the emojify command with the arguments of the process
func Execute() error {
	return NewRootCommand(os.Stdin, os.Stdout).Execute()
}

// setup binds the flags of the command that is about to run and loads the configuration
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = a.v.BindPFlag(key, f)
		}
	})

	if bindErr != nil {
		return errors.Wrapf(bindErr, "Failed to bind flags\n")
	} else if err := config.LoadEnv(); err != nil {
		return err
	}

	var err error
	if a.cfg, err = config.Load(a.v, a.cfgFile); err != nil {
		return err
	}

	a.log = a.newLogger(a.cfg.LogLevel)
	a.log.Debug("config loaded", "file", a.cfgFile, "kind", a.cfg.Model.Kind)
	return nil
}

func (a *app) reporter() *report.Reporter {
	return report.New(a.out, a.cfg.Colours)
}

// table reads the word vectors, from the store if one is configured
func (a *app) table() (*glove.Table, error) {
	start := time.Now()

	var t *glove.Table
	var err error
	if a.cfg.Vectors.Store != "" {
		t, err = glove.Load(a.cfg.Vectors.Store)
	} else {
		t, err = glove.ReadFile(a.cfg.Vectors.File)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read word vectors\n")
	}

	a.log.Info("word vectors loaded", "words", t.Len(), "dim", t.Dim(), "elapsed", time.Since(start))
	return t, nil
}

func (a *app) examples(path string) ([]dataset.Example, error) {
	ex, err := dataset.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read examples\n")
	}

	a.log.Debug("examples loaded", "file", path, "count", len(ex))
	return ex, nil
}
