// Package config reads the settings of the emojify command from, in order of precedence: command
// line flags, EMOJIFY_ environment variables, an optional YAML file, and defaults. A .env file is
// loaded into the environment first, if present.
package config

import (
	"io/fs"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/penalties"
	"github.com/sharnoff/emojify/models"
	"github.com/spf13/viper"
)

const envPrefix string = "EMOJIFY"

var validate = validator.New()

type Config struct {
	LogLevel string `mapstructure:"log_level" validate:"oneof=DEBUG INFO WARN ERROR"`
	Colours  bool   `mapstructure:"colours"`

	Data    DataConfig    `mapstructure:"data"`
	Vectors VectorsConfig `mapstructure:"vectors"`
	Model   ModelConfig   `mapstructure:"model"`
}

type DataConfig struct {
	Train string `mapstructure:"train"`
	Test  string `mapstructure:"test"`
}

// VectorsConfig locates the word vectors. If Store is set, the vectors are read from a store
// written by the import-vectors command instead of from File.
type VectorsConfig struct {
	File  string `mapstructure:"file"`
	Store string `mapstructure:"store"`
}

type ModelConfig struct {
	Kind string `mapstructure:"kind" validate:"oneof=average sequence"`

	// where the model is saved to or loaded from
	Dir string `mapstructure:"dir"`

	Epochs       int     `mapstructure:"epochs" validate:"gt=0"`
	BatchSize    int     `mapstructure:"batch_size" validate:"gt=0"`
	LearningRate float64 `mapstructure:"learning_rate" validate:"gt=0,lt=1"`
	Optimizer    string  `mapstructure:"optimizer" validate:"oneof=sgd adam"`
	Shuffle      bool    `mapstructure:"shuffle"`
	Seed         int64   `mapstructure:"seed"`
	StatusEvery  int     `mapstructure:"status_every" validate:"gt=0"`
	Cost         string  `mapstructure:"cost" validate:"oneof=cross-entropy mse abs huber"`

	// learning rate changes, as "epoch:rate" pairs separated by commas, e.g. "100:0.005,200:0.001"
	LRSteps  string          `mapstructure:"lr_steps"`
	Schedule []models.LRStep `mapstructure:"-"`

	// average only
	Hidden     int    `mapstructure:"hidden" validate:"gte=0"`
	Activation string `mapstructure:"activation" validate:"oneof=relu leaky-relu softplus tanh"`

	// sequence only. A MaxLen of 0 uses the longest training sentence.
	MaxLen  int     `mapstructure:"max_len" validate:"gte=0"`
	Units   int     `mapstructure:"units" validate:"gt=0"`
	Dropout float64 `mapstructure:"dropout" validate:"gte=0,lt=1"`

	Penalty       string  `mapstructure:"penalty" validate:"oneof=none l1 l2 elastic-net"`
	PenaltyLambda float64 `mapstructure:"penalty_lambda" validate:"gte=0"`

	// fraction of the elastic net that is L1
	PenaltyAlpha float64 `mapstructure:"penalty_alpha" validate:"gte=0,lte=1"`
}

// New returns a viper instance that reads EMOJIFY_ environment variables, with the defaults that
// do not depend on the kind of model.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "INFO")
	v.SetDefault("colours", true)
	v.SetDefault("data.train", "data/train_emoji.csv")
	v.SetDefault("data.test", "data/tesss.csv")
	v.SetDefault("vectors.file", "data/glove.6B.50d.txt")
	v.SetDefault("vectors.store", "")
	v.SetDefault("model.kind", string(models.KindSequence))
	v.SetDefault("model.dir", "")
	v.SetDefault("model.max_len", 0)
	v.SetDefault("model.lr_steps", "")
	v.SetDefault("model.penalty", "none")
	v.SetDefault("model.penalty_lambda", 0.0)
	v.SetDefault("model.penalty_alpha", 0.5)

	return v
}

// LoadEnv loads the given .env files (by default, ".env" in the working directory) into the
// environment. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "Failed to load %q\n", f)
		}
	}

	return nil
}

// Load reads the configuration from v and, if file is not empty, from the YAML file. The training
// defaults are those of the configured kind of model.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "Failed to read config file %q\n", file)
		}
	}

	setModelDefaults(v, models.Kind(v.GetString("model.kind")))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrapf(err, "Failed to decode config\n")
	}

	c.LogLevel = strings.ToUpper(c.LogLevel)
	if err := validate.Struct(c); err != nil {
		return Config{}, errors.Wrapf(err, "Invalid config\n")
	}

	sched, err := ParseLRSteps(c.Model.LRSteps)
	if err != nil {
		return Config{}, errors.Wrapf(err, "Invalid config\n")
	}
	c.Model.Schedule = sched

	return c, nil
}

func setModelDefaults(v *viper.Viper, kind models.Kind) {
	seq := models.DefaultSequenceOptions()
	avg := models.DefaultAverageOptions()
	opts := seq.TrainOptions
	if kind == models.KindAverage {
		opts = avg.TrainOptions
	}

	v.SetDefault("model.epochs", opts.Epochs)
	v.SetDefault("model.batch_size", opts.BatchSize)
	v.SetDefault("model.learning_rate", opts.LearningRate)
	v.SetDefault("model.optimizer", opts.Optimizer)
	v.SetDefault("model.shuffle", opts.Shuffle)
	v.SetDefault("model.seed", opts.Seed)
	v.SetDefault("model.status_every", opts.StatusEvery)
	v.SetDefault("model.cost", opts.Cost)
	v.SetDefault("model.hidden", avg.Hidden)
	v.SetDefault("model.activation", avg.Activation)
	v.SetDefault("model.units", seq.Units)
	v.SetDefault("model.dropout", seq.Dropout)
}

// ParseLRSteps reads a learning rate schedule of the form "epoch:rate,epoch:rate". An empty
// string gives no steps.
func ParseLRSteps(s string) ([]models.LRStep, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var steps []models.LRStep
	for _, pair := range strings.Split(s, ",") {
		epoch, rate, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return nil, errors.Errorf("Learning rate step %q is not of the form epoch:rate", pair)
		}

		e, err := strconv.Atoi(strings.TrimSpace(epoch))
		if err != nil {
			return nil, errors.Wrapf(err, "Bad epoch in learning rate step %q\n", pair)
		}

		r, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad rate in learning rate step %q\n", pair)
		}

		if e < 1 || r <= 0 {
			return nil, errors.Errorf("Learning rate step %q must have epoch >= 1 and rate > 0", pair)
		}

		steps = append(steps, models.LRStep{Epoch: e, Rate: r})
	}

	return steps, nil
}

// NewPenalty returns the configured penalty, or nil if there is none
func (m ModelConfig) NewPenalty() bs.Penalty {
	switch m.Penalty {
	case "l1":
		return penalties.L1(m.PenaltyLambda)
	case "l2":
		return penalties.L2(m.PenaltyLambda)
	case "elastic-net":
		return penalties.ElasticNet(m.PenaltyAlpha, m.PenaltyLambda)
	default:
		return nil
	}
}

// TrainOptions returns the settings shared by both kinds of model
func (m ModelConfig) TrainOptions() models.TrainOptions {
	return models.TrainOptions{
		Epochs:       m.Epochs,
		BatchSize:    m.BatchSize,
		LearningRate: m.LearningRate,
		Optimizer:    m.Optimizer,
		Shuffle:      m.Shuffle,
		Seed:         m.Seed,
		StatusEvery:  m.StatusEvery,
		Cost:         m.Cost,
		LRSteps:      m.Schedule,
		Penalty:      m.NewPenalty(),
	}
}

func (m ModelConfig) AverageOptions() models.AverageOptions {
	return models.AverageOptions{TrainOptions: m.TrainOptions(), Hidden: m.Hidden, Activation: m.Activation}
}

func (m ModelConfig) SequenceOptions() models.SequenceOptions {
	return models.SequenceOptions{TrainOptions: m.TrainOptions(), Units: m.Units, Dropout: m.Dropout}
}
