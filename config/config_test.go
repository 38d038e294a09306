package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sharnoff/emojify/models"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	req := require.New(t)

	c, err := Load(New(), "")
	req.NoError(err)

	seq := models.DefaultSequenceOptions()
	req.Equal("INFO", c.LogLevel)
	req.Equal("sequence", c.Model.Kind)
	req.Equal(seq, c.Model.SequenceOptions())
	req.Nil(c.Model.NewPenalty())
}

func TestAverageDefaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("EMOJIFY_MODEL_KIND", "average")

	c, err := Load(New(), "")
	req.NoError(err)
	req.Equal("average", c.Model.Kind)
	req.Equal(models.DefaultAverageOptions(), c.Model.AverageOptions())

	t.Setenv("EMOJIFY_MODEL_HIDDEN", "16")
	t.Setenv("EMOJIFY_MODEL_ACTIVATION", "tanh")
	t.Setenv("EMOJIFY_MODEL_COST", "huber")

	c, err = Load(New(), "")
	req.NoError(err)
	opts := c.Model.AverageOptions()
	req.Equal(16, opts.Hidden)
	req.Equal("tanh", opts.Activation)
	req.Equal("huber", opts.Cost)
}

func TestPrecedence(t *testing.T) {
	req := require.New(t)

	file := filepath.Join(t.TempDir(), "emojify.yaml")
	req.NoError(os.WriteFile(file, []byte(`
log_level: debug
data:
  train: train.csv
model:
  kind: average
  epochs: 20
  learning_rate: 0.05
  penalty: l2
  penalty_lambda: 0.001
`), 0600))

	t.Setenv("EMOJIFY_MODEL_EPOCHS", "30")

	v := New()
	v.Set("model.seed", 7)

	c, err := Load(v, file)
	req.NoError(err)
	req.Equal("DEBUG", c.LogLevel)
	req.Equal("train.csv", c.Data.Train)
	req.Equal(30, c.Model.Epochs)
	req.Equal(0.05, c.Model.LearningRate)
	req.Equal(int64(7), c.Model.Seed)

	// defaults follow the kind set in the file
	req.Equal("sgd", c.Model.Optimizer)
	req.Equal(1, c.Model.BatchSize)

	req.NotNil(c.Model.NewPenalty())
	req.Equal("l2", c.Model.NewPenalty().TypeString())
	req.Equal(c.Model.NewPenalty().TypeString(), c.Model.TrainOptions().Penalty.TypeString())
}

func TestInvalid(t *testing.T) {
	cases := map[string]string{
		"EMOJIFY_MODEL_KIND":          "transformer",
		"EMOJIFY_MODEL_OPTIMIZER":     "rmsprop",
		"EMOJIFY_MODEL_EPOCHS":        "0",
		"EMOJIFY_MODEL_LEARNING_RATE": "1.5",
		"EMOJIFY_MODEL_DROPOUT":       "1",
		"EMOJIFY_MODEL_PENALTY":       "l3",
		"EMOJIFY_LOG_LEVEL":           "loud",
		"EMOJIFY_MODEL_LR_STEPS":      "100=0.01",
		"EMOJIFY_MODEL_COST":          "hinge",
		"EMOJIFY_MODEL_HIDDEN":        "-1",
		"EMOJIFY_MODEL_ACTIVATION":    "swish",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := Load(New(), "")
			require.Error(t, err)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	req.NoError(os.WriteFile(file, []byte("EMOJIFY_MODEL_UNITS=16\n"), 0600))

	// registered so that the variable is removed after the test
	t.Setenv("EMOJIFY_MODEL_UNITS", "")
	req.NoError(os.Unsetenv("EMOJIFY_MODEL_UNITS"))

	req.NoError(LoadEnv(file, filepath.Join(dir, "missing.env")))

	c, err := Load(New(), "")
	req.NoError(err)
	req.Equal(16, c.Model.Units)
}

func TestLRSteps(t *testing.T) {
	req := require.New(t)
	t.Setenv("EMOJIFY_MODEL_LR_STEPS", "200:0.001, 100:0.005")

	c, err := Load(New(), "")
	req.NoError(err)

	want := []models.LRStep{{Epoch: 200, Rate: 0.001}, {Epoch: 100, Rate: 0.005}}
	req.Equal(want, c.Model.Schedule)
	req.Equal(want, c.Model.SequenceOptions().LRSteps)

	steps, err := ParseLRSteps("  ")
	req.NoError(err)
	req.Nil(steps)

	for _, bad := range []string{"100", "x:0.1", "100:y", "0:0.1", "10:-1", "10:0.1,"} {
		_, err := ParseLRSteps(bad)
		req.Error(err, bad)
	}
}
