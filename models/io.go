package models

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/hyperparams"
	"github.com/sharnoff/emojify/badstudent/operators"
	"github.com/sharnoff/emojify/badstudent/utils"
	"github.com/sharnoff/emojify/glove"
)

const (
	metaFile   string = "model.json"
	networkDir string = "network"
)

// ErrTableMismatch is returned by Load when the vectors given do not match the ones the
// Classifier was created with
var ErrTableMismatch = errors.New("Word vectors do not match the saved classifier")

type metadata struct {
	Kind    Kind      `json:"kind"`
	RunID   string    `json:"run_id"`
	Created time.Time `json:"created"`

	MaxLen int `json:"max_len,omitempty"`
	Dim    int `json:"dim"`
	Vocab  int `json:"vocab"`

	Options TrainOptions `json:"options"`
}

// Save writes the Classifier to dir. The Penalty, if any, is not saved.
func (c *classifier) Save(dir string) error {
	if err := c.net.Save(filepath.Join(dir, networkDir), true); err != nil {
		return errors.Wrapf(err, "Can't save classifier\n")
	}

	meta := metadata{
		Kind:    c.kind,
		RunID:   c.runID,
		Created: time.Now().UTC(),
		MaxLen:  c.maxLen,
		Dim:     c.table.Dim(),
		Vocab:   c.table.Len(),
		Options: c.opts,
	}

	if err := utils.SaveJSON(dir, metaFile, meta); err != nil {
		return errors.Wrapf(err, "Can't save classifier\n")
	}

	c.log.Info("saved", "dir", dir)
	return nil
}

// Load restores a Classifier previously written by Save. The table must hold the same vectors that
// the Classifier was created with.
//
// If log is nil, nothing is logged.
func Load(dir string, table *glove.Table, log *slog.Logger) (Classifier, error) {
	if table == nil {
		return nil, errors.Errorf("Can't load classifier, vector table is nil")
	}

	var meta metadata
	if err := utils.LoadJSON(dir, metaFile, &meta); err != nil {
		return nil, errors.Wrapf(err, "Can't load classifier\n")
	}

	if meta.Kind != KindAverage && meta.Kind != KindSequence {
		return nil, errors.Errorf("Can't load classifier, unknown kind %q", meta.Kind)
	} else if meta.Dim != table.Dim() || meta.Vocab != table.Len() {
		return nil, errors.Wrapf(ErrTableMismatch, "Can't load classifier, saved with %d words of dimension %d, given %d of dimension %d\n",
			meta.Vocab, meta.Dim, table.Len(), table.Dim())
	}

	c, err := newClassifier(meta.Kind, meta.RunID, table, meta.MaxLen, meta.Options, log)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load classifier\n")
	}

	aux := map[string]interface{}{operators.AuxEmbeddings: table.Embeddings()}
	if c.net, err = bs.Load(filepath.Join(dir, networkDir), aux); err != nil {
		return nil, errors.Wrapf(err, "Can't load classifier\n")
	}

	c.net.Seed(meta.Options.Seed).
		AddHP("learning-rate", hyperparams.Constant(meta.Options.LearningRate))

	c.log.Info("loaded", "dir", dir, "created", meta.Created)
	return c, nil
}
