// Package dataset reads labelled sentences and converts them to the index sequences that the
// classifiers take as input.
package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sharnoff/emojify"
	"github.com/sharnoff/emojify/glove"
)

// Example is a single labelled sentence
type Example struct {
	Sentence string
	Label    emojify.Label
}

// ReadCSV reads examples from rows of the form:
//
//	sentence,label
//
// Any columns after the label are ignored. There is no header row.
func ReadCSV(r io.Reader) ([]Example, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var examples []Example
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrapf(err, "Failed to read row %d\n", row)
		}

		if len(rec) < 2 {
			return nil, errors.Errorf("Row %d has %d column(s), expected at least 2", row, len(rec))
		}

		label, err := emojify.ParseLabel(rec[1])
		if err != nil {
			return nil, errors.Wrapf(err, "Row %d\n", row)
		}

		examples = append(examples, Example{Sentence: rec[0], Label: label})
	}

	return examples, nil
}

// ReadFile reads examples from the CSV file at the given path
func ReadFile(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open dataset %q\n", path)
	}

	defer f.Close()

	examples, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read dataset %q\n", path)
	}

	return examples, nil
}

// MaxLen returns the number of words in the longest sentence
func MaxLen(examples []Example) int {
	return lo.Max(lo.Map(examples, func(e Example, _ int) int {
		return len(emojify.Tokenize(e.Sentence))
	}))
}

// Sequence returns the index of every word in the sentence, in order.
func Sequence(sentence string, table *glove.Table) ([]int, error) {
	words := emojify.Tokenize(sentence)
	if len(words) == 0 {
		return nil, emojify.ErrEmptySentence
	}

	idxs := make([]int, len(words))
	for i, w := range words {
		idx, ok := table.Index(w)
		if !ok {
			return nil, emojify.UnknownWordError{Word: w}
		}

		idxs[i] = idx
	}

	return idxs, nil
}

// Indices returns the indexes of the words in the sentence, left-aligned in an array of length
// maxLen and padded with zeros.
func Indices(sentence string, table *glove.Table, maxLen int) ([]int, error) {
	seq, err := Sequence(sentence, table)
	if err != nil {
		return nil, err
	} else if len(seq) > maxLen {
		return nil, errors.Wrapf(emojify.ErrSentenceTooLong, "%d words, maximum is %d\n", len(seq), maxLen)
	}

	idxs := make([]int, maxLen)
	copy(idxs, seq)
	return idxs, nil
}

// IndicesAll runs Indices on the sentence of every example
func IndicesAll(examples []Example, table *glove.Table, maxLen int) ([][]int, error) {
	all := make([][]int, len(examples))
	for i, e := range examples {
		var err error
		if all[i], err = Indices(e.Sentence, table, maxLen); err != nil {
			return nil, errors.Wrapf(err, "Example %d (%q)\n", i, e.Sentence)
		}
	}

	return all, nil
}

// Labels returns the label of every example
func Labels(examples []Example) []emojify.Label {
	return lo.Map(examples, func(e Example, _ int) emojify.Label {
		return e.Label
	})
}

// OneHotLabels returns the one-hot vector of the label of every example
func OneHotLabels(examples []Example) [][]float64 {
	return emojify.OneHotAll(Labels(examples))
}

// Words returns every distinct word used by the examples, in order of first use.
func Words(examples []Example) []string {
	return lo.Uniq(lo.FlatMap(examples, func(e Example, _ int) []string {
		return emojify.Tokenize(e.Sentence)
	}))
}

// Missing returns the words used by the examples that are not in the table.
func Missing(examples []Example, table *glove.Table) []string {
	return lo.Filter(Words(examples), func(w string, _ int) bool {
		_, ok := table.Index(w)
		return !ok
	})
}
