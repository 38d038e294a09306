// Package emojify maps short sentences to one of five emoji, using pre-trained GloVe word vectors
// and one of two classifiers: an average of the sentence's word vectors fed through a single
// dense layer, or a stack of LSTMs over the sentence's words.
//
// This package holds the shared vocabulary of the project: labels, tokenization, and the errors
// that the other packages return. The classifiers themselves are in the subpackage "models", and
// the neural-network engine they are built on is in "badstudent".
package emojify

import (
	"strings"

	"github.com/samber/lo"
)

// Tokenize lower-cases the sentence and splits it on whitespace.
func Tokenize(sentence string) []string {
	return strings.Fields(strings.ToLower(sentence))
}

// OneHot returns a vector of length NumLabels with a 1 at the index of the label and 0 elsewhere.
// OneHot will panic if the label is out of range.
func OneHot(l Label) []float64 {
	if !l.Valid() {
		panic(ErrLabelRange)
	}

	v := make([]float64, NumLabels)
	v[l] = 1
	return v
}

// OneHotAll converts every label to its one-hot vector.
func OneHotAll(labels []Label) [][]float64 {
	return lo.Map(labels, func(l Label, _ int) []float64 {
		return OneHot(l)
	})
}

// LabelOf returns the label with the highest probability. Ties go to the lowest label.
func LabelOf(probs []float64) Label {
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}

	return Label(best)
}
