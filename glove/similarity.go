package glove

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/sharnoff/emojify"
)

// CosineSimilarity returns the cosine of the angle between a and b. It returns 0 if either is all
// zeros or their lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	denom := math.Sqrt(magA) * math.Sqrt(magB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}

// Similarity returns the cosine similarity of the vectors of two words.
func (t *Table) Similarity(a, b string) (float64, error) {
	va, ok := t.Vector(a)
	if !ok {
		return 0, emojify.UnknownWordError{Word: a}
	}

	vb, ok := t.Vector(b)
	if !ok {
		return 0, emojify.UnknownWordError{Word: b}
	}

	return CosineSimilarity(va, vb), nil
}

// Neighbor is a word and its similarity to some other word
type Neighbor struct {
	Word       string
	Similarity float64
}

// Nearest returns the n words whose vectors are most similar to that of the given word, excluding
// the word itself, from most to least similar. There will be fewer than n results if the table is
// too small.
func (t *Table) Nearest(word string, n int) ([]Neighbor, error) {
	v, ok := t.Vector(word)
	if !ok {
		return nil, emojify.UnknownWordError{Word: word}
	} else if n < 1 {
		return nil, errors.Errorf("Number of neighbors must be >= 1 (%d)", n)
	}

	all := make([]Neighbor, 0, len(t.words)-1)
	for i, w := range t.words {
		if w == word {
			continue
		}

		all = append(all, Neighbor{w, CosineSimilarity(v, t.row(i+1))})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Similarity > all[j].Similarity
	})

	if len(all) > n {
		all = all[:n]
	}

	return all, nil
}
