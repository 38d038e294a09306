// Package glove loads pre-trained word vectors in the GloVe text format, one word per line
// followed by the components of its vector:
//
//	the 0.418 0.24968 -0.41242 ...
//
// Words are numbered from 1 in lexicographic order, leaving 0 for padding.
package glove

import (
	"bufio"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LineError results from a malformed line of a vector file
type LineError struct {
	Line int
	Err  error
}

func (err LineError) Error() string {
	return "line " + strconv.Itoa(err.Line) + ": " + err.Err.Error()
}

func (err LineError) Unwrap() error {
	return err.Err
}

// maximum length of a single line. 300-d vectors take roughly 3KB.
const maxLineSize int = 1 << 20

// Table is an immutable mapping between words, their indexes, and their vectors.
type Table struct {
	dim int

	// words[i-1] is the word with index i
	words []string
	index map[string]int

	// row i of values, of length dim, is the vector of the word with index i. Row 0 is zeros.
	values []float64
}

// Read parses vectors from r. Blank lines are skipped. Every vector must have the same, non-zero
// number of components. If a word appears more than once, the last vector is kept.
func Read(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	vecs := make(map[string][]float64)
	dim := 0

	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		} else if len(fields) == 1 {
			return nil, LineError{line, errors.Errorf("word %q has no vector", fields[0])}
		}

		v := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			var err error
			if v[i], err = strconv.ParseFloat(f, 64); err != nil {
				return nil, LineError{line, errors.Wrapf(err, "component %d of %q\n", i, fields[0])}
			} else if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
				return nil, LineError{line, errors.Errorf("component %d of %q is %v", i, fields[0], v[i])}
			}
		}

		if dim == 0 {
			dim = len(v)
		} else if len(v) != dim {
			return nil, LineError{line, errors.Errorf("vector of %q has %d components, expected %d", fields[0], len(v), dim)}
		}

		vecs[fields[0]] = v
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "Failed to read vectors\n")
	} else if len(vecs) == 0 {
		return nil, errors.Errorf("No vectors found")
	}

	words := make([]string, 0, len(vecs))
	for w := range vecs {
		words = append(words, w)
	}

	sort.Strings(words)

	values := make([]float64, (len(words)+1)*dim)
	for i, w := range words {
		copy(values[(i+1)*dim:], vecs[w])
	}

	return newTable(words, dim, values), nil
}

// ReadFile reads a vector file from the given path
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open vector file %q\n", path)
	}

	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read vector file %q\n", path)
	}

	return t, nil
}

// newTable assumes that words are sorted and unique, and that values holds len(words)+1 rows of
// dim values, starting with the zero row
func newTable(words []string, dim int, values []float64) *Table {
	t := &Table{
		dim:    dim,
		words:  words,
		index:  make(map[string]int, len(words)),
		values: values,
	}

	for i, w := range words {
		t.index[w] = i + 1
	}

	return t
}

// Dim returns the number of components of each vector
func (t *Table) Dim() int {
	return t.dim
}

// Len returns the number of words in the table. Indexes run from 1 to Len, inclusive.
func (t *Table) Len() int {
	return len(t.words)
}

// Index returns the index of the word, if it is present.
func (t *Table) Index(word string) (int, bool) {
	i, ok := t.index[word]
	return i, ok
}

// Word returns the word with the given index, if there is one. Index 0 has no word.
func (t *Table) Word(index int) (string, bool) {
	if index < 1 || index > len(t.words) {
		return "", false
	}

	return t.words[index-1], true
}

// Vector returns the vector of the word, if it is present. The returned slice is NOT a copy.
func (t *Table) Vector(word string) ([]float64, bool) {
	i, ok := t.index[word]
	if !ok {
		return nil, false
	}

	return t.row(i), true
}

func (t *Table) row(i int) []float64 {
	return t.values[i*t.dim : (i+1)*t.dim : (i+1)*t.dim]
}

// Words returns every word in the table, in order of index. The returned slice is a copy.
func (t *Table) Words() []string {
	return append([]string(nil), t.words...)
}

// Embeddings returns the embedding matrix of the table, flattened: Len()+1 rows of Dim() values,
// where row 0 is all zeros and row i is the vector of the word with index i. The returned slice is
// NOT a copy, and must not be modified.
func (t *Table) Embeddings() []float64 {
	return t.values
}
