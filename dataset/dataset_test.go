package dataset

import (
	"strings"
	"testing"

	"github.com/sharnoff/emojify"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/glove"
	"github.com/stretchr/testify/require"
)

const csvData = `never talk to me again,3
I am proud of your achievements,2
It is the worst day in my life,3,,
"Miss you so much",0
food is life,4
`

const vectors = `again 1 0
am 0 1
food 1 1
i 0.5 0.5
is 0.2 0.1
life 0.3 0.3
me 0.1 0.9
never 0.9 0.1
talk 0.4 0.6
to 0.7 0.2
`

func table(t *testing.T) *glove.Table {
	tbl, err := glove.Read(strings.NewReader(vectors))
	require.NoError(t, err)
	return tbl
}

func TestReadCSV(t *testing.T) {
	req := require.New(t)

	examples, err := ReadCSV(strings.NewReader(csvData))
	req.NoError(err)
	req.Len(examples, 5)

	req.Equal(Example{"never talk to me again", emojify.Disappointed}, examples[0])
	req.Equal(Example{"It is the worst day in my life", emojify.Disappointed}, examples[2])
	req.Equal(Example{"Miss you so much", emojify.Heart}, examples[3])

	req.Equal([]emojify.Label{3, 2, 3, 0, 4}, Labels(examples))
	req.Equal([]float64{0, 0, 0, 0, 1}, OneHotLabels(examples)[4])
	req.Equal(8, MaxLen(examples))
}

func TestReadCSVErrors(t *testing.T) {
	for _, input := range []string{
		"just a sentence\n",
		"a sentence,seven\n",
		"a sentence,5\n",
		"fine,1\nbroken,\n",
	} {
		_, err := ReadCSV(strings.NewReader(input))
		require.Error(t, err, "%q", input)
	}

	examples, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, examples)
	require.Equal(t, 0, MaxLen(examples))
}

func TestIndices(t *testing.T) {
	tbl := table(t)

	idxs, err := Indices("Never talk to me again", tbl, 7)
	require.NoError(t, err)
	require.Equal(t, []int{8, 9, 10, 7, 1, 0, 0}, idxs)

	seq, err := Sequence("food is life", tbl)
	require.NoError(t, err)
	require.Equal(t, []int{3, 5, 6}, seq)

	_, err = Indices("never talk to me again", tbl, 4)
	require.ErrorIs(t, err, emojify.ErrSentenceTooLong)

	_, err = Indices("never talk to them", tbl, 10)
	require.ErrorIs(t, err, emojify.ErrUnknownWord)

	_, err = Sequence("  ", tbl)
	require.ErrorIs(t, err, emojify.ErrEmptySentence)

	// deterministic
	a, _ := Indices("i am food", tbl, 5)
	b, _ := Indices("i am food", tbl, 5)
	require.Equal(t, a, b)
}

func TestIndicesAll(t *testing.T) {
	tbl := table(t)
	examples := []Example{{"food is life", 4}, {"never again", 3}}

	all, err := IndicesAll(examples, tbl, MaxLen(examples))
	require.NoError(t, err)
	require.Equal(t, [][]int{{3, 5, 6}, {8, 1, 0}}, all)

	_, err = IndicesAll(append(examples, Example{"pizza is life", 4}), tbl, 3)
	require.ErrorIs(t, err, emojify.ErrUnknownWord)
}

func TestMissing(t *testing.T) {
	examples := []Example{{"food is life", 4}, {"pizza is my life", 4}, {"Pizza again", 4}}
	require.Equal(t, []string{"food", "is", "life", "pizza", "my", "again"}, Words(examples))
	require.Equal(t, []string{"pizza", "my"}, Missing(examples, table(t)))
}

func data(n int) []bs.Datum {
	ds := make([]bs.Datum, n)
	for i := range ds {
		ds[i] = bs.Datum{Inputs: [][]float64{{float64(i)}}, Outputs: []float64{1}}
	}
	return ds
}

func TestSupplierBatches(t *testing.T) {
	s, err := NewSupplier(data(5), 2)
	require.NoError(t, err)

	var ends []bool
	for i := 0; i < 10; i++ {
		d, err := s.Get(i)
		require.NoError(t, err)
		require.Equal(t, float64(i%5), d.Inputs[0][0])
		ends = append(ends, s.BatchEnded(i))
	}
	require.Equal(t, []bool{false, true, false, true, true, false, true, false, true, true}, ends)

	require.False(t, s.DoneTesting(4))
	require.True(t, s.DoneTesting(5))

	_, err = NewSupplier(nil, 2)
	require.Error(t, err)
	_, err = NewSupplier(data(2), 0)
	require.Error(t, err)
}

func TestSupplierShuffle(t *testing.T) {
	epoch := func(s *Supplier, e int) []float64 {
		var order []float64
		for i := e * s.Len(); i < (e+1)*s.Len(); i++ {
			d, err := s.Get(i)
			require.NoError(t, err)
			order = append(order, d.Inputs[0][0])
		}
		return order
	}

	a, err := NewSupplier(data(20), 4)
	require.NoError(t, err)
	a.Shuffle(7)
	b, err := NewSupplier(data(20), 4)
	require.NoError(t, err)
	b.Shuffle(7)

	first, second := epoch(a, 0), epoch(a, 1)
	require.Equal(t, first, epoch(b, 0))
	require.Equal(t, second, epoch(b, 1))
	require.NotEqual(t, first, second)

	// every sample is given exactly once per epoch
	seen := make(map[float64]bool)
	for _, v := range second {
		seen[v] = true
	}
	require.Len(t, seen, 20)
}
