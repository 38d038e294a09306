package glove

import (
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/sharnoff/emojify"
	"github.com/stretchr/testify/require"
)

const sample = `the 0.1 0.2 0.3
love 0.9 0.1 -0.4

adore 0.85 0.15 -0.35
ball -0.5 0.7 0.2
food 0.3 -0.6 0.8
`

func TestRead(t *testing.T) {
	req := require.New(t)

	tbl, err := Read(strings.NewReader(sample))
	req.NoError(err)
	req.Equal(3, tbl.Dim())
	req.Equal(5, tbl.Len())
	req.Equal([]string{"adore", "ball", "food", "love", "the"}, tbl.Words())

	i, ok := tbl.Index("adore")
	req.True(ok)
	req.Equal(1, i)

	i, ok = tbl.Index("the")
	req.True(ok)
	req.Equal(5, i)

	_, ok = tbl.Index("missing")
	req.False(ok)

	w, ok := tbl.Word(2)
	req.True(ok)
	req.Equal("ball", w)

	_, ok = tbl.Word(0)
	req.False(ok)
	_, ok = tbl.Word(6)
	req.False(ok)

	v, ok := tbl.Vector("love")
	req.True(ok)
	req.Equal([]float64{0.9, 0.1, -0.4}, v)

	m := tbl.Embeddings()
	req.Len(m, 6*3)
	req.Equal([]float64{0, 0, 0}, m[:3])
	for idx := 1; idx <= tbl.Len(); idx++ {
		w, _ := tbl.Word(idx)
		v, _ := tbl.Vector(w)
		req.Equal(v, m[idx*3:(idx+1)*3])

		// vectors share the matrix
		req.Same(&m[idx*3], &v[0])
	}
}

func TestReadErrors(t *testing.T) {
	cases := map[string]struct {
		input string
		line  int
	}{
		"not a number":    {"a 1 2\nb 1 x\n", 2},
		"wrong dimension": {"a 1 2\nb 1 2 3\n", 2},
		"no vector":       {"\n\na\n", 3},
		"infinite":        {"a 1 Inf\n", 1},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(c.input))
			require.Error(t, err)

			var le LineError
			require.ErrorAs(t, err, &le)
			require.Equal(t, c.line, le.Line)
		})
	}

	_, err := Read(strings.NewReader("\n  \n"))
	require.Error(t, err)
}

func TestDuplicateWord(t *testing.T) {
	tbl, err := Read(strings.NewReader("a 1 1\nb 2 2\na 3 3\n"))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	v, _ := tbl.Vector("a")
	require.Equal(t, []float64{3, 3}, v)
}

func TestNearest(t *testing.T) {
	tbl, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	ns, err := tbl.Nearest("love", 2)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	require.Equal(t, "adore", ns[0].Word)
	require.Greater(t, ns[0].Similarity, ns[1].Similarity)

	ns, err = tbl.Nearest("love", 100)
	require.NoError(t, err)
	require.Len(t, ns, 4)

	_, err = tbl.Nearest("hate", 2)
	require.ErrorIs(t, err, emojify.ErrUnknownWord)

	s, err := tbl.Similarity("love", "love")
	require.NoError(t, err)
	require.InDelta(t, 1, s, 1e-12)

	require.Equal(t, 0.0, CosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	require.Equal(t, 0.0, CosineSimilarity([]float64{1}, []float64{1, 1}))
}

func TestStore(t *testing.T) {
	tbl, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	dir := t.TempDir()
	s, err := OpenStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Import(tbl))
	require.NoError(t, s.Close())

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, tbl.Words(), loaded.Words())
	require.Equal(t, tbl.Embeddings(), loaded.Embeddings())
	require.Equal(t, tbl.Dim(), loaded.Dim())
}

func TestStoreInMemory(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)

	s := NewStore(db)
	defer s.Close()

	_, err = s.Table()
	require.Error(t, err, "empty store")

	tbl, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.NoError(t, s.Import(tbl))

	// importing again with a new word keeps the indexes sorted
	extra, err := Read(strings.NewReader("baseball -0.4 0.8 0.1\n"))
	require.NoError(t, err)
	require.NoError(t, s.Import(extra))

	loaded, err := s.Table()
	require.NoError(t, err)
	require.Equal(t, 6, loaded.Len())

	i, ok := loaded.Index("baseball")
	require.True(t, ok)
	require.Equal(t, 3, i)
}
