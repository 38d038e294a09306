package glove

import (
	"encoding/binary"
	"math"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// every word is stored under wordPrefix + word, with its vector as little-endian float64s
const wordPrefix string = "word:"

// Store keeps a Table in an embedded badger database, so that it can be loaded without parsing
// the text file again.
type Store struct {
	db *badger.DB
}

// OpenStore opens (or creates) the store in the given directory.
func OpenStore(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open vector store %q\n", dir)
	}

	return &Store{db}, nil
}

// NewStore wraps a database that has already been opened
func NewStore(db *badger.DB) *Store {
	return &Store{db}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func encodeVector(v []float64) []byte {
	b := make([]byte, 8*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint64(b[8*i:], math.Float64bits(x))
	}

	return b
}

func decodeVector(b []byte) ([]float64, error) {
	if len(b)%8 != 0 || len(b) == 0 {
		return nil, errors.Errorf("Stored vector has invalid length %d", len(b))
	}

	v := make([]float64, len(b)/8)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}

	return v, nil
}

// Import writes every word of the table to the store. Words already in the store are overwritten;
// others are kept.
func (s *Store) Import(t *Table) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i, w := range t.words {
		if err := wb.Set([]byte(wordPrefix+w), encodeVector(t.row(i+1))); err != nil {
			return errors.Wrapf(err, "Failed to import %q\n", w)
		}
	}

	if err := wb.Flush(); err != nil {
		return errors.Wrapf(err, "Failed to import vectors\n")
	}

	return nil
}

// Table reads every word in the store. Keys are iterated in order, so the indexes are identical
// to those given by Read for the same words.
func (s *Store) Table() (*Table, error) {
	var words []string
	var values []float64
	dim := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(wordPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			word := string(item.Key()[len(wordPrefix):])

			err := item.Value(func(val []byte) error {
				v, err := decodeVector(val)
				if err != nil {
					return err
				} else if dim == 0 {
					dim = len(v)
					values = make([]float64, dim)
				} else if len(v) != dim {
					return errors.Errorf("vector has %d components, expected %d", len(v), dim)
				}

				words = append(words, word)
				values = append(values, v...)
				return nil
			})
			if err != nil {
				return errors.Wrapf(err, "Failed to read %q\n", word)
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to load vectors from store\n")
	} else if len(words) == 0 {
		return nil, errors.Errorf("Vector store is empty")
	}

	return newTable(words, dim, values), nil
}

// Load opens the store in dir, reads its Table, and closes it again.
func Load(dir string) (*Table, error) {
	s, err := OpenStore(dir)
	if err != nil {
		return nil, err
	}

	defer s.Close()
	return s.Table()
}
