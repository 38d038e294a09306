package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
)

// Supplier gives a set of samples to a Network in epochs, optionally reshuffling them at the
// start of every epoch. It implements badstudent.DataSupplier.
type Supplier struct {
	data      []bs.Datum
	batchSize int

	rng   *rand.Rand
	order []int
	epoch int
}

// NewSupplier returns a Supplier that gives the data in order, with batches ending every
// batchSize samples and at the end of each epoch.
func NewSupplier(data []bs.Datum, batchSize int) (*Supplier, error) {
	if len(data) == 0 {
		return nil, errors.Errorf("dataset has no data (len == 0)")
	} else if batchSize < 1 {
		return nil, errors.Errorf("batch size must be >= 1 (%d)", batchSize)
	}

	s := &Supplier{data: data, batchSize: batchSize, order: make([]int, len(data)), epoch: -1}
	for i := range s.order {
		s.order[i] = i
	}

	return s, nil
}

// Shuffle makes the Supplier reorder the samples at the start of every epoch, including the
// first. The same seed always gives the same orders.
func (s *Supplier) Shuffle(seed int64) *Supplier {
	s.rng = rand.New(rand.NewSource(seed))
	return s
}

// Len returns the number of samples in an epoch
func (s *Supplier) Len() int {
	return len(s.data)
}

// Epoch returns the epoch that the given iteration is part of
func (s *Supplier) Epoch(iter int) int {
	return iter / len(s.data)
}

func (s *Supplier) Get(iter int) (bs.Datum, error) {
	if iter < 0 {
		return bs.Datum{}, bs.ErrNegativeIter
	}

	if e := s.Epoch(iter); s.rng != nil && e != s.epoch {
		// epochs are only ever requested in increasing order while training
		for ; s.epoch < e; s.epoch++ {
			s.rng.Shuffle(len(s.order), func(i, j int) {
				s.order[i], s.order[j] = s.order[j], s.order[i]
			})
		}
	}

	return s.data[s.order[iter%len(s.data)]], nil
}

func (s *Supplier) BatchEnded(iter int) bool {
	pos := iter % len(s.data)
	return (pos+1)%s.batchSize == 0 || pos == len(s.data)-1
}

// DoneTesting returns true once every sample has been given once
func (s *Supplier) DoneTesting(iter int) bool {
	return iter >= len(s.data)
}
