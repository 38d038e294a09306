package utils

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiThread(t *testing.T) {
	for _, n := range []int{0, 3, 1000} {
		seen := make([]int32, n)
		var calls int32

		MultiThread(0, n, func(i int) {
			atomic.AddInt32(&seen[i], 1)
			atomic.AddInt32(&calls, 1)
		}, 16, 2)

		require.EqualValues(t, n, calls)
		for i := range seen {
			require.EqualValues(t, 1, seen[i], "index %d", i)
		}
	}
}

func TestJSON(t *testing.T) {
	type thing struct {
		Name   string
		Values []float64
	}

	dir := t.TempDir() + "/nested"
	in := thing{"weights", []float64{0.5, -1, 2}}
	require.NoError(t, SaveJSON(dir, "thing.json", in))

	var out thing
	require.NoError(t, LoadJSON(dir, "thing.json", &out))
	require.Equal(t, in, out)

	require.Error(t, LoadJSON(dir, "missing.json", &out))
}
