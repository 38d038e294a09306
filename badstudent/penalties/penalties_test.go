package penalties

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPenalize(t *testing.T) {
	require.InDelta(t, 0.5+0.1, L1(0.1).Penalize(3, 0.5), 1e-12)
	require.InDelta(t, 0.5-0.1, L1(0.1).Penalize(-3, 0.5), 1e-12)
	require.Equal(t, 0.5, L1(0.1).Penalize(0, 0.5))

	require.InDelta(t, 0.5+2*0.1*3, L2(0.1).Penalize(3, 0.5), 1e-12)

	require.InDelta(t, L1(0.1).Penalize(-2, 1), ElasticNet(1, 0.1).Penalize(-2, 1), 1e-12)
	require.InDelta(t, L2(0.1).Penalize(-2, 1), ElasticNet(0, 0.1).Penalize(-2, 1), 1e-12)
}
