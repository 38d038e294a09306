package hyperparams

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstant(t *testing.T) {
	c := Constant(0.01)
	require.Equal(t, 0.01, c.Value(0))
	require.Equal(t, 0.01, c.Value(1e6))
	require.Equal(t, "constant", c.TypeString())
}

func TestStep(t *testing.T) {
	s := Step(0.1).Add(200, 0.001).Add(100, 0.01)

	require.Equal(t, 0.1, s.Value(0))
	require.Equal(t, 0.1, s.Value(99))
	require.Equal(t, 0.01, s.Value(100))
	require.Equal(t, 0.01, s.Value(199))
	require.Equal(t, 0.001, s.Value(200))
	require.Equal(t, 0.001, s.Value(5000))
}
