package initializers

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarianceScalingUniform(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	ws := make([]float64, 50*128)
	Glorot().Set(r, 128, 50, ws)

	limit := math.Sqrt(6.0 / (50 + 128))
	for _, w := range ws {
		require.True(t, w >= -limit && w <= limit, "weight %v outside ±%v", w, limit)
	}
}

func TestTruncNormal(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	gen := TruncNormal().SD(0.5).Mean(1)
	for i := 0; i < 1000; i++ {
		v := gen.Gen(r)
		require.True(t, v >= 0 && v <= 2, "value %v outside of truncation", v)
	}
}

func TestVarianceScalingTruncated(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	ws := make([]float64, 10000)
	VarianceScaling().Set(r, 1, 1, ws)

	// factor 1 over a scale of 1 gives a standard deviation of 1, cut at 2
	for _, w := range ws {
		require.True(t, w >= -defaultTrunc && w <= defaultTrunc, "weight %v beyond truncation", w)
	}

	ws = make([]float64, 10000)
	He().Set(r, 10, 8, ws)

	limit := defaultTrunc * math.Sqrt(2.0/8)
	for _, w := range ws {
		require.True(t, w >= -limit && w <= limit, "weight %v beyond ±%v", w, limit)
	}
}

func TestOrthogonal(t *testing.T) {
	for _, shape := range [][2]int{{4, 4}, {3, 6}, {6, 3}} {
		out, in := shape[0], shape[1]
		ws := make([]float64, out*in)
		Orthogonal().Set(rand.New(rand.NewSource(9)), out, in, ws)

		at := func(i, j int) float64 { return ws[i*in+j] }

		if out <= in {
			for a := 0; a < out; a++ {
				for b := 0; b < out; b++ {
					dot := 0.0
					for j := 0; j < in; j++ {
						dot += at(a, j) * at(b, j)
					}
					require.InDelta(t, boolFloat(a == b), dot, 1e-9)
				}
			}
		} else {
			for a := 0; a < in; a++ {
				for b := 0; b < in; b++ {
					dot := 0.0
					for i := 0; i < out; i++ {
						dot += at(i, a) * at(i, b)
					}
					require.InDelta(t, boolFloat(a == b), dot, 1e-9)
				}
			}
		}
	}
}

func TestSeeded(t *testing.T) {
	a, b := make([]float64, 20), make([]float64, 20)
	Random(Normal()).Set(rand.New(rand.NewSource(1)), 4, 5, a)
	Random(Normal()).Set(rand.New(rand.NewSource(1)), 4, 5, b)
	require.Equal(t, a, b)
}

func TestSetDefault(t *testing.T) {
	require.Error(t, SetDefault("nothing", 1))
	require.Error(t, SetDefault("normal-sd", math.NaN()))

	require.NoError(t, SetDefault("normal-sd", 2))
	defer SetDefault("normal-sd", 1)
	require.Equal(t, 2.0, Normal().σ)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
