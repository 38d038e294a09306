package initializers

import (
	"math"
	"math/rand"
)

type orthogonal struct {
	gain float64
}

// Orthogonal returns an Initializer that produces a (semi-)orthogonal matrix, as is common for the
// recurrent weights of an LSTM. The rows are orthonormal if fanOut <= fanIn, otherwise the
// columns are. The default gain is "orthog-gain".
func Orthogonal() *orthogonal {
	return &orthogonal{defaultValue["orthog-gain"]}
}

// Gain sets the factor that the matrix is multiplied by.
func (o *orthogonal) Gain(g float64) *orthogonal {
	o.gain = g
	return o
}

// Set is the implementation of badstudent.Initializer. The weights are stored row-major as
// [fanOut][fanIn].
func (o *orthogonal) Set(r *rand.Rand, fanOut, fanIn int, ws []float64) {
	rows, cols := fanOut, fanIn
	transpose := rows > cols
	if transpose {
		rows, cols = cols, rows
	}

	// Gram-Schmidt on the rows of a random normal matrix
	m := make([][]float64, rows)
	for i := range m {
		for {
			m[i] = make([]float64, cols)
			for j := range m[i] {
				m[i][j] = r.NormFloat64()
			}

			for k := 0; k < i; k++ {
				dot := 0.0
				for j := range m[i] {
					dot += m[i][j] * m[k][j]
				}
				for j := range m[i] {
					m[i][j] -= dot * m[k][j]
				}
			}

			norm := 0.0
			for _, v := range m[i] {
				norm += v * v
			}
			norm = math.Sqrt(norm)

			// linearly dependent; draw again
			if norm < 1e-10 {
				continue
			}

			for j := range m[i] {
				m[i][j] /= norm
			}
			break
		}
	}

	for i := 0; i < fanOut; i++ {
		for j := 0; j < fanIn; j++ {
			if transpose {
				ws[i*fanIn+j] = o.gain * m[j][i]
			} else {
				ws[i*fanIn+j] = o.gain * m[i][j]
			}
		}
	}
}
