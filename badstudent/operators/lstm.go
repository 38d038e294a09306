package operators

import (
	"math"

	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
	"github.com/sharnoff/emojify/badstudent/initializers"
	"github.com/sharnoff/emojify/badstudent/utils"
)

// number of gates, in order: input, forget, cell, output
const numGates int = 4

type lstm struct {
	Units  int
	Inputs int

	// whether the output is the hidden state at every step, or only the last
	Sequences bool

	// Ws holds, in order: the [4·Units][Inputs] kernel, the [4·Units][Units] recurrent weights,
	// and 4·Units biases. Each block of 4·Units rows is ordered by gate.
	Ws []float64 `json:"Weights"`

	recInit bs.Initializer

	grads []float64

	// for the most recent sample, indexed [step][unit]. gates holds the activated gates, in
	// blocks of Units.
	gates, cells, hidden [][]float64
}

// LSTM returns a long short-term memory layer with the given number of units, which implements
// badstudent.Adjustable. By default it outputs only its final hidden state; see ReturnSequences.
//
// The kernel is set by the Layer's Initializer, the recurrent weights are orthogonal, and the
// biases are zero except for the forget gate, which starts at 1.
func LSTM(units int) *lstm {
	return &lstm{Units: units, recInit: initializers.Orthogonal()}
}

// ReturnSequences makes the LSTM output its hidden state at every step, so that it can be
// followed by another recurrent layer.
func (t *lstm) ReturnSequences() *lstm {
	t.Sequences = true
	return t
}

// RecurrentInit sets the Initializer used for the recurrent weights.
func (t *lstm) RecurrentInit(init bs.Initializer) *lstm {
	t.recInit = init
	return t
}

func (t *lstm) TypeString() string {
	return "lstm"
}

func (t *lstm) OutputSize(l *bs.Layer) (int, error) {
	if t.Units < 1 {
		return 0, errors.Errorf("Number of units must be >= 1 (%d)", t.Units)
	}

	t.Inputs = l.InputSize()
	return t.Units, nil
}

// offsets of each block within Ws
func (t *lstm) recOffset() int  { return numGates * t.Units * t.Inputs }
func (t *lstm) biasOffset() int { return t.recOffset() + numGates*t.Units*t.Units }
func (t *lstm) numWeights() int { return t.biasOffset() + numGates*t.Units }

func (t *lstm) Init(l *bs.Layer) error {
	if t.recInit == nil {
		return errors.Errorf("Recurrent initializer is nil")
	}

	t.Ws = make([]float64, t.numWeights())
	t.grads = make([]float64, len(t.Ws))

	rows := numGates * t.Units
	l.Initializer().Set(l.Rand(), rows, t.Inputs, t.Ws[:t.recOffset()])
	t.recInit.Set(l.Rand(), rows, t.Units, t.Ws[t.recOffset():t.biasOffset()])

	// forget gate
	for u := 0; u < t.Units; u++ {
		t.Ws[t.biasOffset()+t.Units+u] = 1
	}

	return nil
}

func sigmoid(x float64) float64 {
	return 0.5 + 0.5*math.Tanh(0.5*x)
}

func (t *lstm) Evaluate(l *bs.Layer, inputs [][]float64) ([][]float64, error) {
	steps, u := len(inputs), t.Units
	rows := numGates * u
	if steps == 0 {
		return nil, bs.ErrNoSteps
	}

	kernel := t.Ws[:t.recOffset()]
	rec := t.Ws[t.recOffset():t.biasOffset()]
	bias := t.Ws[t.biasOffset():]

	t.gates = newSeq(steps, rows)
	t.cells = newSeq(steps, u)
	t.hidden = newSeq(steps, u)

	prevH, prevC := make([]float64, u), make([]float64, u)
	for s, x := range inputs {
		gates := t.gates[s]

		calcGate := func(k int) {
			sum := bias[k]

			kRow := kernel[k*t.Inputs : (k+1)*t.Inputs]
			for j := range x {
				sum += kRow[j] * x[j]
			}

			rRow := rec[k*u : (k+1)*u]
			for j := range prevH {
				sum += rRow[j] * prevH[j]
			}

			if k/u == 2 {
				gates[k] = math.Tanh(sum)
			} else {
				gates[k] = sigmoid(sum)
			}
		}

		utils.MultiThread(0, rows, calcGate, opsPerThread, threadsPerCPU)

		for j := 0; j < u; j++ {
			i, f, g, o := gates[j], gates[u+j], gates[2*u+j], gates[3*u+j]

			t.cells[s][j] = f*prevC[j] + i*g
			t.hidden[s][j] = o * math.Tanh(t.cells[s][j])
		}

		prevH, prevC = t.hidden[s], t.cells[s]
	}

	if t.Sequences {
		return copySeq(t.hidden), nil
	}

	return copySeq(t.hidden[steps-1:]), nil
}

// InputDeltas runs backpropagation through time over the most recent sample
func (t *lstm) InputDeltas(l *bs.Layer) ([][]float64, error) {
	inputs, deltas := l.InputValues(), l.Deltas()
	steps, u := len(inputs), t.Units
	rows := numGates * u

	if len(t.hidden) != steps {
		return nil, errors.Errorf("LSTM must be evaluated before getting input deltas")
	}

	kernel := t.Ws[:t.recOffset()]
	rec := t.Ws[t.recOffset():t.biasOffset()]
	gKernel := t.grads[:t.recOffset()]
	gRec := t.grads[t.recOffset():t.biasOffset()]
	gBias := t.grads[t.biasOffset():]

	sendInputs := !l.Input().IsInput()
	var ds [][]float64
	if sendInputs {
		ds = newSeq(steps, t.Inputs)
	}

	zeros := make([]float64, u)
	dhNext, dcNext := make([]float64, u), make([]float64, u)
	dz := make([]float64, rows)

	for s := steps - 1; s >= 0; s-- {
		prevH, prevC := zeros, zeros
		if s > 0 {
			prevH, prevC = t.hidden[s-1], t.cells[s-1]
		}

		gates := t.gates[s]
		for j := 0; j < u; j++ {
			dh := dhNext[j]
			if t.Sequences {
				dh += deltas[s][j]
			} else if s == steps-1 {
				dh += deltas[0][j]
			}

			i, f, g, o := gates[j], gates[u+j], gates[2*u+j], gates[3*u+j]
			tc := math.Tanh(t.cells[s][j])

			dc := dh*o*(1-tc*tc) + dcNext[j]

			dz[j] = dc * g * i * (1 - i)
			dz[u+j] = dc * prevC[j] * f * (1 - f)
			dz[2*u+j] = dc * i * (1 - g*g)
			dz[3*u+j] = dh * tc * o * (1 - o)

			dcNext[j] = dc * f
		}

		x := inputs[s]
		addGrads := func(k int) {
			d := dz[k]

			kRow := gKernel[k*t.Inputs : (k+1)*t.Inputs]
			for j := range x {
				kRow[j] += d * x[j]
			}

			rRow := gRec[k*u : (k+1)*u]
			for j := range prevH {
				rRow[j] += d * prevH[j]
			}

			gBias[k] += d
		}

		utils.MultiThread(0, rows, addGrads, opsPerThread, threadsPerCPU)

		if sendInputs {
			sendDelta := func(j int) {
				var sum float64
				for k := 0; k < rows; k++ {
					sum += kernel[k*t.Inputs+j] * dz[k]
				}

				ds[s][j] = sum
			}

			utils.MultiThread(0, t.Inputs, sendDelta, opsPerThread, threadsPerCPU)
		}

		passBack := func(j int) {
			var sum float64
			for k := 0; k < rows; k++ {
				sum += rec[k*u+j] * dz[k]
			}

			dhNext[j] = sum
		}

		utils.MultiThread(0, u, passBack, opsPerThread, threadsPerCPU)
	}

	return ds, nil
}

func (t *lstm) CanBeAdjusted(l *bs.Layer) bool {
	return true
}

func (t *lstm) Weights(l *bs.Layer) []float64 {
	return t.Ws
}

func (t *lstm) Grad(l *bs.Layer, index int) float64 {
	return t.grads[index]
}

func (t *lstm) ClearGrads(l *bs.Layer) {
	for i := range t.grads {
		t.grads[i] = 0
	}
}

func (t *lstm) Save(l *bs.Layer, dirPath string) error {
	if err := utils.SaveJSON(dirPath, weightsFile, t); err != nil {
		return errors.Wrapf(err, "Couldn't save operator\n")
	}

	return nil
}

func (t *lstm) Load(l *bs.Layer, dirPath string, aux map[string]interface{}) error {
	if err := utils.LoadJSON(dirPath, weightsFile, t); err != nil {
		return errors.Wrapf(err, "Couldn't load operator\n")
	}

	if t.Inputs != l.InputSize() {
		return errors.Wrapf(bs.SizeMismatchError{Expected: l.InputSize(), Given: t.Inputs, Name: "inputs"}, "Couldn't load operator\n")
	} else if len(t.Ws) != t.numWeights() {
		return errors.Wrapf(bs.SizeMismatchError{Expected: t.numWeights(), Given: len(t.Ws), Name: "weights"}, "Couldn't load operator\n")
	}

	t.grads = make([]float64, len(t.Ws))
	return nil
}

func copySeq(seq [][]float64) [][]float64 {
	c := make([][]float64, len(seq))
	for s := range seq {
		c[s] = append([]float64(nil), seq[s]...)
	}

	return c
}
