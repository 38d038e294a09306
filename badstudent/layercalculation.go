package badstudent

import (
	"github.com/pkg/errors"
)

type status int8

const (
	initialized status = iota // 0
	finalized   status = iota // 1
	evaluated   status = iota // 2
	deltas      status = iota // 3
)

// setInputs copies the given sequence into the input Layer
func (net *Network) setInputs(inputs [][]float64) error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	} else if len(inputs) == 0 {
		return ErrNoSteps
	}

	in := net.layers[0]
	values := make([][]float64, len(inputs))
	for s := range inputs {
		if len(inputs[s]) != in.size {
			return SizeMismatchError{in.size, len(inputs[s]), "inputs"}
		}

		values[s] = make([]float64, in.size)
		copy(values[s], inputs[s])
	}

	in.values = values
	net.stat = finalized
	return nil
}

// Updates the values of every Layer so that they accurately reflect the inputs
func (net *Network) evaluate() error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	} else if net.stat >= evaluated {
		return nil
	}

	for _, l := range net.layers[1:] {
		values, err := l.op.Evaluate(l, l.input.values)
		if err != nil {
			return errors.Wrapf(err, "Evaluating layer %v failed\n", l)
		} else if len(values) == 0 {
			return errors.Wrapf(ErrNoSteps, "Evaluating layer %v failed\n", l)
		}

		for s := range values {
			if len(values[s]) != l.size {
				return errors.Wrapf(SizeMismatchError{l.size, len(values[s]), "values"}, "Evaluating layer %v failed\n", l)
			}
		}

		l.values = values
	}

	net.stat = evaluated
	return nil
}

func (net *Network) outputs() ([]float64, error) {
	out := net.layers[len(net.layers)-1]
	if len(out.values) != 1 {
		return nil, errors.Wrapf(ErrOutputSteps, "Output layer %v has %d steps\n", out, len(out.values))
	}

	outs := make([]float64, out.size)
	copy(outs, out.values[0])
	return outs, nil
}

// GetOutputs returns a copy of the Network's output values for the given sequence of inputs. The
// Network is evaluated in inference mode: Operators such as dropout have no effect. There are
// several error conditions:
//	(0) If the Network has not been finalized: ErrNetNotFinalized,
//	(1) If any step of the inputs doesn't match the input size: type SizeMismatchError,
//	(2) If the output Layer does not produce exactly one step: ErrOutputSteps.
func (net *Network) GetOutputs(inputs [][]float64) ([]float64, error) {
	return net.getOutputs(inputs, false)
}

func (net *Network) getOutputs(inputs [][]float64, training bool) ([]float64, error) {
	if err := net.setInputs(inputs); err != nil {
		return nil, err
	}

	net.training = training
	defer func() { net.training = false }()

	if err := net.evaluate(); err != nil {
		return nil, err
	}

	return net.outputs()
}

// Calculates the deltas of every Layer that needs them, accumulating the gradients of any
// Adjustable Operators along the way.
func (net *Network) getDeltas(targets []float64) error {
	if net.stat < evaluated {
		return errors.Errorf("Network must be evaluated before getting deltas")
	} else if net.stat >= deltas {
		return nil
	}

	out := net.layers[len(net.layers)-1]
	if len(targets) != out.size {
		return SizeMismatchError{out.size, len(targets), "targets"}
	}

	out.deltas = [][]float64{net.cf.Derivs(out.values[0], targets)}

	for i := len(net.layers) - 1; i >= 1; i-- {
		l := net.layers[i]
		if !l.backprop {
			break
		}

		ds, err := l.op.InputDeltas(l)
		if err != nil {
			return errors.Wrapf(err, "Getting input deltas of layer %v failed\n", l)
		}

		in := l.input
		if in.IsInput() || !in.backprop {
			continue
		}

		if len(ds) != len(in.values) {
			return errors.Errorf("Input deltas of layer %v have %d steps, input has %d", l, len(ds), len(in.values))
		}

		in.deltas = ds
	}

	net.stat = deltas
	return nil
}

// correct evaluates a training sample and accumulates its gradients, without changing any weights.
func (net *Network) correct(d Datum) ([]float64, error) {
	outs, err := net.getOutputs(d.Inputs, true)
	if err != nil {
		return nil, errors.Wrapf(err, "Getting outputs failed\n")
	}

	if err = net.getDeltas(d.Outputs); err != nil {
		return nil, errors.Wrapf(err, "Getting deltas failed\n")
	}

	net.pending++
	return outs, nil
}

// adjust applies the gradients accumulated since the last adjustment, averaged over the number of
// samples.
func (net *Network) adjust() error {
	if net.pending == 0 {
		return nil
	}

	n := float64(net.pending)
	for _, l := range net.layers[1:] {
		if l.adj == nil {
			continue
		}

		ws := l.adj.Weights(l)
		grad := func(i int) float64 {
			g := l.adj.Grad(l, i) / n
			if l.pen != nil {
				g = l.pen.Penalize(ws[i], g)
			}
			return g
		}

		add := func(i int, addend float64) {
			ws[i] += addend
		}

		if err := l.opt.Run(l, len(ws), grad, add); err != nil {
			return errors.Wrapf(err, "Running optimizer on layer %v failed\n", l)
		}

		l.adj.ClearGrads(l)
	}

	net.pending = 0
	net.stat = finalized
	return nil
}

// Correct evaluates a training sample and accumulates the gradients of every Layer's weights,
// without changing them. The outputs of the Network are returned. The gradients are applied,
// averaged over every sample given since the last adjustment, by Adjust.
//
// Train calls Correct and Adjust internally; they are provided separately for custom training
// loops.
func (net *Network) Correct(d Datum) ([]float64, error) {
	if net.stat < finalized {
		return nil, ErrNetNotFinalized
	} else if !d.Fits(net) {
		return nil, errors.Errorf("Datum does not fit Network")
	}

	return net.correct(d)
}

// Adjust applies the gradients accumulated by Correct. If no samples have been given since the
// last adjustment, Adjust does nothing.
func (net *Network) Adjust() error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	} else if err := net.checkHPs(); err != nil {
		return err
	}

	return net.adjust()
}
