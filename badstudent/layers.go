package badstudent

import (
	"fmt"
	"math/rand"
)

// Layer is a single stage of computation in a Network. Each Layer receives the values of the Layer
// before it and produces its own through its Operator. The first Layer of every Network is the
// input, and has no Operator.
type Layer struct {
	// The name that will be used to print this layer. Completely optional, may be empty.
	name string

	// the index of the Layer within its Network
	id int

	host  *Network
	input *Layer

	op  Operator
	adj Adjustable // nil unless op has weights that can be adjusted

	// number of values per step
	size int

	// the values (essentially outputs) of the Layer, indexed [step][unit]
	values [][]float64

	// the derivative of each value w.r.t. the cost of the current sample. Same shape as values.
	deltas [][]float64

	opt  Optimizer
	pen  Penalty
	init Initializer

	// these are exclusively for the Optimizer
	hyperParams map[string]HyperParameter

	// whether or not deltas must be passed back through this Layer: true if this Layer or any
	// Layer before it can be adjusted
	backprop bool
}

// String returns the Layer's name, surrounded by double quotes, unless it is an empty string, in
// which case it returns:
//	<id: %d, Operator: %s>
// If the Layer is the input, it'll return:
//	<Is Input, id: %d>
func (l *Layer) String() string {
	if l == nil {
		return "<nil>"
	}

	if l.name != "" {
		return "\"" + l.name + "\""
	} else if l.op == nil {
		return fmt.Sprintf("<Is Input, id: %d>", l.id)
	}

	return fmt.Sprintf("<id: %d, Operator: %s>", l.id, l.op.TypeString())
}

// Name returns the name of the given Layer. This may sometimes be an empty string.
func (l *Layer) Name() string {
	return l.name
}

// ID returns the index of the Layer in its Network. The input Layer has id 0.
func (l *Layer) ID() int {
	return l.id
}

// IsInput returns whether or not the Layer is the input to its Network.
func (l *Layer) IsInput() bool {
	return l.input == nil
}

// Operator returns the Operator of the Layer, or nil if it is the input.
func (l *Layer) Operator() Operator {
	return l.op
}

// Size returns the number of values the Layer produces at each step.
func (l *Layer) Size() int {
	return l.size
}

// Steps returns the number of steps in the Layer's current values.
func (l *Layer) Steps() int {
	return len(l.values)
}

// Input returns the Layer that this Layer receives values from. It will be nil for the input
// Layer.
func (l *Layer) Input() *Layer {
	return l.input
}

// InputSize returns the number of values per step of the Layer's input. It returns 0 for the
// input Layer.
func (l *Layer) InputSize() int {
	if l.input == nil {
		return 0
	}

	return l.input.size
}

// Values returns the current values of the Layer. The returned slice is NOT a copy.
func (l *Layer) Values() [][]float64 {
	return l.values
}

// Value returns the value of the unit at the given step. Value will allow panicking with
// index-out-of-bounds.
func (l *Layer) Value(step, unit int) float64 {
	return l.values[step][unit]
}

// InputValues returns the current values of the Layer's input. The returned slice is NOT a copy.
// For the input Layer, InputValues returns nil.
func (l *Layer) InputValues() [][]float64 {
	if l.input == nil {
		return nil
	}

	return l.input.values
}

// Deltas returns the derivatives of the Layer's values w.r.t. the cost of the current sample. The
// returned slice is NOT a copy.
func (l *Layer) Deltas() [][]float64 {
	return l.deltas
}

// Delta returns the delta of the unit at the given step.
func (l *Layer) Delta(step, unit int) float64 {
	return l.deltas[step][unit]
}

// Training returns whether or not the Network is currently evaluating a training sample. Operators
// like dropout behave differently while training.
func (l *Layer) Training() bool {
	return l.host.training
}

// Rand returns the source of randomness for the Network that the Layer belongs to. Operators
// should use it instead of the global source so that Networks can be reproduced from a seed.
func (l *Layer) Rand() *rand.Rand {
	return l.host.rand()
}

// Initializer returns the Initializer that the Layer should use for its weights: either the one
// set by SetInitializer or the Network default.
func (l *Layer) Initializer() Initializer {
	if l.init != nil {
		return l.init
	} else if l.host.defaultInit != nil {
		return l.host.defaultInit
	}

	return defaultInit
}

// SetInitializer sets the Initializer of the Layer. It has no effect after the Network has been
// finalized.
func (l *Layer) SetInitializer(init Initializer) *Layer {
	if init == nil {
		l.host.setError(NilArgError{"Initializer"})
		return l
	}

	l.init = init
	return l
}

// Opt sets the Optimizer of the Layer, returning the Layer for chaining.
func (l *Layer) Opt(opt Optimizer) *Layer {
	if opt == nil {
		l.host.setError(NilArgError{"Optimizer"})
		return l
	}

	l.opt = opt
	return l
}

// Optimizer returns the Optimizer of the Layer. It will be nil before finalization if none has
// been set.
func (l *Layer) Optimizer() Optimizer {
	return l.opt
}

// SetPenalty sets the Penalty applied to the weights of the Layer, overriding any default given
// to the Network.
func (l *Layer) SetPenalty(pen Penalty) *Layer {
	l.pen = pen
	return l
}

// AddHP adds a HyperParameter to the Layer, which takes precedence over any with the same name
// given to the Network.
func (l *Layer) AddHP(name string, hp HyperParameter) *Layer {
	if hp == nil {
		l.host.setError(NilArgError{"HyperParameter"})
		return l
	}

	if l.hyperParams == nil {
		l.hyperParams = make(map[string]HyperParameter)
	}

	l.hyperParams[name] = hp
	return l
}

// HP returns the value of the given HyperParameter at the current iteration. If an unknown
// HyperParameter is requested, HP will panic with ErrNoHP. This should only happen with custom
// Optimizer types, which can be solved by proper usage of Optimizer.Needs().
func (l *Layer) HP(name string) float64 {
	hp, ok := l.hyperParams[name]
	if !ok {
		if hp, ok = l.host.hyperParams[name]; !ok {
			panic(ErrNoHP)
		}
	}

	return hp.Value(l.host.longIter)
}

func (l *Layer) hasHP(name string) bool {
	if _, ok := l.hyperParams[name]; ok {
		return true
	}

	_, ok := l.host.hyperParams[name]
	return ok
}
