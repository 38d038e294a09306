package badstudent

import (
	"math/rand"
)

// Operator is an interface for defining layers and activation functions. Each Layer in a Network
// (besides the input) has exactly one Operator, which determines how its values are computed from
// the values of the Layer before it, and how deltas are passed back through it.
//
// All values are sequences: the outer index is the step, the inner index is the unit. Operators
// may change the number of steps (e.g. averaging over a sequence, or a recurrent layer that only
// returns its final state).
type Operator interface {
	// TypeString returns the string corresponding to the type of the Operator. For example: the
	// Operator "Dense" returns "dense". It is used to look the Operator up when loading a saved
	// Network, so it must be unique among registered Operators.
	TypeString() string

	// OutputSize returns the number of values per step that the Operator produces, given the
	// Layer that it receives input from. It will be called once, when the Operator is added to
	// the Network, or after the Operator has been loaded.
	OutputSize(*Layer) (int, error)

	// Init should allocate and initialize any weights. It is run during *Network.Finalize, so
	// the Layer's Initializer, Optimizer, and HyperParameters have all been set. Init will not be
	// called on Operators that were loaded from file.
	Init(*Layer) error

	// Evaluate returns the values of the Layer, given the values of its input. The returned
	// slice must not alias the inputs.
	Evaluate(*Layer, [][]float64) ([][]float64, error)

	// InputDeltas returns the derivative of the total cost with respect to each input value,
	// given that the Layer's values and deltas are current. Operators with weights should add
	// the gradients of their weights to an internal accumulator at the same time; those
	// gradients are retrieved through Adjustable.
	//
	// The returned deltas must have the same shape as the input values, unless the input Layer
	// is the Network's input, in which case nil may be returned.
	InputDeltas(*Layer) ([][]float64, error)

	// CanBeAdjusted returns whether or not the Operator has weights that should be changed
	// during training. It is checked once, during finalization.
	CanBeAdjusted(*Layer) bool

	// Save should store enough information in the directory to recreate the Operator. The
	// directory is not created by the Network.
	Save(*Layer, string) error

	// Load should recreate the Operator from the information stored by Save. Any additional
	// information that the Operator needs can be supplied through the auxiliary map given to
	// Load. Load is called before OutputSize.
	Load(*Layer, string, map[string]interface{}) error
}

// Adjustable is implemented by Operators that have weights. Weights are presented as a single
// flat slice, which the Network's Optimizers modify in place.
type Adjustable interface {
	Operator

	// Weights returns the weights of the Operator. The returned slice is NOT a copy.
	Weights(*Layer) []float64

	// Grad returns the gradient of the total cost with respect to the weight at the given
	// index, summed over every sample since the last call to ClearGrads.
	Grad(*Layer, int) float64

	// ClearGrads resets the accumulated gradients to zero.
	ClearGrads(*Layer)
}

// Optimizer determines how the gradients of weights are turned into changes to those weights.
// Each Layer with weights is given its own Optimizer, so Optimizers may keep state.
type Optimizer interface {
	// TypeString returns the string corresponding to the type of the Optimizer. For example:
	// the Optimizer "Adam" returns "adam".
	TypeString() string

	// Needs returns the names of the HyperParameters that the Optimizer requires. The Network
	// will ensure that each is available to the Layer before finalization completes.
	Needs() []string

	// Run is called to suggest changes to each weight, given: the number of weights, the
	// gradient at each weight, and a function to add to weights.
	//
	// The number of weights can be 0. Adding to weights is not thread-safe for repeated
	// indexes.
	Run(l *Layer, size int, grad func(int) float64, add func(int, float64)) error
}

// CostFunction evaluates the outputs of the Network against the target outputs.
//
// For all methods, it can be assumed that the lengths of the outputs and targets are equal and
// that neither contain NaNs or Infs.
type CostFunction interface {
	TypeString() string

	// Cost returns the cost of the outputs, given the targets.
	Cost(outs, targets []float64) float64

	// Derivs returns the derivative of the cost with respect to each output value.
	Derivs(outs, targets []float64) []float64
}

// Initializer sets the starting values of a block of weights. The shape of the block is given as
// the number of outputs ('fan-out') and inputs ('fan-in') that it connects, stored row-major as
// [out][in].
type Initializer interface {
	Set(r *rand.Rand, fanOut, fanIn int, ws []float64)
}

// HyperParameter is a value that may change over the course of training, such as the learning
// rate.
type HyperParameter interface {
	TypeString() string

	// Value returns the value of the HyperParameter at the given iteration.
	Value(iter int) float64
}

// Penalty is a form of regularization applied to weights as they are adjusted.
type Penalty interface {
	TypeString() string

	// Penalize returns the gradient of the weight with the penalty applied, given the current
	// value of the weight and its unpenalized gradient.
	Penalize(w, grad float64) float64
}
