package badstudent

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Network is the main structure that is used to learn to map inputs to outputs. It is an ordered
// stack of Layers, the first of which is the input.
//
// A Network is created with new(Network), or with the zero value.
type Network struct {
	// layers[0] is the input; layers[len-1] is the output
	layers []*Layer

	err error

	// whether or not the network should panic when it encounters an error during construction
	panicErrors bool

	cf CostFunction

	defaultInit Initializer
	defaultOpt  func() Optimizer
	hyperParams map[string]HyperParameter
	pen         Penalty

	rng *rand.Rand

	// whether or not the values currently being calculated are for training
	training bool

	// used to keep track of the current iteration during training.
	iter int

	// longIter corresponds to the iteration of the network as a whole, not just within the
	// current training run. HyperParameters are given this value.
	longIter int

	// number of samples whose gradients have been accumulated but not yet applied
	pending int

	stat status
}

var (
	defaultInit Initializer
	defaultOpt  func() Optimizer
)

// SetDefaultInitializer sets the package-level Initializer used by Layers that have none and whose
// Network has no default. It is typically called by the initializers subpackage.
func SetDefaultInitializer(init Initializer) {
	if init == nil {
		panic(NilArgError{"Initializer"})
	}

	defaultInit = init
}

// SetDefaultOptimizer sets the package-level Optimizer constructor used by Layers that have no
// Optimizer and whose Network has no default. It is typically called by the optimizers subpackage.
func SetDefaultOptimizer(f func() Optimizer) {
	if f == nil {
		panic(NilArgError{"Optimizer function"})
	}

	defaultOpt = f
}

// setError sets the Network's stored error to the error provided, unless one has already been
// stored. If PanicErrors() has been called, setError will additionally panic the error it is given.
func (net *Network) setError(e error) {
	if net.err == nil {
		net.err = e
	}

	if net.panicErrors {
		panic(e)
	}
}

// PanicErrors makes the Network panic on errors encountered during construction, instead of
// storing them for Error().
func (net *Network) PanicErrors() *Network {
	net.panicErrors = true
	return net
}

// Error returns the first error encountered while constructing the Network.
func (net *Network) Error() error {
	return net.err
}

func (net *Network) rand() *rand.Rand {
	if net.rng == nil {
		net.rng = rand.New(rand.NewSource(1))
	}

	return net.rng
}

// Seed resets the Network's source of randomness, which is used to initialize weights and for
// operations like dropout.
func (net *Network) Seed(seed int64) *Network {
	net.rng = rand.New(rand.NewSource(seed))
	return net
}

// DefaultInit sets the Initializer used for every Layer in the Network that has not been given its
// own.
func (net *Network) DefaultInit(init Initializer) *Network {
	if init == nil {
		net.setError(NilArgError{"Initializer"})
		return net
	}

	net.defaultInit = init
	return net
}

// DefaultOpt sets the function used to create Optimizers for Layers in the Network that have not
// been given their own.
func (net *Network) DefaultOpt(f func() Optimizer) *Network {
	if f == nil {
		net.setError(NilArgError{"Optimizer function"})
		return net
	}

	net.defaultOpt = f
	return net
}

// AddHP adds a HyperParameter that is available to every Layer in the Network.
func (net *Network) AddHP(name string, hp HyperParameter) *Network {
	if hp == nil {
		net.setError(NilArgError{"HyperParameter"})
		return net
	}

	if net.hyperParams == nil {
		net.hyperParams = make(map[string]HyperParameter)
	}

	net.hyperParams[name] = hp
	return net
}

// SetPenalty sets the Penalty applied to all Layers with weights that do not have their own.
func (net *Network) SetPenalty(pen Penalty) *Network {
	net.pen = pen
	return net
}

// AddInput adds the input Layer to the Network, with the given number of values per step. It must
// be called exactly once, before any calls to Add.
func (net *Network) AddInput(size int) *Layer {
	l := &Layer{host: net, name: "input", size: size}

	if net.stat >= finalized {
		net.setError(ErrNetFinalized)
		return l
	} else if len(net.layers) != 0 {
		net.setError(errors.Errorf("Network already has an input layer"))
		return l
	} else if size < 1 {
		net.setError(errors.Errorf("Input must have size >= 1 (%d)", size))
		return l
	}

	net.layers = append(net.layers, l)
	return l
}

// placeholder adds a Layer to the end of the Network without an Operator
func (net *Network) placeholder(name string) (*Layer, error) {
	if net.stat >= finalized {
		return nil, ErrNetFinalized
	} else if len(net.layers) == 0 {
		return nil, ErrNoInput
	}

	l := &Layer{
		name:  name,
		id:    len(net.layers),
		host:  net,
		input: net.layers[len(net.layers)-1],
	}

	return l, nil
}

// Add appends a Layer with the given Operator to the end of the Network, taking the previous Layer
// as input. Any errors are stored and can be retrieved with *Network.Error(); the returned Layer
// may still be used for chaining, but will have no effect.
func (net *Network) Add(name string, op Operator) *Layer {
	if op == nil {
		net.setError(NilArgError{"Operator"})
		return &Layer{host: net}
	}

	l, err := net.placeholder(name)
	if err != nil {
		net.setError(err)
		return &Layer{host: net, name: name, op: op}
	}

	l.op = op
	if l.size, err = op.OutputSize(l); err != nil {
		net.setError(errors.Wrapf(err, "Adding layer %v failed\n", l))
		return l
	} else if l.size < 1 {
		net.setError(errors.Errorf("Layer %v must have size >= 1 (%d)", l, l.size))
		return l
	}

	net.layers = append(net.layers, l)
	return l
}

// Finalize completes the construction of the Network, giving it a CostFunction, initializing
// weights and setting default Optimizers. If any errors were encountered during construction, the
// first is returned and the Network remains unfinalized.
func (net *Network) Finalize(cf CostFunction) error {
	return net.finalize(cf, true)
}

func (net *Network) finalize(cf CostFunction, initWeights bool) error {
	if net.err != nil {
		return net.err
	} else if net.stat >= finalized {
		return ErrNetFinalized
	} else if cf == nil {
		return NilArgError{"CostFunction"}
	} else if len(net.layers) == 0 {
		return ErrNoInput
	} else if len(net.layers) == 1 {
		return ErrNoLayers
	}

	anyAdjustable := false
	for _, l := range net.layers[1:] {
		if l.op.CanBeAdjusted(l) {
			adj, ok := l.op.(Adjustable)
			if !ok {
				return errors.Errorf("Operator of layer %v can be adjusted but does not implement Adjustable", l)
			}

			l.adj = adj
			anyAdjustable = true

			if l.opt == nil {
				switch {
				case net.defaultOpt != nil:
					l.opt = net.defaultOpt()
				case defaultOpt != nil:
					l.opt = defaultOpt()
				default:
					return errors.Errorf("Layer %v has no Optimizer and there is no default", l)
				}
			}

			if l.pen == nil {
				l.pen = net.pen
			}
		}

		l.backprop = anyAdjustable
	}

	if initWeights {
		if err := net.checkHPs(); err != nil {
			return err
		}

		for _, l := range net.layers[1:] {
			if l.Initializer() == nil {
				return errors.Errorf("Layer %v has no Initializer and there is no default", l)
			}

			if err := l.op.Init(l); err != nil {
				return errors.Wrapf(err, "Initializing operator of layer %v failed\n", l)
			}
		}
	}

	net.cf = cf
	net.stat = finalized
	return nil
}

// checkHPs makes sure that every Optimizer has the HyperParameters it needs
func (net *Network) checkHPs() error {
	for _, l := range net.layers[1:] {
		if l.adj == nil {
			continue
		}

		for _, hp := range l.opt.Needs() {
			if !l.hasHP(hp) {
				return errors.Errorf("Optimizer %q of layer %v needs HyperParameter %q", l.opt.TypeString(), l, hp)
			}
		}
	}

	return nil
}

// Layers returns the list of all Layers in the Network, in order, starting with the input. The
// slice is a copy.
func (net *Network) Layers() []*Layer {
	ls := make([]*Layer, len(net.layers))
	copy(ls, net.layers)
	return ls
}

// InputSize returns the number of values per step expected as input to the Network, or -1 if it has
// not been finalized.
func (net *Network) InputSize() int {
	if net.stat < finalized {
		return -1
	}

	return net.layers[0].size
}

// OutputSize returns the number of output values of the Network, or -1 if it has not been
// finalized.
func (net *Network) OutputSize() int {
	if net.stat < finalized {
		return -1
	}

	return net.layers[len(net.layers)-1].size
}

// CostFunction returns the CostFunction the Network was finalized with.
func (net *Network) CostFunction() CostFunction {
	return net.cf
}

// ChangeCost changes the CostFunction of the Network, after it has been finalized. If cf is nil,
// ChangeCost will panic with type NilArgError.
func (net *Network) ChangeCost(cf CostFunction) *Network {
	if cf == nil {
		panic(NilArgError{"CostFunction"})
	}

	net.cf = cf
	return net
}

// Iter returns the total number of training samples that the Network has been given.
func (net *Network) Iter() int {
	return net.longIter
}

// ResetIter resets the Network's tracked number of iterations to the provided value. This could be
// done to bring HyperParameters that are dependent upon iterations back to an earlier state.
// ResetIter will return ErrNegativeIter if the iteration given is less than zero.
func (net *Network) ResetIter(iter int) error {
	if iter < 0 {
		return ErrNegativeIter
	}

	net.longIter = iter
	return nil
}
