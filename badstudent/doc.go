// Package badstudent provides a lower-level framework for building and training sequence-to-label
// neural networks. It allows high levels of customizability in all parts of the system.
//
// Creating Networks
//
// The center of all training is the Network, initialized by:
//
//		net := new(bs.Network)
//
// For brevity, badstudent is abbreviated 'bs'.
//
// Networks are ordered stacks of Layers, which are analogous to the typical layer or activation
// function. Each Layer has an Operator, which determines its values and the backpropagation
// through it. The values of every Layer are sequences, indexed [step][unit], so that recurrent
// Operators can be stacked in the same way as dense ones. All Operators can be found in the
// subpackage "operators", all Optimizers in "optimizers", and so forth, for other types.
//
// The standard procedure for adding Layers to the Network is:
//
//		net.AddInput(inputSize)
//		net.Add("hidden", operators.Dense(size)).Opt(optimizers.Adam())
//		net.Add("", operators.Softmax())
//		net.AddHP("learning-rate", hyperparams.Constant(0.001))
//
//		if net.Error() != nil {
//			return net.Error()
//		}
//
// Optimizers are set on a per-Layer basis, but defaults can be set for the Network with
// DefaultOpt() or at the package level with SetDefaultOptimizer(). Layers whose Operators have
// weights use Initializers, which can be set by default in the same way. Importing the
// subpackages "optimizers" and "initializers" sets SGD and Glorot as the package-level defaults.
//
// The network can be finished by providing a cost function:
//
//		if err := net.Finalize(costfuncs.CrossEntropy()); err != nil {
//			return err
//		}
//
// Training and Testing
//
// Training is mildly cumbersome, with the type TrainArgs used as a proxy for the type of optional
// arguments that are available in other languages (such as Python). Training and Testing are all
// done with the type Datum, which holds an input sequence and the correct outputs for it.
//
// All training is done with the function Train:
//
//		func (net *Network) Train(args TrainArgs) error
//
// Testing can be done both during training (see TrainArgs) and through a separate function, Test:
//
//		func (net *Network) Test(data DataSupplier, isCorrect func([]float64, []float64) bool) (float64, float64, error)
//
// Custom training loops can use Correct and Adjust directly.
//
// Saving and Loading
//
// Writing Networks to files is quite simple. The function signature is:
//
//		func (net *Network) Save(dirPath string, overwrite bool) error
//
// dirPath is the path to create the directory (nothing should be there), or to overwrite if you so
// desire. Loading is equally simple, with:
//
//		func Load(dirPath string, aux map[string]interface{}) (*Network, error)
//
// Every type used by the Network must be registered first, which importing its subpackage does.
package badstudent
