package badstudent

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sharnoff/emojify/badstudent/utils"
)

// mainFile stores the architecture of the Network; each Layer is stored in a directory named by
// its id
const mainFile string = "network.json"

type savedLayer struct {
	Name      string
	Type      string
	Size      int
	Optimizer string `json:",omitempty"`
}

type savedNetwork struct {
	InputSize int
	Cost      string
	Iter      int
	Layers    []savedLayer
}

// Save saves the Network to the specified path, creating a directory to contain it (with
// permissions 0700). If 'overwrite' is false and the directory already exists, Save will return
// an error. The state of Optimizers is not saved.
func (net *Network) Save(dirPath string, overwrite bool) error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	}

	// check if the folder already exists
	if _, err := os.Stat(dirPath); err == nil {
		if !overwrite {
			return errors.Errorf("Can't save network, folder %q already exists, and overwrite is not enabled", dirPath)
		}

		if err = os.RemoveAll(dirPath); err != nil {
			return errors.Wrapf(err, "Can't save network, couldn't remove pre-existing folder to overwrite\n")
		}
	}

	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Couldn't make directory to save network\n")
	}

	main := savedNetwork{
		InputSize: net.layers[0].size,
		Cost:      net.cf.TypeString(),
		Iter:      net.longIter,
	}

	for _, l := range net.layers[1:] {
		sl := savedLayer{Name: l.name, Type: l.op.TypeString(), Size: l.size}
		if l.opt != nil {
			sl.Optimizer = l.opt.TypeString()
		}
		main.Layers = append(main.Layers, sl)

		if err := l.op.Save(l, filepath.Join(dirPath, strconv.Itoa(l.id))); err != nil {
			return errors.Wrapf(err, "Can't save network, saving layer %v failed\n", l)
		}
	}

	if err := utils.SaveJSON(dirPath, mainFile, main); err != nil {
		return errors.Wrapf(err, "Can't save network\n")
	}

	return nil
}

// Load recreates a Network from a directory previously written by Save. Every Operator,
// CostFunction and Optimizer type used must have been registered, which importing the relevant
// subpackages does. 'aux' provides additional information to Operators that need it (for
// example, frozen embeddings that were not saved with the Network).
//
// HyperParameters are not saved; they must be added again before the loaded Network can be
// trained.
func Load(dirPath string, aux map[string]interface{}) (*Network, error) {
	var main savedNetwork
	if err := utils.LoadJSON(dirPath, mainFile, &main); err != nil {
		return nil, errors.Wrapf(err, "Can't load network\n")
	}

	net := new(Network)
	net.AddInput(main.InputSize)
	if net.err != nil {
		return nil, errors.Wrapf(net.err, "Can't load network\n")
	}

	for i, sl := range main.Layers {
		op, err := newOperator(sl.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't load network, layer %d\n", i+1)
		}

		l, err := net.placeholder(sl.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't load network\n")
		}

		l.op = op
		if err = op.Load(l, filepath.Join(dirPath, strconv.Itoa(l.id)), aux); err != nil {
			return nil, errors.Wrapf(err, "Can't load network, loading layer %v failed\n", l)
		}

		if l.size, err = op.OutputSize(l); err != nil {
			return nil, errors.Wrapf(err, "Can't load network, layer %v\n", l)
		} else if l.size != sl.Size {
			return nil, errors.Wrapf(SizeMismatchError{sl.Size, l.size, "layer " + l.String()}, "Can't load network\n")
		}

		if sl.Optimizer != "" {
			if l.opt, err = newOptimizer(sl.Optimizer); err != nil {
				return nil, errors.Wrapf(err, "Can't load network, layer %v\n", l)
			}
		}

		net.layers = append(net.layers, l)
	}

	cf, err := newCostFunction(main.Cost)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load network\n")
	}

	if err = net.finalize(cf, false); err != nil {
		return nil, errors.Wrapf(err, "Can't load network, finalizing failed\n")
	}

	net.longIter = main.Iter
	return net, nil
}
