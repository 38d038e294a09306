package badstudent

import (
	"github.com/pkg/errors"
)

var (
	operators = make(map[string]func() Operator)
	costFuncs = make(map[string]func() CostFunction)
	optims    = make(map[string]func() Optimizer)
)

// RegisterOperator makes an Operator type available for loading, keyed by its TypeString. The
// provided function should return a blank Operator, ready to have Load called on it.
func RegisterOperator(f func() Operator) error {
	op := f()
	if op == nil {
		return ErrRegisterNilType
	} else if _, ok := operators[op.TypeString()]; ok {
		return errors.Wrapf(ErrRegisterTaken, "Can't register Operator %q\n", op.TypeString())
	}

	operators[op.TypeString()] = f
	return nil
}

// RegisterCostFunction makes a CostFunction type available for loading, keyed by its TypeString.
func RegisterCostFunction(f func() CostFunction) error {
	cf := f()
	if cf == nil {
		return ErrRegisterNilType
	} else if _, ok := costFuncs[cf.TypeString()]; ok {
		return errors.Wrapf(ErrRegisterTaken, "Can't register CostFunction %q\n", cf.TypeString())
	}

	costFuncs[cf.TypeString()] = f
	return nil
}

// RegisterOptimizer makes an Optimizer type available for loading, keyed by its TypeString.
func RegisterOptimizer(f func() Optimizer) error {
	opt := f()
	if opt == nil {
		return ErrRegisterNilType
	} else if _, ok := optims[opt.TypeString()]; ok {
		return errors.Wrapf(ErrRegisterTaken, "Can't register Optimizer %q\n", opt.TypeString())
	}

	optims[opt.TypeString()] = f
	return nil
}

// RegisterAll registers each function in the list, which must each be one of:
//	func() Operator
//	func() CostFunction
//	func() Optimizer
// Any other type results in an error, and registration stops at the first error.
func RegisterAll(list []interface{}) error {
	for i, f := range list {
		var err error
		switch f := f.(type) {
		case func() Operator:
			err = RegisterOperator(f)
		case func() CostFunction:
			err = RegisterCostFunction(f)
		case func() Optimizer:
			err = RegisterOptimizer(f)
		default:
			err = errors.Errorf("Type %T is not recognized", f)
		}

		if err != nil {
			return errors.Wrapf(err, "Registering item %d failed\n", i)
		}
	}

	return nil
}

func newOperator(typ string) (Operator, error) {
	f, ok := operators[typ]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownType, "Operator %q\n", typ)
	}

	return f(), nil
}

func newCostFunction(typ string) (CostFunction, error) {
	f, ok := costFuncs[typ]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownType, "CostFunction %q\n", typ)
	}

	return f(), nil
}

func newOptimizer(typ string) (Optimizer, error) {
	f, ok := optims[typ]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownType, "Optimizer %q\n", typ)
	}

	return f(), nil
}
