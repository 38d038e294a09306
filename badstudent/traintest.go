package badstudent

import (
	"github.com/pkg/errors"
)

// Datum is a simple wrapper used to send samples to the Network
type Datum struct {
	// Inputs is the input sequence of the network, indexed [step][value]. Each step must have the
	// same size as the network's input.
	Inputs [][]float64

	// Outputs is the expected output of the network, given the input.
	Outputs []float64
}

// Fits indicates whether or not a given Datum's dimensions match those of the Network, allowing it
// to be used for training or testing.
func (d Datum) Fits(net *Network) bool {
	if len(d.Inputs) == 0 || len(d.Outputs) != net.OutputSize() {
		return false
	}

	for _, step := range d.Inputs {
		if len(step) != net.InputSize() {
			return false
		}
	}

	return true
}

// DataSupplier is the primary method of providing datasets to the Network, either for training or
// testing.
type DataSupplier interface {
	// Get returns the next piece of data, given the current iteration.
	Get(int) (Datum, error)

	// BatchEnded returns whether or not the most recent batch has ended, given the current
	// iteration. To not use batching, BatchEnded should always return true (effective
	// mini-batch size of 1).
	//
	// BatchEnded will be called after the Datum for the iteration has been retrieved. It will
	// not be called if the DataSupplier is being used for testing.
	BatchEnded(int) bool

	// DoneTesting indicates whether or not the testing process has finished, given the number
	// of samples that have been tested so far. This will only be called if the DataSupplier is
	// actually used for providing testing data.
	DoneTesting(int) bool
}

// Result is a wrapper for sending back the progress of the training or testing
type Result struct {
	// The iteration the result is being sent before
	Iteration int

	// Average cost, from the Network's CostFunction
	Cost float64

	// The fraction correct, as per IsCorrect() from TrainArgs. 0 → 1
	Correct float64

	// The result is either from a test or a status update
	IsTest bool
}

// TrainArgs is used as a proxy for the optional arguments to Train.
type TrainArgs struct {
	TrainData DataSupplier

	// TestData is the source of cross-validation data while training. This can be nil if
	// ShouldTest is also nil
	TestData DataSupplier

	// ShouldTest indicates whether or not testing should be done before the current iteration.
	ShouldTest func(int) bool

	// SendStatus indicates whether or not to send back general information about the status of
	// the training since the last time 'true' was returned. SendStatus can be left nil to
	// represent an unconditional false.
	//
	// 'true' will be ignored on iteration 0.
	SendStatus func(int) bool

	// RunCondition will be called at each successive iteration to determine if training should
	// continue. Training will stop if 'false' is returned.
	RunCondition func(int) bool

	// IsCorrect returns whether or not the network outputs are correct, given the target
	// outputs. In order, it is given: outputs; targets.
	//
	// The length of both provided slices is guaranteed to be equal.
	IsCorrect func([]float64, []float64) bool

	// Update is how testing and status updates are returned. If both ShouldTest and SendStatus
	// are nil, then Update can also be left nil.
	Update func(Result)
}

// Train trains the Network on the data supplied by args.TrainData until args.RunCondition returns
// false. Gradients are accumulated over each batch and applied when TrainData.BatchEnded returns
// true, and once more at the end of training if a batch was left incomplete.
func (net *Network) Train(args TrainArgs) error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	} else if err := net.checkHPs(); err != nil {
		return err
	}

	// handle error cases and set defaults
	{
		if args.Update == nil {
			args.Update = func(r Result) {}
		}

		if args.TrainData == nil {
			return errors.Errorf("TrainData is nil")
		}

		if args.TestData == nil {
			if args.ShouldTest != nil {
				return errors.Errorf("TestData is nil but ShouldTest is not")
			}

			args.ShouldTest = func(i int) bool { return false }
		} else if args.ShouldTest == nil {
			args.ShouldTest = func(i int) bool { return false }
		}

		if args.SendStatus == nil {
			args.SendStatus = func(i int) bool { return false }
		}

		if args.RunCondition == nil {
			return errors.Errorf("RunCondition is nil")
		}

		if args.IsCorrect == nil {
			args.IsCorrect = func(a, b []float64) bool { return false }
		}
	}

	net.iter = 0

	var statusCost, statusCorrect float64
	var statusSize int

	for {
		if args.SendStatus(net.iter) && net.iter != 0 && statusSize != 0 {
			args.Update(Result{
				Iteration: net.iter,
				Cost:      statusCost / float64(statusSize),
				Correct:   statusCorrect / float64(statusSize),
				IsTest:    false,
			})

			statusCost, statusCorrect = 0, 0
			statusSize = 0
		}

		if args.ShouldTest(net.iter) {
			cost, correct, err := net.Test(args.TestData, args.IsCorrect)
			if err != nil {
				return errors.Wrapf(err, "Testing on iteration %d failed\n", net.iter)
			}

			args.Update(Result{
				Iteration: net.iter,
				Cost:      cost,
				Correct:   correct,
				IsTest:    true,
			})
		}

		if !args.RunCondition(net.iter) {
			break
		}

		d, err := args.TrainData.Get(net.iter)
		if err != nil {
			return errors.Wrapf(err, "Failed to get training data on iteration %d\n", net.iter)
		} else if !d.Fits(net) {
			return errors.Errorf("Training data for iteration %d does not fit Network", net.iter)
		}

		outs, err := net.correct(d)
		if err != nil {
			return errors.Wrapf(err, "Failed to correct Network on iteration %d\n", net.iter)
		}

		statusCost += net.cf.Cost(outs, d.Outputs)
		if args.IsCorrect(outs, d.Outputs) {
			statusCorrect += 1.0
		}
		statusSize++

		if args.TrainData.BatchEnded(net.iter) {
			if err = net.adjust(); err != nil {
				return errors.Wrapf(err, "Failed to adjust network on iteration %d\n", net.iter)
			}
		}

		net.iter++
		net.longIter++
	}

	// finish up before returning
	if err := net.adjust(); err != nil {
		return errors.Wrapf(err, "Failed to adjust network after training\n")
	}

	return nil
}

// Test evaluates the Network on every sample given by data until data.DoneTesting returns true,
// returning the average cost and the fraction of samples for which isCorrect returned true.
func (net *Network) Test(data DataSupplier, isCorrect func([]float64, []float64) bool) (float64, float64, error) {
	if data == nil {
		return 0, 0, NilArgError{"DataSupplier"}
	} else if isCorrect == nil {
		isCorrect = func(a, b []float64) bool { return false }
	}

	var avgCost, avgCorrect float64
	testSize := 0

	for ; !data.DoneTesting(testSize); testSize++ {
		d, err := data.Get(testSize)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "Failed to get test sample %d\n", testSize)
		} else if !d.Fits(net) {
			return 0, 0, errors.Errorf("Test sample %d does not fit Network dimensions", testSize)
		}

		outs, err := net.GetOutputs(d.Inputs)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "Failed to get Network outputs with test sample %d\n", testSize)
		}

		avgCost += net.cf.Cost(outs, d.Outputs)
		if isCorrect(outs, d.Outputs) {
			avgCorrect++
		}
	}

	if testSize != 0 {
		avgCost /= float64(testSize)
		avgCorrect /= float64(testSize)
	}

	return avgCost, avgCorrect, nil
}

type internalSupplier struct {
	data      []Datum
	batchSize int
}

func (s internalSupplier) Get(iter int) (Datum, error) {
	return s.data[iter%len(s.data)], nil
}

func (s internalSupplier) BatchEnded(iter int) bool {
	return (iter+1)%s.batchSize == 0 || (iter+1)%len(s.data) == 0
}

func (s internalSupplier) DoneTesting(iter int) bool {
	return iter >= len(s.data)
}

// Data converts a set of Datums into a DataSupplier that gives them in order, repeating after the
// last one. Batches end every batchSize samples and at the end of the set.
//
// N.B.: Data does not check if the data fit a certain network; that will be done during
// training/testing
func Data(dataset []Datum, batchSize int) (DataSupplier, error) {
	if len(dataset) == 0 {
		return nil, errors.Errorf("dataset has no data (len == 0)")
	} else if batchSize < 1 {
		return nil, errors.Errorf("batch size must be >= 1 (%d)", batchSize)
	}

	return internalSupplier{dataset, batchSize}, nil
}
