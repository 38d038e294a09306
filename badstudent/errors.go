package badstudent

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables, and can be compared directly against
// the value returned by errors.Cause().
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned or panicked.
var (
	ErrNetFinalized    = Error{"Network has already been finalized"}
	ErrNetNotFinalized = Error{"Network has not been finalized"}
	ErrNoInput         = Error{"Network has no input layer"}
	ErrNoLayers        = Error{"Network has no layers beyond its input"}
	ErrNoHP            = Error{"HyperParameter does not exist"}
	ErrNoSteps         = Error{"Sequence has no steps"}
	ErrOutputSteps     = Error{"Network output is not a single step"}
	ErrRegisterNilType = Error{"Type to register returned nil"}
	ErrRegisterTaken   = Error{"Type string is already registered"}
	ErrUnknownType     = Error{"Type string is not registered"}
	ErrNegativeIter    = Error{"Iteration is negative"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// SizeMismatchError results from a set of values not having the size that was expected of them.
// Expected is the size that was required, Given is the size that was provided, and Name is a short
// description of what the values were.
type SizeMismatchError struct {
	Expected, Given int
	Name            string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("Size mismatch for %s: expected %d, got %d", err.Name, err.Expected, err.Given)
}
