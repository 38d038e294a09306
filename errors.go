package emojify

import (
	"strconv"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. They can be compared against the result of errors.Cause() or with errors.Is().
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

var (
	ErrUnknownWord     = Error{"Word is not in the vocabulary"}
	ErrLabelRange      = Error{"Label is not in [0, " + strconv.Itoa(NumLabels) + ")"}
	ErrEmptySentence   = Error{"Sentence has no words"}
	ErrSentenceTooLong = Error{"Sentence has more words than the maximum length"}
)

// UnknownWordError results from a sentence containing a word that has no vector. It matches
// ErrUnknownWord under errors.Is.
type UnknownWordError struct {
	Word string
}

func (err UnknownWordError) Error() string {
	return ErrUnknownWord.Error() + ": " + strconv.Quote(err.Word)
}

func (err UnknownWordError) Is(target error) bool {
	return target == ErrUnknownWord
}
