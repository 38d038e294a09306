package emojify

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Label is one of the five emoji categories that a sentence can belong to.
type Label int

// The categories, in the order used by the datasets.
const (
	Heart Label = iota
	Baseball
	Smile
	Disappointed
	ForkAndKnife
)

// NumLabels is the number of categories, and so the size of every one-hot vector.
const NumLabels int = 5

var labelInfo = [NumLabels]struct{ emoji, name string }{
	Heart:        {"\u2764\ufe0f", "heart"},
	Baseball:     {"\u26be", "baseball"},
	Smile:        {"\U0001f604", "smile"},
	Disappointed: {"\U0001f61e", "disappointed"},
	ForkAndKnife: {"\U0001f374", "fork_and_knife"},
}

// Valid returns whether the label is one of the five categories.
func (l Label) Valid() bool {
	return l >= 0 && int(l) < NumLabels
}

// Emoji returns the glyph of the label, or "?" if it is out of range.
func (l Label) Emoji() string {
	if !l.Valid() {
		return "?"
	}

	return labelInfo[l].emoji
}

// Name returns the short name of the label's emoji, e.g. "baseball".
func (l Label) Name() string {
	if !l.Valid() {
		return "label(" + strconv.Itoa(int(l)) + ")"
	}

	return labelInfo[l].name
}

func (l Label) String() string {
	return l.Emoji()
}

// ParseLabel reads a label from its integer form, ignoring surrounding whitespace.
func ParseLabel(s string) (Label, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "Can't parse label %q\n", s)
	}

	l := Label(n)
	if !l.Valid() {
		return 0, errors.Wrapf(ErrLabelRange, "Can't parse label %q\n", s)
	}

	return l, nil
}

// Labels returns every label, in order.
func Labels() []Label {
	ls := make([]Label, NumLabels)
	for i := range ls {
		ls[i] = Label(i)
	}

	return ls
}
