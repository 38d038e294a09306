// Package initializers provides the Initializers used to set the starting weights of a Network.
// Importing it sets Glorot (uniform) as the package-level default.
package initializers

import (
	"math"

	"github.com/pkg/errors"
	bs "github.com/sharnoff/emojify/badstudent"
)

// default values, because 'default' is a keyword
var defaultValue = map[string]float64{
	"uniform-lower": -0.05,
	"uniform-upper": 0.05,
	"normal-mean":   0,
	"normal-sd":     1,
	"varscl-factor": 1,
	"orthog-gain":   1,
}

func init() {
	bs.SetDefaultInitializer(Glorot())
}

// SetDefault changes the default value used by newly created RNGs and Initializers. Valid names
// are: "uniform-lower", "uniform-upper", "normal-mean", "normal-sd", "varscl-factor", and
// "orthog-gain".
func SetDefault(name string, value float64) error {
	if _, ok := defaultValue[name]; !ok {
		return errors.Errorf("Value with name %q does not exist", name)
	} else if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Errorf("Value is invalid (%v)", value)
	}

	defaultValue[name] = value
	return nil
}
