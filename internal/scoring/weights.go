package scoring

import (
	"fmt"
	"math"
)

// Weights defines the tactical utility formula's coefficients. Pressure is
// applied negatively: score = rotation*StrikeRotation − pressure*Pressure +
// boundary*Boundary.
type Weights struct {
	StrikeRotation float64
	Pressure       float64
	Boundary       float64
}

// DefaultWeights returns the coefficients the model was calibrated against.
func DefaultWeights() Weights {
	return Weights{
		StrikeRotation: 1.0,
		Pressure:       1.0,
		Boundary:       1.5,
	}
}

// Validate checks that every weight is a finite non-negative number.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"strike_rotation": w.StrikeRotation,
		"pressure":        w.Pressure,
		"boundary":        w.Boundary,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s is not finite", name)
		}
		if v < 0 {
			return fmt.Errorf("negative weight %s: %f", name, v)
		}
	}
	return nil
}
