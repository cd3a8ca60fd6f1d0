package env

import (
	"gonum.org/v1/gonum/mat"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// Space describes the bounds of an observation or action space, in the
// style of a gym Box/Discrete declaration. External validators use it to
// check that what reset and step return matches what was declared at
// construction.
type Space struct {
	// Shape of the observations in this space; nil for discrete action
	// spaces.
	Shape []int

	// Low and High bound every element of the space. For raster spaces
	// they hold a single pair applied uniformly; for vector spaces they
	// bound each element.
	Low  *mat.VecDense
	High *mat.VecDense

	// Discrete marks an integer action space with N actions.
	Discrete bool
	N        int
}

// Contains reports whether an observation has the declared shape and all
// its values within bounds.
func (sp Space) Contains(obs core.Observation) bool {
	shape := obs.Shape()
	if len(shape) != len(sp.Shape) {
		return false
	}
	for i := range shape {
		if shape[i] != sp.Shape[i] {
			return false
		}
	}

	values := obs.Values()
	uniform := sp.Low.Len() == 1
	for i, v := range values {
		j := 0
		if !uniform {
			j = i
		}
		if v < sp.Low.AtVec(j) || v > sp.High.AtVec(j) {
			return false
		}
	}
	return true
}

// ObservationSpace returns the bounds of this variant's observations.
func (e *Env) ObservationSpace() Space {
	shape := e.encoder.Shape()
	if _, ok := e.encoder.(*CoordinatesEncoder); ok {
		// Derived from the screen extrema: the agent can be at most one
		// step past the right edge minus its width, and one unit above
		// the jump apex.
		low := []float64{1 - MaxObstacleX, 0}
		high := []float64{
			float64(e.cfg.Screen.Width) - e.cfg.Agent.Width + 1 - MinObstacleX,
			JumpHeight + 1,
		}
		return Space{
			Shape: shape,
			Low:   mat.NewVecDense(2, low),
			High:  mat.NewVecDense(2, high),
		}
	}
	return Space{
		Shape: shape,
		Low:   mat.NewVecDense(1, []float64{0}),
		High:  mat.NewVecDense(1, []float64{1}),
	}
}

// ActionSpace returns the discrete action space of this environment.
func (e *Env) ActionSpace() Space {
	n := len(e.LegalActions())
	return Space{
		Low:      mat.NewVecDense(1, []float64{0}),
		High:     mat.NewVecDense(1, []float64{float64(n - 1)}),
		Discrete: true,
		N:        n,
	}
}
