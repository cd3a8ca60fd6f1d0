package env

import (
	"gonum.org/v1/gonum/mat"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// Coordinates is the compact relative-coordinate observation: the agent's
// horizontal offset from the obstacle and its height above the floor. It
// lets an agent observe alignment directly instead of through raster
// features, and is the variant suited to tabular methods.
type Coordinates struct {
	vec *mat.VecDense
}

// Shape returns the vector length.
func (c *Coordinates) Shape() []int {
	return []int{c.vec.Len()}
}

// Values returns the vector elements.
func (c *Coordinates) Values() []float64 {
	return c.vec.RawVector().Data
}

// DX returns agent.x - obstacle.x.
func (c *Coordinates) DX() float64 {
	return c.vec.AtVec(0)
}

// DY returns agent.y - floor height.
func (c *Coordinates) DY() float64 {
	return c.vec.AtVec(1)
}

// CoordinatesEncoder produces the relative-coordinate vector. With the
// two-obstacle layout the offset is measured from the first obstacle.
type CoordinatesEncoder struct{}

// Shape returns the vector length.
//
// The upstream task documented this observation as 3-wide while emitting
// two values; reporting the real length keeps the shape contract
// consistent with what space validators actually receive.
func (e *CoordinatesEncoder) Shape() []int {
	return []int{2}
}

// Encode projects the state to (agent.x - obstacle.x, agent.y - floor).
func (e *CoordinatesEncoder) Encode(s State) core.Observation {
	return &Coordinates{
		vec: mat.NewVecDense(2, []float64{
			s.AgentX - s.Obstacles[0],
			s.AgentY - s.FloorHeight,
		}),
	}
}
