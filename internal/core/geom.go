// Package core provides fundamental types shared by the simulation and the
// platform layers. It contains no external dependencies (especially no
// Bubble Tea) to keep the environment logic pure and testable.
package core

// Rect is an axis-aligned rectangle in world coordinates. Positions and
// sizes are floats because the simulation state is float-valued; overlap
// checks use half-open interval semantics: the right and top edges are
// exclusive, so two rectangles sharing an edge do not overlap.
type Rect struct {
	X, Y float64 // Bottom-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the (exclusive) right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the (exclusive) top edge.
func (r Rect) Top() float64 {
	return r.Y + r.H
}

// Overlaps returns true if this rectangle overlaps with another.
// Half-open AABB test: touching edges do not count as overlap.
func (r Rect) Overlaps(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Top() || other.Y >= r.Top() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Top()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// MinI returns the smaller of two integers.
func MinI(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MaxI returns the larger of two integers.
func MaxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}
