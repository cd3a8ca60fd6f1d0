package core

// Observation is what an environment returns from reset and step. Concrete
// encodings differ per variant (grayscale raster, RGB raster, coordinate
// vector) but all expose a fixed shape and a flattened row-major view so
// that space validators and downstream consumers can treat them uniformly.
type Observation interface {
	// Shape returns the observation dimensions, e.g. [60 60] or [60 60 3].
	// It is fixed at environment construction and never changes between
	// calls.
	Shape() []int

	// Values returns the observation flattened in row-major order. The
	// length always equals the product of Shape.
	Values() []float64
}
