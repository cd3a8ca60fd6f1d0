package env

import "github.com/vovakirdan/jumping-task/internal/core"

// Raster intensities shared by the grayscale and RGB encoders.
const (
	pixelWhite = 1.0
	pixelGray  = 0.5
)

// Encoder renders an episode state into an observation. Encoders are pure
// projections: swapping one for another never touches the state machine.
type Encoder interface {
	// Encode renders the state. The returned observation's shape always
	// equals Shape().
	Encode(s State) core.Observation

	// Shape returns the fixed observation dimensions of this encoder.
	Shape() []int
}
