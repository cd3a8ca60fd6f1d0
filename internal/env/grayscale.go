package env

import (
	"gonum.org/v1/gonum/mat"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// Frame is a single-channel raster observation. Row 0 corresponds to the
// bottom of the world (y = 0); column j corresponds to x = j.
type Frame struct {
	px *mat.Dense
}

// Shape returns (height, width).
func (f *Frame) Shape() []int {
	h, w := f.px.Dims()
	return []int{h, w}
}

// Values returns the raster flattened row-major, bottom row first.
func (f *Frame) Values() []float64 {
	return f.px.RawMatrix().Data
}

// At returns the intensity of the pixel at world coordinates (x, y).
func (f *Frame) At(y, x int) float64 {
	return f.px.At(y, x)
}

// GrayscaleEncoder renders the episode as a width x height occupancy grid:
// background 0, agent and screen outline and floor at 1.0, obstacles at
// 0.5.
type GrayscaleEncoder struct {
	Width  int
	Height int
}

// Shape returns (height, width).
func (g *GrayscaleEncoder) Shape() []int {
	return []int{g.Height, g.Width}
}

// Encode renders the state. Draw order matters: the agent first, then
// obstacles, then the outline and the floor row on top.
func (g *GrayscaleEncoder) Encode(s State) core.Observation {
	px := mat.NewDense(g.Height, g.Width, nil)

	fill := func(r core.Rect, v float64) {
		for x := int(r.X); x < int(r.Right()); x++ {
			for y := int(r.Y); y < int(r.Top()); y++ {
				if x >= 0 && x < g.Width && y >= 0 && y < g.Height {
					px.Set(y, x, v)
				}
			}
		}
	}

	fill(s.AgentRect(), pixelWhite)
	for _, obstacle := range s.ObstacleRects() {
		fill(obstacle, pixelGray)
	}

	// Screen outline
	for x := 0; x < g.Width; x++ {
		px.Set(0, x, pixelWhite)
		px.Set(g.Height-1, x, pixelWhite)
	}
	for y := 0; y < g.Height; y++ {
		px.Set(y, 0, pixelWhite)
		px.Set(y, g.Width-1, pixelWhite)
	}

	// Floor line
	for x := 0; x < g.Width; x++ {
		px.Set(int(s.FloorHeight), x, pixelWhite)
	}

	return &Frame{px: px}
}
