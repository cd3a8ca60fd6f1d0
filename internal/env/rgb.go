package env

import (
	"gonum.org/v1/gonum/mat"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// RGBFrame is a three-channel raster observation. Unlike Frame, the first
// axis is vertically flipped: row 0 corresponds to the top of the world.
// Both orientation conventions are contractual and must not be unified.
type RGBFrame struct {
	channels [3]*mat.Dense
}

// Shape returns (height, width, 3).
func (f *RGBFrame) Shape() []int {
	h, w := f.channels[0].Dims()
	return []int{h, w, 3}
}

// Values returns the raster flattened row-major with the channel axis
// innermost, top row first.
func (f *RGBFrame) Values() []float64 {
	h, w := f.channels[0].Dims()
	out := make([]float64, 0, h*w*3)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			for c := 0; c < 3; c++ {
				out = append(out, f.channels[c].At(row, col))
			}
		}
	}
	return out
}

// At returns the intensity of channel c at display row/column (row 0 is
// the top of the screen).
func (f *RGBFrame) At(row, col, c int) float64 {
	return f.channels[c].At(row, col)
}

// RGBEncoder renders the episode as a width x height x 3 grid. The
// obstacle is drawn at half intensity into the channel matching its color
// (red -> 0, green -> 1) and zeroed elsewhere; the agent, outline and
// floor are full white across all channels.
type RGBEncoder struct {
	Width  int
	Height int
	Color  ObstacleColor
}

// Shape returns (height, width, 3).
func (e *RGBEncoder) Shape() []int {
	return []int{e.Height, e.Width, 3}
}

// Encode renders the state with row 0 at the top of the screen.
func (e *RGBEncoder) Encode(s State) core.Observation {
	var channels [3]*mat.Dense
	for c := range channels {
		channels[c] = mat.NewDense(e.Height, e.Width, nil)
	}

	// set writes a pixel addressed in world coordinates (y up) into the
	// flipped display raster (row 0 at the top).
	set := func(x, y, c int, v float64) {
		if x >= 0 && x < e.Width && y >= 0 && y < e.Height {
			channels[c].Set(e.Height-1-y, x, v)
		}
	}
	fillAll := func(r core.Rect, v float64) {
		for x := int(r.X); x < int(r.Right()); x++ {
			for y := int(r.Y); y < int(r.Top()); y++ {
				for c := 0; c < 3; c++ {
					set(x, y, c, v)
				}
			}
		}
	}
	fillObstacle := func(r core.Rect) {
		for x := int(r.X); x < int(r.Right()); x++ {
			for y := int(r.Y); y < int(r.Top()); y++ {
				for c := 0; c < 3; c++ {
					if c == int(e.Color) {
						set(x, y, c, pixelGray)
					} else {
						set(x, y, c, 0)
					}
				}
			}
		}
	}

	fillAll(s.AgentRect(), pixelWhite)
	for _, obstacle := range s.ObstacleRects() {
		fillObstacle(obstacle)
	}

	// Screen outline
	for x := 0; x < e.Width; x++ {
		for c := 0; c < 3; c++ {
			set(x, 0, c, pixelWhite)
			set(x, e.Height-1, c, pixelWhite)
		}
	}
	for y := 0; y < e.Height; y++ {
		for c := 0; c < 3; c++ {
			set(0, y, c, pixelWhite)
			set(e.Width-1, y, c, pixelWhite)
		}
	}

	// Floor line
	for x := 0; x < e.Width; x++ {
		for c := 0; c < 3; c++ {
			set(x, int(s.FloorHeight), c, pixelWhite)
		}
	}

	return &RGBFrame{channels: channels}
}
