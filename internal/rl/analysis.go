package rl

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// Summary aggregates a run's episode results.
type Summary struct {
	Episodes    int
	MeanReturn  float64
	StdReturn   float64
	BestReturn  float64
	SuccessRate float64
}

// Summarize computes aggregate statistics over the episode results.
func Summarize(results []EpisodeResult) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	returns := make([]float64, len(results))
	best := results[0].Return
	successes := 0
	for i, r := range results {
		returns[i] = r.Return
		if r.Return > best {
			best = r.Return
		}
		if r.Success {
			successes++
		}
	}

	return Summary{
		Episodes:    len(results),
		MeanReturn:  stat.Mean(returns, nil),
		StdReturn:   stat.StdDev(returns, nil),
		BestReturn:  best,
		SuccessRate: float64(successes) / float64(len(results)),
	}
}

// PlotReturns writes a learning-curve plot (episode return over episodes)
// to the given path.
func PlotReturns(results []EpisodeResult, title, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("rl: create plot dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Return"

	points := make(plotter.XYs, len(results))
	for i, r := range results {
		points[i] = plotter.XY{X: float64(r.Episode), Y: r.Return}
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("rl: build learning curve: %w", err)
	}
	p.Add(line)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("rl: save plot: %w", err)
	}
	return nil
}

// VisitGrid counts agent positions on the screen raster. It implements
// plotter.GridXYZ so it can be rendered directly as a heat map.
type VisitGrid struct {
	width  int
	height int
	counts []float64
}

// NewVisitGrid creates an empty visit counter for a width x height world.
func NewVisitGrid(width, height int) *VisitGrid {
	return &VisitGrid{
		width:  width,
		height: height,
		counts: make([]float64, width*height),
	}
}

// Record marks one visit of the world cell (x, y). Out-of-range positions
// are clamped to the grid edge.
func (g *VisitGrid) Record(x, y float64) {
	cx := int(core.Clamp(x, 0, float64(g.width-1)))
	cy := int(core.Clamp(y, 0, float64(g.height-1)))
	g.counts[cy*g.width+cx]++
}

// Dims returns the grid dimensions.
func (g *VisitGrid) Dims() (c, r int) { return g.width, g.height }

// X returns the world x coordinate of column c.
func (g *VisitGrid) X(c int) float64 { return float64(c) }

// Y returns the world y coordinate of row r.
func (g *VisitGrid) Y(r int) float64 { return float64(r) }

// Z returns the visit count at column c, row r.
func (g *VisitGrid) Z(c, r int) float64 { return g.counts[r*g.width+c] }

// PlotVisits writes a heat map of the visit counts to the given path.
func PlotVisits(grid *VisitGrid, title, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("rl: create plot dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	heatmap := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	p.Add(heatmap)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("rl: save heat map: %w", err)
	}
	return nil
}
