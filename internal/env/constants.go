// Package env implements the jumping task: a deterministic 2D platformer
// simulation used as a reinforcement learning benchmark. The agent runs
// along a floor and must time a jump to clear a fixed obstacle before
// reaching the right edge of the screen.
package env

// Jump shape parameters. The jump is a hat: a diagonal up to the jump
// height followed by a symmetric diagonal down.
const (
	JumpHeight          = 15.0
	JumpVerticalSpeed   = 1.0
	JumpHorizontalSpeed = 1.0
)

// Fixed obstacle positions used by the two-obstacle layout, constrained by
// the shape of the jump. Used as a generalization stress test.
const (
	ObstacleOneX = 20.0
	ObstacleTwoX = 55.0
)

// Allowed episode parameters for random resets: the six obstacle/floor
// combinations used for training.
var (
	AllowedObstacleX = []float64{20, 30, 40}
	AllowedFloorY    = []float64{10, 20}
)

// Bounds for explicit resets. Obstacle x must lie in [MinObstacleX,
// MaxObstacleX) and floor height in [MinFloorY, MaxFloorY).
const (
	MinObstacleX = 14.0
	MaxObstacleX = 48.0
	MinFloorY    = 0.0
	MaxFloorY    = 41.0
)
