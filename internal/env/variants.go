package env

import (
	"github.com/vovakirdan/jumping-task/internal/config"
	"github.com/vovakirdan/jumping-task/internal/registry"
)

// CLI-level knobs applied by the factories before environment creation,
// mirroring how the play/train commands parameterize a variant without
// editing config files.
var (
	configPath     string
	obstacleColor  string
	twoObstacles   *bool
	finishJump     *bool
	withLeftAction *bool
	seed           int64
)

// SetConfigPath sets the custom config path used by registry factories.
func SetConfigPath(path string) {
	configPath = path
}

// SetObstacleColor overrides the obstacle color ("red" or "green").
func SetObstacleColor(color string) {
	obstacleColor = color
}

// SetTwoObstacles overrides the two-obstacle layout flag.
func SetTwoObstacles(v bool) {
	twoObstacles = &v
}

// SetFinishJump overrides the finish-jump flag.
func SetFinishJump(v bool) {
	finishJump = &v
}

// SetWithLeftAction overrides whether the left action is enabled.
func SetWithLeftAction(v bool) {
	withLeftAction = &v
}

// SetSeed overrides the environment seed.
func SetSeed(v int64) {
	seed = v
}

func loadConfig(observation string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	cfg.Observation = observation
	if obstacleColor != "" {
		cfg.Obstacle.Color = obstacleColor
	}
	if twoObstacles != nil {
		cfg.TwoObstacles = *twoObstacles
	}
	if finishJump != nil {
		cfg.FinishJump = *finishJump
	}
	if withLeftAction != nil {
		cfg.WithLeftAction = *withLeftAction
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func factory(observation string) registry.Factory {
	return func() (registry.Environment, error) {
		cfg, err := loadConfig(observation)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	}
}

// Register the variants with the registry
func init() {
	registry.Register("jumping-v0", "Jumping Task", factory("grayscale"))
	registry.Register("jumping-colors-v0", "Jumping Task (Colors)", factory("rgb"))
	registry.Register("jumping-coordinates-v0", "Jumping Task (Coordinates)", factory("coordinates"))
}
