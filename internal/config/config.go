// Package config provides YAML-based environment configuration loading for
// the jumping task.
package config

// Config contains the full construction-time configuration of a jumping
// task environment. It is immutable once handed to the environment; only a
// reset changes episode parameters, and only within the ranges declared
// here.
type Config struct {
	Screen      ScreenConfig   `yaml:"screen"`
	Agent       AgentConfig    `yaml:"agent"`
	Obstacle    ObstacleConfig `yaml:"obstacle"`
	FloorHeight float64        `yaml:"floor_height"`
	MaxSteps    int            `yaml:"max_steps"`
	Rewards     RewardConfig   `yaml:"rewards"`

	// WithLeftAction enables action 2 (move left).
	WithLeftAction bool `yaml:"with_left_action"`
	// TwoObstacles places two fixed obstacles instead of one randomly
	// positioned obstacle; used as a generalization stress test.
	TwoObstacles bool `yaml:"two_obstacles"`
	// FinishJump resolves an entire jump trajectory within one step call.
	FinishJump bool `yaml:"finish_jump"`

	// Observation selects the encoder: "grayscale", "rgb" or "coordinates".
	Observation string `yaml:"observation"`

	// Seed for the environment-local RNG used by random resets.
	// Zero means derive a seed from the current time.
	Seed int64 `yaml:"seed"`
}

// ScreenConfig defines the world extent in pixels.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AgentConfig defines the agent rectangle and its lateral speed.
type AgentConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	InitX  float64 `yaml:"init_x"`
	Speed  float64 `yaml:"speed"`
}

// ObstacleConfig defines the obstacle rectangle. Color only matters for
// the RGB observation variant, where it also changes the reward rule.
type ObstacleConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"` // "red" or "green"
}

// RewardConfig is the reward table. Life replaces the positional reward on
// collision, Exit is added on reaching the right edge, Collision is the
// one-time bonus paid by the colored variant on touching a green obstacle.
type RewardConfig struct {
	Life      float64 `yaml:"life"`
	Exit      float64 `yaml:"exit"`
	Collision float64 `yaml:"collision"`
}
