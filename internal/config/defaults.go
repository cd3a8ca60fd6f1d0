package config

import (
	_ "embed"
)

//go:embed defaults/jumping.yaml
var defaultJumpingYAML []byte

// Default returns the default jumping task configuration: a 60x60 screen,
// a 5x10 agent starting at the left edge, and a 9x10 obstacle at x=30 on a
// floor of height 10.
func Default() Config {
	return Config{
		Screen: ScreenConfig{
			Width:  60,
			Height: 60,
		},
		Agent: AgentConfig{
			Width:  5,
			Height: 10,
			InitX:  0,
			Speed:  1,
		},
		Obstacle: ObstacleConfig{
			X:      30,
			Width:  9,
			Height: 10,
			Color:  "red",
		},
		FloorHeight: 10,
		MaxSteps:    600,
		Rewards: RewardConfig{
			Life:      -1,
			Exit:      100,
			Collision: 100,
		},
		Observation: "grayscale",
	}
}
