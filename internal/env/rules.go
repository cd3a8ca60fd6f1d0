package env

import (
	"fmt"

	"github.com/vovakirdan/jumping-task/internal/config"
)

// ObstacleColor selects the obstacle color of the RGB variant. The value
// doubles as the raster channel the obstacle is drawn into (red -> 0,
// green -> 1).
type ObstacleColor int

const (
	ObstacleRed   ObstacleColor = 0
	ObstacleGreen ObstacleColor = 1
)

// ParseObstacleColor parses a configuration color name.
func ParseObstacleColor(name string) (ObstacleColor, error) {
	switch name {
	case "", "red":
		return ObstacleRed, nil
	case "green":
		return ObstacleGreen, nil
	default:
		return ObstacleRed, fmt.Errorf("env: unknown obstacle color %q", name)
	}
}

// String returns the configuration name of the color.
func (c ObstacleColor) String() string {
	if c == ObstacleGreen {
		return "green"
	}
	return "red"
}

// RewardRule is the variant-specific reward strategy. The state machine
// reports the raw detector flags; the rule decides which collisions are
// reported, whether the episode ends, and what the step reward is.
type RewardRule interface {
	// Status maps the raw detector flags to the reported collision flag
	// and the terminal decision for this step.
	Status(s State, collision, success bool) (reported, done bool)

	// Reward finalizes the step reward. base is the positional term (new
	// x minus x at the start of the step); collision is the reported
	// flag from Status.
	Reward(s State, base float64, collision, success bool) float64

	// Reset clears per-episode rule state.
	Reset()
}

// standardRule implements the base reward table: collision replaces the
// positional reward with the life penalty and ends the episode; reaching
// the right edge adds the exit bonus. Collision and success are handled
// independently, penalty before bonus, rather than assuming the two are
// mutually exclusive.
type standardRule struct {
	rewards config.RewardConfig
}

func (r *standardRule) Status(_ State, collision, success bool) (bool, bool) {
	return collision, collision || success
}

func (r *standardRule) Reward(_ State, base float64, collision, success bool) float64 {
	reward := base
	if collision {
		reward = r.rewards.Life
	}
	if success {
		reward += r.rewards.Exit
	}
	return reward
}

func (r *standardRule) Reset() {}

// colorRule is the RGB variant's reward strategy. A green obstacle pays a
// one-time collision bonus and stops ending the episode on contact:
// termination is driven by success alone, and only the first contact of
// the episode is reported. A red obstacle keeps the standard failure
// semantics with a zero bonus.
type colorRule struct {
	standardRule
	color           ObstacleColor
	bonus           float64
	alreadyCollided bool
}

func newColorRule(color ObstacleColor, rewards config.RewardConfig) *colorRule {
	bonus := 0.0
	if color == ObstacleGreen {
		bonus = rewards.Collision
	}
	return &colorRule{
		standardRule: standardRule{rewards: rewards},
		color:        color,
		bonus:        bonus,
	}
}

func (r *colorRule) Status(s State, collision, success bool) (bool, bool) {
	if r.color != ObstacleGreen {
		return r.standardRule.Status(s, collision, success)
	}
	reported := collision && !r.alreadyCollided
	r.alreadyCollided = r.alreadyCollided || collision
	return reported, success
}

func (r *colorRule) Reward(s State, base float64, collision, success bool) float64 {
	reward := r.standardRule.Reward(s, base, collision, success)
	// The bonus is paid only for contact at floor height, matching the
	// raster the agent actually observes when standing next to the
	// obstacle.
	if collision && s.AgentY == s.FloorHeight {
		reward += r.bonus
	}
	return reward
}

func (r *colorRule) Reset() {
	r.alreadyCollided = false
}
