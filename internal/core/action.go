package core

import "fmt"

// Action is the discrete control the agent submits each step. The integer
// encoding is part of the environment contract and must not change:
// 0 moves right, 1 jumps, 2 moves left (only when the left action is
// enabled in the environment configuration).
type Action int

const (
	ActionRight Action = 0
	ActionJump  Action = 1
	ActionLeft  Action = 2
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionLeft:
		return "Left"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Info carries auxiliary per-step signals alongside the reward. Collision
// and success are reported independently; no precedence between the two is
// assumed here, the reward rule decides what each means.
type Info map[string]bool
