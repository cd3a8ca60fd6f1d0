package env

import "math"

// JumpPhase tracks the vertical motion of the agent.
type JumpPhase int

const (
	PhaseGrounded JumpPhase = iota
	PhaseAscending
	PhaseDescending
)

// String returns a human-readable name for the phase.
func (p JumpPhase) String() string {
	switch p {
	case PhaseGrounded:
		return "Grounded"
	case PhaseAscending:
		return "Ascending"
	case PhaseDescending:
		return "Descending"
	default:
		return "Unknown"
	}
}

// Airborne reports whether the agent is mid-jump.
func (p JumpPhase) Airborne() bool {
	return p != PhaseGrounded
}

// continueJump advances the jump trajectory by one physical tick. The
// horizontal position moves by the velocity captured at jump initiation,
// clamped so the agent never leaves the left edge. The flip to descent
// happens only once the agent is strictly above floorHeight+JumpHeight,
// so the apex overshoots the jump height by one vertical increment for a
// single tick. That extra tick of air time is what lets the agent clear
// an obstacle wider than itself.
func (e *Env) continueJump() {
	e.agentX = math.Max(e.agentX+e.jumpVelocity, 0)

	if e.agentY > e.floorHeight+JumpHeight {
		e.phase = PhaseDescending
	}

	switch e.phase {
	case PhaseAscending:
		e.agentY += e.cfg.Agent.Speed * JumpVerticalSpeed
	case PhaseDescending:
		e.agentY -= e.cfg.Agent.Speed * JumpVerticalSpeed
		if e.agentY <= e.floorHeight {
			e.agentY = e.floorHeight
			e.phase = PhaseGrounded
		}
	}
}
