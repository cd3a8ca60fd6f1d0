package env

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/jumping-task/internal/config"
	"github.com/vovakirdan/jumping-task/internal/core"
)

// TerminalReason records why an episode ended.
type TerminalReason int

const (
	ReasonNone TerminalReason = iota
	ReasonCollision
	ReasonExit
)

// String returns a human-readable name for the reason.
func (r TerminalReason) String() string {
	switch r {
	case ReasonCollision:
		return "Collision"
	case ReasonExit:
		return "Exit"
	default:
		return "None"
	}
}

// State is a read-only snapshot of the episode, consumed by observation
// encoders, reward rules and the renderer. Encoders never mutate it.
type State struct {
	AgentX, AgentY float64
	AgentW, AgentH float64
	JumpVelocity   float64
	Phase          JumpPhase

	// Obstacles holds the x positions of the rectangles on the floor:
	// one entry for the single-obstacle layout, two for the fixed pair.
	Obstacles            []float64
	ObstacleW, ObstacleH float64
	ObstacleColor        ObstacleColor

	FloorHeight      float64
	ScreenW, ScreenH int

	StepCount int
	Done      bool
	Reason    TerminalReason
}

// AgentRect returns the agent's collision rectangle.
func (s State) AgentRect() core.Rect {
	return core.NewRect(s.AgentX, s.AgentY, s.AgentW, s.AgentH)
}

// ObstacleRects returns the collision rectangles of all obstacles.
func (s State) ObstacleRects() []core.Rect {
	rects := make([]core.Rect, len(s.Obstacles))
	for i, ox := range s.Obstacles {
		rects[i] = core.NewRect(ox, s.FloorHeight, s.ObstacleW, s.ObstacleH)
	}
	return rects
}

// Env is the jumping task episode state machine. It owns the per-episode
// state exclusively; observation encoding and reward shaping are delegated
// to the Encoder and RewardRule strategies chosen at construction. An Env
// is not safe for concurrent use, but independent instances share no state
// and may run in parallel.
type Env struct {
	cfg     config.Config
	encoder Encoder
	rule    RewardRule
	color   ObstacleColor
	rng     *rand.Rand

	agentX, agentY float64
	jumpVelocity   float64
	phase          JumpPhase
	obstacleX      float64
	floorHeight    float64
	twoObstacles   bool
	stepCount      int
	done           bool
	reason         TerminalReason
}

// New creates a jumping task environment from the given configuration and
// starts a first episode with the configured obstacle position and floor
// height. Callers that want random episode parameters should call Reset
// before stepping.
func New(cfg config.Config) (*Env, error) {
	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		return nil, fmt.Errorf("env: invalid screen size %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}

	color, err := ParseObstacleColor(cfg.Obstacle.Color)
	if err != nil {
		return nil, err
	}

	e := &Env{
		cfg:   cfg,
		color: color,
	}
	e.Seed(cfg.Seed)

	switch cfg.Observation {
	case "", "grayscale":
		e.encoder = &GrayscaleEncoder{Width: cfg.Screen.Width, Height: cfg.Screen.Height}
		e.rule = &standardRule{rewards: cfg.Rewards}
	case "rgb":
		e.encoder = &RGBEncoder{Width: cfg.Screen.Width, Height: cfg.Screen.Height, Color: color}
		e.rule = newColorRule(color, cfg.Rewards)
	case "coordinates":
		e.encoder = &CoordinatesEncoder{}
		e.rule = &standardRule{rewards: cfg.Rewards}
	default:
		return nil, fmt.Errorf("env: unknown observation encoding %q", cfg.Observation)
	}

	if _, err := e.ResetTo(cfg.Obstacle.X, cfg.FloorHeight, cfg.TwoObstacles); err != nil {
		return nil, err
	}
	return e, nil
}

// ID returns the registered identifier of this environment variant.
func (e *Env) ID() string {
	switch e.cfg.Observation {
	case "rgb":
		return "jumping-colors-v0"
	case "coordinates":
		return "jumping-coordinates-v0"
	default:
		return "jumping-v0"
	}
}

// Title returns a human-readable name for this environment variant.
func (e *Env) Title() string {
	switch e.cfg.Observation {
	case "rgb":
		return "Jumping Task (Colors)"
	case "coordinates":
		return "Jumping Task (Coordinates)"
	default:
		return "Jumping Task"
	}
}

// Config returns the construction-time configuration.
func (e *Env) Config() config.Config {
	return e.cfg
}

// State returns a snapshot of the current episode.
func (e *Env) State() State {
	obstacles := []float64{e.obstacleX}
	if e.twoObstacles {
		obstacles = []float64{ObstacleOneX, ObstacleTwoX}
	}
	return State{
		AgentX:        e.agentX,
		AgentY:        e.agentY,
		AgentW:        e.cfg.Agent.Width,
		AgentH:        e.cfg.Agent.Height,
		JumpVelocity:  e.jumpVelocity,
		Phase:         e.phase,
		Obstacles:     obstacles,
		ObstacleW:     e.cfg.Obstacle.Width,
		ObstacleH:     e.cfg.Obstacle.Height,
		ObstacleColor: e.color,
		FloorHeight:   e.floorHeight,
		ScreenW:       e.cfg.Screen.Width,
		ScreenH:       e.cfg.Screen.Height,
		StepCount:     e.stepCount,
		Done:          e.done,
		Reason:        e.reason,
	}
}

// Seed reseeds the environment-local random source used by random resets
// and returns the resolved seed. A zero seed resolves to a time-derived
// one so that unseeded environments still differ from each other.
func (e *Env) Seed(seed int64) int64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(seed))
	return seed
}

// LegalActions returns the action set accepted by Step.
func (e *Env) LegalActions() []core.Action {
	actions := []core.Action{core.ActionRight, core.ActionJump}
	if e.cfg.WithLeftAction {
		actions = append(actions, core.ActionLeft)
	}
	return actions
}

// ObservationShape returns the fixed shape of this variant's observations.
func (e *Env) ObservationShape() []int {
	return e.encoder.Shape()
}

// Reset starts a new training episode with the obstacle position and floor
// height drawn uniformly from the allowed sets.
func (e *Env) Reset() (core.Observation, error) {
	obstacleX := AllowedObstacleX[e.rng.Intn(len(AllowedObstacleX))]
	floorHeight := AllowedFloorY[e.rng.Intn(len(AllowedFloorY))]
	return e.ResetTo(obstacleX, floorHeight, e.cfg.TwoObstacles)
}

// ResetTo starts a new episode with explicit obstacle position and floor
// height. With twoObstacles set, the obstacle position argument is ignored
// and the canonical fixed pair is used. Out-of-range parameters fail the
// reset without touching the previous episode state.
func (e *Env) ResetTo(obstaclePos, floorHeight float64, twoObstacles bool) (core.Observation, error) {
	if !twoObstacles && (obstaclePos < MinObstacleX || obstaclePos >= MaxObstacleX) {
		return nil, &core.OutOfRangeError{Field: "obstacle position", Value: obstaclePos, Min: MinObstacleX, Max: MaxObstacleX}
	}
	if floorHeight < MinFloorY || floorHeight >= MaxFloorY {
		return nil, &core.OutOfRangeError{Field: "floor height", Value: floorHeight, Min: MinFloorY, Max: MaxFloorY}
	}

	e.agentX = e.cfg.Agent.InitX
	e.agentY = floorHeight
	e.jumpVelocity = e.cfg.Agent.Speed * JumpHorizontalSpeed
	e.phase = PhaseGrounded
	e.floorHeight = floorHeight
	e.twoObstacles = twoObstacles
	if !twoObstacles {
		e.obstacleX = obstaclePos
	}
	e.stepCount = 0
	e.done = false
	e.reason = ReasonNone
	e.rule.Reset()

	return e.encoder.Encode(e.State()), nil
}

// Step advances the episode by one action. It returns the next
// observation, the step reward, whether the episode is over, and an info
// map reporting the collision and success flags independently.
//
// When the agent is airborne the action is not consumed: the jump
// trajectory continues instead. With FinishJump configured, a single call
// resolves the whole trajectory, re-evaluating collision and success after
// every physical tick.
func (e *Env) Step(action core.Action) (core.Observation, float64, bool, core.Info, error) {
	info := core.Info{"collision": false, "success": false}

	// A finished episode is frozen until the next reset.
	if e.done {
		return e.encoder.Encode(e.State()), 0, true, info, nil
	}

	// The step ceiling is a normal terminal transition, not an error.
	if e.stepCount > e.cfg.MaxSteps {
		e.done = true
		return e.encoder.Encode(e.State()), 0, true, info, nil
	}

	if !e.legal(action) {
		return nil, 0, false, nil, &core.IllegalActionError{Action: action, Legal: e.LegalActions()}
	}

	startX := e.agentX

	if e.phase.Airborne() {
		e.continueJump()
	} else {
		switch action {
		case core.ActionRight:
			e.agentX += e.cfg.Agent.Speed
			e.jumpVelocity = e.cfg.Agent.Speed * JumpHorizontalSpeed
		case core.ActionJump:
			e.phase = PhaseAscending
			e.continueJump()
		case core.ActionLeft:
			if e.agentX > 0 {
				e.agentX -= e.cfg.Agent.Speed
				e.jumpVelocity = -e.cfg.Agent.Speed * JumpHorizontalSpeed
			} else {
				e.jumpVelocity = 0
			}
		}
	}

	collision, success := e.evaluate()

	if e.cfg.FinishJump {
		// Resolve the rest of the trajectory within this call. The tick
		// cap bounds the loop even for degenerate configurations.
		for ticks := e.maxJumpTicks(); ticks > 0 && e.phase.Airborne() && !collision && !success; ticks-- {
			e.continueJump()
			collision, success = e.evaluate()
		}
	}

	reward := e.rule.Reward(e.State(), e.agentX-startX, collision, success)
	e.stepCount++

	info["collision"] = collision
	info["success"] = success
	return e.encoder.Encode(e.State()), reward, e.done, info, nil
}

// Close marks the episode terminal. Rendering resources are owned by the
// platform layer; there is nothing else to release here.
func (e *Env) Close() {
	e.done = true
}

// evaluate runs the collision/success detector and lets the reward rule
// decide what the raw flags mean for this variant: which collisions are
// reported and whether the episode ends. Terminal state is updated here.
func (e *Env) evaluate() (collision, success bool) {
	collision, success = detect(e.State())
	collision, done := e.rule.Status(e.State(), collision, success)

	e.done = done
	if done {
		if success {
			e.reason = ReasonExit
		} else {
			e.reason = ReasonCollision
		}
	}
	return collision, success
}

func (e *Env) legal(action core.Action) bool {
	for _, a := range e.LegalActions() {
		if a == action {
			return true
		}
	}
	return false
}

// maxJumpTicks bounds the finish-jump loop: a full hat takes one tick per
// vertical unit up and down, plus slack for the apex overshoot and the
// landing tick.
func (e *Env) maxJumpTicks() int {
	speed := e.cfg.Agent.Speed * JumpVerticalSpeed
	if speed <= 0 {
		return 0
	}
	return int(2*JumpHeight/speed) + 4
}
