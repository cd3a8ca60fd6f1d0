package rl

import (
	"context"
	"fmt"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// Environment is the slice of the environment facade the harness needs.
// Both a direct environment instance and a registry-created one satisfy
// it.
type Environment interface {
	Reset() (core.Observation, error)
	Step(action core.Action) (core.Observation, float64, bool, core.Info, error)
	LegalActions() []core.Action
}

// EpisodeResult summarizes one training episode.
type EpisodeResult struct {
	Episode   int
	Steps     int
	Return    float64
	Collision bool
	Success   bool
}

// Config configures an agent run.
type Config struct {
	Episodes int
	Horizon  int

	// OnStep, when set, observes every transition. Used by the visit
	// heatmap to record where the agent has been.
	OnStep func(episode, step int, obs core.Observation, action core.Action, reward float64)

	// OnEpisode, when set, observes every finished episode. Used by the
	// trainer for progress logging.
	OnEpisode func(result EpisodeResult)
}

// Agent drives a policy through environment episodes.
type Agent struct {
	config      Config
	policy      Policy
	environment Environment
}

// NewAgent instantiates an agent with the given policy and environment.
func NewAgent(config Config, policy Policy, environment Environment) *Agent {
	return &Agent{
		config:      config,
		policy:      policy,
		environment: environment,
	}
}

// Run executes the configured number of episodes and returns their
// results. The context cancels a run between episodes.
func (a *Agent) Run(ctx context.Context) ([]EpisodeResult, error) {
	results := make([]EpisodeResult, 0, a.config.Episodes)
	for i := 0; i < a.config.Episodes; i++ {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result, err := a.RunEpisode(i)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		if a.config.OnEpisode != nil {
			a.config.OnEpisode(result)
		}
	}
	return results, nil
}

// RunEpisode runs a single episode up to the configured horizon.
func (a *Agent) RunEpisode(episode int) (EpisodeResult, error) {
	obs, err := a.environment.Reset()
	if err != nil {
		return EpisodeResult{}, fmt.Errorf("rl: reset failed: %w", err)
	}

	result := EpisodeResult{Episode: episode}
	state := StateKey(obs)
	actions := a.environment.LegalActions()

	for step := 0; step < a.config.Horizon; step++ {
		action, ok := a.policy.NextAction(step, state, actions)
		if !ok {
			break
		}

		nextObs, reward, done, info, err := a.environment.Step(action)
		if err != nil {
			return result, fmt.Errorf("rl: step %d failed: %w", step, err)
		}
		nextState := StateKey(nextObs)
		a.policy.Update(step, state, action, nextState, reward, done)

		if a.config.OnStep != nil {
			a.config.OnStep(episode, step, nextObs, action, reward)
		}

		result.Steps++
		result.Return += reward
		result.Collision = result.Collision || info["collision"]
		result.Success = result.Success || info["success"]

		if done {
			break
		}
		state = nextState
	}
	return result, nil
}
