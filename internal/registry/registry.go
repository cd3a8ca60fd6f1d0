// Package registry provides a global registry for environment factories.
// Environment variants register themselves in init() functions, allowing
// the platform and tooling to discover and instantiate them without
// hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// Environment is the facade every registered variant must implement.
// It is the shape external tooling (trainers, the demo, remote sessions)
// programs against; all simulation logic lives behind it.
type Environment interface {
	// ID returns a unique identifier for this variant (e.g. "jumping-v0").
	// Used for CLI commands and result storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new episode with obstacle position and floor height
	// drawn from the environment's random source.
	Reset() (core.Observation, error)

	// ResetTo starts a new episode with explicit parameters, bypassing
	// random sampling. With twoObstacles set the obstacle position is
	// ignored and the canonical fixed pair is used instead.
	ResetTo(obstaclePos, floorHeight float64, twoObstacles bool) (core.Observation, error)

	// Step advances the episode by one action and returns the resulting
	// observation, the reward, whether the episode is over, and auxiliary
	// per-step signals (at least the collision flag).
	Step(action core.Action) (core.Observation, float64, bool, core.Info, error)

	// Seed reseeds the environment-local random source and returns the
	// resolved seed (a time-derived one when called with 0).
	Seed(seed int64) int64

	// LegalActions returns the action set accepted by Step.
	LegalActions() []core.Action

	// ObservationShape returns the fixed shape of observations produced
	// by this variant.
	ObservationShape() []int

	// Close marks the episode terminal and releases any attached
	// resources.
	Close()
}

// EnvInfo contains metadata about a registered environment variant.
type EnvInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of an environment.
type Factory func() (Environment, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an environment factory to the registry.
// Typically called from a variant's init() function.
// Panics if a variant with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: environment %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered variants, sorted by ID.
func List() []EnvInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EnvInfo, 0, len(factories))
	for id := range factories {
		result = append(result, EnvInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new environment by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Environment, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown environment %q", id)
	}

	return f()
}

// Exists checks if an environment with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
