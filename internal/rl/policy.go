// Package rl provides a small tabular reinforcement learning harness for
// the jumping task: policies over discretized observations, an episode
// runner and learning-curve analysis.
package rl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// Policy chooses actions from discretized observation keys and learns from
// step transitions. Implementations are not safe for concurrent use.
type Policy interface {
	// NextAction picks an action for the given state. The second return
	// is false when the policy cannot choose (empty action set).
	NextAction(step int, state string, actions []core.Action) (core.Action, bool)

	// Update feeds one transition back into the policy.
	Update(step int, state string, action core.Action, nextState string, reward float64, done bool)

	// Reset clears learned state.
	Reset()

	// Name identifies the policy in logs and stored results.
	Name() string
}

// StateKey discretizes an observation into a table key. Coordinate
// observations produce compact keys; raster observations hash poorly into
// large tables and are better paired with the coordinates variant.
func StateKey(obs core.Observation) string {
	values := obs.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// RandomPolicy picks uniformly among the legal actions. It is the
// exploration baseline the learned policies are compared against.
type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rand: rand.New(rand.NewSource(seed))}
}

func (r *RandomPolicy) Name() string { return "random" }

func (r *RandomPolicy) NextAction(_ int, _ string, actions []core.Action) (core.Action, bool) {
	if len(actions) == 0 {
		return 0, false
	}
	return actions[r.rand.Intn(len(actions))], true
}

func (r *RandomPolicy) Update(_ int, _ string, _ core.Action, _ string, _ float64, _ bool) {}

func (r *RandomPolicy) Reset() {}

// QTable maps state keys to per-action values.
type QTable map[string]map[core.Action]float64

func (q QTable) ensure(state string, actions []core.Action) map[core.Action]float64 {
	row, ok := q[state]
	if !ok {
		row = make(map[core.Action]float64, len(actions))
		q[state] = row
	}
	for _, a := range actions {
		if _, ok := row[a]; !ok {
			row[a] = 0
		}
	}
	return row
}

func (q QTable) max(state string) float64 {
	best := 0.0
	first := true
	for _, v := range q[state] {
		if first || v > best {
			best = v
			first = false
		}
	}
	return best
}

// EpsilonGreedyPolicy is tabular Q-learning with epsilon-greedy
// exploration.
type EpsilonGreedyPolicy struct {
	Table   QTable
	alpha   float64
	gamma   float64
	epsilon float64
	rand    *rand.Rand
}

var _ Policy = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(alpha, gamma, epsilon float64, seed uint64) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		Table:   make(QTable),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

func (p *EpsilonGreedyPolicy) Name() string {
	return fmt.Sprintf("epsilon-greedy(e=%g)", p.epsilon)
}

func (p *EpsilonGreedyPolicy) NextAction(_ int, state string, actions []core.Action) (core.Action, bool) {
	if len(actions) == 0 {
		return 0, false
	}
	row := p.Table.ensure(state, actions)

	if p.rand.Float64() < p.epsilon {
		return actions[p.rand.Intn(len(actions))], true
	}

	best := actions[0]
	bestVal := math.Inf(-1)
	for _, a := range actions {
		if v := row[a]; v > bestVal {
			best, bestVal = a, v
		}
	}
	return best, true
}

func (p *EpsilonGreedyPolicy) Update(_ int, state string, action core.Action, nextState string, reward float64, done bool) {
	row, ok := p.Table[state]
	if !ok {
		return
	}
	target := reward
	if !done {
		target += p.gamma * p.Table.max(nextState)
	}
	row[action] = (1-p.alpha)*row[action] + p.alpha*target
}

func (p *EpsilonGreedyPolicy) Reset() {
	p.Table = make(QTable)
}

// SoftmaxPolicy samples actions with probabilities proportional to the
// exponentiated Q-values, so better-valued actions are preferred without
// ever starving the rest.
type SoftmaxPolicy struct {
	Table QTable
	alpha float64
	gamma float64
	rand  *rand.Rand
}

var _ Policy = &SoftmaxPolicy{}

func NewSoftmaxPolicy(alpha, gamma float64, seed uint64) *SoftmaxPolicy {
	return &SoftmaxPolicy{
		Table: make(QTable),
		alpha: alpha,
		gamma: gamma,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (p *SoftmaxPolicy) Name() string { return "softmax" }

func (p *SoftmaxPolicy) NextAction(_ int, state string, actions []core.Action) (core.Action, bool) {
	if len(actions) == 0 {
		return 0, false
	}
	row := p.Table.ensure(state, actions)

	// Shift by the max before exponentiating to keep the weights finite.
	maxVal := math.Inf(-1)
	for _, a := range actions {
		if row[a] > maxVal {
			maxVal = row[a]
		}
	}
	weights := make([]float64, len(actions))
	for i, a := range actions {
		weights[i] = math.Exp(row[a] - maxVal)
	}

	i, ok := sampleuv.NewWeighted(weights, p.rand).Take()
	if !ok {
		return 0, false
	}
	return actions[i], true
}

func (p *SoftmaxPolicy) Update(_ int, state string, action core.Action, nextState string, reward float64, done bool) {
	row, ok := p.Table[state]
	if !ok {
		return
	}
	target := reward
	if !done {
		target += p.gamma * p.Table.max(nextState)
	}
	row[action] = (1-p.alpha)*row[action] + p.alpha*target
}

func (p *SoftmaxPolicy) Reset() {
	p.Table = make(QTable)
}
