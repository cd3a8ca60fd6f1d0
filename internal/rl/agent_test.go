package rl

import (
	"context"
	"testing"

	"github.com/vovakirdan/jumping-task/internal/config"
	"github.com/vovakirdan/jumping-task/internal/core"
	"github.com/vovakirdan/jumping-task/internal/env"
)

func coordinatesEnv(t *testing.T) *env.Env {
	t.Helper()
	cfg := config.Default()
	cfg.Observation = "coordinates"
	cfg.Seed = 987
	e, err := env.New(cfg)
	if err != nil {
		t.Fatalf("env.New failed: %v", err)
	}
	return e
}

func TestAgentRun(t *testing.T) {
	e := coordinatesEnv(t)
	agent := NewAgent(Config{Episodes: 5, Horizon: 700}, NewRandomPolicy(1), e)

	results, err := agent.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("Expected 5 episode results, got %d", len(results))
	}
	for i, r := range results {
		if r.Episode != i {
			t.Errorf("Result %d has episode %d", i, r.Episode)
		}
		if r.Steps == 0 || r.Steps > 700 {
			t.Errorf("Episode %d ran %d steps", i, r.Steps)
		}
		// A random walker on the default layout ends by collision,
		// success, the step ceiling or the horizon.
		if !r.Collision && !r.Success && r.Steps < 600 {
			t.Errorf("Episode %d ended with no terminal signal after %d steps", i, r.Steps)
		}
	}
}

func TestAgentDeterminism(t *testing.T) {
	run := func() []EpisodeResult {
		e := coordinatesEnv(t)
		agent := NewAgent(Config{Episodes: 10, Horizon: 700}, NewRandomPolicy(42), e)
		results, err := agent.Run(context.Background())
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return results
	}

	r1, r2 := run(), run()
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Fatalf("Episode %d diverged: %+v vs %+v", i, r1[i], r2[i])
		}
	}
}

func TestAgentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := coordinatesEnv(t)
	agent := NewAgent(Config{Episodes: 5, Horizon: 700}, NewRandomPolicy(1), e)
	results, err := agent.Run(ctx)
	if err == nil {
		t.Error("Expected context error")
	}
	if len(results) != 0 {
		t.Errorf("Expected no completed episodes, got %d", len(results))
	}
}

func TestAgentOnStepCallback(t *testing.T) {
	e := coordinatesEnv(t)
	steps := 0
	agent := NewAgent(Config{
		Episodes: 1,
		Horizon:  50,
		OnStep: func(episode, step int, obs core.Observation, action core.Action, reward float64) {
			steps++
		},
	}, NewRandomPolicy(1), e)

	results, err := agent.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if steps != results[0].Steps {
		t.Errorf("OnStep called %d times for %d steps", steps, results[0].Steps)
	}
}

func TestStateKey(t *testing.T) {
	e := coordinatesEnv(t)
	obs, err := e.ResetTo(30, 10, false)
	if err != nil {
		t.Fatalf("ResetTo failed: %v", err)
	}
	if got := StateKey(obs); got != "-30,0" {
		t.Errorf("StateKey = %q, expected \"-30,0\"", got)
	}
}

func TestEpsilonGreedyExploitation(t *testing.T) {
	// With epsilon 0 the policy must always pick the best-valued action.
	p := NewEpsilonGreedyPolicy(0.5, 0.9, 0, 7)
	actions := []core.Action{core.ActionRight, core.ActionJump}
	p.Table["s"] = map[core.Action]float64{
		core.ActionRight: 1,
		core.ActionJump:  5,
	}

	for i := 0; i < 10; i++ {
		a, ok := p.NextAction(i, "s", actions)
		if !ok {
			t.Fatal("NextAction failed")
		}
		if a != core.ActionJump {
			t.Fatalf("Expected the best-valued action, got %v", a)
		}
	}
}

func TestQLearningUpdate(t *testing.T) {
	p := NewEpsilonGreedyPolicy(0.5, 1.0, 1.0, 7)
	actions := []core.Action{core.ActionRight, core.ActionJump}

	// Seed the rows through action selection.
	if _, ok := p.NextAction(0, "a", actions); !ok {
		t.Fatal("NextAction failed")
	}
	p.Table["b"] = map[core.Action]float64{core.ActionRight: 4}

	// Q(a, right) <- 0.5*0 + 0.5*(2 + 1*max Q(b)) = 3
	p.Update(0, "a", core.ActionRight, "b", 2, false)
	if got := p.Table["a"][core.ActionRight]; got != 3 {
		t.Errorf("Expected Q-value 3, got %v", got)
	}

	// Terminal transitions bootstrap from nothing:
	// Q(a, right) <- 0.5*3 + 0.5*10 = 6.5
	p.Update(0, "a", core.ActionRight, "b", 10, true)
	if got := p.Table["a"][core.ActionRight]; got != 6.5 {
		t.Errorf("Expected Q-value 6.5, got %v", got)
	}
}

func TestSoftmaxDeterminism(t *testing.T) {
	actions := []core.Action{core.ActionRight, core.ActionJump, core.ActionLeft}

	pick := func() []core.Action {
		p := NewSoftmaxPolicy(0.5, 0.9, 99)
		p.Table["s"] = map[core.Action]float64{
			core.ActionRight: 1,
			core.ActionJump:  2,
			core.ActionLeft:  0,
		}
		out := make([]core.Action, 20)
		for i := range out {
			a, ok := p.NextAction(i, "s", actions)
			if !ok {
				t.Fatal("NextAction failed")
			}
			out[i] = a
		}
		return out
	}

	s1, s2 := pick(), pick()
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("Softmax draw %d diverged: %v vs %v", i, s1[i], s2[i])
		}
	}
}

func TestPolicyReset(t *testing.T) {
	p := NewEpsilonGreedyPolicy(0.5, 0.9, 0.1, 7)
	p.Table["s"] = map[core.Action]float64{core.ActionRight: 1}
	p.Reset()
	if len(p.Table) != 0 {
		t.Error("Reset should clear the Q-table")
	}
}

func TestSummarize(t *testing.T) {
	results := []EpisodeResult{
		{Episode: 0, Steps: 10, Return: 2, Success: false},
		{Episode: 1, Steps: 20, Return: 4, Success: true},
		{Episode: 2, Steps: 30, Return: 6, Success: true},
	}

	s := Summarize(results)
	if s.Episodes != 3 {
		t.Errorf("Expected 3 episodes, got %d", s.Episodes)
	}
	if s.MeanReturn != 4 {
		t.Errorf("Expected mean return 4, got %v", s.MeanReturn)
	}
	if s.BestReturn != 6 {
		t.Errorf("Expected best return 6, got %v", s.BestReturn)
	}
	if s.SuccessRate < 0.66 || s.SuccessRate > 0.67 {
		t.Errorf("Expected success rate 2/3, got %v", s.SuccessRate)
	}

	if empty := Summarize(nil); empty.Episodes != 0 {
		t.Errorf("Expected empty summary, got %+v", empty)
	}
}

func TestVisitGrid(t *testing.T) {
	g := NewVisitGrid(4, 3)

	cols, rows := g.Dims()
	if cols != 4 || rows != 3 {
		t.Fatalf("Dims = (%d, %d), expected (4, 3)", cols, rows)
	}

	g.Record(1, 2)
	g.Record(1, 2)
	g.Record(0, 0)
	if got := g.Z(1, 2); got != 2 {
		t.Errorf("Z(1, 2) = %v, expected 2", got)
	}
	if got := g.Z(0, 0); got != 1 {
		t.Errorf("Z(0, 0) = %v, expected 1", got)
	}

	// Out-of-range positions clamp to the edges.
	g.Record(-5, 100)
	if got := g.Z(0, 2); got != 1 {
		t.Errorf("Expected clamped visit at (0, 2), got %v", got)
	}

	if g.X(2) != 2 || g.Y(1) != 1 {
		t.Error("Grid coordinates should match cell indices")
	}
}

func TestVisitGridRecordsEnvPositions(t *testing.T) {
	e := coordinatesEnv(t)
	if _, err := e.ResetTo(30, 10, false); err != nil {
		t.Fatalf("ResetTo failed: %v", err)
	}

	s := e.State()
	g := NewVisitGrid(s.ScreenW, s.ScreenH)
	for i := 0; i < 5; i++ {
		if _, _, _, _, err := e.Step(core.ActionRight); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		s := e.State()
		g.Record(s.AgentX, s.AgentY)
	}

	// Five right steps from x=0 on floor 10 visit cells (1,10)..(5,10).
	for x := 1; x <= 5; x++ {
		if got := g.Z(x, 10); got != 1 {
			t.Errorf("Z(%d, 10) = %v, expected 1", x, got)
		}
	}
}
