package env

import (
	"testing"

	"github.com/vovakirdan/jumping-task/internal/core"
)

func TestGrayscaleFrame(t *testing.T) {
	e := newTestEnv(t, testConfig())
	obs, err := e.ResetTo(30, 10, false)
	if err != nil {
		t.Fatalf("ResetTo failed: %v", err)
	}

	frame, ok := obs.(*Frame)
	if !ok {
		t.Fatalf("Expected *Frame, got %T", obs)
	}
	if shape := frame.Shape(); shape[0] != 60 || shape[1] != 60 {
		t.Fatalf("Expected shape (60, 60), got %v", shape)
	}

	// Agent occupies [0,5)x[10,20), drawn white. Row 0 is the bottom.
	if got := frame.At(15, 2); got != pixelWhite {
		t.Errorf("Expected white agent pixel, got %v", got)
	}
	// Obstacle occupies [30,39)x[10,20), drawn gray. Its bottom row is
	// overdrawn by the floor line.
	if got := frame.At(15, 34); got != pixelGray {
		t.Errorf("Expected gray obstacle pixel, got %v", got)
	}
	if got := frame.At(10, 34); got != pixelWhite {
		t.Errorf("Expected the floor line over the obstacle base, got %v", got)
	}
	// Floor line and screen outline are white.
	if got := frame.At(10, 50); got != pixelWhite {
		t.Errorf("Expected white floor pixel, got %v", got)
	}
	for _, p := range [][2]int{{0, 25}, {59, 25}, {30, 0}, {30, 59}} {
		if got := frame.At(p[0], p[1]); got != pixelWhite {
			t.Errorf("Expected white outline pixel at %v, got %v", p, got)
		}
	}
	// Open sky is background.
	if got := frame.At(40, 20); got != 0 {
		t.Errorf("Expected empty background, got %v", got)
	}

	if len(frame.Values()) != 60*60 {
		t.Errorf("Expected 3600 values, got %d", len(frame.Values()))
	}
}

func TestRGBFrame(t *testing.T) {
	e := newTestEnv(t, colorConfig("green"))
	obs, err := e.ResetTo(30, 10, false)
	if err != nil {
		t.Fatalf("ResetTo failed: %v", err)
	}

	frame, ok := obs.(*RGBFrame)
	if !ok {
		t.Fatalf("Expected *RGBFrame, got %T", obs)
	}
	if shape := frame.Shape(); shape[0] != 60 || shape[1] != 60 || shape[2] != 3 {
		t.Fatalf("Expected shape (60, 60, 3), got %v", shape)
	}

	// Row 0 is the top of the screen: world y maps to row 59-y.
	row := func(worldY int) int { return 59 - worldY }

	// Agent is white across all channels.
	for c := 0; c < 3; c++ {
		if got := frame.At(row(15), 2, c); got != pixelWhite {
			t.Errorf("Expected white agent pixel in channel %d, got %v", c, got)
		}
	}
	// Green obstacle: half intensity in channel 1, zero elsewhere.
	if got := frame.At(row(15), 34, 1); got != pixelGray {
		t.Errorf("Expected obstacle in the green channel, got %v", got)
	}
	for _, c := range []int{0, 2} {
		if got := frame.At(row(15), 34, c); got != 0 {
			t.Errorf("Expected empty channel %d over the obstacle, got %v", c, got)
		}
	}
	// Outline and floor are white.
	for c := 0; c < 3; c++ {
		if got := frame.At(0, 25, c); got != pixelWhite {
			t.Errorf("Expected white top border in channel %d, got %v", c, got)
		}
		if got := frame.At(row(10), 50, c); got != pixelWhite {
			t.Errorf("Expected white floor in channel %d, got %v", c, got)
		}
	}

	if len(frame.Values()) != 60*60*3 {
		t.Errorf("Expected 10800 values, got %d", len(frame.Values()))
	}
}

func TestRGBRedObstacleChannel(t *testing.T) {
	e := newTestEnv(t, colorConfig("red"))
	obs, err := e.ResetTo(30, 10, false)
	if err != nil {
		t.Fatalf("ResetTo failed: %v", err)
	}
	frame := obs.(*RGBFrame)

	if got := frame.At(59-15, 34, 0); got != pixelGray {
		t.Errorf("Expected obstacle in the red channel, got %v", got)
	}
	if got := frame.At(59-15, 34, 1); got != 0 {
		t.Errorf("Expected empty green channel over the obstacle, got %v", got)
	}
}

func TestCoordinatesObservation(t *testing.T) {
	cfg := testConfig()
	cfg.Observation = "coordinates"
	e := newTestEnv(t, cfg)

	obs, err := e.ResetTo(30, 10, false)
	if err != nil {
		t.Fatalf("ResetTo failed: %v", err)
	}
	coords, ok := obs.(*Coordinates)
	if !ok {
		t.Fatalf("Expected *Coordinates, got %T", obs)
	}
	if coords.DX() != -30 || coords.DY() != 0 {
		t.Errorf("Expected (-30, 0), got (%v, %v)", coords.DX(), coords.DY())
	}

	obs, _, _, _, err = e.Step(core.ActionRight)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	coords = obs.(*Coordinates)
	if coords.DX() != -29 || coords.DY() != 0 {
		t.Errorf("Expected (-29, 0) after a right step, got (%v, %v)", coords.DX(), coords.DY())
	}

	obs, _, _, _, err = e.Step(core.ActionJump)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	coords = obs.(*Coordinates)
	if coords.DX() != -28 || coords.DY() != 1 {
		t.Errorf("Expected (-28, 1) after a jump tick, got (%v, %v)", coords.DX(), coords.DY())
	}
}

func TestObservationShapes(t *testing.T) {
	cases := []struct {
		observation string
		shape       []int
	}{
		{"grayscale", []int{60, 60}},
		{"rgb", []int{60, 60, 3}},
		{"coordinates", []int{2}},
	}
	for _, tc := range cases {
		cfg := testConfig()
		cfg.Observation = tc.observation
		e := newTestEnv(t, cfg)

		declared := e.ObservationShape()
		obs, err := e.Reset()
		if err != nil {
			t.Fatalf("%s: Reset failed: %v", tc.observation, err)
		}
		got := obs.Shape()
		if len(got) != len(tc.shape) {
			t.Fatalf("%s: expected shape %v, got %v", tc.observation, tc.shape, got)
		}
		for i := range got {
			if got[i] != tc.shape[i] || declared[i] != tc.shape[i] {
				t.Errorf("%s: expected shape %v, declared %v, observed %v",
					tc.observation, tc.shape, declared, got)
			}
		}
	}
}

func TestObservationSpaceContains(t *testing.T) {
	for _, observation := range []string{"grayscale", "rgb", "coordinates"} {
		cfg := testConfig()
		cfg.Observation = observation
		e := newTestEnv(t, cfg)
		space := e.ObservationSpace()

		obs, err := e.Reset()
		if err != nil {
			t.Fatalf("%s: Reset failed: %v", observation, err)
		}
		if !space.Contains(obs) {
			t.Errorf("%s: initial observation out of declared bounds", observation)
		}

		// Observations stay within bounds along a whole episode.
		for i := 0; i < 60; i++ {
			obs, _, done, _, err := e.Step(core.ActionRight)
			if err != nil {
				t.Fatalf("%s: Step failed: %v", observation, err)
			}
			if !space.Contains(obs) {
				t.Errorf("%s: observation at step %d out of bounds", observation, i)
				break
			}
			if done {
				break
			}
		}
	}
}

func TestActionSpace(t *testing.T) {
	e := newTestEnv(t, testConfig())
	space := e.ActionSpace()
	if !space.Discrete || space.N != 2 {
		t.Errorf("Expected discrete space with 2 actions, got %+v", space)
	}

	cfg := testConfig()
	cfg.WithLeftAction = true
	e = newTestEnv(t, cfg)
	if got := e.ActionSpace().N; got != 3 {
		t.Errorf("Expected 3 actions with left enabled, got %d", got)
	}
}

func TestTwoObstacleLayout(t *testing.T) {
	// The fixed pair sits at x=20 and x=55. Walking on the floor collides
	// with the first obstacle.
	e := newTestEnv(t, testConfig())
	if _, err := e.ResetTo(0, 10, true); err != nil {
		t.Fatalf("ResetTo failed: %v", err)
	}

	s := e.State()
	if len(s.Obstacles) != 2 || s.Obstacles[0] != ObstacleOneX || s.Obstacles[1] != ObstacleTwoX {
		t.Fatalf("Expected obstacles at {20, 55}, got %v", s.Obstacles)
	}

	var done bool
	var info core.Info
	for i := 0; i < 30 && !done; i++ {
		var err error
		_, _, done, info, err = e.Step(core.ActionRight)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	if !done || !info["collision"] {
		t.Fatal("Expected collision with the first obstacle")
	}
	if got := e.State().AgentX; got != 16 {
		t.Errorf("Expected first contact at x=16, got %v", got)
	}
}

func TestTwoObstacleGapTraversal(t *testing.T) {
	// A well-timed jump lands the agent in the gap between the pair, where
	// no collision is possible; walking on collides with the second
	// obstacle.
	cfg := testConfig()
	cfg.FinishJump = true
	e := newTestEnv(t, cfg)
	if _, err := e.ResetTo(0, 10, true); err != nil {
		t.Fatalf("ResetTo failed: %v", err)
	}

	for i := 0; i < 6; i++ {
		_, _, done, info, err := e.Step(core.ActionRight)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if done || info["collision"] {
			t.Fatalf("Unexpected terminal while approaching (x=%v)", e.State().AgentX)
		}
	}

	_, _, done, info, err := e.Step(core.ActionJump)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if done || info["collision"] {
		t.Fatalf("Expected a clean jump over the first obstacle, got collision at x=%v", e.State().AgentX)
	}
	if got := e.State().AgentX; got != 38 {
		t.Fatalf("Expected landing in the gap at x=38, got %v", got)
	}

	for i := 0; i < 30 && !done; i++ {
		_, _, done, info, err = e.Step(core.ActionRight)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	if !done || !info["collision"] {
		t.Fatal("Expected collision with the second obstacle")
	}
	if got := e.State().AgentX; got != 51 {
		t.Errorf("Expected contact with the second obstacle at x=51, got %v", got)
	}
}
