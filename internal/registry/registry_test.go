package registry

import (
	"testing"

	"github.com/vovakirdan/jumping-task/internal/core"
)

type stubEnv struct{ id string }

func (s *stubEnv) ID() string    { return s.id }
func (s *stubEnv) Title() string { return "Stub" }
func (s *stubEnv) Reset() (core.Observation, error) {
	return nil, nil
}
func (s *stubEnv) ResetTo(obstaclePos, floorHeight float64, twoObstacles bool) (core.Observation, error) {
	return nil, nil
}
func (s *stubEnv) Step(action core.Action) (core.Observation, float64, bool, core.Info, error) {
	return nil, 0, false, nil, nil
}
func (s *stubEnv) Seed(seed int64) int64       { return seed }
func (s *stubEnv) LegalActions() []core.Action { return []core.Action{core.ActionRight} }
func (s *stubEnv) ObservationShape() []int     { return []int{2} }
func (s *stubEnv) Close()                      {}

func stubFactory(id string) Factory {
	return func() (Environment, error) {
		return &stubEnv{id: id}, nil
	}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-b", "Test B", stubFactory("test-b"))
	Register("test-a", "Test A", stubFactory("test-a"))

	if !Exists("test-a") {
		t.Error("test-a should exist after registration")
	}
	if Exists("test-missing") {
		t.Error("test-missing should not exist")
	}

	env, err := Create("test-a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if env.ID() != "test-a" {
		t.Errorf("Expected ID test-a, got %s", env.ID())
	}

	if _, err := Create("test-missing"); err == nil {
		t.Error("Create should fail for unknown ID")
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	if len(list) < 2 {
		t.Fatalf("Expected at least 2 registered variants, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List not sorted: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register("test-dup", "Dup", stubFactory("test-dup"))
	Register("test-dup", "Dup", stubFactory("test-dup"))
}
