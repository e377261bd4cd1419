package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	stage        int
	updateCalled int
	drawCalled   bool
	deltaTime    float64
	finished     bool
	closed       int
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled++
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) Finished() bool {
	return m.finished
}

func (m *MockScene) Close() {
	m.closed++
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 1.0 / 60
	sm.Update(deltaTime)

	if mockScene.updateCalled != 1 {
		t.Errorf("Scene's Update called %d times, want 1", mockScene.updateCalled)
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles nil scene gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // Should not panic
	sm.LoadStage(1)  // no factory: logged and ignored
	if sm.GetCurrentScene() != nil {
		t.Error("LoadStage without factory must not create a scene")
	}
}

// TestLoadStageSwitchesOnNextUpdate 关卡切换在下一次 Update 时生效
func TestLoadStageSwitchesOnNextUpdate(t *testing.T) {
	sm := NewSceneManager()
	created := map[int]*MockScene{}
	sm.SetSceneFactory(func(stage int) Scene {
		s := &MockScene{stage: stage}
		created[stage] = s
		return s
	})

	sm.LoadStage(1)
	if sm.GetCurrentScene() != created[1] {
		t.Fatal("first stage should become active immediately")
	}

	sm.Update(0.016)
	sm.LoadStage(2)
	if sm.GetCurrentScene() != created[1] {
		t.Error("switch must be deferred until the next update")
	}

	sm.Update(0.016)
	if sm.GetCurrentScene() != created[2] {
		t.Error("stage 2 should be active after update")
	}
	if created[2].updateCalled != 1 {
		t.Errorf("stage 2 updated %d times, want 1", created[2].updateCalled)
	}
	if sm.CurrentStage() != 2 {
		t.Errorf("CurrentStage = %d, want 2", sm.CurrentStage())
	}
	if created[1].closed != 1 {
		t.Errorf("replaced scene closed %d times, want 1", created[1].closed)
	}
	if created[2].closed != 0 {
		t.Error("active scene must not be closed")
	}
}

// TestFinishedSceneIsNotUpdated 结束的场景不再更新
func TestFinishedSceneIsNotUpdated(t *testing.T) {
	sm := NewSceneManager()
	s := &MockScene{finished: true}
	sm.SwitchTo(s)
	sm.Update(0.016)
	if s.updateCalled != 0 {
		t.Error("finished scene must not be updated")
	}
	if !sm.Finished() {
		t.Error("manager should report finished")
	}
}
