package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/santa-arcade/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                         { return g.id }
func (g stubGame) Title() string                      { return strings.ToUpper(g.id) }
func (stubGame) Reset(core.RuntimeConfig)             {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen)                  {}
func (stubGame) State() core.GameState                { return core.GameState{} }

func register(t *testing.T, id string) {
	t.Helper()
	Register(id, func() Game { return stubGame{id: id} })
	t.Cleanup(func() {
		mu.Lock()
		delete(factories, id)
		delete(titles, id)
		mu.Unlock()
	})
}

func TestListIsSortedWithTitles(t *testing.T) {
	register(t, "test-zulu")
	register(t, "test-alpha")

	var got []GameInfo
	for _, g := range List() {
		if strings.HasPrefix(g.ID, "test-") {
			got = append(got, g)
		}
	}
	if len(got) != 2 || got[0].ID != "test-alpha" || got[1].ID != "test-zulu" {
		t.Fatalf("List() = %+v", got)
	}
	if got[0].Title != "TEST-ALPHA" {
		t.Errorf("title = %q", got[0].Title)
	}
}

func TestCreate(t *testing.T) {
	register(t, "test-create")

	g, err := Create("test-create")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "test-create" {
		t.Errorf("ID = %q", g.ID())
	}
	if !Exists("test-create") || Exists("test-missing") {
		t.Error("Exists disagrees with the registry")
	}
	if _, err := Create("test-missing"); err == nil {
		t.Error("expected an error for an unknown game")
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	register(t, "test-dup")
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	Register("test-dup", func() Game { return stubGame{id: "test-dup"} })
}
