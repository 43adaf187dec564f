package registry

import (
	"testing"

	"github.com/vovakirdan/tui-drag/internal/config"
)

type stubScene struct {
	id, title string
}

func (s stubScene) ID() string                   { return s.id }
func (s stubScene) Title() string                { return s.title }
func (s stubScene) Apply(cfg *config.DragConfig) { cfg.Playground.Element.Label = s.id }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-test", func() Scene { return stubScene{"zz-test", "Test Z"} })
	Register("aa-test", func() Scene { return stubScene{"aa-test", "Test A"} })

	if !Exists("zz-test") || Exists("missing") {
		t.Error("Exists() reported wrong membership")
	}

	s, err := Create("aa-test")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	cfg := config.DefaultDragConfig()
	s.Apply(&cfg)
	if cfg.Playground.Element.Label != "aa-test" {
		t.Errorf("Apply() label = %q", cfg.Playground.Element.Label)
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown scene should fail")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
	found := false
	for _, info := range list {
		if info.ID == "zz-test" && info.Title == "Test Z" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, missing zz-test", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-test", func() Scene { return stubScene{"dup-test", "Dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() did not panic")
		}
	}()
	Register("dup-test", func() Scene { return stubScene{"dup-test", "Dup"} })
}
