package tui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/core"
	"github.com/vovakirdan/tui-drag/internal/scenes"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

// fakeContext keeps values in a map; nothing else of ssh.Context is used.
type fakeContext struct {
	ssh.Context
	values map[any]any
}

func (c *fakeContext) Value(key any) any       { return c.values[key] }
func (c *fakeContext) SetValue(key, value any) { c.values[key] = value }

type fakeSession struct {
	ssh.Session
	ctx *fakeContext
}

func newFakeSession() fakeSession {
	return fakeSession{ctx: &fakeContext{values: map[any]any{}}}
}

func (s fakeSession) Context() ssh.Context { return s.ctx }
func (s fakeSession) User() string         { return "tester" }

func TestSessionScene(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   string
		wantOK bool
	}{
		{"no command", nil, "", false},
		{"known scene", []string{"free"}, "free", true},
		{"extra args", []string{"classic", "ignored"}, "classic", true},
		{"unknown scene", []string{"nope"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sessionScene(tt.args)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("sessionScene(%v) = %q, %v, want %q, %v", tt.args, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.SceneID != (scenes.Boxed{}).ID() {
		t.Errorf("default scene = %q, want boxed", cfg.SceneID)
	}
	if !cfg.Menu {
		t.Error("menu should be on by default")
	}
	if err := cfg.Drag.Validate(); err != nil {
		t.Errorf("default drag config invalid: %v", err)
	}
}

func TestTeardownDetachesOnDisconnect(t *testing.T) {
	srv := &SSHServer{logger: log.New(io.Discard)}
	m := newTestModel(t, scenes.Boxed{}, nil)

	handler := srv.teardownMiddleware(func(sess ssh.Session) {
		sessionDirectivesOf(sess).track(m.directive)
		// The client drops the connection mid-drag.
		m, _ = send(t, m, press(5, 4), motion(9, 5))
	})
	handler(newFakeSession())

	if m.directive.Attached() {
		t.Error("directive still attached after the session ended")
	}
	if m.lifted() || m.dragInProgress() {
		t.Error("interrupted drag left its markers behind")
	}
	if m.gestures.count != 0 {
		t.Error("interrupted drag produced a drag-end notification")
	}
	if got := m.Transform(); got.X != 4 || got.Y != 1 {
		t.Errorf("Transform() = %+v, want {4 1 0}", got)
	}
}

func TestTeardownTracksMenuPlaygrounds(t *testing.T) {
	srv := &SSHServer{logger: log.New(io.Discard)}
	var session SessionModel

	handler := srv.teardownMiddleware(func(sess ssh.Session) {
		session = NewSessionModel(nil, config.DefaultDragConfig(), core.DefaultConfig(), nil)
		session.track = sessionDirectivesOf(sess).track
		session, _ = sendSession(t, session, tea.KeyMsg{Type: tea.KeyEnter})
		if !session.inPlay || !session.play.directive.Attached() {
			t.Fatal("enter should open an attached playground")
		}
	})
	handler(newFakeSession())

	if session.play.directive.Attached() {
		t.Error("playground opened from the menu still attached after the session ended")
	}
}

func TestSessionDirectivesWithoutMiddleware(t *testing.T) {
	tracked := sessionDirectivesOf(newFakeSession())
	if tracked != nil {
		t.Fatalf("sessionDirectivesOf() = %v, want nil", tracked)
	}
	// A nil collector ignores directives.
	tracked.track(newTestModel(t, scenes.Boxed{}, nil).directive)
}

func TestShutdownClosesJournal(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "journal.db")

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if srv.store == nil {
		t.Fatal("journal was not opened")
	}
	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if _, err := srv.store.SaveGesture(storage.Gesture{SceneID: "boxed", SessionID: "s"}); err == nil {
		t.Error("journal still writable after Shutdown")
	}
}
