package tui

import (
	"io"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/core"
	"github.com/vovakirdan/tui-drag/internal/drag"
	"github.com/vovakirdan/tui-drag/internal/registry"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

// SessionModel manages a full session: menu -> playground or journal -> menu.
// This is the top-level model for `tuidrag menu` and for SSH sessions that
// do not name a scene. Each playground opened gets its own journal session.
type SessionModel struct {
	store     *storage.Store
	drag      config.DragConfig
	runtime   core.RuntimeConfig
	logger    *log.Logger
	copy      copyFunc
	track     func(*drag.Directive) // sees every playground's directive, may be nil
	menu      MenuModel
	play      Model
	journal   JournalModel
	inPlay    bool
	inJournal bool
	quitting  bool
	err       error
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(store *storage.Store, cfg config.DragConfig, rt core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:   store,
		drag:    cfg,
		runtime: rt,
		logger:  logger,
		copy:    clipboard.WriteAll,
		menu:    NewMenuModel(store, rt.ScreenW, rt.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch {
	case m.inPlay:
		return m.updatePlay(msg)
	case m.inJournal:
		return m.updateJournal(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsJournal() {
		m.journal = NewJournalModel(m.store, m.menu.CurrentScene(), m.runtime.ScreenW, m.runtime.ScreenH)
		m.inJournal = true
		return m, m.journal.Init()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	scene, err := registry.Create(selected.SceneID)
	if err != nil {
		// Shouldn't happen since the menu only shows registered scenes
		m.logger.Error("cannot create scene", "scene", selected.SceneID, "error", err)
		m.menu = NewMenuModel(m.store, m.runtime.ScreenW, m.runtime.ScreenH)
		return m, nil
	}

	rt := m.runtime
	rt.SceneID = scene.ID()
	rt.SessionID = uuid.NewString()
	play, err := NewModel(scene, m.drag, m.store, rt, m.logger.With("session", rt.SessionID))
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	m.logger.Info("playground opened", "scene", rt.SceneID, "session", rt.SessionID)
	play.copy = m.copy
	if m.track != nil {
		m.track(play.directive)
	}
	m.play = play
	m.inPlay = true
	return m, m.play.Init()
}

// updatePlay handles updates when a playground is open.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if play, ok := next.(Model); ok {
		m.play = play
	}

	if m.play.BackToMenu() {
		m.inPlay = false
		m.menu = NewMenuModel(m.store, m.runtime.ScreenW, m.runtime.ScreenH)
		return m, m.menu.Init()
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateJournal handles updates when the journal browser is open.
func (m SessionModel) updateJournal(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.journal.Update(msg)
	if journal, ok := next.(JournalModel); ok {
		m.journal = journal
	}

	if m.journal.IsGoingBack() {
		m.inJournal = false
		m.menu = NewMenuModel(m.store, m.runtime.ScreenW, m.runtime.ScreenH)
		return m, m.menu.Init()
	}

	if m.journal.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.inPlay:
		return m.play.View()
	case m.inJournal:
		return m.journal.View()
	}
	return m.menu.View()
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// close detaches a playground left open when the program ends.
func (m SessionModel) close() {
	if m.inPlay {
		m.play.directive.Detach()
	}
}

// RunSession runs a menu-driven session in the local terminal.
func RunSession(model SessionModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		m.close()
		return m.Err()
	}
	return nil
}
