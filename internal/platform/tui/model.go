package tui

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/core"
	"github.com/vovakirdan/tui-drag/internal/drag"
	"github.com/vovakirdan/tui-drag/internal/registry"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

// footerRows is the status line plus the help line.
const footerRows = 2

// copyFunc writes text to a clipboard. nil means no clipboard is reachable.
type copyFunc func(string) error

// Model is the Bubble Tea model for the drag playground: one draggable box,
// optionally confined to a frame.
type Model struct {
	cfg       config.DragConfig
	runtime   core.RuntimeConfig
	page      *Page
	box       *Box
	frame     *Frame
	directive *drag.Directive
	gestures  *gestureLog
	copy      copyFunc
	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	quitting  bool
	back      bool
}

// NewModel creates a playground for scene. The scene adjusts cfg before
// anything is laid out. store may be nil, in which case gestures are not
// journaled. The directive is attached before NewModel returns.
func NewModel(scene registry.Scene, cfg config.DragConfig, store *storage.Store, rt core.RuntimeConfig, logger *log.Logger) (Model, error) {
	scene.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	dcfg, err := cfg.Directive()
	if err != nil {
		return Model{}, err
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rt.SessionID == "" {
		rt.SessionID = uuid.NewString()
	}
	rt.SceneID = scene.ID()

	el := cfg.Playground.Element
	page := NewPage()
	box := NewBox(core.NewRect(el.X, el.Y, el.Width, el.Height), el.Label)
	page.Add(box)

	frame := NewFrame(playfield(rt.ScreenW, rt.ScreenH, cfg.Playground.Boundary.Margin))
	frame.SetVisible(cfg.Playground.Boundary.Enabled)

	gestures := &gestureLog{
		store:     store,
		logger:    logger,
		sceneID:   rt.SceneID,
		sessionID: rt.SessionID,
	}

	opts := []drag.Option{
		drag.WithLogger(logger.With("scene", rt.SceneID, "session", rt.SessionID)),
		drag.OnDragEnd(gestures.record),
	}
	if frame.Visible() {
		opts = append(opts, drag.WithBoundary(frame))
	}
	directive := drag.New(box, page, dcfg, opts...)
	gestures.directive = directive
	if err := directive.Attach(); err != nil {
		return Model{}, err
	}

	return Model{
		cfg:       cfg,
		runtime:   rt,
		page:      page,
		box:       box,
		frame:     frame,
		directive: directive,
		gestures:  gestures,
		copy:      clipboard.WriteAll,
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH-1),
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}, nil
}

// playfield returns the frame rectangle for a screen of w x h cells.
func playfield(w, h, margin int) core.Rect {
	return core.NewRect(margin, margin, w-2*margin, h-footerRows-2*margin)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FlashExpiredMsg:
		m.gestures.expire(msg.ID)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input. Option changes apply from the next
// gesture on.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.directive.Detach()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		// Standalone this quits too; a session returns to its menu.
		m.directive.Detach()
		m.quitting = true
		m.back = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Boundary):
		enabled := !m.frame.Visible()
		m.frame.SetVisible(enabled)
		if enabled {
			m.directive.SetBoundary(m.frame)
		} else {
			m.directive.SetBoundary(nil)
		}

	case key.Matches(msg, m.keys.Clamping):
		opts := m.directive.Options()
		opts.BoundaryClamping = !opts.BoundaryClamping
		m.directive.SetOptions(opts)

	case key.Matches(msg, m.keys.Offset):
		opts := m.directive.Options()
		opts.OffsetCorrection = !opts.OffsetCorrection
		m.directive.SetOptions(opts)

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyTransform()
	}

	return m, nil
}

// copyTransform puts the box's translation on the clipboard and reports the
// outcome in the status flash.
func (m Model) copyTransform() tea.Cmd {
	text := m.box.Transform().String()
	switch {
	case m.copy == nil:
		m.gestures.flash = "no clipboard in this session"
	case m.copy(text) != nil:
		m.gestures.flash = "couldn't write to clipboard"
	default:
		m.gestures.flash = "copied " + text
	}
	m.gestures.flashID++
	return m.flashExpiry()
}

func (m Model) flashExpiry() tea.Cmd {
	d := time.Duration(m.cfg.Playground.FlashSeconds * float64(time.Second))
	return flashCmd(m.gestures.flashID, d)
}

// handleMouse feeds the page. The directive mutates the box directly, so
// no command is needed unless a gesture just ended.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.page.Dispatch(msg)

	if m.gestures.pending {
		m.gestures.pending = false
		return m, m.flashExpiry()
	}
	return m, nil
}

// handleResize lays the frame out again. The box keeps its translation.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.frame.SetRect(playfield(msg.Width, msg.Height, m.cfg.Playground.Boundary.Margin))
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.screen
	s.Clear()

	if m.frame.Visible() {
		color := core.ColorGray
		if m.dragInProgress() {
			color = core.ColorCyan
		}
		s.DrawBox(m.frame.Rect(), color)
	}
	m.drawBox(s)
	s.DrawText(0, s.Height()-1, m.statusLine(), core.ColorGray)

	return RenderScreen(s) + "\n" + m.help.View(m.keys)
}

func (m Model) drawBox(s *core.Screen) {
	r := m.box.Rect()
	color := core.ColorYellow
	fill := ' '
	if m.lifted() {
		color = core.ColorBrightYellow
		fill = '░'
	}

	s.FillRect(r.Inset(1), fill, color)
	s.DrawBox(r, color)

	label := m.box.Label()
	if n := utf8.RuneCountInString(label); n > 0 && n <= r.W-2 && r.H >= 3 {
		s.DrawText(r.X+(r.W-n)/2, r.Y+r.H/2, label, color)
	}
}

// lifted reports whether the box carries its drag marker.
func (m Model) lifted() bool {
	if name := m.cfg.Markers.Element; name != "" {
		return m.box.HasMarker(name)
	}
	return m.directive.Dragging()
}

// dragInProgress reports whether the page carries its drag marker.
func (m Model) dragInProgress() bool {
	if name := m.cfg.Markers.Page; name != "" {
		return m.page.HasMarker(name)
	}
	return m.directive.Dragging()
}

func (m Model) statusLine() string {
	opts := m.directive.Options()
	line := fmt.Sprintf(" %s │ %s │ clamp:%s offset:%s │ drags:%d",
		m.runtime.SceneID,
		m.box.Transform(),
		onOff(opts.BoundaryClamping),
		onOff(opts.OffsetCorrection),
		m.gestures.count,
	)
	if m.gestures.flash != "" {
		line += " │ " + m.gestures.flash
	}
	return line
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// IsQuitting reports whether the playground was closed.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the playground was closed with the back key.
func (m Model) BackToMenu() bool {
	return m.back
}

// Transform returns the box's cumulative translation.
func (m Model) Transform() core.Translation {
	return m.box.Transform()
}

// SessionID returns the journal session of this playground.
func (m Model) SessionID() string {
	return m.runtime.SessionID
}

// Run starts the Bubble Tea program with the given model.
func Run(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	model.directive.Detach()
	return err
}
