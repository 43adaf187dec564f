package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-drag/internal/registry"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

// Journal browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the scene sidebar
	sidebarWidth       = 22  // Width of the scene sidebar
	maxJournalRows     = 100 // Max gestures to load per scene
)

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	journalTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	journalActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	journalDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	journalPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// JournalModel browses the gesture journal one scene at a time.
type JournalModel struct {
	scenes      []registry.SceneInfo
	cursor      int
	store       *storage.Store
	gestures    []storage.Gesture
	stats       *storage.SceneStats
	table       table.Model
	help        help.Model
	keys        JournalKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewJournalModel creates a journal browser starting at sceneID, or at the
// first scene if sceneID is not registered. store may be nil.
func NewJournalModel(store *storage.Store, sceneID string, width, height int) JournalModel {
	m := JournalModel{
		scenes:      registry.List(),
		store:       store,
		keys:        DefaultJournalKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, s := range m.scenes {
		if s.ID == sceneID {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates the gesture table sized for the current window.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Released", Width: 11},
		{Title: "Translation", Width: 14},
		{Title: "Clamp", Width: 5},
		{Title: "When", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // title, summary, borders, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current scene's gestures and totals.
func (m *JournalModel) load() {
	m.gestures, m.stats = nil, nil
	if m.store != nil && len(m.scenes) > 0 {
		id := m.scenes[m.cursor].ID
		if gestures, err := m.store.RecentGestures(id, maxJournalRows); err == nil {
			m.gestures = gestures
		}
		if stats, err := m.store.SceneStats(id); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.gestures))
	for i, g := range m.gestures {
		clamp := "-"
		if g.Clamped {
			clamp = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", g.ID),
			fmt.Sprintf("%g,%g", g.EndX, g.EndY),
			fmt.Sprintf("%g,%g", g.TranslateX, g.TranslateY),
			clamp,
			g.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the journal browser.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			if len(m.scenes) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenes)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			if len(m.scenes) > 0 {
				m.cursor = (m.cursor + len(m.scenes) - 1) % len(m.scenes)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "GESTURE JOURNAL"
	if len(m.scenes) > 0 {
		title = fmt.Sprintf("GESTURE JOURNAL - %s", m.scenes[m.cursor].Title)
	}
	b.WriteString(centerText(journalTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	panel := journalPanelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", panel))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(panel)
	}

	b.WriteString("\n")
	b.WriteString(journalDimStyle.Render(m.summary()))
	b.WriteString("\n")
	b.WriteString(journalDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m JournalModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Scenes\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.scenes {
		name := s.ID
		if i == m.cursor {
			sb.WriteString(journalActiveStyle.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
		sb.WriteString("\n")
	}

	return journalPanelStyle.Width(sidebarWidth).Render(sb.String())
}

// renderTabs shows the scenes on one line for narrow terminals.
func (m JournalModel) renderTabs() string {
	tabs := make([]string, len(m.scenes))
	for i, s := range m.scenes {
		if i == m.cursor {
			tabs[i] = journalActiveStyle.Render("[" + s.ID + "]")
		} else {
			tabs[i] = journalDimStyle.Render(" " + s.ID + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m JournalModel) renderTableContent() string {
	if len(m.gestures) == 0 {
		return journalDimStyle.Italic(true).Padding(2, 4).
			Render("No gestures recorded yet.\nOpen the scene and drag the box!")
	}
	return m.table.View()
}

func (m JournalModel) summary() string {
	if m.stats == nil || m.stats.Gestures == 0 {
		return ""
	}
	return fmt.Sprintf("%d gestures in %d sessions, %d clamped",
		m.stats.Gestures, m.stats.Sessions, m.stats.ClampedCount)
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m JournalModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m JournalModel) IsQuitting() bool {
	return m.quitting
}

// RunJournal runs the journal browser on its own.
func RunJournal(store *storage.Store, sceneID string, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(store, sceneID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
