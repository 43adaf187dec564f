package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-drag/internal/registry"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

// MenuItem represents a selectable scene in the menu.
type MenuItem struct {
	SceneID  string
	Title    string
	Gestures int // journaled gestures, 0 without a journal
}

type menuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Journal key.Binding
	Quit    key.Binding
}

func defaultMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Select:  key.NewBinding(key.WithKeys("enter", " ")),
		Journal: key.NewBinding(key.WithKeys("tab")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the scene picker.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	keys     menuKeyMap
	quitting bool
	selected *MenuItem // Set when user selects a scene
	journal  bool      // True if user pressed Tab for the journal
}

// NewMenuModel creates a menu of every registered scene. store may be nil.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	scenes := registry.List()
	items := make([]MenuItem, 0, len(scenes))

	for _, s := range scenes {
		item := MenuItem{SceneID: s.ID, Title: s.Title}
		if store != nil {
			if stats, err := store.SceneStats(s.ID); err == nil {
				item.Gestures = stats.Gestures
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   defaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to open the scene
		}

	case key.Matches(msg, m.keys.Journal):
		m.journal = true
		return m, tea.Quit // Exit menu to show the journal
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  T U I   D R A G  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a scene", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		if item.Gestures > 0 {
			line += menuDimStyle.Render(fmt.Sprintf("  %d drags", item.Gestures))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Open  |  Tab: Journal  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// WantsJournal returns true if user requested the journal browser.
func (m MenuModel) WantsJournal() bool {
	return m.journal
}

// CurrentScene returns the scene under the cursor, or "".
func (m MenuModel) CurrentScene() string {
	if len(m.items) == 0 {
		return ""
	}
	return m.items[m.cursor].SceneID
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
