// Package tui hosts the drag directive in a Bubble Tea terminal UI.
// It maps mouse messages to pointer events, lays out the playground and
// serves it locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FlashExpiredMsg clears the status flash with the matching ID.
type FlashExpiredMsg struct {
	ID int
}

// flashCmd returns a command that expires flash id after d.
func flashCmd(id int, d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FlashExpiredMsg{ID: id}
	})
}
