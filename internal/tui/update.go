package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = max(0, msg.Width-len(m.prompt.Prompt)-1)
		return m, nil

	case commands.PageLoadedMsg:
		// A response for a page we already left.
		if !msg.Start.Equal(m.loadStart) || !msg.End.Equal(m.loadEnd) {
			return m, nil
		}
		m.resources = msg.Resources
		m.events = msg.Events
		m.loading = false
		m.err = nil
		if _, ok := m.selectedEvent(); !ok {
			m.selected = ""
		}
		return m, nil

	case commands.RescheduledMsg:
		in := msg.Intent
		status := fmt.Sprintf("Moved %q", in.Event.Title)
		if in.DeltaDays != 0 {
			status += fmt.Sprintf(" %+d days", in.DeltaDays)
		}
		if in.ResourceID != in.Origin.ResourceID {
			status += " to " + m.resourceTitle(in.ResourceID)
		}
		var cmd tea.Cmd
		m, cmd = m.reload()
		return m, tea.Batch(cmd, commands.Status(status))

	case commands.ErrMsg:
		LogError(msg.Err, "command")
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		// Drop optimistic edits.
		return m.reload()

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) resourceTitle(id string) string {
	for _, r := range m.resources {
		if r.ID == id {
			return r.Title
		}
	}
	return id
}
