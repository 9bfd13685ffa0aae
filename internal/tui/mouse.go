package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg turns left-button gestures into drags. A press on an event
// selects it and starts a drag, motion updates the preview, and the release
// commits the move.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal {
		return m, nil
	}

	l := m.layout()
	p := l.pointer(msg.X, msg.Y)
	metrics := l.metrics()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		placed, ok := m.eventAt(l, msg.X, msg.Y)
		if !ok {
			m.selected = ""
			return m, nil
		}
		m.selected = placed.Event.ID
		if m.drag.Start(p, placed.Event, m.resources, metrics) {
			st, _ := m.drag.State()
			LogDragStart(st)
		}
		return m, nil

	case tea.MouseActionMotion:
		m.drag.Move(p, metrics)
		return m, nil

	case tea.MouseActionRelease:
		intent, ok := m.drag.End(p, m.resources, metrics)
		if !ok {
			return m, nil
		}
		// A click without movement only selects.
		if intent.DeltaDays == 0 && intent.ResourceID == intent.Origin.ResourceID {
			return m, nil
		}
		return m.commit(intent)
	}

	return m, nil
}
