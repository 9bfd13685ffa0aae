package tui

import (
	"fmt"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/tui/commands"
	"github.com/javiermolinar/rota/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Views
	case "d":
		return m.switchView(calendar.ViewDay)
	case "w":
		return m.switchView(calendar.ViewWeek)
	case "m":
		return m.switchView(calendar.ViewMonth)
	case "y":
		return m.switchView(calendar.ViewYear)

	// Navigation
	case "h", "left":
		m.nav.GoPrev()
		return m.navigated("prev")
	case "l", "right":
		m.nav.GoNext()
		return m.navigated("next")
	case "[":
		return m.stepSection(-1)
	case "]":
		return m.stepSection(1)
	case "t":
		m.nav.GoToday()
		return m.navigated("today")
	case ":", "g":
		m.mode = ModePrompt
		m.prompt.SetValue("")
		m.prompt.Focus()
		LogModeChange(ModeNormal, ModePrompt, "go to date")
		return m, textinput.Blink
	case "r":
		return m.reload()

	// Selection
	case "tab":
		m.selected = m.cycleSelection(1)
	case "shift+tab":
		m.selected = m.cycleSelection(-1)
	case "esc":
		if st, ok := m.drag.State(); ok {
			m.drag.Cancel(st.PointerID)
			LogDragCancel(st.EventID, "escape")
			return m, nil
		}
		m.selected = ""

	// Keyboard rescheduling of the selected event
	case "H", "shift+left":
		return m.moveSelected(-1, 0)
	case "L", "shift+right":
		return m.moveSelected(1, 0)
	case "K", "shift+up":
		return m.moveSelected(0, -1)
	case "J", "shift+down":
		return m.moveSelected(0, 1)

	case "c":
		return m.copySelected()
	}

	return m, nil
}

// handlePromptKeys handles keys while the go-to-date prompt is focused.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.exitPrompt("cancel")
		return m, nil

	case "tab":
		if value, ok := input.Autocomplete(m.prompt.Value(), input.DateSuggestions()); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil

	case "enter":
		value := m.prompt.Value()
		day, err := dateutil.ParseRelativeDate(value, m.now().In(m.loc))
		if err != nil {
			m.statusMsg = fmt.Sprintf("Invalid date %q", value)
			return m, nil
		}
		m.exitPrompt("submit")
		m.nav.SetActive(day)
		return m.navigated("go to " + value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) exitPrompt(reason string) {
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
	LogModeChange(ModePrompt, ModeNormal, reason)
}

func (m Model) switchView(v calendar.View) (Model, tea.Cmd) {
	if m.nav.View() == v {
		return m, nil
	}
	m.nav.SetView(v)
	return m.navigated("view " + string(v))
}

// stepSection moves to the neighbouring section. In the year view that is
// the next month; elsewhere it is the next page.
func (m Model) stepSection(n int) (Model, tea.Cmd) {
	if m.nav.View() != calendar.ViewYear {
		m.nav.SetActive(calendar.Step(m.nav.Active(), m.nav.View(), n))
		return m.navigated("step")
	}
	section, ok := m.section()
	if !ok {
		return m, nil
	}
	// Step from the first of the month so short months are never skipped.
	m.nav.SetActive(calendar.Step(section.Start, calendar.ViewMonth, n))
	return m.navigated("section")
}

// navigated runs after any change to the active date or view. Only a page
// whose range differs from the loaded one triggers a reload.
func (m Model) navigated(reason string) (Model, tea.Cmd) {
	if st, ok := m.drag.State(); ok {
		m.drag.Cancel(st.PointerID)
		LogDragCancel(st.EventID, "navigation")
	}
	LogNavigation(m.nav, reason)

	start, end := m.pageRange()
	if start.Equal(m.loadStart) && end.Equal(m.loadEnd) {
		return m, nil
	}
	return m.reload()
}

// reload requests the events of the current page.
func (m Model) reload() (Model, tea.Cmd) {
	m.loadStart, m.loadEnd = m.pageRange()
	if m.repo == nil {
		return m, nil
	}
	m.loading = true
	return m, commands.LoadPage(m.repo, m.loadStart, m.loadEnd)
}

// cycleSelection returns the id of the next visible event in draw order.
func (m Model) cycleSelection(dir int) string {
	placed := m.positioned()
	if len(placed) == 0 {
		return ""
	}
	idx := slices.IndexFunc(placed, func(p calendar.PositionedEvent) bool {
		return p.Event.ID != "" && p.Event.ID == m.selected
	})
	if idx < 0 {
		if dir < 0 {
			return placed[len(placed)-1].Event.ID
		}
		return placed[0].Event.ID
	}
	next := (idx + dir + len(placed)) % len(placed)
	return placed[next].Event.ID
}

// selectedEvent returns the canonical form of the selected event.
func (m Model) selectedEvent() (calendar.CanonicalEvent, bool) {
	if m.selected == "" {
		return calendar.CanonicalEvent{}, false
	}
	for _, ev := range m.vm.Normalize(m.events, m.loc) {
		if ev.ID == m.selected {
			return ev, true
		}
	}
	return calendar.CanonicalEvent{}, false
}

// moveSelected shifts the selected event by days and by rows resources.
func (m Model) moveSelected(days, rows int) (Model, tea.Cmd) {
	ev, ok := m.selectedEvent()
	if !ok || !calendar.Draggable(ev, m.resources) {
		return m, nil
	}
	row := calendar.ResourceIndex(m.resources, ev.ResourceID) + rows
	if row < 0 || row >= len(m.resources) {
		return m, nil
	}
	target := m.resources[row].ID
	intent := calendar.RescheduleIntent{
		Event:      calendar.Shift(ev, days, target),
		Origin:     ev,
		DeltaDays:  days,
		ResourceID: target,
	}
	LogReschedule(intent)
	return m.commit(intent)
}

// commit applies intent to the in-memory page and persists it.
func (m Model) commit(intent calendar.RescheduleIntent) (Model, tea.Cmd) {
	events := slices.Clone(m.events)
	for i := range events {
		if events[i].ID == intent.Event.ID {
			events[i] = intent.Event
		}
	}
	m.events = events
	m.selected = intent.Event.ID
	if m.repo == nil {
		return m, nil
	}
	return m, commands.ApplyReschedule(m.repo, intent)
}

func (m Model) copySelected() (Model, tea.Cmd) {
	ev, ok := m.selectedEvent()
	if !ok {
		return m, nil
	}
	if err := clipboard.WriteAll(m.describe(ev)); err != nil {
		LogError(err, "clipboard")
		m.statusMsg = "Copy failed: " + err.Error()
		return m, nil
	}
	return m, commands.Status("Copied to clipboard")
}

// describe renders a one-line summary of an event.
func (m Model) describe(ev calendar.CanonicalEvent) string {
	resource := ev.ResourceID
	if idx := calendar.ResourceIndex(m.resources, ev.ResourceID); idx >= 0 {
		resource = m.resources[idx].Title
	}
	last := dateutil.AddDays(ev.End, -1)
	dates := ev.Start.Format("Mon Jan 2")
	if !dateutil.SameDay(ev.Start, last) {
		dates += " - " + last.Format("Mon Jan 2")
	}
	return fmt.Sprintf("%s · %s · %s", ev.Title, dates, resource)
}
