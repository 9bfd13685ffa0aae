package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/tui/input"
)

// View renders the title bar, the resource grid and the footer.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	section, ok := m.section()
	if !ok {
		return "Nothing to show"
	}
	l := m.layout()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle(section), m.renderDayHeader(section, l))
	lines = append(lines, m.renderGrid(section, l)...)

	gridEnd := m.height - footerLines
	blank := m.styles.EmptyCellStyle.Render(strings.Repeat(" ", m.width))
	for len(lines) < gridEnd {
		lines = append(lines, blank)
	}
	lines = lines[:max(0, gridEnd)]
	lines = append(lines, m.renderStatus(), m.renderHelp())

	for i, line := range lines {
		lines[i] = fitLine(line, m.width, m.styles.EmptyCellStyle)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTitle(section calendar.Section) string {
	title := m.styles.TitleStyle.Render(" rota  " + section.Title + " ")

	tabs := make([]string, 0, len(calendar.Views()))
	for _, v := range calendar.Views() {
		label := fmt.Sprintf("%c %s", v[0], v)
		if v == m.nav.View() {
			tabs = append(tabs, m.styles.ViewActiveStyle.Render(label))
		} else {
			tabs = append(tabs, m.styles.ViewTabStyle.Render(label))
		}
	}

	if m.nav.View() == calendar.ViewYear {
		title += m.styles.HelpStyle.Render(fmt.Sprintf(" %d/12 ", section.Start.Month()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", strings.Join(tabs, ""))
}

func (m Model) renderDayHeader(section calendar.Section, l gridLayout) string {
	var b strings.Builder
	b.WriteString(m.styles.LabelStyle.Render(pad("", l.labelWidth)))

	today := dateutil.StartOfDay(m.now().In(m.loc))
	for _, day := range section.Days {
		style := m.styles.DayHeaderStyle
		switch {
		case dateutil.SameDay(day, today):
			style = m.styles.DayHeaderTodayStyle
		case day.Weekday() == time.Saturday || day.Weekday() == time.Sunday:
			style = m.styles.DayHeaderMutedStyle
		}
		b.WriteString(style.Width(l.cellWidth).Render(dayLabel(day, l.cellWidth)))
	}
	return b.String()
}

// dayLabel picks the longest day label that fits width.
func dayLabel(day time.Time, width int) string {
	switch {
	case width >= 10:
		return day.Format("Mon Jan 2")
	case width >= 6:
		return day.Format("Mon 2")
	default:
		return day.Format("2")
	}
}

// gridCell is what occupies one day column of a resource row.
type gridCell struct {
	kind  cellKind
	event calendar.PositionedEvent
	alt   bool
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellEvent
	cellOrigin // event being dragged, at its old position
	cellGhost  // event being dragged, at its preview position
)

func (m Model) renderGrid(section calendar.Section, l gridLayout) []string {
	if len(m.resources) == 0 {
		msg := "No resources yet. Add one with: rota resource add <id> <title>"
		if m.loading {
			msg = "Loading..."
		}
		return []string{m.styles.HintStyle.Render(" " + msg)}
	}

	grid := m.buildGrid(section, l)
	ghostRow := -1
	if st, ok := m.drag.State(); ok {
		ghostRow = st.TargetRow
	}

	today := dateutil.StartOfDay(m.now().In(m.loc))
	todayCol := section.Column(today)

	lines := make([]string, 0, l.visibleRows*l.rowHeight)
	for row := 0; row < l.visibleRows; row++ {
		for line := 0; line < l.rowHeight; line++ {
			var b strings.Builder

			labelStyle := m.styles.LabelStyle
			if row == ghostRow {
				labelStyle = m.styles.LabelTargetStyle
			}
			label := ""
			if line == 0 {
				label = " " + m.resources[row].Title
			}
			b.WriteString(labelStyle.Render(pad(label, l.labelWidth)))

			cells := grid[row]
			for col := 0; col < len(cells); {
				c := cells[col]
				end := col + 1
				for end < len(cells) && sameRun(cells[end], c) {
					end++
				}
				width := (end - col) * l.cellWidth
				b.WriteString(m.renderRun(section, c, col, width, line, row == ghostRow, todayCol))
				col = end
			}
			lines = append(lines, b.String())
		}
	}
	return lines
}

// buildGrid lays out the cells of every visible row. Later events overwrite
// earlier ones and the drag preview is drawn last.
func (m Model) buildGrid(section calendar.Section, l gridLayout) [][]gridCell {
	grid := make([][]gridCell, l.visibleRows)
	for i := range grid {
		grid[i] = make([]gridCell, l.days)
	}

	lastEnd := make([]int, l.visibleRows)
	alt := make([]bool, l.visibleRows)
	for _, p := range m.positioned() {
		if p.RowIndex >= l.visibleRows {
			continue
		}
		kind := cellEvent
		if m.drag.Dragging(p.Event.ID) {
			kind = cellOrigin
		}
		// Touching neighbours alternate shades so their edges stay visible.
		if p.StartColumn == lastEnd[p.RowIndex] && p.StartColumn > 0 {
			alt[p.RowIndex] = !alt[p.RowIndex]
		} else {
			alt[p.RowIndex] = false
		}
		lastEnd[p.RowIndex] = p.EndColumn
		fill(grid[p.RowIndex], p, gridCell{kind: kind, event: p, alt: alt[p.RowIndex]})
	}

	if ghost, ok := m.ghost(section); ok && ghost.RowIndex < l.visibleRows {
		fill(grid[ghost.RowIndex], ghost, gridCell{kind: cellGhost, event: ghost})
	}
	return grid
}

func fill(row []gridCell, p calendar.PositionedEvent, c gridCell) {
	for col := p.StartColumn; col < p.EndColumn && col < len(row); col++ {
		row[col] = c
	}
}

func sameRun(a, b gridCell) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == cellEmpty {
		return false
	}
	return a.event.Event.ID == b.event.Event.ID && a.event.StartColumn == b.event.StartColumn
}

// ghost projects the dragged event at its preview position.
func (m Model) ghost(section calendar.Section) (calendar.PositionedEvent, bool) {
	st, ok := m.drag.State()
	if !ok || st.TargetRow < 0 || st.TargetRow >= len(m.resources) {
		return calendar.PositionedEvent{}, false
	}
	moved := calendar.Shift(st.Origin, st.DeltaDays, m.resources[st.TargetRow].ID)
	placed := calendar.Project(section, m.resources, []calendar.CanonicalEvent{calendar.NormalizeEvent(moved, m.loc)})
	if len(placed) == 0 {
		return calendar.PositionedEvent{}, false
	}
	return placed[0], true
}

func (m Model) renderRun(section calendar.Section, c gridCell, col, width, line int, target bool, todayCol int) string {
	if c.kind == cellEmpty {
		style := m.styles.EmptyCellStyle
		switch {
		case target:
			style = m.styles.TargetCellStyle
		case col == todayCol:
			style = m.styles.TodayCellStyle
		}
		text := ""
		if line == 0 && width > 1 {
			text = "·"
		}
		return style.Width(width).Render(text)
	}

	ev := c.event.Event
	var style lipgloss.Style
	switch {
	case c.kind == cellGhost:
		style = m.styles.GhostStyle
	case c.kind == cellOrigin:
		style = m.styles.OriginStyle
	case ev.ID != "" && ev.ID == m.selected:
		style = m.styles.SelectedStyle
	default:
		past := !ev.End.After(dateutil.StartOfDay(m.now().In(m.loc)))
		style = m.styles.Event(ev.Color, past, c.alt)
	}

	text := ""
	if line == 0 {
		text = " " + ev.Title
		if ev.Start.Before(section.Start) {
			text = "◂" + ev.Title
		}
		if ev.End.After(section.End) {
			text = ansi.Truncate(text, max(0, width-1), "…") + "▸"
		}
	}
	return style.Width(width).Render(ansi.Truncate(text, width, "…"))
}

func (m Model) renderStatus() string {
	switch {
	case m.statusMsg != "" && m.err != nil:
		return m.styles.ErrorStyle.Render(" " + m.statusMsg)
	case m.statusMsg != "":
		return m.styles.StatusStyle.Render(" " + m.statusMsg)
	case m.loading:
		return m.styles.HelpStyle.Render(" Loading...")
	}
	if st, ok := m.drag.State(); ok && len(m.resources) > 0 {
		target := m.resources[max(0, min(st.TargetRow, len(m.resources)-1))].Title
		return m.styles.StatusStyle.Render(fmt.Sprintf(" Moving %q %+d days to %s", st.Origin.Title, st.DeltaDays, target))
	}
	if ev, ok := m.selectedEvent(); ok {
		return m.styles.StatusStyle.Render(" " + m.describe(ev))
	}
	return m.styles.HelpStyle.Render(fmt.Sprintf(" %d resources, %d events", len(m.resources), len(m.events)))
}

func (m Model) renderHelp() string {
	if m.mode == ModePrompt {
		line := m.styles.PromptStyle.Render(m.prompt.View())
		if matches := input.Matching(m.prompt.Value(), input.DateSuggestions()); len(matches) > 0 {
			names := make([]string, len(matches))
			for i, s := range matches {
				names[i] = s.Value
			}
			line += m.styles.HintStyle.Render("  tab: " + strings.Join(names, ", "))
		}
		return line
	}
	return m.styles.HelpStyle.Render(" d/w/m/y view · h/l prev/next · [/] section · t today · : go to · tab select · H/L/J/K move · c copy · q quit")
}

// fitLine truncates or pads a rendered line to exactly width columns.
func fitLine(line string, width int, bg lipgloss.Style) string {
	w := ansi.StringWidth(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	if w < width {
		return line + bg.Render(strings.Repeat(" ", width-w))
	}
	return line
}

func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
