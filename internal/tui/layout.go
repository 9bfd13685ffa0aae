package tui

import (
	"github.com/javiermolinar/rota/internal/calendar"
)

// Vertical chrome around the grid, in terminal lines.
const (
	headerLines = 2 // title bar + day header
	footerLines = 2 // status + help or prompt
)

// gridLayout is the terminal geometry of the resource grid. Columns are
// whole cells so that every day maps to the same number of terminal columns.
type gridLayout struct {
	labelWidth  int // resource title column
	cellWidth   int // columns per day
	rowHeight   int // lines per resource
	days        int
	rows        int // resources
	visibleRows int // resources that fit on screen
}

// layout computes the grid geometry for the current size and section.
func (m Model) layout() gridLayout {
	section, _ := m.section()
	days := len(section.Days)

	label := max(0, m.config.Grid.LabelWidth)
	if m.width > 0 && label > m.width/2 {
		label = m.width / 2
	}

	cell := int(calendar.CellWidth(float64(m.width-label), days))
	cell = max(cell, m.config.Grid.MinCellWidth, int(calendar.MinCellWidth))

	rowHeight := max(1, m.config.Grid.RowHeight)
	visible := max(0, (m.height-headerLines-footerLines)/rowHeight)

	return gridLayout{
		labelWidth:  label,
		cellWidth:   cell,
		rowHeight:   rowHeight,
		days:        days,
		rows:        len(m.resources),
		visibleRows: min(visible, len(m.resources)),
	}
}

// metrics converts the layout into drag geometry. X coordinates are measured
// from the first day column. Rows clamp to the last one on screen so a drop
// below the grid never lands on a resource the user cannot see.
func (l gridLayout) metrics() calendar.GridMetrics {
	return calendar.GridMetrics{
		CellWidth:     float64(l.cellWidth),
		RowHeight:     float64(l.rowHeight),
		OriginY:       headerLines,
		ResourceCount: l.visibleRows,
	}
}

// pointer converts a terminal cell into a drag pointer event. The terminal
// has a single pointer.
func (l gridLayout) pointer(x, y int) calendar.PointerEvent {
	return calendar.PointerEvent{
		ID: 0,
		X:  float64(x - l.labelWidth),
		Y:  float64(y),
	}
}

// cellAt maps a terminal cell to a grid row and day column.
func (l gridLayout) cellAt(x, y int) (row, col int, ok bool) {
	if x < l.labelWidth || y < headerLines {
		return 0, 0, false
	}
	row = (y - headerLines) / l.rowHeight
	col = (x - l.labelWidth) / l.cellWidth
	if row >= l.visibleRows || col >= l.days {
		return 0, 0, false
	}
	return row, col, true
}

// eventAt returns the event drawn at a terminal cell. Later events are drawn
// on top, so the search runs backwards.
func (m Model) eventAt(l gridLayout, x, y int) (calendar.PositionedEvent, bool) {
	row, col, ok := l.cellAt(x, y)
	if !ok {
		return calendar.PositionedEvent{}, false
	}
	placed := m.positioned()
	for i := len(placed) - 1; i >= 0; i-- {
		p := placed[i]
		if p.RowIndex == row && col >= p.StartColumn && col < p.EndColumn {
			return p, true
		}
	}
	return calendar.PositionedEvent{}, false
}
